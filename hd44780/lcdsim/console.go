// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"bytes"
	"image/color"
	"io"
	"strings"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

var (
	backlightLit  = color.NRGBA{R: 0x60, G: 0xc0, B: 0x30, A: 255}
	backlightDark = color.NRGBA{R: 0x20, G: 0x30, B: 0x20, A: 255}
)

// Console draws the simulated panel on a terminal using ANSI color codes. The
// frame around the text is the backlight color.
type Console struct {
	w       io.Writer
	palette ansi256.Palette
	buf     bytes.Buffer
}

// NewConsole returns a Console writing to stdout. p may be nil to use the
// default palette.
func NewConsole(p *ansi256.Palette) *Console {
	return NewConsoleWriter(colorable.NewColorableStdout(), p)
}

// NewConsoleWriter returns a Console writing to w.
func NewConsoleWriter(w io.Writer, p *ansi256.Palette) *Console {
	if p == nil {
		p = ansi256.Default
	}
	return &Console{w: w, palette: *p}
}

// Draw writes the current content of the display on b.
func (c *Console) Draw(b *Bus) error {
	lines := b.Lines()
	frame := backlightDark
	if b.Backlight() {
		frame = backlightLit
	}
	block := c.palette.Block(frame)
	width := 0
	if len(lines) > 0 {
		width = len(lines[0])
	}
	border := strings.Repeat(block, width+2)

	// This code is designed to minimize the amount of memory allocated per call.
	c.buf.Reset()
	_, _ = c.buf.WriteString("\033[0m")
	_, _ = c.buf.WriteString(border)
	_, _ = c.buf.WriteString("\033[0m\n")
	for _, line := range lines {
		_, _ = c.buf.WriteString(block)
		_, _ = c.buf.WriteString("\033[0m")
		_, _ = c.buf.WriteString(line)
		_, _ = c.buf.WriteString(block)
		_, _ = c.buf.WriteString("\033[0m\n")
	}
	_, _ = c.buf.WriteString(border)
	_, _ = c.buf.WriteString("\033[0m\n")
	_, err := c.buf.WriteTo(c.w)
	return err
}

// Halt resets the terminal colors.
func (c *Console) Halt() error {
	_, err := c.w.Write([]byte("\033[0m"))
	return err
}

func (c *Console) String() string {
	return "LCDConsole"
}
