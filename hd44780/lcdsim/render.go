// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"image"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Character cells are 5x8 dots with a one dot gap.
const (
	dotsX   = 5
	dotsY   = 8
	gap     = 1
	margin  = 4
	minDots = 2
)

// faces caches the font faces by dot size.
var faces sync.Map

// face returns a font face sized for dot pixels per dot. It falls back to the
// fixed basicfont face if the Go font can't be parsed.
func face(dot int) font.Face {
	if f, ok := faces.Load(dot); ok {
		return f.(font.Face)
	}
	var ff font.Face = basicfont.Face7x13
	if tt, err := truetype.Parse(goregular.TTF); err == nil {
		ff = truetype.NewFace(tt, &truetype.Options{Size: float64(dotsY * dot), DPI: 72})
	}
	f, _ := faces.LoadOrStore(dot, ff)
	return f.(font.Face)
}

// Render draws the panel as it would look, dot pixels per LCD dot. Custom
// characters are drawn dot by dot from CGRAM; other characters use the Go
// font.
func (b *Bus) Render(dot int) image.Image {
	if dot < minDots {
		dot = minDots
	}
	lines := b.Lines()
	b.mu.Lock()
	rows, cols := b.geometry.Rows, b.geometry.Cols
	codes := make([][]byte, rows)
	for row := range rows {
		codes[row] = make([]byte, cols)
		for col := range cols {
			codes[row][col] = b.cellLocked(col, row)
		}
	}
	cgram := b.lcd.cgram
	on := b.lcd.display
	b.mu.Unlock()

	cellW := (dotsX + gap) * dot
	cellH := (dotsY + gap) * dot
	w := 2*margin*dot + cols*cellW
	h := 2*margin*dot + rows*cellH
	dc := gg.NewContext(w, h)
	if b.Backlight() {
		dc.SetRGB255(int(backlightLit.R), int(backlightLit.G), int(backlightLit.B))
	} else {
		dc.SetRGB255(int(backlightDark.R), int(backlightDark.G), int(backlightDark.B))
	}
	dc.Clear()
	dc.SetFontFace(face(dot))
	for row := range rows {
		for col := range cols {
			x := float64(margin*dot + col*cellW)
			y := float64(margin*dot + row*cellH)
			// Unlit dots are faintly visible on a real panel.
			dc.SetRGBA(0, 0, 0, 0.08)
			dc.DrawRectangle(x, y, float64(dotsX*dot), float64(dotsY*dot))
			dc.Fill()
			if !on {
				continue
			}
			dc.SetRGB(0.05, 0.1, 0.05)
			code := codes[row][col]
			if code < 0x10 {
				glyph := cgram[(code&7)*8 : (code&7)*8+8]
				for dy, bits := range glyph {
					for dx := range dotsX {
						if bits&(1<<(dotsX-1-dx)) != 0 {
							dc.DrawRectangle(x+float64(dx*dot), y+float64(dy*dot), float64(dot), float64(dot))
						}
					}
				}
				dc.Fill()
				continue
			}
			ch := lines[row][col]
			if ch != ' ' {
				dc.DrawStringAnchored(string(ch), x+float64(dotsX*dot)/2, y+float64(dotsY*dot)/2, 0.5, 0.4)
			}
		}
	}
	return dc.Image()
}

// SavePNG renders the panel to a PNG file at path.
func (b *Bus) SavePNG(path string, dot int) error {
	return gg.SavePNG(path, b.Render(dot))
}
