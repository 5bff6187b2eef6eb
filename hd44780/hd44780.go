// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// Opts holds the configuration of a display.
type Opts struct {
	// Type is the panel size.
	Type DisplayType
	// Font is the character height. Font5x10 is only valid on single line
	// panels.
	Font Font
	// Pins overrides the wiring of the backpack. nil uses the backpack's own.
	Pins *PinMap
	// Address is the I²C address of the expander. 0 uses the backpack default.
	Address uint16
	// BacklightOff starts the display with the backlight off.
	BacklightOff bool
	// Delay provides the waits the display needs. nil uses HostDelay.
	Delay Delayer
	// Logger receives debug traces. nil discards them.
	Logger logrus.FieldLogger
}

// DefaultOpts is used when nil Opts are passed to a constructor.
var DefaultOpts = Opts{Type: LCD16x2}

// Dev is an HD44780 display behind an expander latch.
//
// The display flags are tracked here since they can't be read back. They only
// change once the instruction changing them was written without error.
//
// Dev is not safe for concurrent use. To share the bus with other drivers,
// build the Dev on a SharedBus.
//
// Implements periph.io/x/conn/v3/display.TextDisplay and
// display.DisplayBacklight.
type Dev struct {
	enc      encoder
	dt       DisplayType
	geometry Geometry
	function byte
	entry    byte
	control  byte
	addr     byte
	gate     gate
	log      logrus.FieldLogger
}

// New returns an initialized display driven through port. The wiring is
// opts.Pins, or AdafruitPins when it is nil.
func New(port Port, opts *Opts) (*Dev, error) {
	return newDev(port, AdafruitPins, ownedGate{}, nil, opts)
}

func newDev(port Port, pins PinMap, g gate, delay Delayer, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	geometry, err := opts.Type.Geometry()
	if err != nil {
		return nil, err
	}
	if opts.Pins != nil {
		pins = *opts.Pins
	}
	if err = pins.Validate(); err != nil {
		return nil, err
	}
	function := byte(opts.Font)
	if geometry.Rows > 1 {
		if opts.Font == Font5x10 {
			return nil, fmt.Errorf("%s: the 5x10 font needs a single line display, not %s", packageName, opts.Type)
		}
		function |= function2Line
	}
	if opts.Delay != nil {
		delay = opts.Delay
	}
	if delay == nil {
		delay = HostDelay
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	d := &Dev{
		enc: encoder{
			port:      port,
			delay:     delay,
			pins:      pins,
			backlight: !opts.BacklightOff,
		},
		dt:       opts.Type,
		geometry: geometry,
		function: function,
		gate:     g,
		log:      log.WithField("lcd", port.String()),
	}
	if err = d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// do runs f holding the bus.
func (d *Dev) do(op string, f func() error) error {
	release, err := d.gate.acquire()
	if err != nil {
		return err
	}
	defer release()
	if err = f(); err != nil {
		d.log.WithError(err).WithField("op", op).Debug("hd44780: failed")
	}
	return err
}

// Clear blanks the display and moves the cursor to address 0.
func (d *Dev) Clear() error {
	return d.do("clear", func() error {
		if err := d.enc.command(cmdClear); err != nil {
			return err
		}
		d.addr = 0
		return nil
	})
}

// Home moves the cursor to address 0 and undoes any display shift.
func (d *Dev) Home() error {
	return d.do("home", func() error {
		if err := d.enc.command(cmdHome); err != nil {
			return err
		}
		d.addr = 0
		return nil
	})
}

// SetCursor moves the cursor to the 0 based column col of row. Positions
// outside of the panel are refused with a *RangeError.
func (d *Dev) SetCursor(col, row int) error {
	addr, err := d.geometry.Address(col, row)
	if err != nil {
		return err
	}
	return d.do("set cursor", func() error {
		return d.setAddress(addr)
	})
}

func (d *Dev) setAddress(addr byte) error {
	if err := d.enc.command(cmdSetDDRAMAddr | addr); err != nil {
		return err
	}
	d.addr = addr
	return nil
}

func (d *Dev) setControl(control byte) error {
	return d.do("display control", func() error {
		if err := d.enc.command(cmdDisplayControl | control); err != nil {
			return err
		}
		d.control = control
		return nil
	})
}

func (d *Dev) setEntry(entry byte) error {
	return d.do("entry mode", func() error {
		if err := d.enc.command(cmdEntryMode | entry); err != nil {
			return err
		}
		d.entry = entry
		return nil
	})
}

// DisplayOn shows the DDRAM contents.
func (d *Dev) DisplayOn() error { return d.setControl(d.control | displayOn) }

// DisplayOff blanks the panel without losing the DDRAM contents.
func (d *Dev) DisplayOff() error { return d.setControl(d.control &^ displayOn) }

// CursorOn shows the underline cursor.
func (d *Dev) CursorOn() error { return d.setControl(d.control | cursorOn) }

// CursorOff hides the underline cursor.
func (d *Dev) CursorOff() error { return d.setControl(d.control &^ cursorOn) }

// BlinkOn blinks the character at the cursor.
func (d *Dev) BlinkOn() error { return d.setControl(d.control | blinkOn) }

// BlinkOff stops the blinking.
func (d *Dev) BlinkOff() error { return d.setControl(d.control &^ blinkOn) }

// AutoscrollOn shifts the display on every character written, so text
// appears to flow from the cursor.
func (d *Dev) AutoscrollOn() error { return d.setEntry(d.entry | entryShift) }

// AutoscrollOff stops shifting the display on writes.
func (d *Dev) AutoscrollOff() error { return d.setEntry(d.entry &^ entryShift) }

// LeftToRight moves the cursor right after each character.
func (d *Dev) LeftToRight() error { return d.setEntry(d.entry | entryIncrement) }

// RightToLeft moves the cursor left after each character.
func (d *Dev) RightToLeft() error { return d.setEntry(d.entry &^ entryIncrement) }

func (d *Dev) shift(op string, flags byte) error {
	return d.do(op, func() error {
		if err := d.enc.command(cmdShift | flags); err != nil {
			return err
		}
		if flags&shiftDisplay == 0 {
			if flags&shiftRight != 0 {
				d.addr = d.step(d.addr, 1)
			} else {
				d.addr = d.step(d.addr, -1)
			}
		}
		return nil
	})
}

// ScrollDisplayLeft shifts the whole display one position left. The cursor
// address doesn't change.
func (d *Dev) ScrollDisplayLeft() error { return d.shift("scroll left", shiftDisplay) }

// ScrollDisplayRight shifts the whole display one position right.
func (d *Dev) ScrollDisplayRight() error {
	return d.shift("scroll right", shiftDisplay|shiftRight)
}

// MoveCursorLeft moves the cursor one position left.
func (d *Dev) MoveCursorLeft() error { return d.shift("cursor left", 0) }

// MoveCursorRight moves the cursor one position right.
func (d *Dev) MoveCursorRight() error { return d.shift("cursor right", shiftRight) }

// step returns the DDRAM address delta positions from addr, wrapping the way
// the address counter does.
func (d *Dev) step(addr byte, delta int) byte {
	if d.function&function2Line == 0 {
		return byte((int(addr) + delta + 80) % 80)
	}
	line := addr & 0x40
	off := int(addr&0x3f) + delta
	switch {
	case off >= 40:
		off -= 40
		line ^= 0x40
	case off < 0:
		off += 40
		line ^= 0x40
	}
	return line | byte(off)
}

// CreateChar stores glyph as the custom character slot, 0..7. Each byte is one
// row of pixels, top first, using the low 5 bits. Write the byte slot to show
// it.
//
// The cursor is put back where it was, since the CGRAM and DDRAM share the
// address counter.
func (d *Dev) CreateChar(slot int, glyph [8]byte) error {
	if slot < 0 || slot > 7 {
		return ErrInvalidSlot
	}
	return d.do("create char", func() error {
		if err := d.enc.command(cmdSetCGRAMAddr | byte(slot)<<3); err != nil {
			return err
		}
		for _, row := range glyph {
			if err := d.enc.data(row); err != nil {
				return err
			}
		}
		return d.setAddress(d.addr)
	})
}

// SetBacklight turns the backlight on or off right away. Every later write
// keeps the backlight bit as set here.
func (d *Dev) SetBacklight(on bool) error {
	return d.do("backlight", func() error {
		return d.enc.setBacklight(on)
	})
}

// Command sends the raw instruction cmd, for instructions not covered by the
// other methods. Clear, home and set DDRAM address instructions update the
// tracked cursor; other instructions leave the tracked flags as they are, so
// later calls to the flag methods overwrite what cmd changed.
func (d *Dev) Command(cmd byte) error {
	return d.do("command", func() error {
		if err := d.enc.command(cmd); err != nil {
			return err
		}
		switch {
		case cmd&cmdSetDDRAMAddr != 0:
			d.addr = cmd &^ cmdSetDDRAMAddr
		case cmd == cmdClear || cmd&^0x01 == cmdHome:
			d.addr = 0
		}
		return nil
	})
}

// Data writes the raw byte b to the RAM selected by the last address
// instruction, DDRAM or CGRAM. The tracked cursor doesn't move; use Write for
// text.
func (d *Dev) Data(b byte) error {
	return d.do("data", func() error {
		return d.enc.data(b)
	})
}

// Write writes p as characters at the cursor. It implements io.Writer, so
// fmt.Fprintf can be used to print to the display.
func (d *Dev) Write(p []byte) (n int, err error) {
	err = d.do("write", func() error {
		delta := 1
		if d.entry&entryIncrement == 0 {
			delta = -1
		}
		for _, b := range p {
			if err := d.enc.data(b); err != nil {
				return err
			}
			d.addr = d.step(d.addr, delta)
			n++
		}
		return nil
	})
	return n, err
}

// WriteString writes text at the cursor.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// WriteByte writes the single character c.
func (d *Dev) WriteByte(c byte) error {
	_, err := d.Write([]byte{c})
	return err
}

// Geometry returns a copy of the size of the panel.
func (d *Dev) Geometry() Geometry {
	return d.geometry.clone()
}

// Halt clears the display, turns the backlight off, and turns the display off.
func (d *Dev) Halt() error {
	return d.Seq().Clear().SetBacklight(false).DisplayOff().Err()
}

// String returns info about the display.
func (d *Dev) String() string {
	return fmt.Sprintf("HD44780{%s} - Rows: %d, Cols: %d", d.enc.port, d.geometry.Rows, d.geometry.Cols)
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
var _ io.StringWriter = &Dev{}
var _ io.ByteWriter = &Dev{}
