// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"fmt"
	"strings"
	"sync"

	"github.com/GermanBionicSystems/lcdbackpack/hd44780"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Chip is the expander on the simulated backpack.
type Chip int

const (
	MCP23008 Chip = iota
	PCF8574
)

// MCP23008 registers the simulation cares about.
const (
	regIODIR = 0x00
	regGPIO  = 0x09
	regOLAT  = 0x0a
	numRegs  = 0x0b
)

// Opts configures a simulated backpack.
type Opts struct {
	Chip Chip
	// Addr is the bus address. 0 means 0x20.
	Addr uint16
	// Type is the panel size.
	Type hd44780.DisplayType
	// Pins is the wiring. nil uses the usual wiring of Chip.
	Pins *hd44780.PinMap
}

// Bus is a simulated I²C bus with one LCD backpack on it.
type Bus struct {
	mu        sync.Mutex
	chip      Chip
	addr      uint16
	pins      hd44780.PinMap
	geometry  hd44780.Geometry
	regs      [numRegs]byte
	latch     byte
	lcd       *controller
	transfers []Transfer
	latches   []byte
	rwHigh    int
}

// New returns a simulated bus with a powered-up, uninitialized display.
func New(opts *Opts) (*Bus, error) {
	if opts == nil {
		opts = &Opts{}
	}
	geometry, err := opts.Type.Geometry()
	if err != nil {
		return nil, err
	}
	b := &Bus{
		chip:     opts.Chip,
		addr:     opts.Addr,
		geometry: geometry,
		lcd:      newController(),
	}
	if b.addr == 0 {
		b.addr = 0x20
	}
	switch {
	case opts.Pins != nil:
		b.pins = *opts.Pins
	case opts.Chip == PCF8574:
		b.pins = hd44780.PCF8574Pins
	default:
		b.pins = hd44780.AdafruitPins
	}
	if err = b.pins.Validate(); err != nil {
		return nil, err
	}
	// MCP23008 power-on state: every pin an input.
	b.regs[regIODIR] = 0xff
	if b.chip == PCF8574 {
		b.latch = 0xff
	}
	return b, nil
}

func (b *Bus) String() string {
	name := "MCP23008"
	if b.chip == PCF8574 {
		name = "PCF8574"
	}
	return fmt.Sprintf("lcdsim(%s@0x%02x)", name, b.addr)
}

// SetSpeed implements i2c.Bus. Any speed is accepted.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if addr != b.addr {
		return fmt.Errorf("lcdsim: no device at 0x%02x", addr)
	}
	if b.chip == PCF8574 {
		return b.txPCF(w, r)
	}
	return b.txMCP(w, r)
}

func (b *Bus) txPCF(w, r []byte) error {
	for _, v := range w {
		b.output(v)
	}
	for ix := range r {
		r[ix] = b.latch
	}
	return nil
}

func (b *Bus) txMCP(w, r []byte) error {
	if len(w) == 0 {
		return fmt.Errorf("lcdsim: MCP23008 transaction without register address")
	}
	reg := int(w[0])
	for _, v := range w[1:] {
		if reg >= numRegs {
			return fmt.Errorf("lcdsim: MCP23008 register 0x%02x out of range", reg)
		}
		b.regs[reg] = v
		if reg == regGPIO || reg == regOLAT {
			b.regs[regOLAT] = v
			b.output(v)
		}
		reg++
	}
	for ix := range r {
		if reg >= numRegs {
			return fmt.Errorf("lcdsim: MCP23008 register 0x%02x out of range", reg)
		}
		r[ix] = b.regs[reg]
		if reg == regGPIO {
			r[ix] = b.latch
		}
		reg++
	}
	return nil
}

// output handles a new latch value. Pins still configured as inputs float
// and are seen low by the display.
func (b *Bus) output(v byte) {
	if b.chip == MCP23008 {
		v &^= b.regs[regIODIR]
	}
	prev := b.latch
	b.latch = v
	b.latches = append(b.latches, v)
	if v&b.mask(hd44780.RW) != 0 {
		b.rwHigh++
	}
	e := b.mask(hd44780.Enable)
	if prev&e != 0 && v&e == 0 {
		var nibble byte
		for ix, s := range []hd44780.Signal{hd44780.D4, hd44780.D5, hd44780.D6, hd44780.D7} {
			if prev&b.mask(s) != 0 {
				nibble |= 1 << ix
			}
		}
		if t, ok := b.lcd.strobe(prev&b.mask(hd44780.RS) != 0, nibble); ok {
			b.transfers = append(b.transfers, t)
		}
	}
}

func (b *Bus) mask(s hd44780.Signal) byte {
	return 1 << b.pins.Bit(s)
}

// Transfers returns the instructions and characters received so far.
func (b *Bus) Transfers() []Transfer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Transfer(nil), b.transfers...)
}

// Latches returns every value written to the output latch, in order.
func (b *Bus) Latches() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.latches...)
}

// ResetLog forgets the recorded transfers and latch values. The display
// keeps its state.
func (b *Bus) ResetLog() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transfers = nil
	b.latches = nil
	b.rwHigh = 0
}

// ReadWrites returns how many latch values had R/W high. The display would
// drive the data lines then.
func (b *Bus) ReadWrites() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rwHigh
}

// Backlight reports whether the backlight is lit.
func (b *Bus) Backlight() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	on := b.latch&b.mask(hd44780.Backlight) != 0
	return on != b.pins.BacklightActiveLow
}

// State is a snapshot of the controller flags.
type State struct {
	FourBit    bool
	TwoLine    bool
	Font5x10   bool
	Display    bool
	Cursor     bool
	Blink      bool
	Increment  bool
	EntryShift bool
	// Address is the address counter, in CGRAM when CGRAM is set.
	Address byte
	CGRAM   bool
	// Shift is the display shift, positive to the left.
	Shift int
}

// State returns the controller flags.
func (b *Bus) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.lcd
	return State{
		FourBit:    c.fourBit,
		TwoLine:    c.twoLine,
		Font5x10:   c.font5x10,
		Display:    c.display,
		Cursor:     c.cursor,
		Blink:      c.blink,
		Increment:  c.increment,
		EntryShift: c.entryShift,
		Address:    c.ac,
		CGRAM:      c.cg,
		Shift:      c.shift,
	}
}

// Glyph returns the custom character stored in slot.
func (b *Bus) Glyph(slot int) [8]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	var g [8]byte
	copy(g[:], b.lcd.cgram[(slot&7)*8:])
	return g
}

// Cell returns the character code shown at column col of row.
func (b *Bus) Cell(col, row int) byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cellLocked(col, row)
}

func (b *Bus) cellLocked(col, row int) byte {
	return b.lcd.ddram[b.lcd.visible(b.geometry.RowStarts[row], col)]
}

// Lines returns the text shown on each row. A display turned off shows
// nothing. Custom characters are shown as their slot, '0'..'7'.
func (b *Bus) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := make([]string, b.geometry.Rows)
	for row := range lines {
		var sb strings.Builder
		for col := range b.geometry.Cols {
			c := b.cellLocked(col, row)
			switch {
			case !b.lcd.display:
				c = ' '
			case c < 0x10:
				c = '0' + c&7
			case c < 0x20 || c > 0x7e:
				c = '?'
			}
			sb.WriteByte(c)
		}
		lines[row] = sb.String()
	}
	return lines
}

var _ i2c.Bus = &Bus{}
