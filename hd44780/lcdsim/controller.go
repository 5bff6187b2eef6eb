// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

// Transfer is one instruction or character received by the controller.
type Transfer struct {
	// Data is set for characters (RS high), clear for instructions.
	Data bool
	// Value is the byte received. For Nibble transfers, only the high nibble
	// was sent.
	Value byte
	// Nibble is set for single nibble instructions received in 8 bit mode.
	Nibble bool
}

// controller models the HD44780 registers and memories.
type controller struct {
	fourBit bool
	pending bool
	high    byte

	ddram [0x80]byte
	cgram [64]byte
	ac    byte
	cg    bool

	increment  bool
	entryShift bool
	display    bool
	cursor     bool
	blink      bool
	twoLine    bool
	font5x10   bool
	shift      int
}

func newController() *controller {
	c := &controller{increment: true}
	c.clear()
	return c
}

func (c *controller) clear() {
	for ix := range c.ddram {
		c.ddram[ix] = ' '
	}
	c.ac = 0
	c.cg = false
	c.shift = 0
	c.increment = true
}

// strobe handles a falling edge of the enable line. In 8 bit mode D0..D3 are
// not wired and read as 0.
func (c *controller) strobe(rs bool, nibble byte) (Transfer, bool) {
	if !c.fourBit {
		t := Transfer{Data: rs, Value: nibble << 4, Nibble: true}
		c.execute(t)
		return t, true
	}
	if !c.pending {
		c.pending = true
		c.high = nibble << 4
		return Transfer{}, false
	}
	c.pending = false
	t := Transfer{Data: rs, Value: c.high | nibble}
	c.execute(t)
	return t, true
}

func (c *controller) execute(t Transfer) {
	b := t.Value
	if t.Data {
		if c.cg {
			c.cgram[c.ac&0x3f] = b
		} else {
			c.ddram[c.ac&0x7f] = b
			if c.entryShift {
				if c.increment {
					c.shift++
				} else {
					c.shift--
				}
			}
		}
		c.advance()
		return
	}
	switch {
	case b&0x80 != 0:
		c.ac = b & 0x7f
		c.cg = false
	case b&0x40 != 0:
		c.ac = b & 0x3f
		c.cg = true
	case b&0x20 != 0:
		c.fourBit = b&0x10 == 0
		// Function set with 4 bit mode only takes effect on N and F when
		// received as a full byte.
		if !t.Nibble {
			c.twoLine = b&0x08 != 0
			c.font5x10 = b&0x04 != 0
		}
	case b&0x10 != 0:
		right := b&0x04 != 0
		if b&0x08 != 0 {
			if right {
				c.shift--
			} else {
				c.shift++
			}
		} else {
			c.move(right)
		}
	case b&0x08 != 0:
		c.display = b&0x04 != 0
		c.cursor = b&0x02 != 0
		c.blink = b&0x01 != 0
	case b&0x04 != 0:
		c.increment = b&0x02 != 0
		c.entryShift = b&0x01 != 0
	case b&0x02 != 0:
		c.ac = 0
		c.cg = false
		c.shift = 0
	case b&0x01 != 0:
		c.clear()
	}
}

func (c *controller) advance() {
	c.move(c.increment)
}

func (c *controller) move(forward bool) {
	delta := 1
	if !forward {
		delta = -1
	}
	if c.cg {
		c.ac = byte((int(c.ac) + delta) & 0x3f)
		return
	}
	if !c.twoLine {
		c.ac = byte((int(c.ac) + delta + 80) % 80)
		return
	}
	line := c.ac & 0x40
	off := int(c.ac&0x3f) + delta
	switch {
	case off >= 40:
		off -= 40
		line ^= 0x40
	case off < 0:
		off += 40
		line ^= 0x40
	}
	c.ac = line | byte(off)
}

// visible returns the DDRAM address shown at column col of the row starting
// at start.
func (c *controller) visible(start byte, col int) byte {
	if !c.twoLine {
		return byte(((int(start)+col+c.shift)%80 + 80) % 80)
	}
	line := start & 0x40
	off := ((int(start&0x3f)+col+c.shift)%40 + 40) % 40
	return line | byte(off)
}
