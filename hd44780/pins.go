// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"strconv"
)

// Signal is one of the display lines wired to the expander.
type Signal int

// Signals of the HD44780 used in 4 bit mode. D0..D3 are not wired.
const (
	RS Signal = iota
	RW
	Enable
	Backlight
	D4
	D5
	D6
	D7

	numSignals = iota
)

var signalNames = [...]string{"RS", "RW", "E", "BL", "D4", "D5", "D6", "D7"}

func (s Signal) String() string {
	if s >= 0 && int(s) < len(signalNames) {
		return signalNames[s]
	}
	return "Signal(" + strconv.Itoa(int(s)) + ")"
}

// dataSignals are the data lines, least significant first.
var dataSignals = [4]Signal{D4, D5, D6, D7}

// PinMap tells which bit of the expander output latch drives each signal.
type PinMap struct {
	// Bits is indexed by Signal.
	Bits [numSignals]uint8
	// BacklightActiveLow is set when a Low backlight bit turns the backlight
	// on, as on boards switching it with a PNP transistor.
	BacklightActiveLow bool
}

var (
	// AdafruitPins is the wiring of the Adafruit I2C/SPI LCD backpack. R/W is
	// tied to ground on the board; GP0 is unconnected and stands for it.
	AdafruitPins = PinMap{Bits: [numSignals]uint8{
		RS: 1, RW: 0, Enable: 2, Backlight: 7, D4: 3, D5: 4, D6: 5, D7: 6,
	}}

	// PCF8574Pins is the wiring of the common PCF8574 LCD1602/LCD2004
	// backpacks.
	PCF8574Pins = PinMap{Bits: [numSignals]uint8{
		RS: 0, RW: 1, Enable: 2, Backlight: 3, D4: 4, D5: 5, D6: 6, D7: 7,
	}}

	// MJKDZPins is the wiring of the mjkdz PCF8574 backpacks, which switch the
	// backlight active low.
	MJKDZPins = PinMap{Bits: [numSignals]uint8{
		RS: 6, RW: 5, Enable: 4, Backlight: 7, D4: 0, D5: 1, D6: 2, D7: 3,
	}, BacklightActiveLow: true}
)

// Bit returns the latch bit driving s. It panics if s is not one of the
// Signal constants.
func (m *PinMap) Bit(s Signal) uint8 {
	return m.Bits[s]
}

// mask returns the latch value with only the bit of s set.
func (m *PinMap) mask(s Signal) byte {
	return 1 << m.Bits[s]
}

// Validate checks that every signal has its own bit of the 8 bit latch.
func (m *PinMap) Validate() error {
	var used byte
	for s := Signal(0); s < numSignals; s++ {
		b := m.Bits[s]
		if b > 7 {
			return fmt.Errorf("%w: %s on bit %d", ErrInvalidPinMap, s, b)
		}
		if used&(1<<b) != 0 {
			return fmt.Errorf("%w: %s shares bit %d", ErrInvalidPinMap, s, b)
		}
		used |= 1 << b
	}
	return nil
}

func (m PinMap) String() string {
	s := "PinMap{"
	for sig := Signal(0); sig < numSignals; sig++ {
		if sig > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%d", sig, m.Bits[sig])
	}
	if m.BacklightActiveLow {
		s += " BL-active-low"
	}
	return s + "}"
}
