// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf857x drives the TI/NXP PCF8574 and PCF8575 I²C expanders, the
// chips behind most "LCD1602/LCD2004 I2C" backpacks.
//
// The chips have no registers: a write of 1 byte (PCF8574) or 2 bytes
// (PCF8575) sets all the pins, a read returns their levels. A pin written Low
// sinks current; a pin written High is only weakly pulled up, which is how it
// doubles as an input.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
package pcf857x

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574 Variant = "PCF8574"
	PCF8575 Variant = "PCF8575"

	DefaultAddress uint16 = 0x20
)

// Dev is representation of a PCF857x device.
type Dev struct {
	mu       sync.Mutex
	d        *i2c.Dev
	chipType Variant
	width    int
	value    uint16
}

// New creates a new PCF857x io expander and returns it. chip should be one of
// the Variant constants above.
func New(bus i2c.Bus, address uint16, chip Variant) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: address}, chipType: chip}
	switch chip {
	case PCF8574:
		dev.width = 8
	case PCF8575:
		dev.width = 16
	default:
		return nil, fmt.Errorf("pcf857x: unsupported variant %q", string(chip))
	}
	return dev, nil
}

// Width returns the number of pins of the device.
func (dev *Dev) Width() int {
	return dev.width
}

// Write sets every pin of the device in a single transaction. Bit 0 is P0 and,
// on the PCF8575, bit 8 is P10.
func (dev *Dev) Write(value uint16) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeLocked(value)
}

func (dev *Dev) writeLocked(value uint16) error {
	w := make([]byte, dev.width/8)
	for ix := range w {
		w[ix] = byte(value >> (ix * 8))
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("pcf857x: %w", err)
	}
	dev.value = value
	return nil
}

// Read returns the level of every pin. Only pins last written High can be
// pulled Low by the outside world, so pins used as inputs must be written
// High first.
func (dev *Dev) Read() (uint16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	r := make([]byte, dev.width/8)
	if err := dev.d.Tx(nil, r); err != nil {
		return 0, fmt.Errorf("pcf857x: %w", err)
	}
	var result uint16
	for ix, b := range r {
		result |= uint16(b) << (ix * 8)
	}
	return result, nil
}

// Configure drives the pins of the low port Low, which makes the port usable
// as an output latch. The PCF857x has no direction register.
func (dev *Dev) Configure() error {
	return dev.WriteOutput(0)
}

// WriteOutput sets the low port (P0..P7) to value and leaves the pins of the
// high port unchanged.
func (dev *Dev) WriteOutput(value byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeLocked(dev.value&0xff00 | uint16(value))
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.chipType, dev.d.Addr)
}
