// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"github.com/GermanBionicSystems/lcdbackpack/pcf857x"
	"periph.io/x/conn/v3/i2c"
)

// NewPCF857xBackpack returns a display configured to use the pcf8574 i2c
// backpacks, and initializes it.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// These boards are usually at 0x27 (PCF8574) or 0x3f (PCF8574A), so
// opts.Address should normally be set. R/W is connected on this backpack and is
// held low. opts may be nil.
func NewPCF857xBackpack(bus i2c.Bus, opts *Opts) (*Dev, error) {
	port, err := pcfPort(bus, opts)
	if err != nil {
		return nil, err
	}
	return newDev(port, PCF8574Pins, ownedGate{}, nil, opts)
}

// NewSharedPCF857xBackpack is NewPCF857xBackpack on a bus shared with other
// drivers.
func NewSharedPCF857xBackpack(shared *SharedBus, opts *Opts) (*Dev, error) {
	port, err := pcfPort(shared.bus, opts)
	if err != nil {
		return nil, err
	}
	return newDev(port, PCF8574Pins, shared, shared.delay, opts)
}

func pcfPort(bus i2c.Bus, opts *Opts) (Port, error) {
	addr := pcf857x.DefaultAddress
	if opts != nil && opts.Address != 0 {
		addr = opts.Address
	}
	return pcf857x.New(bus, addr, pcf857x.PCF8574)
}
