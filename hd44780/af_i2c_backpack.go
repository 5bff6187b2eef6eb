// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"github.com/GermanBionicSystems/lcdbackpack/mcp23xxx"
	"periph.io/x/conn/v3/i2c"
)

// NewAdafruitI2CBackpack returns a display configured to use the Adafruit
// I2C/SPI LCD Backpack, and initializes it.
//
// # Product Information
//
// https://www.adafruit.com/product/292
//
// The I2C side of this backpack uses an MCP23008 I/O expander, at
// mcp23xxx.DefaultAddress unless the address jumpers are bridged. opts may be
// nil.
func NewAdafruitI2CBackpack(bus i2c.Bus, opts *Opts) (*Dev, error) {
	port, err := adafruitPort(bus, opts)
	if err != nil {
		return nil, err
	}
	return newDev(port, AdafruitPins, ownedGate{}, nil, opts)
}

// NewSharedAdafruitI2CBackpack is NewAdafruitI2CBackpack on a bus shared with
// other drivers. Every display operation holds the bus for its duration.
func NewSharedAdafruitI2CBackpack(shared *SharedBus, opts *Opts) (*Dev, error) {
	port, err := adafruitPort(shared.bus, opts)
	if err != nil {
		return nil, err
	}
	return newDev(port, AdafruitPins, shared, shared.delay, opts)
}

func adafruitPort(bus i2c.Bus, opts *Opts) (Port, error) {
	addr := mcp23xxx.DefaultAddress
	if opts != nil && opts.Address != 0 {
		addr = opts.Address
	}
	mcp, err := mcp23xxx.NewI2C(bus, mcp23xxx.MCP23008, addr)
	if err != nil {
		return nil, err
	}
	return mcp.Output(0)
}
