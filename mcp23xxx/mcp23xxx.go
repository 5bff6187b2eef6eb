// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23xxx

import (
	"encoding/binary"
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/mmr"
)

// Variant is the chip model.
type Variant string

const (
	MCP23008 Variant = "MCP23008"
	MCP23017 Variant = "MCP23017"

	// DefaultAddress is the address with A2, A1 and A0 grounded.
	DefaultAddress uint16 = 0x20
)

var (
	// ErrPort is returned when asking for a port the variant doesn't have.
	ErrPort = errors.New("mcp23xxx: port out of range")
)

// Dev is an MCP23XXX expander on an I²C bus.
type Dev struct {
	c       mmr.Dev8
	addr    uint16
	variant Variant
}

// NewI2C returns a Dev at addr on bus. addr is either the full 7 bit address
// in 0x20..0x27 or the value of the A2..A0 pins, which is added to
// DefaultAddress. No bus traffic happens here.
func NewI2C(bus i2c.Bus, variant Variant, addr uint16) (*Dev, error) {
	if variant != MCP23008 && variant != MCP23017 {
		return nil, fmt.Errorf("mcp23xxx: unsupported variant %q", string(variant))
	}
	if addr < 8 {
		addr += DefaultAddress
	}
	if addr < DefaultAddress || addr > DefaultAddress+7 {
		return nil, fmt.Errorf("mcp23xxx: address 0x%02x is invalid, must be in 0x20..0x27", addr)
	}
	return &Dev{
		c:       mmr.Dev8{Conn: &i2c.Dev{Bus: bus, Addr: addr}, Order: binary.LittleEndian},
		addr:    addr,
		variant: variant,
	}, nil
}

// Ports returns the number of 8 bit ports of the variant.
func (d *Dev) Ports() int {
	if d.variant == MCP23017 {
		return 2
	}
	return 1
}

// ReadRegister reads register r of port.
func (d *Dev) ReadRegister(r Register, port int) (byte, error) {
	if port < 0 || port >= d.Ports() {
		return 0, ErrPort
	}
	return d.c.ReadUint8(d.variant.address(r, port))
}

// WriteRegister writes value to register r of port.
func (d *Dev) WriteRegister(r Register, port int, value byte) error {
	if port < 0 || port >= d.Ports() {
		return ErrPort
	}
	return d.c.WriteUint8(d.variant.address(r, port), value)
}

// Output returns port as an 8 bit output latch.
func (d *Dev) Output(port int) (*Output, error) {
	if port < 0 || port >= d.Ports() {
		return nil, ErrPort
	}
	return &Output{dev: d, port: port}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s_%x", d.variant, d.addr)
}

// Output drives all eight pins of one port as outputs.
type Output struct {
	dev  *Dev
	port int
}

// Configure makes every pin of the port an output.
func (o *Output) Configure() error {
	return o.dev.WriteRegister(IODIR, o.port, 0x00)
}

// WriteOutput sets the pins of the port to value, bit 0 being GP0.
func (o *Output) WriteOutput(value byte) error {
	return o.dev.WriteRegister(GPIO, o.port, value)
}

// ReadOutput reads back the output latch.
func (o *Output) ReadOutput() (byte, error) {
	return o.dev.ReadRegister(OLAT, o.port)
}

func (o *Output) String() string {
	if o.dev.Ports() == 1 {
		return o.dev.String()
	}
	return fmt.Sprintf("%s_%c", o.dev, 'A'+o.port)
}
