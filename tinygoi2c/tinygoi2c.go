// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinygoi2c runs periph drivers on a TinyGo I²C bus.
//
// TinyGo boards expose their I²C peripherals as machine.I2C, which
// tinygo.org/x/drivers describes with the drivers.I2C interface. Bus wraps one
// so it can be passed where a periph.io/x/conn/v3/i2c.Bus is expected, for
// example to hd44780.NewAdafruitI2CBackpack.
package tinygoi2c

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// ErrSpeed is returned by SetSpeed. The speed of a TinyGo bus is part of its
// machine.I2CConfig.
var ErrSpeed = errors.New("tinygoi2c: the bus speed is set by machine.I2C.Configure")

// Bus is a drivers.I2C usable as an i2c.Bus.
type Bus struct {
	mu   sync.Mutex
	bus  drivers.I2C
	name string
}

// New wraps bus. name is returned by String, "I2C0" if empty.
func New(bus drivers.I2C, name string) *Bus {
	if name == "" {
		name = "I2C0"
	}
	return &Bus{bus: bus, name: name}
}

// Tx implements i2c.Bus. Transactions are serialized.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7f {
		return fmt.Errorf("tinygoi2c: invalid address 0x%x", addr)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.bus.Tx(addr, w, r); err != nil {
		return fmt.Errorf("tinygoi2c: %s: %w", b.name, err)
	}
	return nil
}

// SetSpeed implements i2c.Bus. It always fails with ErrSpeed.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return ErrSpeed
}

func (b *Bus) String() string {
	return "tinygo(" + b.name + ")"
}

var _ i2c.Bus = &Bus{}
