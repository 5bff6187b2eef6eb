// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// gate grants access to the bus for the length of one display operation.
type gate interface {
	acquire() (release func(), err error)
}

// ownedGate is used when the Dev is the only user of its bus.
type ownedGate struct{}

func (ownedGate) acquire() (func(), error) {
	return func() {}, nil
}

// SharedBus lets a display and other drivers use the same bus and Delayer.
//
// Whoever uses the bus holds it for a whole operation: one Tx for a plain
// i2c.Bus user, one display operation (several Tx and delays) for a Dev. A
// second user arriving meanwhile gets ErrBusy right away instead of waiting,
// which also catches a display being used from two goroutines.
type SharedBus struct {
	mu    sync.Mutex
	bus   i2c.Bus
	delay Delayer
}

// NewSharedBus wraps bus. delay may be nil to use HostDelay.
func NewSharedBus(bus i2c.Bus, delay Delayer) *SharedBus {
	if delay == nil {
		delay = HostDelay
	}
	return &SharedBus{bus: bus, delay: delay}
}

func (s *SharedBus) acquire() (func(), error) {
	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	return s.mu.Unlock, nil
}

// Do runs f with exclusive use of the bus and the Delayer, for drivers
// needing several transactions in a row.
func (s *SharedBus) Do(f func(bus i2c.Bus, delay Delayer) error) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()
	return f(s.bus, s.delay)
}

// Tx implements i2c.Bus.
func (s *SharedBus) Tx(addr uint16, w, r []byte) error {
	return s.Do(func(bus i2c.Bus, _ Delayer) error {
		return bus.Tx(addr, w, r)
	})
}

// SetSpeed implements i2c.Bus.
func (s *SharedBus) SetSpeed(f physic.Frequency) error {
	return s.Do(func(bus i2c.Bus, _ Delayer) error {
		return bus.SetSpeed(f)
	})
}

func (s *SharedBus) String() string {
	return "Shared(" + s.bus.String() + ")"
}

var _ i2c.Bus = &SharedBus{}
