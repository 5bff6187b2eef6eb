// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Delayer blocks the caller for at least d.
type Delayer interface {
	Sleep(d time.Duration)
}

// DelayFunc adapts a function to Delayer.
type DelayFunc func(d time.Duration)

// Sleep calls f(d).
func (f DelayFunc) Sleep(d time.Duration) {
	f(d)
}

// HostDelay busy waits for waits shorter than a millisecond, since the
// scheduler can't sleep for a few microseconds, and sleeps otherwise.
var HostDelay Delayer = DelayFunc(func(d time.Duration) {
	if d < time.Millisecond {
		cpu.Nanospin(d)
		return
	}
	time.Sleep(d)
})

// Timings from the HD44780U datasheet, rounded up.
const (
	delayPowerOn   = 50 * time.Millisecond
	delayReset     = 4500 * time.Microsecond
	delayResetLast = 150 * time.Microsecond
	delayEnable    = 1 * time.Microsecond
	delaySettle    = 1 * time.Microsecond
	delayExecute   = 50 * time.Microsecond
	delayClearHome = 2 * time.Millisecond
)
