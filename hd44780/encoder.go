// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "time"

// Port is the 8 bit output latch of the expander the display hangs off.
type Port interface {
	// Configure makes every pin of the latch an output.
	Configure() error
	// WriteOutput sets the latch in one bus transaction.
	WriteOutput(value byte) error
	String() string
}

type writeMode bool

const (
	modeCommand writeMode = false
	modeData    writeMode = true
)

// encoder turns instructions and data into latch writes framed by the enable
// pulse. It owns the latch value: the expander is never read.
type encoder struct {
	port      Port
	delay     Delayer
	pins      PinMap
	backlight bool

	// out is the last value written to the latch.
	out byte
}

// latch computes the expander value presenting nibble on D4..D7. R/W stays low.
func (e *encoder) latch(mode writeMode, nibble byte, enable bool) byte {
	var v byte
	if mode == modeData {
		v |= e.pins.mask(RS)
	}
	for ix, s := range dataSignals {
		if nibble&(1<<ix) != 0 {
			v |= e.pins.mask(s)
		}
	}
	if enable {
		v |= e.pins.mask(Enable)
	}
	if e.backlight != e.pins.BacklightActiveLow {
		v |= e.pins.mask(Backlight)
	}
	return v
}

func (e *encoder) write(v byte) error {
	if err := e.port.WriteOutput(v); err != nil {
		return &TransportError{Port: e.port.String(), Err: err}
	}
	e.out = v
	return nil
}

// pulse presents nibble and strobes the enable line; the display latches the
// nibble on the falling edge.
func (e *encoder) pulse(mode writeMode, nibble byte) error {
	nibble &= 0x0f
	if err := e.write(e.latch(mode, nibble, true)); err != nil {
		return err
	}
	e.delay.Sleep(delayEnable)
	if err := e.write(e.latch(mode, nibble, false)); err != nil {
		return err
	}
	e.delay.Sleep(delaySettle)
	return nil
}

// send writes b high nibble first and waits for the display to execute it.
func (e *encoder) send(mode writeMode, b byte, execute time.Duration) error {
	if err := e.pulse(mode, b>>4); err != nil {
		return err
	}
	if err := e.pulse(mode, b); err != nil {
		return err
	}
	e.delay.Sleep(execute)
	return nil
}

func (e *encoder) command(cmd byte) error {
	execute := delayExecute
	if cmd == cmdClear || cmd&^0x01 == cmdHome {
		execute = delayClearHome
	}
	return e.send(modeCommand, cmd, execute)
}

func (e *encoder) data(b byte) error {
	return e.send(modeData, b, delayExecute)
}

// setBacklight rewrites the last latch value with the backlight bit changed
// and enable low, so the display ignores it.
func (e *encoder) setBacklight(on bool) error {
	v := e.out &^ (e.pins.mask(Backlight) | e.pins.mask(Enable))
	if on != e.pins.BacklightActiveLow {
		v |= e.pins.mask(Backlight)
	}
	if err := e.write(v); err != nil {
		return err
	}
	e.backlight = on
	return nil
}
