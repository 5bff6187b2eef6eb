// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "time"

type initState int

const (
	stateConfigureExpander initState = iota
	statePowerOnWait
	stateFunctionSet8Bit
	stateSet4BitMode
	stateFunctionSetFinal
	stateDisplayOff
	stateClear
	stateEntryModeSet
	stateDisplayOn
)

var initStateNames = [...]string{
	"ConfigureExpander", "PowerOnWait", "FunctionSet8bitRetry", "Set4BitMode",
	"FunctionSetFinal", "DisplayOff", "Clear", "EntryModeSet", "DisplayOn",
}

func (s initState) String() string {
	return initStateNames[s]
}

// initStep is one transition of the power-on sequence: an optional action
// followed by a wait.
type initStep struct {
	state  initState
	action func(d *Dev) error
	wait   time.Duration
}

func nibbleStep(state initState, nibble byte, wait time.Duration) initStep {
	return initStep{
		state:  state,
		action: func(d *Dev) error { return d.enc.pulse(modeCommand, nibble) },
		wait:   wait,
	}
}

func commandStep(state initState, cmd func(d *Dev) byte) initStep {
	return initStep{
		state:  state,
		action: func(d *Dev) error { return d.enc.command(cmd(d)) },
	}
}

// initSequence is the "initializing by instruction" procedure of the
// datasheet (figure 24). The controller may be in 8 bit mode or half way
// through a 4 bit transfer, and the three 0x3 nibbles bring it to 8 bit mode
// in all cases before 4 bit mode is selected.
var initSequence = []initStep{
	{state: stateConfigureExpander, action: func(d *Dev) error {
		if err := d.enc.port.Configure(); err != nil {
			return &TransportError{Port: d.enc.port.String(), Err: err}
		}
		return d.enc.write(d.enc.latch(modeCommand, 0, false))
	}},
	{state: statePowerOnWait, wait: delayPowerOn},
	nibbleStep(stateFunctionSet8Bit, (cmdFunctionSet|function8Bit)>>4, delayReset),
	nibbleStep(stateFunctionSet8Bit, (cmdFunctionSet|function8Bit)>>4, delayReset),
	nibbleStep(stateFunctionSet8Bit, (cmdFunctionSet|function8Bit)>>4, delayResetLast),
	nibbleStep(stateSet4BitMode, cmdFunctionSet>>4, delayExecute),
	commandStep(stateFunctionSetFinal, func(d *Dev) byte { return cmdFunctionSet | d.function }),
	commandStep(stateDisplayOff, func(d *Dev) byte { return cmdDisplayControl }),
	commandStep(stateClear, func(d *Dev) byte { return cmdClear }),
	commandStep(stateEntryModeSet, func(d *Dev) byte { return cmdEntryMode | entryIncrement }),
	commandStep(stateDisplayOn, func(d *Dev) byte { return cmdDisplayControl | displayOn }),
}

// Init runs the power-on initialization sequence. It leaves the display on,
// with the cursor hidden and not blinking, the cursor moving right and the
// display not shifting, at address 0.
//
// The constructors call Init. Calling it again is harmless and brings the
// display back to the same state, for example after a TransportError.
func (d *Dev) Init() error {
	return d.do("init", func() error {
		for _, step := range initSequence {
			d.log.WithField("state", step.state).Debug("hd44780: init")
			if step.action != nil {
				if err := step.action(d); err != nil {
					return err
				}
			}
			if step.wait > 0 {
				d.enc.delay.Sleep(step.wait)
			}
		}
		d.entry = entryIncrement
		d.control = displayOn
		d.addr = 0
		return nil
	})
}
