// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23xxx

import "strconv"

// Register identifies one of the control registers of a port. The values are
// the MCP23008 addresses; the MCP23017 addresses are derived from them.
type Register uint8

const (
	IODIR   Register = 0x00 // I/O direction, 1 is input.
	IPOL    Register = 0x01 // Input polarity.
	GPINTEN Register = 0x02 // Interrupt on change enable.
	DEFVAL  Register = 0x03 // Default compare value for interrupt on change.
	INTCON  Register = 0x04 // Interrupt control.
	IOCON   Register = 0x05 // Configuration.
	GPPU    Register = 0x06 // Pull-up resistors.
	INTF    Register = 0x07 // Interrupt flags.
	INTCAP  Register = 0x08 // Interrupt capture.
	GPIO    Register = 0x09 // Port value. Writing sets the output latch.
	OLAT    Register = 0x0a // Output latch.
)

var registerNames = [...]string{"IODIR", "IPOL", "GPINTEN", "DEFVAL", "INTCON", "IOCON", "GPPU", "INTF", "INTCAP", "GPIO", "OLAT"}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "Register(" + strconv.Itoa(int(r)) + ")"
}

// address returns the device address of register r for the given port.
//
// The MCP23017 is expected in its power-on IOCON.BANK=0 layout, where the A
// and B registers of each kind are interleaved.
func (v Variant) address(r Register, port int) uint8 {
	if v == MCP23017 {
		return uint8(r)*2 + uint8(port)
	}
	return uint8(r)
}
