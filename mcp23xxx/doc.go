// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mcp23xxx provides a register level driver for the I²C variants of
// the MCP23XXX family of GPIO expanders, in 8 (MCP23008) and 16 (MCP23017) bit
// variants.
//
// Every register access is exactly one bus transaction. Nothing is cached or
// batched, and bus errors are returned unchanged, so the caller decides what a
// failed write means for the device on the other side of the expander.
//
// An Output wraps one 8 bit port as a plain output latch. This is what
// character LCD backpacks, such as the Adafruit I2C/SPI backpack, need.
//
// # Datasheet
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/20001952C.pdf
package mcp23xxx
