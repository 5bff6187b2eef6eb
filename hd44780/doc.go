// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls the Hitachi LCD display chipset HD-44780 when it
// sits behind an 8 bit I²C GPIO expander on a backpack board.
//
// The display is driven in 4 bit mode. Every byte is sent as two nibbles, and
// every nibble is two writes of the expander output latch: one with the enable
// line high and one with it low. The R/W line is always low, so nothing is
// ever read back from the display and the Dev keeps track of the display flags
// itself.
//
// Two backpacks are supported out of the box: the Adafruit I2C/SPI backpack
// (MCP23008) and the common PCF8574 "LCD1602/LCD2004" backpacks. Any other
// wiring can be described with a PinMap and any output latch implementing
// Port.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780
