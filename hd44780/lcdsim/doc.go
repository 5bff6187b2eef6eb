// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim simulates an HD44780 LCD backpack on an I²C bus.
//
// Bus implements i2c.Bus. It answers at one address as an MCP23008 or a
// PCF8574, follows the expander output latch, and feeds every falling edge of
// the enable line to a model of the HD44780 controller. The model decodes
// instructions and characters, starting in the 8 bit interface mode the
// controller powers up in, and keeps its DDRAM, CGRAM and flags.
//
// The simulated panel can be drawn on a terminal with Console, or rendered to
// an image with Render. It is meant for tests and for working on display
// layouts without the hardware.
package lcdsim
