// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdbackpack is a container for the HD44780 character LCD driver and
// the I²C expanders found on LCD backpacks.
//
// The driver itself is in package hd44780. Packages mcp23xxx and pcf857x
// drive the expanders, hd44780/lcdsim simulates a backpack for tests and
// previews, and tinygoi2c runs the driver on TinyGo boards.
package lcdbackpack
