// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

// Instructions.
const (
	cmdClear          byte = 0x01
	cmdHome           byte = 0x02
	cmdEntryMode      byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdShift          byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetCGRAMAddr   byte = 0x40
	cmdSetDDRAMAddr   byte = 0x80
)

// Entry mode flags.
const (
	entryIncrement byte = 0x02
	entryShift     byte = 0x01
)

// Display control flags.
const (
	displayOn byte = 0x04
	cursorOn  byte = 0x02
	blinkOn   byte = 0x01
)

// Cursor or display shift flags.
const (
	shiftDisplay byte = 0x08
	shiftRight   byte = 0x04
)

// Function set flags.
const (
	function8Bit  byte = 0x10
	function2Line byte = 0x08
	function5x10  byte = 0x04
)

// Font selects the character height.
type Font byte

const (
	// Font5x8 is the normal 5x8 dot font.
	Font5x8 Font = 0
	// Font5x10 is the 5x10 dot font. Only single line displays can use it.
	Font5x10 Font = Font(function5x10)
)
