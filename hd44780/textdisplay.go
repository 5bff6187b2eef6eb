// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3/display"
)

// AutoScroll turns shifting the display on writes on or off.
func (lcd *Dev) AutoScroll(enabled bool) error {
	if enabled {
		return lcd.AutoscrollOn()
	}
	return lcd.AutoscrollOff()
}

// Return the number of columns the display supports
func (lcd *Dev) Cols() int {
	return lcd.geometry.Cols
}

// Return the number of rows the display supports.
func (lcd *Dev) Rows() int {
	return lcd.geometry.Rows
}

// Return the min column position.
func (lcd *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (lcd *Dev) MinRow() int {
	return 1
}

// Set the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
//
// The HD44780 block cursor is the blinking character cell, so CursorBlink and
// CursorBlock are the same.
func (lcd *Dev) Cursor(modes ...display.CursorMode) error {
	control := lcd.control
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			control &^= cursorOn | blinkOn
		case display.CursorBlink, display.CursorBlock:
			control |= blinkOn
		case display.CursorUnderline:
			control |= cursorOn
		default:
			return fmt.Errorf("%s: unexpected cursor: %d", packageName, mode)
		}
	}
	return lcd.setControl(control)
}

// Move the cursor forward or backward.
func (lcd *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Forward:
		return lcd.MoveCursorRight()
	case display.Backward:
		return lcd.MoveCursorLeft()
	default:
		return ErrNotImplemented
	}
}

// Move the cursor to arbitrary position, 1 based.
func (lcd *Dev) MoveTo(row, col int) error {
	return lcd.SetCursor(col-lcd.MinCol(), row-lcd.MinRow())
}

// Turn the display on / off
func (lcd *Dev) Display(on bool) error {
	if on {
		return lcd.DisplayOn()
	}
	return lcd.DisplayOff()
}
