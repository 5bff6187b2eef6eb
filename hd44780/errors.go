// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/display"
)

const packageName = "hd44780"

var (
	// ErrBusy is returned when a SharedBus is in use by someone else.
	ErrBusy = errors.New("hd44780: shared bus busy")
	// ErrInvalidSlot is returned by CreateChar for a slot above 7.
	ErrInvalidSlot = errors.New("hd44780: CGRAM slot must be 0..7")
	// ErrInvalidPinMap is returned when two signals share a bit.
	ErrInvalidPinMap = errors.New("hd44780: invalid pin map")
	// ErrNotImplemented is returned for cursor moves the HD44780 can't do. It
	// wraps display.ErrNotImplemented.
	ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
)

// TransportError is a failed write of the expander latch. The display state
// is unknown after it; calling Init resynchronizes it.
type TransportError struct {
	Port string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: write %s: %v", packageName, e.Port, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RangeError is a cursor position outside the panel.
type RangeError struct {
	Col, Row   int
	Cols, Rows int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: position (%d,%d) outside of %dx%d display", packageName, e.Col, e.Row, e.Cols, e.Rows)
}
