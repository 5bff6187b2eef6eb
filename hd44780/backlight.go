// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"periph.io/x/conn/v3/display"
)

// Backlight turns the backlight on for any non-zero intensity and off
// otherwise. The backpacks switch the backlight with a transistor, there is no
// dimming.
func (d *Dev) Backlight(intensity display.Intensity) error {
	return d.SetBacklight(intensity > 0)
}

// BacklightOn reports the backlight state last written.
func (d *Dev) BacklightOn() bool {
	return d.enc.backlight
}
