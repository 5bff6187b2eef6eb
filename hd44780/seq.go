// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "fmt"

// Seq chains operations on a Dev. The first error stops the chain: later
// calls do nothing, and Err returns it.
//
//	err := lcd.Seq().Clear().SetCursor(0, 1).Print("Hi").Err()
type Seq struct {
	d   *Dev
	err error
}

// Seq starts a chain of operations.
func (d *Dev) Seq() *Seq {
	return &Seq{d: d}
}

func (s *Seq) run(f func() error) *Seq {
	if s.err == nil {
		s.err = f()
	}
	return s
}

// Err returns the first error of the chain.
func (s *Seq) Err() error {
	return s.err
}

// Init runs Dev.Init.
func (s *Seq) Init() *Seq {
	return s.run(s.d.Init)
}

// Clear runs Dev.Clear.
func (s *Seq) Clear() *Seq {
	return s.run(s.d.Clear)
}

// Home runs Dev.Home.
func (s *Seq) Home() *Seq {
	return s.run(s.d.Home)
}

// DisplayOn runs Dev.DisplayOn.
func (s *Seq) DisplayOn() *Seq {
	return s.run(s.d.DisplayOn)
}

// DisplayOff runs Dev.DisplayOff.
func (s *Seq) DisplayOff() *Seq {
	return s.run(s.d.DisplayOff)
}

// CursorOn runs Dev.CursorOn.
func (s *Seq) CursorOn() *Seq {
	return s.run(s.d.CursorOn)
}

// CursorOff runs Dev.CursorOff.
func (s *Seq) CursorOff() *Seq {
	return s.run(s.d.CursorOff)
}

// BlinkOn runs Dev.BlinkOn.
func (s *Seq) BlinkOn() *Seq {
	return s.run(s.d.BlinkOn)
}

// BlinkOff runs Dev.BlinkOff.
func (s *Seq) BlinkOff() *Seq {
	return s.run(s.d.BlinkOff)
}

// AutoscrollOn runs Dev.AutoscrollOn.
func (s *Seq) AutoscrollOn() *Seq {
	return s.run(s.d.AutoscrollOn)
}

// AutoscrollOff runs Dev.AutoscrollOff.
func (s *Seq) AutoscrollOff() *Seq {
	return s.run(s.d.AutoscrollOff)
}

// LeftToRight runs Dev.LeftToRight.
func (s *Seq) LeftToRight() *Seq {
	return s.run(s.d.LeftToRight)
}

// RightToLeft runs Dev.RightToLeft.
func (s *Seq) RightToLeft() *Seq {
	return s.run(s.d.RightToLeft)
}

// ScrollDisplayLeft runs Dev.ScrollDisplayLeft.
func (s *Seq) ScrollDisplayLeft() *Seq {
	return s.run(s.d.ScrollDisplayLeft)
}

// ScrollDisplayRight runs Dev.ScrollDisplayRight.
func (s *Seq) ScrollDisplayRight() *Seq {
	return s.run(s.d.ScrollDisplayRight)
}

// MoveCursorLeft runs Dev.MoveCursorLeft.
func (s *Seq) MoveCursorLeft() *Seq {
	return s.run(s.d.MoveCursorLeft)
}

// MoveCursorRight runs Dev.MoveCursorRight.
func (s *Seq) MoveCursorRight() *Seq {
	return s.run(s.d.MoveCursorRight)
}

// SetCursor runs Dev.SetCursor.
func (s *Seq) SetCursor(col, row int) *Seq {
	return s.run(func() error { return s.d.SetCursor(col, row) })
}

// CreateChar runs Dev.CreateChar.
func (s *Seq) CreateChar(slot int, glyph [8]byte) *Seq {
	return s.run(func() error { return s.d.CreateChar(slot, glyph) })
}

// SetBacklight runs Dev.SetBacklight.
func (s *Seq) SetBacklight(on bool) *Seq {
	return s.run(func() error { return s.d.SetBacklight(on) })
}

// Command runs Dev.Command.
func (s *Seq) Command(cmd byte) *Seq {
	return s.run(func() error { return s.d.Command(cmd) })
}

// Print writes text at the cursor.
func (s *Seq) Print(text string) *Seq {
	return s.run(func() error {
		_, err := s.d.WriteString(text)
		return err
	})
}

// Printf formats according to format and writes the result at the cursor.
func (s *Seq) Printf(format string, args ...any) *Seq {
	return s.run(func() error {
		_, err := fmt.Fprintf(s.d, format, args...)
		return err
	})
}
