// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"slices"
	"strings"
)

// DisplayType selects the panel size.
type DisplayType int

// Supported panel sizes, columns x rows.
const (
	LCD16x2 DisplayType = iota
	LCD16x4
	LCD20x2
	LCD20x4
	LCD40x2
	LCD8x2
	LCD16x1
)

// Geometry is the size of a panel and where each row starts in DDRAM.
type Geometry struct {
	Rows      int
	Cols      int
	RowStarts []byte
}

var geometries = map[DisplayType]Geometry{
	LCD16x2: {Rows: 2, Cols: 16, RowStarts: []byte{0x00, 0x40}},
	LCD16x4: {Rows: 4, Cols: 16, RowStarts: []byte{0x00, 0x40, 0x10, 0x50}},
	LCD20x2: {Rows: 2, Cols: 20, RowStarts: []byte{0x00, 0x40}},
	LCD20x4: {Rows: 4, Cols: 20, RowStarts: []byte{0x00, 0x40, 0x14, 0x54}},
	LCD40x2: {Rows: 2, Cols: 40, RowStarts: []byte{0x00, 0x40}},
	LCD8x2:  {Rows: 2, Cols: 8, RowStarts: []byte{0x00, 0x40}},
	LCD16x1: {Rows: 1, Cols: 16, RowStarts: []byte{0x00}},
}

// Geometry returns the panel size of t. The result is a copy, changing it
// has no effect on other displays.
func (t DisplayType) Geometry() (Geometry, error) {
	g, ok := geometries[t]
	if !ok {
		return Geometry{}, fmt.Errorf("hd44780: unknown display type %d", int(t))
	}
	return g.clone(), nil
}

func (g Geometry) clone() Geometry {
	g.RowStarts = slices.Clone(g.RowStarts)
	return g
}

func (t DisplayType) String() string {
	g, ok := geometries[t]
	if !ok {
		return fmt.Sprintf("DisplayType(%d)", int(t))
	}
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

// ParseDisplayType parses the "COLSxROWS" form returned by String.
func ParseDisplayType(s string) (DisplayType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t := range geometries {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("hd44780: unknown display type %q", s)
}

// Address returns the DDRAM address of the 0 based position col, row.
func (g *Geometry) Address(col, row int) (byte, error) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return 0, &RangeError{Col: col, Row: row, Cols: g.Cols, Rows: g.Rows}
	}
	return g.RowStarts[row] + byte(col), nil
}
