// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/GermanBionicSystems/lcdbackpack/hd44780"
	"github.com/GermanBionicSystems/lcdbackpack/hd44780/lcdsim"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	periphDisplay "periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

type sleepLog []time.Duration

func (s *sleepLog) Sleep(d time.Duration) { *s = append(*s, d) }

var errNack = errors.New("nack")

// flakyBus fails every transaction while fail is set.
type flakyBus struct {
	i2c.Bus
	fail bool
}

func (f *flakyBus) Tx(addr uint16, w, r []byte) error {
	if f.fail {
		return errNack
	}
	return f.Bus.Tx(addr, w, r)
}

func getLCD(t *testing.T, dt hd44780.DisplayType) (*hd44780.Dev, *lcdsim.Bus, *sleepLog) {
	t.Helper()
	sim, err := lcdsim.New(&lcdsim.Opts{Type: dt})
	if err != nil {
		t.Fatal(err)
	}
	sleeps := &sleepLog{}
	dev, err := hd44780.NewAdafruitI2CBackpack(sim, &hd44780.Opts{Type: dt, Delay: sleeps})
	if err != nil {
		t.Fatal(err)
	}
	return dev, sim, sleeps
}

func cmd(v byte) lcdsim.Transfer {
	return lcdsim.Transfer{Value: v}
}

func data(v byte) lcdsim.Transfer {
	return lcdsim.Transfer{Data: true, Value: v}
}

// last returns the transfers received since the previous call.
func last(sim *lcdsim.Bus) []lcdsim.Transfer {
	t := sim.Transfers()
	sim.ResetLog()
	return t
}

var initTransfers = []lcdsim.Transfer{
	{Value: 0x30, Nibble: true},
	{Value: 0x30, Nibble: true},
	{Value: 0x30, Nibble: true},
	{Value: 0x20, Nibble: true},
	cmd(0x28),
	cmd(0x08),
	cmd(0x01),
	cmd(0x06),
	cmd(0x0c),
}

func TestRoundTrip(t *testing.T) {
	lcd, sim, sleeps := getLCD(t, hd44780.LCD16x2)
	if (*sleeps)[0] != 50*time.Millisecond {
		t.Errorf("first wait %s, want the 50ms power-on wait", (*sleeps)[0])
	}
	if err := lcd.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := (*sleeps)[len(*sleeps)-1]; got != 2*time.Millisecond {
		t.Errorf("clear waited %s, want 2ms", got)
	}
	if err := lcd.SetCursor(0, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := lcd.WriteString("Hi"); err != nil {
		t.Fatal(err)
	}
	want := append(append([]lcdsim.Transfer{}, initTransfers...), cmd(0x01), cmd(0xc0), data('H'), data('i'))
	if diff := cmp.Diff(sim.Transfers(), want); diff != "" {
		t.Errorf("transfers (-got +want):\n%s", diff)
	}
	wantLines := []string{strings.Repeat(" ", 16), "Hi" + strings.Repeat(" ", 14)}
	if diff := cmp.Diff(sim.Lines(), wantLines); diff != "" {
		t.Errorf("lines (-got +want):\n%s", diff)
	}
	if n := sim.ReadWrites(); n != 0 {
		t.Errorf("%d latch writes with R/W high", n)
	}
}

func TestInitIdempotent(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD20x4)
	for range 3 {
		// Leave the display in a different state each time.
		if err := lcd.Seq().BlinkOn().CursorOn().RightToLeft().AutoscrollOn().Print("xyz").Err(); err != nil {
			t.Fatal(err)
		}
		if err := lcd.Init(); err != nil {
			t.Fatal(err)
		}
		want := lcdsim.State{FourBit: true, TwoLine: true, Display: true, Increment: true}
		if diff := cmp.Diff(sim.State(), want); diff != "" {
			t.Errorf("state after Init (-got +want):\n%s", diff)
		}
		for _, line := range sim.Lines() {
			if strings.TrimSpace(line) != "" {
				t.Errorf("display not cleared: %q", line)
			}
		}
	}
}

func TestSetCursor(t *testing.T) {
	for _, dt := range []hd44780.DisplayType{hd44780.LCD16x2, hd44780.LCD16x4, hd44780.LCD20x2, hd44780.LCD20x4, hd44780.LCD40x2, hd44780.LCD8x2, hd44780.LCD16x1} {
		t.Run(dt.String(), func(t *testing.T) {
			lcd, sim, _ := getLCD(t, dt)
			g := lcd.Geometry()
			for row := range g.Rows {
				for col := range g.Cols {
					last(sim)
					if err := lcd.SetCursor(col, row); err != nil {
						t.Fatal(err)
					}
					want := []lcdsim.Transfer{cmd(0x80 | (g.RowStarts[row] + byte(col)))}
					if diff := cmp.Diff(last(sim), want); diff != "" {
						t.Fatalf("SetCursor(%d,%d) (-got +want):\n%s", col, row, diff)
					}
				}
			}
			// Every cell ends up where the geometry says.
			for row := range g.Rows {
				if err := lcd.SetCursor(g.Cols-1, row); err != nil {
					t.Fatal(err)
				}
				if err := lcd.WriteByte(byte('A' + row)); err != nil {
					t.Fatal(err)
				}
				if c := sim.Cell(g.Cols-1, row); c != byte('A'+row) {
					t.Errorf("cell (%d,%d) = %q", g.Cols-1, row, c)
				}
			}
		})
	}
}

func TestGeometryIsCopied(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	lcd.Geometry().RowStarts[1] = 0
	g, err := hd44780.LCD16x2.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	g.RowStarts[1] = 0

	other, otherSim, _ := getLCD(t, hd44780.LCD16x2)
	for _, tc := range []struct {
		lcd *hd44780.Dev
		sim *lcdsim.Bus
	}{{lcd, sim}, {other, otherSim}} {
		last(tc.sim)
		if err = tc.lcd.SetCursor(2, 1); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(last(tc.sim), []lcdsim.Transfer{cmd(0xc2)}); diff != "" {
			t.Errorf("SetCursor(2,1) (-got +want):\n%s", diff)
		}
	}
	if got := lcd.Geometry().RowStarts; got[1] != 0x40 {
		t.Errorf("row starts %x", got)
	}
}

func TestSetCursorOutOfRange(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	last(sim)
	var re *hd44780.RangeError
	if err := lcd.SetCursor(16, 0); !errors.As(err, &re) {
		t.Errorf("SetCursor(16,0) = %v", err)
	}
	if err := lcd.SetCursor(0, 2); !errors.As(err, &re) || re.Rows != 2 {
		t.Errorf("SetCursor(0,2) = %v", err)
	}
	if len(sim.Latches()) != 0 {
		t.Error("refused position reached the bus")
	}
}

func TestFlagsPreserved(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	for _, tc := range []struct {
		name string
		op   func() error
		want byte
	}{
		{"blink on", lcd.BlinkOn, 0x0d},
		{"cursor on", lcd.CursorOn, 0x0f},
		{"display off", lcd.DisplayOff, 0x0b},
		{"display on", lcd.DisplayOn, 0x0f},
		{"cursor off", lcd.CursorOff, 0x0d},
		{"blink off", lcd.BlinkOff, 0x0c},
		{"autoscroll on", lcd.AutoscrollOn, 0x07},
		{"right to left", lcd.RightToLeft, 0x05},
		{"autoscroll off", lcd.AutoscrollOff, 0x04},
		{"left to right", lcd.LeftToRight, 0x06},
		{"scroll left", lcd.ScrollDisplayLeft, 0x18},
		{"scroll right", lcd.ScrollDisplayRight, 0x1c},
		{"cursor left", lcd.MoveCursorLeft, 0x10},
		{"cursor right", lcd.MoveCursorRight, 0x14},
		{"home", lcd.Home, 0x02},
	} {
		last(sim)
		if err := tc.op(); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if diff := cmp.Diff(last(sim), []lcdsim.Transfer{cmd(tc.want)}); diff != "" {
			t.Errorf("%s (-got +want):\n%s", tc.name, diff)
		}
	}
}

func TestFailedWriteKeepsFlags(t *testing.T) {
	sim, err := lcdsim.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	bus := &flakyBus{Bus: sim}
	lcd, err := hd44780.NewAdafruitI2CBackpack(bus, &hd44780.Opts{Delay: &sleepLog{}})
	if err != nil {
		t.Fatal(err)
	}
	bus.fail = true
	err = lcd.BlinkOn()
	var te *hd44780.TransportError
	if !errors.As(err, &te) || !errors.Is(err, errNack) {
		t.Fatalf("BlinkOn() = %v, want a TransportError wrapping the bus error", err)
	}
	if err = lcd.SetBacklight(false); !errors.Is(err, errNack) {
		t.Fatalf("SetBacklight() = %v", err)
	}
	bus.fail = false

	// A failed write can leave the display half way through a byte; Init
	// brings it back.
	if err = lcd.Init(); err != nil {
		t.Fatal(err)
	}
	last(sim)
	if err = lcd.CursorOn(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(last(sim), []lcdsim.Transfer{cmd(0x0e)}); diff != "" {
		t.Errorf("blink bit set by a failed write (-got +want):\n%s", diff)
	}
	if !lcd.BacklightOn() || !sim.Backlight() {
		t.Error("backlight turned off by a failed write")
	}
}

func TestCreateChar(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	glyph := [8]byte{0x00, 0x0a, 0x1f, 0x1f, 0x0e, 0x04, 0x00, 0x00}
	if err := lcd.SetCursor(5, 0); err != nil {
		t.Fatal(err)
	}
	last(sim)
	if err := lcd.CreateChar(3, glyph); err != nil {
		t.Fatal(err)
	}
	want := []lcdsim.Transfer{cmd(0x58)}
	for _, row := range glyph {
		want = append(want, data(row))
	}
	want = append(want, cmd(0x85))
	if diff := cmp.Diff(last(sim), want); diff != "" {
		t.Errorf("CreateChar (-got +want):\n%s", diff)
	}
	if sim.Glyph(3) != glyph {
		t.Errorf("CGRAM slot 3 = %x", sim.Glyph(3))
	}
	if err := lcd.SetCursor(2, 1); err != nil {
		t.Fatal(err)
	}
	if err := lcd.WriteByte(3); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(last(sim), []lcdsim.Transfer{cmd(0xc2), data(3)}); diff != "" {
		t.Errorf("(-got +want):\n%s", diff)
	}
	if c := sim.Cell(2, 1); c != 3 {
		t.Errorf("cell (2,1) = %d", c)
	}
	if err := lcd.CreateChar(8, glyph); !errors.Is(err, hd44780.ErrInvalidSlot) {
		t.Errorf("CreateChar(8) = %v", err)
	}
}

func TestCreateCharTracksCursor(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	err := lcd.Seq().SetCursor(5, 0).RightToLeft().Print("ab").MoveCursorRight().CreateChar(0, [8]byte{0x1f}).Err()
	if err != nil {
		t.Fatal(err)
	}
	st := sim.State()
	if st.CGRAM || st.Address != 4 {
		t.Errorf("cursor at 0x%02x (CGRAM %t), want DDRAM 0x04", st.Address, st.CGRAM)
	}
	// The cursor wraps from the end of the first line to the second.
	err = lcd.Seq().LeftToRight().SetCursor(15, 0).Home().Print(strings.Repeat("-", 40)).CreateChar(1, [8]byte{}).Err()
	if err != nil {
		t.Fatal(err)
	}
	if st = sim.State(); st.Address != 0x40 {
		t.Errorf("cursor at 0x%02x, want 0x40", st.Address)
	}
}

func TestCommandAndData(t *testing.T) {
	lcd, sim, sleeps := getLCD(t, hd44780.LCD16x2)
	glyph := [8]byte{0x1f, 0x11, 0x11, 0x11, 0x11, 0x11, 0x1f, 0x00}
	if err := lcd.Command(0x40 | 1<<3); err != nil {
		t.Fatal(err)
	}
	for _, row := range glyph {
		if err := lcd.Data(row); err != nil {
			t.Fatal(err)
		}
	}
	if sim.Glyph(1) != glyph {
		t.Errorf("CGRAM slot 1 = %x", sim.Glyph(1))
	}
	if err := lcd.Seq().Command(0x80 | 0x45).Print("Z").Err(); err != nil {
		t.Fatal(err)
	}
	if c := sim.Cell(5, 1); c != 'Z' {
		t.Errorf("cell (5,1) = %q", c)
	}
	// The tracked cursor followed the raw instruction and the write.
	last(sim)
	if err := lcd.CreateChar(2, glyph); err != nil {
		t.Fatal(err)
	}
	if got := last(sim); got[len(got)-1] != cmd(0xc6) {
		t.Errorf("cursor restored with %#v, want 0xc6", got[len(got)-1])
	}
	if err := lcd.Command(0x01); err != nil {
		t.Fatal(err)
	}
	if got := (*sleeps)[len(*sleeps)-1]; got != 2*time.Millisecond {
		t.Errorf("clear waited %s, want 2ms", got)
	}
	last(sim)
	if err := lcd.CreateChar(3, glyph); err != nil {
		t.Fatal(err)
	}
	if got := last(sim); got[len(got)-1] != cmd(0x80) {
		t.Errorf("cursor restored with %#v, want 0x80", got[len(got)-1])
	}
}

func TestBacklight(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	if !sim.Backlight() {
		t.Fatal("backlight should be on after Init")
	}
	last(sim)
	if err := lcd.SetBacklight(false); err != nil {
		t.Fatal(err)
	}
	if n := len(sim.Latches()); n != 1 {
		t.Errorf("SetBacklight wrote %d times, want 1", n)
	}
	if err := lcd.Seq().Clear().SetCursor(3, 1).Print("dark").CreateChar(2, [8]byte{1}).Err(); err != nil {
		t.Fatal(err)
	}
	for ix, v := range sim.Latches() {
		if v&0x80 != 0 {
			t.Fatalf("latch write %d = 0x%02x has the backlight bit set", ix, v)
		}
	}
	if sim.Backlight() {
		t.Error("backlight on")
	}
	if err := lcd.Backlight(0xff); err != nil {
		t.Fatal(err)
	}
	if !sim.Backlight() || !lcd.BacklightOn() {
		t.Error("backlight off")
	}
}

func TestBacklightOffOption(t *testing.T) {
	sim, _ := lcdsim.New(nil)
	if _, err := hd44780.NewAdafruitI2CBackpack(sim, &hd44780.Opts{BacklightOff: true, Delay: &sleepLog{}}); err != nil {
		t.Fatal(err)
	}
	for ix, v := range sim.Latches() {
		if v&0x80 != 0 {
			t.Fatalf("latch write %d = 0x%02x has the backlight bit set", ix, v)
		}
	}
}

func TestTransactionFraming(t *testing.T) {
	bus := &i2ctest.Record{}
	lcd, err := hd44780.NewAdafruitI2CBackpack(bus, &hd44780.Opts{Delay: &sleepLog{}})
	if err != nil {
		t.Fatal(err)
	}
	if got := bus.Ops[0]; string(got.W) != "\x00\x00" {
		t.Errorf("first write %x, want IODIR all outputs", got.W)
	}
	bus.Ops = nil
	if err = lcd.Seq().Clear().SetCursor(1, 1).Print("ok").Err(); err != nil {
		t.Fatal(err)
	}
	if len(bus.Ops) != 4*4 {
		t.Fatalf("got %d writes, want 16", len(bus.Ops))
	}
	for ix, op := range bus.Ops {
		if op.Addr != 0x20 || len(op.W) != 2 || op.W[0] != 0x09 {
			t.Fatalf("write %d = %#v, want a GPIO register write", ix, op)
		}
		if high := op.W[1]&0x04 != 0; high != (ix%2 == 0) {
			t.Errorf("write %d = 0x%02x: enable should be %t", ix, op.W[1], ix%2 == 0)
		}
	}
}

func TestSeqShortCircuits(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	last(sim)
	err := lcd.Seq().SetCursor(20, 0).Print("lost").Clear().Err()
	var re *hd44780.RangeError
	if !errors.As(err, &re) {
		t.Fatalf("Err() = %v", err)
	}
	if n := len(sim.Latches()); n != 0 {
		t.Errorf("%d writes after the failed step", n)
	}
	if err = lcd.Seq().Home().Printf("%d%%", 42).Err(); err != nil {
		t.Fatal(err)
	}
	if got := sim.Lines()[0][:3]; got != "42%" {
		t.Errorf("line 0 = %q", got)
	}
}

func TestFprintf(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD20x4)
	if err := lcd.SetCursor(0, 3); err != nil {
		t.Fatal(err)
	}
	n, err := fmt.Fprintf(lcd, "T=%.1fC", 21.5)
	if err != nil || n != 7 {
		t.Fatalf("Fprintf() = %d, %v", n, err)
	}
	if got := sim.Lines()[3]; !strings.HasPrefix(got, "T=21.5C ") {
		t.Errorf("line 3 = %q", got)
	}
}

func TestScrollDisplay(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	if err := lcd.Seq().Print("ABC").ScrollDisplayLeft().Err(); err != nil {
		t.Fatal(err)
	}
	if got := sim.Lines()[0][:2]; got != "BC" {
		t.Errorf("line 0 starts with %q after scrolling left", got)
	}
	if err := lcd.Seq().ScrollDisplayRight().ScrollDisplayRight().Err(); err != nil {
		t.Fatal(err)
	}
	if got := sim.Lines()[0][:4]; got != " ABC" {
		t.Errorf("line 0 starts with %q after scrolling right", got)
	}
	if st := sim.State(); st.Address != 3 {
		t.Errorf("scrolling moved the cursor to 0x%02x", st.Address)
	}
}

func TestAutoscroll(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	if err := lcd.Seq().SetCursor(15, 0).AutoscrollOn().Print("12").Err(); err != nil {
		t.Fatal(err)
	}
	if got := sim.Lines()[0][13:]; got != "12 " {
		t.Errorf("line 0 ends with %q", got)
	}
}

func TestTextDisplay(t *testing.T) {
	lcd, sim, _ := getLCD(t, hd44780.LCD16x2)
	if lcd.Rows() != 2 || lcd.Cols() != 16 || lcd.MinRow() != 1 || lcd.MinCol() != 1 {
		t.Errorf("geometry %d rows %d cols", lcd.Rows(), lcd.Cols())
	}
	if s := lcd.String(); !strings.Contains(s, "MCP23008_20") {
		t.Errorf("String() = %q", s)
	}
	last(sim)
	steps := []struct {
		name string
		op   func() error
		want byte
	}{
		{"MoveTo", func() error { return lcd.MoveTo(2, 3) }, 0xc2},
		{"Cursor underline", func() error { return lcd.Cursor(periphDisplay.CursorUnderline) }, 0x0e},
		{"Cursor block", func() error { return lcd.Cursor(periphDisplay.CursorBlock) }, 0x0f},
		{"Cursor off", func() error { return lcd.Cursor(periphDisplay.CursorOff) }, 0x0c},
		{"Move forward", func() error { return lcd.Move(periphDisplay.Forward) }, 0x14},
		{"Move backward", func() error { return lcd.Move(periphDisplay.Backward) }, 0x10},
		{"AutoScroll", func() error { return lcd.AutoScroll(true) }, 0x07},
		{"Display off", func() error { return lcd.Display(false) }, 0x08},
	}
	for _, step := range steps {
		if err := step.op(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if diff := cmp.Diff(last(sim), []lcdsim.Transfer{cmd(step.want)}); diff != "" {
			t.Errorf("%s (-got +want):\n%s", step.name, diff)
		}
	}
	if err := lcd.Move(periphDisplay.Up); !errors.Is(err, periphDisplay.ErrNotImplemented) {
		t.Errorf("Move(Up) = %v", err)
	}
	if err := lcd.MoveTo(0, 1); err == nil {
		t.Error("MoveTo(0,1) should be out of range")
	}
	if err := lcd.Halt(); err != nil {
		t.Fatal(err)
	}
	if sim.Backlight() || sim.State().Display {
		t.Error("Halt left the display lit")
	}
}

func TestOptionErrors(t *testing.T) {
	sim, _ := lcdsim.New(nil)
	if _, err := hd44780.NewAdafruitI2CBackpack(sim, &hd44780.Opts{Font: hd44780.Font5x10}); err == nil {
		t.Error("5x10 font accepted on a two line display")
	}
	if _, err := hd44780.NewAdafruitI2CBackpack(sim, &hd44780.Opts{Type: hd44780.DisplayType(42)}); err == nil {
		t.Error("unknown display type accepted")
	}
	bad := hd44780.AdafruitPins
	bad.Bits[hd44780.Enable] = bad.Bits[hd44780.RS]
	if _, err := hd44780.NewAdafruitI2CBackpack(sim, &hd44780.Opts{Pins: &bad}); !errors.Is(err, hd44780.ErrInvalidPinMap) {
		t.Errorf("got %v, want ErrInvalidPinMap", err)
	}
	if _, err := hd44780.NewAdafruitI2CBackpack(sim, &hd44780.Opts{Address: 0x30}); err == nil {
		t.Error("address outside of the MCP23008 range accepted")
	}
	if len(sim.Latches()) != 0 {
		t.Error("refused configuration reached the bus")
	}
}

func TestFont5x10(t *testing.T) {
	sim, _ := lcdsim.New(&lcdsim.Opts{Type: hd44780.LCD16x1})
	if _, err := hd44780.NewAdafruitI2CBackpack(sim, &hd44780.Opts{Type: hd44780.LCD16x1, Font: hd44780.Font5x10, Delay: &sleepLog{}}); err != nil {
		t.Fatal(err)
	}
	if st := sim.State(); !st.Font5x10 || st.TwoLine {
		t.Errorf("state %+v", st)
	}
}

func TestPCF857xBackpack(t *testing.T) {
	sim, err := lcdsim.New(&lcdsim.Opts{Chip: lcdsim.PCF8574, Addr: 0x27, Type: hd44780.LCD20x4})
	if err != nil {
		t.Fatal(err)
	}
	lcd, err := hd44780.NewPCF857xBackpack(sim, &hd44780.Opts{Type: hd44780.LCD20x4, Address: 0x27, Delay: &sleepLog{}})
	if err != nil {
		t.Fatal(err)
	}
	if err = lcd.Seq().SetCursor(0, 2).Print("third").SetCursor(16, 3).Print("four").Err(); err != nil {
		t.Fatal(err)
	}
	lines := sim.Lines()
	if !strings.HasPrefix(lines[2], "third") || !strings.HasSuffix(lines[3], "four") {
		t.Errorf("lines %q", lines)
	}
	if sim.ReadWrites() != 0 {
		t.Error("R/W driven high")
	}
}

func TestActiveLowBacklight(t *testing.T) {
	pins := hd44780.MJKDZPins
	sim, _ := lcdsim.New(&lcdsim.Opts{Chip: lcdsim.PCF8574, Pins: &pins})
	lcd, err := hd44780.NewPCF857xBackpack(sim, &hd44780.Opts{Pins: &pins, Delay: &sleepLog{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = lcd.WriteString("mjkdz"); err != nil {
		t.Fatal(err)
	}
	if !sim.Backlight() {
		t.Error("backlight off")
	}
	if got := sim.Lines()[0][:5]; got != "mjkdz" {
		t.Errorf("line 0 = %q", got)
	}
	if err = lcd.SetBacklight(false); err != nil {
		t.Fatal(err)
	}
	if sim.Backlight() {
		t.Error("backlight on")
	}
}

func TestSharedBus(t *testing.T) {
	sim, _ := lcdsim.New(nil)
	sleeps := &sleepLog{}
	shared := hd44780.NewSharedBus(sim, sleeps)
	lcd, err := hd44780.NewSharedAdafruitI2CBackpack(shared, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(*sleeps) == 0 {
		t.Error("the shared Delayer wasn't used")
	}
	err = shared.Do(func(bus i2c.Bus, _ hd44780.Delayer) error {
		if err := lcd.Clear(); !errors.Is(err, hd44780.ErrBusy) {
			t.Errorf("Clear() while the bus is held = %v", err)
		}
		if err := shared.Tx(0x20, []byte{0x09, 0x00}, nil); !errors.Is(err, hd44780.ErrBusy) {
			t.Errorf("Tx() while the bus is held = %v", err)
		}
		// Another driver using the bus directly: read back OLAT.
		var r [1]byte
		return bus.Tx(0x20, []byte{0x0a}, r[:])
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = lcd.WriteString("free"); err != nil {
		t.Fatal(err)
	}
	if got := sim.Lines()[0][:4]; got != "free" {
		t.Errorf("line 0 = %q", got)
	}
	if err = shared.Tx(0x21, []byte{0}, nil); err == nil || errors.Is(err, hd44780.ErrBusy) {
		t.Errorf("Tx() to an absent device = %v", err)
	}
	if s := shared.String(); !strings.HasPrefix(s, "Shared(lcdsim") {
		t.Errorf("String() = %q", s)
	}
}

func TestSharedPCF857xBackpack(t *testing.T) {
	sim, _ := lcdsim.New(&lcdsim.Opts{Chip: lcdsim.PCF8574, Addr: 0x3f})
	shared := hd44780.NewSharedBus(sim, &sleepLog{})
	lcd, err := hd44780.NewSharedPCF857xBackpack(shared, &hd44780.Opts{Address: 0x3f})
	if err != nil {
		t.Fatal(err)
	}
	if err = lcd.Seq().SetCursor(4, 1).Print("pcf").Err(); err != nil {
		t.Fatal(err)
	}
	if got := sim.Lines()[1][4:7]; got != "pcf" {
		t.Errorf("line 1 = %q", got)
	}
}

func TestLogger(t *testing.T) {
	sim, _ := lcdsim.New(nil)
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	if _, err := hd44780.NewAdafruitI2CBackpack(sim, &hd44780.Opts{Delay: &sleepLog{}, Logger: log}); err != nil {
		t.Fatal(err)
	}
	var states []string
	for _, e := range hook.AllEntries() {
		states = append(states, fmt.Sprint(e.Data["state"]))
	}
	want := []string{
		"ConfigureExpander", "PowerOnWait",
		"FunctionSet8bitRetry", "FunctionSet8bitRetry", "FunctionSet8bitRetry",
		"Set4BitMode", "FunctionSetFinal", "DisplayOff", "Clear", "EntryModeSet", "DisplayOn",
	}
	if diff := cmp.Diff(states, want); diff != "" {
		t.Errorf("logged states (-got +want):\n%s", diff)
	}
}
