// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lcdbackpack writes text to an HD44780 display behind an I²C backpack.
//
// With -sim or -png, a simulated backpack is used instead of a real bus and
// its content is drawn on the terminal or saved as a PNG image.
//
//	lcdbackpack -type 20x4 -text 'Hello\nWorld' -blink
//	lcdbackpack -backpack pcf8574 -addr 0x27 -text 'up 3d'
//	lcdbackpack -sim -png lcd.png -text 'preview'
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/lcdbackpack/hd44780"
	"github.com/GermanBionicSystems/lcdbackpack/hd44780/lcdsim"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func run(args []string, console *lcdsim.Console) error {
	fs := flag.NewFlagSet("lcdbackpack", flag.ContinueOnError)
	busName := fs.String("bus", "", "I²C bus to use")
	addr := fs.Uint("addr", 0, "expander address; 0 for the backpack default")
	backpack := fs.String("backpack", "adafruit", "backpack board: adafruit (MCP23008) or pcf8574")
	lcdType := fs.String("type", "16x2", "display size as COLSxROWS")
	var hz physic.Frequency
	fs.Var(&hz, "hz", "I²C bus speed")
	text := fs.String("text", "Hello", `text to show, rows separated by "\n"`)
	backlight := fs.Bool("backlight", true, "turn the backlight on")
	cursor := fs.Bool("cursor", false, "show the underline cursor")
	blink := fs.Bool("blink", false, "blink the cursor position")
	sim := fs.Bool("sim", false, "use a simulated backpack drawn on the terminal")
	pngPath := fs.String("png", "", "save an image of a simulated backpack to this file")
	verbose := fs.Bool("v", false, "verbose mode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	dt, err := hd44780.ParseDisplayType(*lcdType)
	if err != nil {
		return err
	}
	if *addr > 0x7f {
		return fmt.Errorf("invalid address 0x%x", *addr)
	}
	opts := hd44780.Opts{
		Type:         dt,
		Address:      uint16(*addr),
		BacklightOff: !*backlight,
		Logger:       log,
	}

	var bus i2c.Bus
	var simBus *lcdsim.Bus
	if *sim || *pngPath != "" {
		chip := lcdsim.MCP23008
		if *backpack == "pcf8574" {
			chip = lcdsim.PCF8574
		}
		if simBus, err = lcdsim.New(&lcdsim.Opts{Chip: chip, Addr: uint16(*addr), Type: dt}); err != nil {
			return err
		}
		// The simulation has no timing constraints.
		opts.Delay = hd44780.DelayFunc(func(time.Duration) {})
		bus = simBus
	} else {
		if _, err = host.Init(); err != nil {
			return err
		}
		b, err := i2creg.Open(*busName)
		if err != nil {
			return err
		}
		defer b.Close()
		if hz != 0 {
			if err = b.SetSpeed(hz); err != nil {
				return err
			}
		}
		bus = b
	}
	log.WithFields(logrus.Fields{"bus": bus, "backpack": *backpack, "type": dt}).Debug("opening display")

	var dev *hd44780.Dev
	switch *backpack {
	case "adafruit":
		dev, err = hd44780.NewAdafruitI2CBackpack(bus, &opts)
	case "pcf8574":
		dev, err = hd44780.NewPCF857xBackpack(bus, &opts)
	default:
		return fmt.Errorf("unknown backpack %q", *backpack)
	}
	if err != nil {
		return err
	}

	seq := dev.Seq()
	lines := strings.Split(strings.ReplaceAll(*text, `\n`, "\n"), "\n")
	for row, line := range lines {
		if row >= dev.Rows() {
			log.Warnf("dropping %d lines that don't fit", len(lines)-row)
			break
		}
		if len(line) > dev.Cols() {
			line = line[:dev.Cols()]
		}
		seq.SetCursor(0, row).Print(line)
	}
	if *cursor {
		seq.CursorOn()
	}
	if *blink {
		seq.BlinkOn()
	}
	if err = seq.Err(); err != nil {
		return err
	}

	if simBus == nil {
		return nil
	}
	if *sim {
		if err = console.Draw(simBus); err != nil {
			return err
		}
		if err = console.Halt(); err != nil {
			return err
		}
	}
	if *pngPath != "" {
		return simBus.SavePNG(*pngPath, 4)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], lcdsim.NewConsole(nil)); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "lcdbackpack: %s.\n", err)
		}
		os.Exit(1)
	}
}
