// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termgauge draws acceleration samples as three bar gauges on a
// terminal line using ANSI color codes.
//
// Each gauge is centered on zero and grows left for negative values and right
// for positive values. The line is redrawn in place on every call to Draw.
package termgauge

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/GermanBionicSystems/accel/lis3dh"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for the gauge.
type Opts struct {
	// Width is the number of cells of each axis gauge. Default is 20.
	Width int
	// Palette maps colors to ANSI codes. Default is ansi256.Default.
	Palette *ansi256.Palette
	// W is where the gauge is drawn. Default is stdout; colors are then only
	// used when stdout is a terminal.
	W io.Writer
	// Plain draws with '#' and '.' instead of colors.
	Plain bool

	_ struct{}
}

var (
	axisColors = [3]color.NRGBA{
		{R: 0xE0, G: 0x30, B: 0x30, A: 255},
		{R: 0x30, G: 0xC0, B: 0x30, A: 255},
		{R: 0x30, G: 0x60, B: 0xE0, A: 255},
	}
	background = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 255}
	axisNames  = [3]string{"X", "Y", "Z"}
)

// Dev is a three axis gauge drawn on a terminal line.
type Dev struct {
	w       io.Writer
	width   int
	palette ansi256.Palette
	plain   bool

	buf bytes.Buffer
}

// New returns a Dev drawing with opts. nil opts draws on stdout with the
// defaults.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		width:   opts.Width,
		palette: *p,
		plain:   opts.Plain,
	}
	if d.width <= 0 {
		d.width = 20
	}
	if d.w == nil {
		fd := os.Stdout.Fd()
		d.w = colorable.NewColorableStdout()
		d.plain = d.plain || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermGauge{Width:%d}", d.width)
}

// Halt implements conn.Resource.
//
// It moves to the next line and resets the colors so the terminal is left
// usable.
func (d *Dev) Halt() error {
	s := "\n"
	if !d.plain {
		s = "\n\033[0m"
	}
	_, err := io.WriteString(d.w, s)
	return err
}

// Draw redraws the gauges for a. fullScale is the magnitude, in m/s², at
// which a gauge is full.
func (d *Dev) Draw(a lis3dh.Acceleration, fullScale float64) error {
	// Reuse the buffer to avoid allocating on every sample.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r")
	if !d.plain {
		_, _ = d.buf.WriteString("\033[0m")
	}
	for i, v := range [3]float64{a.X, a.Y, a.Z} {
		if i != 0 {
			_ = d.buf.WriteByte(' ')
		}
		_, _ = d.buf.WriteString(axisNames[i])
		_ = d.buf.WriteByte('[')
		d.bar(i, cells(v, fullScale, d.width))
		if !d.plain {
			_, _ = d.buf.WriteString("\033[0m")
		}
		_ = d.buf.WriteByte(']')
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Dev) bar(axis, n int) {
	half := d.width / 2
	for i := 0; i < d.width; i++ {
		off := i - half
		on := (n > 0 && off >= 0 && off < n) || (n < 0 && off < 0 && off >= n)
		switch {
		case d.plain && on:
			_ = d.buf.WriteByte('#')
		case d.plain:
			_ = d.buf.WriteByte('.')
		case on:
			_, _ = d.buf.WriteString(d.palette.Block(axisColors[axis]))
		default:
			_, _ = d.buf.WriteString(d.palette.Block(background))
		}
	}
}

// cells is the signed number of cells lit for v, clamped to half the width.
func cells(v, fullScale float64, width int) int {
	half := width / 2
	if fullScale <= 0 || math.IsNaN(v) {
		return 0
	}
	n := int(math.Round(v / fullScale * float64(half)))
	if n > half {
		return half
	}
	if n < -half {
		return -half
	}
	return n
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
