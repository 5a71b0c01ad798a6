// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termgauge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/accel/lis3dh"
)

func TestDrawPlain(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{Width: 10, W: &buf, Plain: true})
	if err := d.Draw(lis3dh.Acceleration{X: 10, Y: -5, Z: 0}, 10); err != nil {
		t.Fatal(err)
	}
	want := "\rX[.....#####] Y[..###.....] Z[..........]"
	if got := buf.String(); got != want {
		t.Fatalf("Draw() wrote %q, want %q", got, want)
	}
	buf.Reset()
	// Values beyond full scale are clamped.
	if err := d.Draw(lis3dh.Acceleration{X: -100, Y: 100, Z: 1}, 10); err != nil {
		t.Fatal(err)
	}
	want = "\rX[#####.....] Y[.....#####] Z[.....#....]"
	if got := buf.String(); got != want {
		t.Fatalf("Draw() wrote %q, want %q", got, want)
	}
	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\n" {
		t.Fatalf("Halt() wrote %q", buf.String())
	}
}

func TestDrawColor(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{Width: 8, W: &buf})
	if err := d.Draw(lis3dh.Acceleration{X: 9.806}, 2*lis3dh.StandardGravity); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "\r\033[0mX[") {
		t.Fatalf("unexpected prefix %q", s)
	}
	if strings.ContainsAny(s, "#.") {
		t.Fatalf("colored output contains plain cells: %q", s)
	}
	if n := strings.Count(s, "\033["); n < 3*8 {
		t.Fatalf("expected at least one escape per cell, got %d in %q", n, s)
	}
	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\n\033[0m" {
		t.Fatalf("Halt() wrote %q", buf.String())
	}
}

func TestCells(t *testing.T) {
	data := []struct {
		v, full float64
		width   int
		want    int
	}{
		{0, 10, 20, 0},
		{5, 10, 20, 5},
		{-2.5, 10, 20, -3},
		{30, 10, 20, 10},
		{1, 0, 20, 0},
	}
	for _, line := range data {
		if got := cells(line.v, line.full, line.width); got != line.want {
			t.Errorf("cells(%g, %g, %d) = %d, want %d", line.v, line.full, line.width, got, line.want)
		}
	}
}

func TestString(t *testing.T) {
	d := New(&Opts{W: &bytes.Buffer{}})
	if s := d.String(); s != "TermGauge{Width:20}" {
		t.Fatalf("String() = %q", s)
	}
}

func TestNewNil(t *testing.T) {
	d := New(nil)
	if d.w == nil || d.width != 20 {
		t.Fatalf("New(nil) = %+v", d)
	}
}
