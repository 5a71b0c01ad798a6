// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accelplot renders a series of acceleration samples as a line chart.
package accelplot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"github.com/GermanBionicSystems/accel/lis3dh"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const margin = 40

var axisRGB = [3][3]float64{
	{0.85, 0.15, 0.15},
	{0.15, 0.65, 0.15},
	{0.15, 0.35, 0.85},
}

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
	fontErr  error
)

func face(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return truetype.NewFace(fontTTF, &truetype.Options{Size: size}), nil
}

type sample struct {
	t time.Duration
	a lis3dh.Acceleration
}

// Plot accumulates samples. It is not safe for concurrent use.
type Plot struct {
	Width  int
	Height int
	Title  string

	start   time.Time
	samples []sample
}

// New returns an empty Plot of the given size in pixels.
func New(width, height int) *Plot {
	return &Plot{Width: width, Height: height}
}

// Add appends a sample taken at t. Samples must be added in time order.
func (p *Plot) Add(t time.Time, a lis3dh.Acceleration) {
	if len(p.samples) == 0 {
		p.start = t
	}
	p.samples = append(p.samples, sample{t: t.Sub(p.start), a: a})
}

// Len is the number of samples.
func (p *Plot) Len() int {
	return len(p.samples)
}

// Image draws the chart. The vertical axis spans ±fullScale m/s².
func (p *Plot) Image(fullScale float64) (image.Image, error) {
	dc, err := p.draw(fullScale)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG encodes the chart as PNG to w.
func (p *Plot) WritePNG(w io.Writer, fullScale float64) error {
	dc, err := p.draw(fullScale)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG writes the chart to a PNG file.
func (p *Plot) SavePNG(path string, fullScale float64) error {
	dc, err := p.draw(fullScale)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func (p *Plot) draw(fullScale float64) (*gg.Context, error) {
	if p.Width <= 2*margin || p.Height <= 2*margin {
		return nil, fmt.Errorf("accelplot: %dx%d is too small", p.Width, p.Height)
	}
	if fullScale <= 0 {
		return nil, errors.New("accelplot: full scale must be positive")
	}
	f, err := face(12)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(p.Width, p.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(f)

	w := float64(p.Width - 2*margin)
	h := float64(p.Height - 2*margin)
	mid := float64(margin) + h/2

	// Frame and zero line.
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(margin, margin, w, h)
	dc.Stroke()
	dc.DrawLine(margin, mid, margin+w, mid)
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("%+.1f", fullScale), margin-4, margin, 1, 0.5)
	dc.DrawStringAnchored("0", margin-4, mid, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%+.1f", -fullScale), margin-4, margin+h, 1, 0.5)
	title := p.Title
	if title == "" {
		title = "acceleration (m/s²)"
	}
	dc.DrawStringAnchored(title, float64(p.Width)/2, margin/2, 0.5, 0.5)

	var span time.Duration
	if n := len(p.samples); n != 0 {
		span = p.samples[n-1].t
	}
	dc.DrawStringAnchored(span.String(), margin+w, margin+h+4, 1, 1)

	x := func(i int) float64 {
		if span == 0 {
			return margin + w*float64(i)/float64(max(len(p.samples)-1, 1))
		}
		return margin + w*float64(p.samples[i].t)/float64(span)
	}
	y := func(v float64) float64 {
		if v > fullScale {
			v = fullScale
		} else if v < -fullScale {
			v = -fullScale
		}
		return mid - v/fullScale*h/2
	}
	dc.SetLineWidth(1.5)
	for axis := range axisRGB {
		if len(p.samples) < 2 {
			break
		}
		c := axisRGB[axis]
		dc.SetRGB(c[0], c[1], c[2])
		for i, s := range p.samples {
			v := [3]float64{s.a.X, s.a.Y, s.a.Z}[axis]
			if i == 0 {
				dc.MoveTo(x(i), y(v))
			} else {
				dc.LineTo(x(i), y(v))
			}
		}
		dc.Stroke()
	}

	// Legend.
	for axis, name := range []string{"X", "Y", "Z"} {
		c := axisRGB[axis]
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawStringAnchored(name, float64(p.Width-margin+8), margin+float64(16*axis), 0, 0.5)
	}
	return dc, nil
}
