// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GermanBionicSystems/accel/accelplot"
	"github.com/GermanBionicSystems/accel/lis3dh"
	"github.com/GermanBionicSystems/accel/publish"
	"github.com/GermanBionicSystems/accel/regmap"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"periph.io/x/conn/v3/physic"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("lis3dh", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lis3dh.yaml")
	data := "rate: \"100\"\nrange: 4\ninterval: 250ms\nplot: file.png\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := parseConfig(newFlagSet(), []string{"-config", path, "-range", "8", "-n", "3"})
	if err != nil {
		t.Fatal(err)
	}
	// Flags present on the command line win, the others keep the file value.
	if cfg.Range != 8 || cfg.Count != 3 {
		t.Errorf("flags not applied: range %d count %d", cfg.Range, cfg.Count)
	}
	if cfg.Rate != "100" || cfg.Interval != 250*time.Millisecond || cfg.Plot != "file.png" {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.Addr != lis3dh.DefaultAddr {
		t.Errorf("Addr = %#x", cfg.Addr)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(newFlagSet(), []string{"-addr", "0x19"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != lis3dh.AltAddr || cfg.DataRate() != lis3dh.Rate400Hz || cfg.FullScale() != lis3dh.Range2G {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	data := [][]string{
		{"extra"},
		{"-range", "3"},
		{"-addr", "0x20"},
		{"-config", filepath.Join(t.TempDir(), "missing.yaml")},
		{"-unknown"},
	}
	for _, args := range data {
		if _, err := parseConfig(newFlagSet(), args); err == nil {
			t.Errorf("parseConfig(%q) succeeded", args)
		}
	}
}

// regBus is a LIS3DH register file on an i2c.Bus. Bit 7 of the register
// address auto-increments it.
type regBus struct {
	regs [256]byte
	err  error
}

func (r *regBus) String() string                    { return "regBus" }
func (r *regBus) SetSpeed(f physic.Frequency) error { return nil }

func (r *regBus) Tx(addr uint16, w, rd []byte) error {
	if r.err != nil {
		return r.err
	}
	reg := w[0] & 0x7F
	inc := w[0]&0x80 != 0
	for _, b := range w[1:] {
		r.regs[reg] = b
		if inc {
			reg++
		}
	}
	for i := range rd {
		rd[i] = r.regs[reg]
		if inc {
			reg++
		}
	}
	return nil
}

type token struct{}

func (token) Wait() bool                     { return true }
func (token) WaitTimeout(time.Duration) bool { return true }
func (token) Error() error                   { return nil }

func (token) Done() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

type publisher struct {
	payloads [][]byte
}

func (p *publisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.payloads = append(p.payloads, payload.([]byte))
	return token{}
}

func TestSample(t *testing.T) {
	bus := &regBus{}
	bus.regs[0x0F] = lis3dh.WhoAmI
	d, err := lis3dh.NewI2C(bus, &lis3dh.Opts{Range: lis3dh.Range4G})
	if err != nil {
		t.Fatal(err)
	}
	// X=+1g, Y=0, Z=-1g at ±4g.
	copy(bus.regs[0x28:], []byte{0xFE, 0x1F, 0x00, 0x00, 0x02, 0xE0})

	var out bytes.Buffer
	p := &publisher{}
	s := &sinks{
		out:  &out,
		plot: accelplot.New(200, 100),
		mqtt: publish.NewMQTT(p, "lis3dh", time.Second),
		hub:  publish.NewHub(),
	}
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	if err := s.sample(d, now); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "X:9.806 Y:0.000 Z:-9.806\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if s.plot.Len() != 1 {
		t.Errorf("plot has %d samples", s.plot.Len())
	}
	if len(p.payloads) != 1 {
		t.Fatalf("expected 1 MQTT message, got %d", len(p.payloads))
	}
	var msg publish.Message
	if err := json.Unmarshal(p.payloads[0], &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Range != "±4g" || !msg.Time.Equal(now) || msg.X != lis3dh.StandardGravity {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestSampleBusError(t *testing.T) {
	bus := &regBus{}
	bus.regs[0x0F] = lis3dh.WhoAmI
	d, err := lis3dh.NewI2C(bus, nil)
	if err != nil {
		t.Fatal(err)
	}
	bus.err = errors.New("nack")
	var out bytes.Buffer
	s := &sinks{out: &out}
	if err := s.sample(d, time.Now()); !errors.Is(err, regmap.ErrBus) {
		t.Fatalf("expected regmap.ErrBus, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}
