// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GermanBionicSystems/accel/lis3dh"
)

func TestParse(t *testing.T) {
	doc := `
i2c: "1"
addr: 0x19
rate: 200Hz
range: 8
interval: 250ms
count: 40
gauge: true
plot: accel.png
listen: ":8080"
mqtt:
  broker: tcp://localhost:1883
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if c.I2C != "1" || c.Addr != lis3dh.AltAddr || c.Count != 40 || !c.Gauge || c.Plot != "accel.png" || c.Listen != ":8080" {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.Interval != 250*time.Millisecond {
		t.Fatalf("Interval = %s", c.Interval)
	}
	if c.DataRate() != lis3dh.Rate200Hz {
		t.Fatalf("DataRate() = %s", c.DataRate())
	}
	if c.FullScale() != lis3dh.Range8G {
		t.Fatalf("FullScale() = %s", c.FullScale())
	}
	// Unset nested fields keep their defaults.
	if c.MQTT.Broker != "tcp://localhost:1883" || c.MQTT.Topic != "lis3dh/acceleration" || c.MQTT.ClientID != "lis3dh" {
		t.Fatalf("unexpected MQTT %+v", c.MQTT)
	}
}

func TestDefault(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != lis3dh.DefaultAddr || c.DataRate() != lis3dh.Rate400Hz || c.FullScale() != lis3dh.Range2G {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestValidate(t *testing.T) {
	doc := `
addr: 0x20
rate: 300
range: 3
interval: 0s
count: -1
mqtt:
  broker: tcp://localhost:1883
  topic: ""
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"addr 0x20", "rate \"300\"", "±3g", "interval", "count -1", "mqtt.topic"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lis3dh.yaml")
	if err := os.WriteFile(path, []byte("rate: lp1600\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.DataRate() != lis3dh.RateLowPower1600Hz {
		t.Fatalf("DataRate() = %s", c.DataRate())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseRate(t *testing.T) {
	data := []struct {
		in   string
		want lis3dh.DataRate
	}{
		{"powerdown", lis3dh.RatePowerDown},
		{"1", lis3dh.Rate1Hz},
		{"400Hz", lis3dh.Rate400Hz},
		{" 1344 ", lis3dh.Rate1344Hz},
		{"LP5000", lis3dh.RateLowPower5kHz},
	}
	for _, line := range data {
		got, err := ParseRate(line.in)
		if err != nil || got != line.want {
			t.Errorf("ParseRate(%q) = %s, %v; want %s", line.in, got, err, line.want)
		}
	}
}
