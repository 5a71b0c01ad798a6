// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the settings of the lis3dh command from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/accel/lis3dh"
	"gopkg.in/yaml.v3"
)

// MQTT configures publishing to a broker. An empty Broker disables it.
type MQTT struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"clientID"`
	Topic    string `yaml:"topic"`
}

// Config holds all command settings.
type Config struct {
	I2C      string        `yaml:"i2c"`      // I²C bus name, empty for the first bus
	Addr     uint16        `yaml:"addr"`     // 0x18 or 0x19
	Rate     string        `yaml:"rate"`     // see ParseRate
	Range    int           `yaml:"range"`    // full scale in g: 2, 4, 8 or 16
	Interval time.Duration `yaml:"interval"` // time between samples
	Count    int           `yaml:"count"`    // samples to take, 0 for no limit
	Gauge    bool          `yaml:"gauge"`    // draw terminal gauges
	Plot     string        `yaml:"plot"`     // PNG file written on exit
	Listen   string        `yaml:"listen"`   // websocket listen address
	Verbose  bool          `yaml:"verbose"`  // trace register access
	MQTT     MQTT          `yaml:"mqtt"`
}

// Default returns the settings used for anything a file does not set.
func Default() Config {
	return Config{
		Addr:     lis3dh.DefaultAddr,
		Rate:     "400",
		Range:    2,
		Interval: 100 * time.Millisecond,
		MQTT: MQTT{
			ClientID: "lis3dh",
			Topic:    "lis3dh/acceleration",
		},
	}
}

// Load reads the YAML file at path over the defaults and validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr != lis3dh.DefaultAddr && c.Addr != lis3dh.AltAddr {
		errs = append(errs, fmt.Errorf("addr %#x is not %#x or %#x", c.Addr, lis3dh.DefaultAddr, lis3dh.AltAddr))
	}
	if _, err := ParseRate(c.Rate); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseRange(c.Range); err != nil {
		errs = append(errs, err)
	}
	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval %s must be positive", c.Interval))
	}
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count %d must not be negative", c.Count))
	}
	if c.MQTT.Broker != "" && c.MQTT.Topic == "" {
		errs = append(errs, errors.New("mqtt.topic is required with mqtt.broker"))
	}
	return errors.Join(errs...)
}

// DataRate is the parsed Rate.
func (c *Config) DataRate() lis3dh.DataRate {
	r, _ := ParseRate(c.Rate)
	return r
}

// FullScale is the parsed Range.
func (c *Config) FullScale() lis3dh.Range {
	r, _ := ParseRange(c.Range)
	return r
}

var rates = map[string]lis3dh.DataRate{
	"0":         lis3dh.RatePowerDown,
	"powerdown": lis3dh.RatePowerDown,
	"1":         lis3dh.Rate1Hz,
	"10":        lis3dh.Rate10Hz,
	"25":        lis3dh.Rate25Hz,
	"50":        lis3dh.Rate50Hz,
	"100":       lis3dh.Rate100Hz,
	"200":       lis3dh.Rate200Hz,
	"400":       lis3dh.Rate400Hz,
	"1344":      lis3dh.Rate1344Hz,
	"lp1600":    lis3dh.RateLowPower1600Hz,
	"lp5000":    lis3dh.RateLowPower5kHz,
}

// ParseRate converts a data rate in Hz, "powerdown", "lp1600" or "lp5000" to
// its code.
func ParseRate(s string) (lis3dh.DataRate, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "hz")
	if r, ok := rates[s]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unsupported rate %q", s)
}

// ParseRange converts a full scale in g to its code.
func ParseRange(g int) (lis3dh.Range, error) {
	switch g {
	case 2:
		return lis3dh.Range2G, nil
	case 4:
		return lis3dh.Range4G, nil
	case 8:
		return lis3dh.Range8G, nil
	case 16:
		return lis3dh.Range16G, nil
	default:
		return 0, fmt.Errorf("unsupported range ±%dg", g)
	}
}
