// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lis3dh reads acceleration samples from a LIS3DH and prints, draws, plots or
// publishes them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/accel/accelplot"
	"github.com/GermanBionicSystems/accel/internal/config"
	"github.com/GermanBionicSystems/accel/lis3dh"
	"github.com/GermanBionicSystems/accel/publish"
	"github.com/GermanBionicSystems/accel/termgauge"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "lis3dh: %s.\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	return run(&cfg)
}

// parseConfig parses args into fs and returns the configuration file, if any,
// overridden by the flags present in args.
func parseConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	path := fs.String("config", "", "YAML configuration file")
	i2cID := fs.String("i2c", "", "I²C bus to use")
	addr := fs.Uint("addr", uint(lis3dh.DefaultAddr), "I²C address, 0x18 or 0x19")
	rate := fs.String("rate", "400", "data rate in Hz, powerdown, lp1600 or lp5000")
	fullScale := fs.Int("range", 2, "full scale range in g: 2, 4, 8 or 16")
	interval := fs.Duration("interval", 100*time.Millisecond, "time between samples")
	count := fs.Int("n", 0, "number of samples, 0 for no limit")
	gauge := fs.Bool("gauge", false, "draw the samples as terminal gauges")
	plot := fs.String("plot", "", "write a PNG chart of the samples to this file on exit")
	broker := fs.String("mqtt", "", "MQTT broker to publish to, e.g. tcp://localhost:1883")
	topic := fs.String("topic", "", "MQTT topic")
	listen := fs.String("listen", "", "serve samples over websocket at this address, e.g. :8080")
	verbose := fs.Bool("v", false, "trace register access")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if fs.NArg() != 0 {
		return config.Config{}, errors.New("unexpected argument, try -help")
	}

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			return config.Config{}, err
		}
	}
	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i2c":
			cfg.I2C = *i2cID
		case "addr":
			cfg.Addr = uint16(*addr)
		case "rate":
			cfg.Rate = *rate
		case "range":
			cfg.Range = *fullScale
		case "interval":
			cfg.Interval = *interval
		case "n":
			cfg.Count = *count
		case "gauge":
			cfg.Gauge = *gauge
		case "plot":
			cfg.Plot = *plot
		case "mqtt":
			cfg.MQTT.Broker = *broker
		case "topic":
			cfg.MQTT.Topic = *topic
		case "listen":
			cfg.Listen = *listen
		case "v":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	b, err := i2creg.Open(cfg.I2C)
	if err != nil {
		return fmt.Errorf("failed to open I²C: %w", err)
	}
	defer b.Close()

	opts := lis3dh.Opts{Addr: cfg.Addr, DataRate: cfg.DataRate(), Range: cfg.FullScale()}
	if cfg.Verbose {
		opts.Debug = log.Printf
	}
	d, err := lis3dh.NewI2C(b, &opts)
	if err != nil {
		return err
	}
	defer d.Halt()
	if opts.DataRate == lis3dh.RatePowerDown {
		// NewI2C treats a zero rate as the default.
		if err := d.Halt(); err != nil {
			return err
		}
	}
	log.Printf("%s: rate %s, range %s", d, opts.DataRate, opts.Range)

	s := &sinks{out: os.Stdout}
	defer s.halt()
	if cfg.Gauge {
		s.gauge = termgauge.New(&termgauge.Opts{})
	}
	if cfg.Plot != "" {
		s.plot = accelplot.New(800, 400)
		s.plotPath = cfg.Plot
	}
	if cfg.MQTT.Broker != "" {
		if s.mqtt, err = publish.DialMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic, 5*time.Second); err != nil {
			return err
		}
		log.Printf("publishing to %s on %s", cfg.MQTT.Broker, cfg.MQTT.Topic)
	}
	if cfg.Listen != "" {
		s.hub = publish.NewHub()
		mux := http.NewServeMux()
		mux.Handle("/ws", s.hub)
		srv := &http.Server{Addr: cfg.Listen, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("websocket server: %v", err)
			}
		}()
		defer srv.Close()
		log.Printf("serving samples on ws://%s/ws", cfg.Listen)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for i := 0; cfg.Count == 0 || i < cfg.Count; i++ {
		if err := s.sample(d, time.Now()); err != nil {
			return err
		}
		select {
		case <-interrupt:
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

type sinks struct {
	out      io.Writer
	gauge    *termgauge.Dev
	plot     *accelplot.Plot
	plotPath string
	mqtt     *publish.MQTT
	hub      *publish.Hub
}

// sample reads one sample and hands it to every enabled sink. A failed
// publish is logged and does not stop sampling.
func (s *sinks) sample(d *lis3dh.Dev, now time.Time) error {
	a, r, err := d.AccelerationRange()
	if err != nil {
		return err
	}
	full := float64(r.FullScale()) * lis3dh.StandardGravity
	if s.gauge != nil {
		if err := s.gauge.Draw(a, full); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(s.out, a); err != nil {
		return err
	}
	if s.plot != nil {
		s.plot.Add(now, a)
	}
	msg := publish.NewMessage(now, a, r)
	if s.mqtt != nil {
		if err := s.mqtt.Publish(msg); err != nil {
			log.Print(err)
		}
	}
	if s.hub != nil {
		if err := s.hub.Broadcast(msg); err != nil {
			log.Print(err)
		}
	}
	return nil
}

func (s *sinks) halt() {
	if s.gauge != nil {
		_ = s.gauge.Halt()
	}
	if s.plot != nil && s.plot.Len() != 0 {
		// The chart spans the largest range so samples from any range fit.
		full := float64(lis3dh.Range16G.FullScale()) * lis3dh.StandardGravity
		if err := s.plot.SavePNG(s.plotPath, full); err != nil {
			log.Printf("failed to write %s: %v", s.plotPath, err)
		} else {
			log.Printf("wrote %d samples to %s", s.plot.Len(), s.plotPath)
		}
	}
	if s.mqtt != nil {
		_ = s.mqtt.Halt()
	}
	if s.hub != nil {
		_ = s.hub.Halt()
	}
}
