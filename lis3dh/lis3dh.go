// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"fmt"
	"time"

	"github.com/GermanBionicSystems/accel/regmap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// StandardGravity converts g to m/s².
const StandardGravity = 9.806

// rebootDelay is how long the device is left alone after a reboot request.
// The datasheet requires at least 5ms.
const rebootDelay = 10 * time.Millisecond

// Opts holds the configuration options for the device.
type Opts struct {
	// Addr is the I²C address. 0 means DefaultAddr.
	Addr uint16
	// DataRate is programmed after reboot. 0 means Rate400Hz; power down is
	// selected after construction with Halt or SetDataRate.
	DataRate DataRate
	// Range is programmed after reboot when it is not Range2G.
	Range Range
	// Debug, when set, receives every register transaction.
	Debug DebugF
}

// DefaultOpts is used by NewI2C when opts is nil.
var DefaultOpts = Opts{
	Addr:     DefaultAddr,
	DataRate: Rate400Hz,
	Range:    Range2G,
}

// Acceleration is a sample in m/s².
type Acceleration struct {
	X float64
	Y float64
	Z float64
}

func (a Acceleration) String() string {
	return fmt.Sprintf("X:%.3f Y:%.3f Z:%.3f", a.X, a.Y, a.Z)
}

// Dev is a handle to a LIS3DH.
type Dev struct {
	c    conn.Conn
	opts Opts
}

// NewI2C returns a Dev that communicates over I²C with a LIS3DH.
//
// The device identity is verified before anything is written. The device is
// then rebooted and configured for all three axes, opts.DataRate, high
// resolution, block data update and the auxiliary ADC.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Addr == 0 {
		o.Addr = DefaultAddr
	}
	if o.DataRate == RatePowerDown {
		o.DataRate = Rate400Hz
	}
	var c conn.Conn = &i2c.Dev{Bus: b, Addr: o.Addr}
	if o.Debug != nil {
		c = &traceConn{Conn: c, debug: o.Debug}
	}
	d := &Dev{c: c, opts: o}
	if err := d.makeDev(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) makeDev() error {
	v, err := regmap.Read(d.c, registerWhoAmI)
	if err != nil {
		return err
	}
	if v.U8 != WhoAmI {
		return &DeviceNotFoundError{Addr: d.opts.Addr, ID: v.U8}
	}
	if err := d.Reboot(); err != nil {
		return err
	}
	defaults := []struct {
		f regmap.Field
		v uint8
	}{
		{fieldAxes, uint8(AxesXYZ)},
		{fieldDataRate, uint8(d.opts.DataRate)},
		{fieldHighResolution, 1},
		{fieldBlockDataUpdate, 1},
		{fieldADC, 1},
	}
	for _, s := range defaults {
		if err := regmap.WriteField(d.c, s.f, s.v); err != nil {
			return err
		}
	}
	if d.opts.Range != Range2G {
		return d.SetRange(d.opts.Range)
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("lis3dh{%s}", d.c)
}

// Halt stops sampling by selecting the power down data rate.
//
// Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.SetDataRate(RatePowerDown)
}

// Reboot reloads the trimming parameters and waits for the device to settle.
func (d *Dev) Reboot() error {
	if err := regmap.WriteField(d.c, fieldReboot, 1); err != nil {
		return err
	}
	time.Sleep(rebootDelay)
	return nil
}

// DataRate returns the output data rate code.
func (d *Dev) DataRate() (DataRate, error) {
	v, err := regmap.ReadField(d.c, fieldDataRate)
	return DataRate(v), err
}

// SetDataRate writes the output data rate code. Any 4 bit code is written,
// including codes the datasheet leaves undefined.
func (d *Dev) SetDataRate(r DataRate) error {
	return regmap.WriteField(d.c, fieldDataRate, uint8(r))
}

// Axes returns the enabled axes.
func (d *Dev) Axes() (Axes, error) {
	v, err := regmap.ReadField(d.c, fieldAxes)
	return Axes(v), err
}

// SetAxes enables the axes in a and disables the others.
func (d *Dev) SetAxes(a Axes) error {
	return regmap.WriteField(d.c, fieldAxes, uint8(a))
}

// Range returns the full scale range.
func (d *Dev) Range() (Range, error) {
	v, err := regmap.ReadField(d.c, fieldRange)
	return Range(v), err
}

// SetRange selects the full scale range. Acceleration always reads the range
// back, so samples taken after this call use the new scale.
func (d *Dev) SetRange(r Range) error {
	return regmap.WriteField(d.c, fieldRange, uint8(r))
}

// HighResolution reports whether 12 bit output is enabled.
func (d *Dev) HighResolution() (bool, error) {
	return d.flag(fieldHighResolution)
}

func (d *Dev) SetHighResolution(on bool) error {
	return d.setFlag(fieldHighResolution, on)
}

// BlockDataUpdate reports whether the output registers are held until both
// bytes of a sample have been read.
func (d *Dev) BlockDataUpdate() (bool, error) {
	return d.flag(fieldBlockDataUpdate)
}

func (d *Dev) SetBlockDataUpdate(on bool) error {
	return d.setFlag(fieldBlockDataUpdate, on)
}

// ADCEnabled reports whether the auxiliary ADC is powered.
func (d *Dev) ADCEnabled() (bool, error) {
	return d.flag(fieldADC)
}

func (d *Dev) SetADCEnabled(on bool) error {
	return d.setFlag(fieldADC, on)
}

// TemperatureEnabled reports whether the temperature sensor feeds the
// auxiliary ADC.
func (d *Dev) TemperatureEnabled() (bool, error) {
	return d.flag(fieldTempEnable)
}

func (d *Dev) SetTemperatureEnabled(on bool) error {
	return d.setFlag(fieldTempEnable, on)
}

// RawAcceleration returns the X, Y and Z output registers in one burst read.
func (d *Dev) RawAcceleration() ([3]int16, error) {
	v, err := regmap.Read(d.c, registerOut)
	return v.Vec, err
}

// Acceleration reads a sample and scales it with the range currently
// programmed in the device.
func (d *Dev) Acceleration() (Acceleration, error) {
	a, _, err := d.AccelerationRange()
	return a, err
}

// AccelerationRange is Acceleration that also returns the range the sample
// was scaled with.
func (d *Dev) AccelerationRange() (Acceleration, Range, error) {
	raw, err := d.RawAcceleration()
	if err != nil {
		return Acceleration{}, 0, err
	}
	r, err := d.Range()
	if err != nil {
		return Acceleration{}, 0, err
	}
	div := float64(r.Divisor())
	return Acceleration{
		X: float64(raw[0]) / div * StandardGravity,
		Y: float64(raw[1]) / div * StandardGravity,
		Z: float64(raw[2]) / div * StandardGravity,
	}, r, nil
}

func (d *Dev) flag(f regmap.Field) (bool, error) {
	v, err := regmap.ReadField(d.c, f)
	return v == 1, err
}

func (d *Dev) setFlag(f regmap.Field, on bool) error {
	var v uint8
	if on {
		v = 1
	}
	return regmap.WriteField(d.c, f, v)
}

var _ conn.Resource = &Dev{}
