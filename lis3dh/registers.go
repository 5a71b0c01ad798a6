// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"fmt"
	"strings"

	"github.com/GermanBionicSystems/accel/regmap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

const (
	// WhoAmI is the content of the WHO_AM_I register of a LIS3DH.
	WhoAmI byte = 0x33

	// DefaultAddr is the I²C address with SDO/SA0 pulled low.
	DefaultAddr uint16 = 0x18
	// AltAddr is the I²C address with SDO/SA0 pulled high.
	AltAddr uint16 = 0x19
)

// Register addresses.
const (
	regWhoAmI  = 0x0F
	regTempCfg = 0x1F
	regCtrl1   = 0x20
	regCtrl3   = 0x22 // Interrupt routing, unused.
	regCtrl4   = 0x23
	regCtrl5   = 0x24
	regOutXL   = 0x28

	// autoIncrement makes the device step through consecutive registers
	// during a multi-byte read.
	autoIncrement = 0x80
)

var (
	// CTRL_REG1: ODR3|ODR2|ODR1|ODR0|LPen|Zen|Yen|Xen
	fieldDataRate = regmap.Field{Width: 4, Reg: regCtrl1, Shift: 4}
	fieldAxes     = regmap.Field{Width: 3, Reg: regCtrl1, Shift: 3}

	// CTRL_REG4: BDU|BLE|FS1|FS0|HR|ST1|ST0|SIM
	fieldBlockDataUpdate = regmap.Field{Width: 1, Reg: regCtrl4, Shift: 7}
	fieldRange           = regmap.Field{Width: 2, Reg: regCtrl4, Shift: 4}
	fieldHighResolution  = regmap.Field{Width: 1, Reg: regCtrl4, Shift: 3}

	// CTRL_REG5: BOOT
	fieldReboot = regmap.Field{Width: 1, Reg: regCtrl5, Shift: 7}

	// TEMP_CFG_REG: ADC_EN|TEMP_EN
	fieldADC        = regmap.Field{Width: 1, Reg: regTempCfg, Shift: 7}
	fieldTempEnable = regmap.Field{Width: 1, Reg: regTempCfg, Shift: 6}

	registerWhoAmI = regmap.Register{Addr: regWhoAmI, Layout: regmap.Uint8}
	registerOut    = regmap.Register{Addr: regOutXL | autoIncrement, Layout: regmap.Vec3Int16LE}
)

// DataRate is the 4 bit output data rate code.
type DataRate uint8

const (
	RatePowerDown      DataRate = 0b0000
	Rate1Hz            DataRate = 0b0001
	Rate10Hz           DataRate = 0b0010
	Rate25Hz           DataRate = 0b0011
	Rate50Hz           DataRate = 0b0100
	Rate100Hz          DataRate = 0b0101
	Rate200Hz          DataRate = 0b0110
	Rate400Hz          DataRate = 0b0111
	RateLowPower1600Hz DataRate = 0b1000
	Rate1344Hz         DataRate = 0b1001
	// RateLowPower5kHz shares its code with Rate1344Hz. The device picks
	// between the two with the low power bit.
	RateLowPower5kHz DataRate = 0b1001
)

var rateFrequencies = [...]physic.Frequency{
	RatePowerDown:      0,
	Rate1Hz:            physic.Hertz,
	Rate10Hz:           10 * physic.Hertz,
	Rate25Hz:           25 * physic.Hertz,
	Rate50Hz:           50 * physic.Hertz,
	Rate100Hz:          100 * physic.Hertz,
	Rate200Hz:          200 * physic.Hertz,
	Rate400Hz:          400 * physic.Hertz,
	RateLowPower1600Hz: 1600 * physic.Hertz,
	Rate1344Hz:         1344 * physic.Hertz,
}

// Frequency is the sampling frequency in normal or high resolution mode.
// Code 0b1001 reports 1344Hz. Codes above 0b1001 return 0.
func (r DataRate) Frequency() physic.Frequency {
	if int(r) >= len(rateFrequencies) {
		return 0
	}
	return rateFrequencies[r]
}

func (r DataRate) String() string {
	switch {
	case r == RatePowerDown:
		return "PowerDown"
	case r == RateLowPower1600Hz:
		return "LowPower1600Hz"
	case r == Rate1344Hz:
		return "1344Hz/LowPower5kHz"
	case int(r) >= len(rateFrequencies):
		return fmt.Sprintf("DataRate(%#x)", uint8(r))
	default:
		return rateFrequencies[r].String()
	}
}

// Range is the full scale range code.
type Range uint8

const (
	Range2G  Range = 0b00 // ±2g, power on default.
	Range4G  Range = 0b01 // ±4g
	Range8G  Range = 0b10 // ±8g
	Range16G Range = 0b11 // ±16g
)

// divisors converts raw counts to g for each range in high resolution mode.
// The values are empirical and not a power of two.
var divisors = [4]int{16380, 8190, 4096, 1365}

// Divisor is the number of raw counts per g at this range.
func (r Range) Divisor() int {
	return divisors[r&3]
}

// FullScale is the largest magnitude measurable at this range, in g.
func (r Range) FullScale() int {
	return 2 << (r & 3)
}

func (r Range) String() string {
	if r > Range16G {
		return fmt.Sprintf("Range(%d)", uint8(r))
	}
	return fmt.Sprintf("±%dg", r.FullScale())
}

// Axes is a bit mask of the enabled axes.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ

	AxesXY  = AxisX | AxisY
	AxesXZ  = AxisX | AxisZ
	AxesYZ  = AxisY | AxisZ
	AxesXYZ = AxisX | AxisY | AxisZ
)

func (a Axes) String() string {
	if a == 0 {
		return "none"
	}
	var s []string
	for i, n := range []string{"X", "Y", "Z"} {
		if a&(1<<i) != 0 {
			s = append(s, n)
		}
	}
	if a > AxesXYZ {
		s = append(s, fmt.Sprintf("%#x", uint8(a&^AxesXYZ)))
	}
	return strings.Join(s, "|")
}

// DebugF is a printf-like function receiving every register transaction.
type DebugF func(string, ...interface{})

// traceConn reports the transactions of a conn.Conn to a DebugF.
type traceConn struct {
	conn.Conn
	debug DebugF
}

func (t *traceConn) Tx(w, r []byte) error {
	err := t.Conn.Tx(w, r)
	switch {
	case err != nil:
		t.debug("lis3dh: tx w=% x failed: %v", w, err)
	case len(r) == 0:
		t.debug("lis3dh: write % x", w)
	default:
		t.debug("lis3dh: read %#02x: % x", w[0], r)
	}
	return err
}
