// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lis3dh controls an ST LIS3DH 3-axis accelerometer over I²C.
//
// NewI2C checks the WHO_AM_I register, reboots the device and programs
// 400Hz sampling on all three axes in high resolution mode with block data
// update. Every getter and setter is a live register access; the driver keeps
// no copy of the configuration.
//
// Dev is not safe for concurrent use. Setters read then write the control
// register, so callers sharing the bus must serialize access.
//
// # Datasheet
//
// https://www.st.com/resource/en/datasheet/lis3dh.pdf
package lis3dh
