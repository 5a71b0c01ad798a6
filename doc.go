// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accel is a container for the LIS3DH accelerometer driver and the
// tools built around it.
//
// The driver lives in lis3dh, on top of the register helpers in regmap. The
// lis3dh command reads samples and hands them to termgauge, accelplot and
// publish.
package accel
