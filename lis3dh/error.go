// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lis3dh

import (
	"errors"
	"fmt"
)

// ErrDeviceNotFound is matched by a DeviceNotFoundError.
var ErrDeviceNotFound = errors.New("lis3dh: device not found")

// DeviceNotFoundError is returned by NewI2C when the WHO_AM_I register does
// not hold the LIS3DH signature.
type DeviceNotFoundError struct {
	Addr uint16
	ID   byte
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("lis3dh: no LIS3DH at %#x: WHO_AM_I is %#02x, expected %#02x", e.Addr, e.ID, WhoAmI)
}

func (e *DeviceNotFoundError) Is(target error) bool {
	return target == ErrDeviceNotFound
}
