// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package regmap

import (
	"errors"
	"fmt"
)

var (
	// ErrBus is matched by every error caused by a failed bus transaction.
	ErrBus = errors.New("regmap: bus transaction failed")
	// ErrFieldRange is matched when a value is wider than its field.
	ErrFieldRange = errors.New("regmap: value does not fit in field")
	// ErrInvalidField is matched when a Field descriptor does not fit in a byte.
	ErrInvalidField = errors.New("regmap: invalid field")
	// ErrLayout is matched when a Register has an unknown layout or the
	// buffer length does not match it.
	ErrLayout = errors.New("regmap: invalid register layout")
)

// BusError is returned when the underlying connection fails a read or write.
type BusError struct {
	Op  string // "read" or "write"
	Reg uint8
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("regmap: %s of register %#02x failed: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBus.
func (e *BusError) Is(target error) bool {
	return target == ErrBus
}

// FieldError is returned before any bus access when a Field or the value
// written to it is invalid.
type FieldError struct {
	Field Field
	Value uint8
	Err   error // ErrFieldRange or ErrInvalidField
}

func (e *FieldError) Error() string {
	if e.Err == ErrFieldRange {
		return fmt.Sprintf("regmap: value %#x does not fit in %s (max %#x)", e.Value, e.Field, e.Field.Max())
	}
	return fmt.Sprintf("regmap: invalid field %s", e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
