// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package regmap

import (
	"fmt"

	"periph.io/x/conn/v3"
)

// Field is Width bits starting at bit Shift of the 8-bit register Reg.
//
// Width must be in [1, 8] and Width+Shift must not exceed 8.
type Field struct {
	Width uint8
	Reg   uint8
	Shift uint8
}

func (f Field) String() string {
	return fmt.Sprintf("Field{Reg:%#02x, Shift:%d, Width:%d}", f.Reg, f.Shift, f.Width)
}

// Valid reports whether the field fits inside a single byte.
func (f Field) Valid() bool {
	return f.Width >= 1 && f.Width <= 8 && f.Shift <= 7 && f.Width+f.Shift <= 8
}

// Max is the largest value the field can hold.
func (f Field) Max() uint8 {
	return uint8(uint16(1)<<f.Width - 1)
}

// Mask is the field's bits in position within the register.
func (f Field) Mask() uint8 {
	return f.Max() << f.Shift
}

// Get extracts the field from a register value.
func (f Field) Get(reg uint8) uint8 {
	return (reg & f.Mask()) >> f.Shift
}

// Set returns reg with the field replaced by v. Bits of v above the field's
// width are dropped.
func (f Field) Set(reg, v uint8) uint8 {
	return reg&^f.Mask() | (v<<f.Shift)&f.Mask()
}

// ReadField reads the register holding f and returns the field's value.
func ReadField(c conn.Conn, f Field) (uint8, error) {
	if !f.Valid() {
		return 0, &FieldError{Field: f, Err: ErrInvalidField}
	}
	b, err := ReadBytes(c, f.Reg, 1)
	if err != nil {
		return 0, err
	}
	return f.Get(b[0]), nil
}

// WriteField replaces the field in its register with v, leaving the other
// bits of the register as they were read.
//
// The register is read then written in two transactions. A change made to
// the register by another bus master between the two is lost.
func WriteField(c conn.Conn, f Field, v uint8) error {
	if !f.Valid() {
		return &FieldError{Field: f, Value: v, Err: ErrInvalidField}
	}
	if v > f.Max() {
		return &FieldError{Field: f, Value: v, Err: ErrFieldRange}
	}
	b, err := ReadBytes(c, f.Reg, 1)
	if err != nil {
		return err
	}
	return WriteBytes(c, f.Reg, []byte{f.Set(b[0], v)})
}

// ReadBytes reads n consecutive bytes starting at register reg.
func ReadBytes(c conn.Conn, reg uint8, n int) ([]byte, error) {
	r := make([]byte, n)
	if err := c.Tx([]byte{reg}, r); err != nil {
		return nil, &BusError{Op: "read", Reg: reg, Err: err}
	}
	return r, nil
}

// WriteBytes writes data to consecutive registers starting at reg.
func WriteBytes(c conn.Conn, reg uint8, data []byte) error {
	w := make([]byte, 0, len(data)+1)
	w = append(w, reg)
	w = append(w, data...)
	if err := c.Tx(w, nil); err != nil {
		return &BusError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}
