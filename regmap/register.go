// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package regmap

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3"
)

// Layout is the binary format of a Register.
type Layout uint8

const (
	// Uint8 is a single unsigned byte.
	Uint8 Layout = iota
	// Vec3Int16LE is three little endian signed 16 bit integers, 6 bytes.
	Vec3Int16LE
)

// Size is the number of bytes transferred for the layout, or 0 if the layout
// is unknown.
func (l Layout) Size() int {
	switch l {
	case Uint8:
		return 1
	case Vec3Int16LE:
		return 6
	default:
		return 0
	}
}

func (l Layout) String() string {
	switch l {
	case Uint8:
		return "Uint8"
	case Vec3Int16LE:
		return "Vec3Int16LE"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// Value is a decoded register. Only the member matching the register's
// layout is meaningful.
type Value struct {
	U8  uint8
	Vec [3]int16
}

// Register is a run of Layout.Size() bytes starting at Addr.
//
// For multi-byte registers Addr is sent as is; devices that need a flag to
// auto-increment the address during a burst expect the caller to include it.
type Register struct {
	Addr   uint8
	Layout Layout
}

func (r Register) String() string {
	return fmt.Sprintf("Register{Addr:%#02x, Layout:%s}", r.Addr, r.Layout)
}

// Decode interprets b according to the register's layout.
//
// Uint8 registers are never sign extended.
func (r Register) Decode(b []byte) (Value, error) {
	n := r.Layout.Size()
	if n == 0 || len(b) != n {
		return Value{}, fmt.Errorf("%w: %s cannot decode %d bytes", ErrLayout, r, len(b))
	}
	var v Value
	switch r.Layout {
	case Uint8:
		v.U8 = b[0]
	case Vec3Int16LE:
		for i := range v.Vec {
			v.Vec[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
		}
	}
	return v, nil
}

// Encode returns the bytes written for v.
func (r Register) Encode(v Value) ([]byte, error) {
	switch r.Layout {
	case Uint8:
		return []byte{v.U8}, nil
	case Vec3Int16LE:
		b := make([]byte, 6)
		for i, x := range v.Vec {
			binary.LittleEndian.PutUint16(b[2*i:], uint16(x))
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLayout, r)
	}
}

// Read reads and decodes r.
func Read(c conn.Conn, r Register) (Value, error) {
	n := r.Layout.Size()
	if n == 0 {
		return Value{}, fmt.Errorf("%w: %s", ErrLayout, r)
	}
	b, err := ReadBytes(c, r.Addr, n)
	if err != nil {
		return Value{}, err
	}
	return r.Decode(b)
}

// Write encodes v and writes it to r.
func Write(c conn.Conn, r Register, v Value) error {
	b, err := r.Encode(v)
	if err != nil {
		return err
	}
	return WriteBytes(c, r.Addr, b)
}
