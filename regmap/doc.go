// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package regmap reads and writes the registers of byte-addressed I²C and SPI
// devices.
//
// A Field names a run of bits inside one 8-bit register and is accessed with
// a read-modify-write sequence. A Register names one or more consecutive
// bytes decoded according to a Layout.
//
// Nothing is cached: every call is a bus transaction. The read-modify-write
// in WriteField is not atomic, so a device must not be shared between
// goroutines without external locking.
package regmap
