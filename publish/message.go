// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package publish

import (
	"time"

	"github.com/GermanBionicSystems/accel/lis3dh"
)

// Message is the JSON payload of one sample. X, Y and Z are in m/s².
type Message struct {
	Time  time.Time `json:"time"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Z     float64   `json:"z"`
	Range string    `json:"range"`
}

// NewMessage returns the Message for a sample taken at t with range r.
func NewMessage(t time.Time, a lis3dh.Acceleration, r lis3dh.Range) Message {
	return Message{Time: t.UTC(), X: a.X, Y: a.Y, Z: a.Z, Range: r.String()}
}
