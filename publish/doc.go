// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package publish sends acceleration samples to MQTT brokers and websocket
// clients as JSON.
package publish
