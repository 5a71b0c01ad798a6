// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package publish

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher is the part of mqtt.Client used by MQTT.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTT publishes messages, retained with QoS 0, on a single topic.
type MQTT struct {
	p       Publisher
	topic   string
	timeout time.Duration
	client  mqtt.Client
}

// NewMQTT returns an MQTT publishing on topic through p. Publish waits at most
// timeout for the broker; 0 waits forever.
func NewMQTT(p Publisher, topic string, timeout time.Duration) *MQTT {
	return &MQTT{p: p, topic: topic, timeout: timeout}
}

// DialMQTT connects to broker, e.g. "tcp://localhost:1883", and returns an
// MQTT owning the connection.
func DialMQTT(broker, clientID, topic string, timeout time.Duration) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("publish: MQTT connect to %s: %w", broker, token.Error())
	}
	m := NewMQTT(c, topic, timeout)
	m.client = c
	return m, nil
}

func (m *MQTT) String() string {
	return fmt.Sprintf("MQTT{%s}", m.topic)
}

// Publish sends msg and waits for the broker.
func (m *MQTT) Publish(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	token := m.p.Publish(m.topic, 0, true, payload)
	if m.timeout > 0 {
		if !token.WaitTimeout(m.timeout) {
			return fmt.Errorf("publish: MQTT publish to %s timed out after %s", m.topic, m.timeout)
		}
	} else {
		token.Wait()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: MQTT publish to %s: %w", m.topic, err)
	}
	return nil
}

// Halt disconnects from the broker when the connection was opened by
// DialMQTT.
func (m *MQTT) Halt() error {
	if m.client != nil {
		m.client.Disconnect(250)
		m.client = nil
	}
	return nil
}
