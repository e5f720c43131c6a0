/*
Copyright (c) the pico-marine/telemetry authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package transport

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/pico-marine/telemetry/proto"
)

// DefaultBrokerAddr is the vendor's cloud-hosted MQTT bridge, used by
// controllers that are not reachable directly over TCP/UDP.
const DefaultBrokerAddr = "tcp://simarinemqtt.uksouth.cloudapp.azure.com:1883"

// MQTT bridges requests to a controller through the vendor broker. The
// wire protocol is unchanged; only the carrier differs from TCP.
type MQTT struct {
	client  mqtt.Client
	serial  uint32
	timeout time.Duration
	inbox   chan []byte
}

// NewMQTT returns an MQTT transport for the controller identified by
// serial, using brokerAddr (empty selects DefaultBrokerAddr). The
// connection is not established until Open.
func NewMQTT(brokerAddr string, serial uint32, timeout time.Duration) *MQTT {
	if brokerAddr == "" {
		brokerAddr = DefaultBrokerAddr
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	m := &MQTT{serial: serial, timeout: timeout, inbox: make(chan []byte, 1)}
	opts := mqtt.NewClientOptions().
		AddBroker(brokerAddr).
		SetClientID(fmt.Sprintf("pico-marine-telemetry-%d", serial)).
		SetAutoReconnect(true)
	opts.SetDefaultPublishHandler(m.onMessage)
	m.client = mqtt.NewClient(opts)
	return m
}

func (m *MQTT) deviceTopic() string { return fmt.Sprintf("/%d_DEV", m.serial) }
func (m *MQTT) appTopic() string    { return fmt.Sprintf("/%d_APP", m.serial) }

// onMessage is the subscription callback. The inbox has capacity 1:
// an overflow on arrival drops the incoming payload with a warning
// rather than blocking the MQTT client's delivery goroutine, since the
// protocol is single-outstanding by contract from the caller.
func (m *MQTT) onMessage(_ mqtt.Client, msg mqtt.Message) {
	select {
	case m.inbox <- msg.Payload():
	default:
		log.Warnf("mqtt: dropping unread payload on %s, inbox full", m.deviceTopic())
	}
}

// Open connects to the broker and subscribes to the controller's device
// topic. It is idempotent-forbidden, matching TCP.Open.
func (m *MQTT) Open() error {
	if m.client.IsConnected() {
		return transportErr(AlreadyOpen, "mqtt transport for serial %d is already open", m.serial)
	}
	if tok := m.client.Connect(); tok.Wait() && tok.Error() != nil {
		return transportErr(OpenError, "connect: %v", tok.Error())
	}
	if tok := m.client.Subscribe(m.deviceTopic(), 1, m.onMessage); tok.Wait() && tok.Error() != nil {
		m.client.Disconnect(250)
		return transportErr(OpenError, "subscribe %s: %v", m.deviceTopic(), tok.Error())
	}
	return nil
}

// Close unsubscribes and disconnects.
func (m *MQTT) Close() error {
	if !m.client.IsConnected() {
		return nil
	}
	_ = m.client.Unsubscribe(m.deviceTopic())
	m.client.Disconnect(250)
	return nil
}

// Request drains any stale inbox entry, publishes the built frame, and
// blocks up to the configured timeout for the next inbound payload,
// which it parses against typ. It returns a distinct, wrapped
// context.DeadlineExceeded when nothing arrives in time.
func (m *MQTT) Request(typ proto.MessageType, payload []byte) (*proto.Message, error) {
	select {
	case <-m.inbox:
	default:
	}

	frame := proto.Build(&proto.Message{Type: typ, Payload: payload})
	if tok := m.client.Publish(m.appTopic(), 1, false, frame); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("publish %s: %w", m.appTopic(), tok.Error())
	}

	select {
	case b := <-m.inbox:
		return proto.Expect(b, typ)
	case <-time.After(m.timeout):
		return nil, fmt.Errorf("mqtt request on %s: %w", m.deviceTopic(), errMQTTTimeout)
	}
}

var errMQTTTimeout = fmt.Errorf("no payload arrived within the request timeout: %w", context.DeadlineExceeded)
