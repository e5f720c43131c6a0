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

package client

import (
	"fmt"
	"sync"

	version "github.com/hashicorp/go-version"

	"github.com/pico-marine/telemetry/device"
	"github.com/pico-marine/telemetry/proto"
	"github.com/pico-marine/telemetry/transport"
)

// Requester is the synchronous request/response half of a transport.
// transport.TCP and transport.MQTT both satisfy it; a Client is
// indifferent to which one it was built with.
type Requester interface {
	Request(typ proto.MessageType, payload []byte) (*proto.Message, error)
}

// Client is the high-level facade: typed operations built on a
// Requester for request/response work and an optional UDP transport
// for broadcast ingestion and discovery.
type Client struct {
	req Requester
	udp *transport.UDP

	mu       sync.Mutex
	listener *udpListener
}

// New returns a Client that issues requests over req. udp may be nil if
// the caller never intends to start a broadcast listener.
func New(req Requester, udp *transport.UDP) *Client {
	return &Client{req: req, udp: udp}
}

// GetSystemInfo returns the controller's serial number and firmware
// version string ("{major}.{minor}").
func (c *Client) GetSystemInfo() (uint32, string, error) {
	msg, err := c.req.Request(proto.SystemInfo, nil)
	if err != nil {
		return 0, "", err
	}
	fs := proto.NewFields(msg.Payload)
	serial, ok, err := fs.Get(1)
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return 0, "", fmt.Errorf("system info response missing field 1")
	}
	firmware, ok, err := fs.Get(2)
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return 0, "", fmt.Errorf("system info response missing field 2")
	}
	return serial.Uint32(), fmt.Sprintf("%d.%d", firmware.Int16Hi(), firmware.Int16Lo()), nil
}

// FirmwareVersion probes the controller and parses its firmware string
// as a semantic version, so callers can gate behavior on firmware
// capability (e.g. "history broadcasts only exist from 1.12 onward")
// instead of string-comparing "{hi}.{lo}" themselves.
func (c *Client) FirmwareVersion() (*version.Version, error) {
	_, firmware, err := c.GetSystemInfo()
	if err != nil {
		return nil, err
	}
	v, err := version.NewVersion(firmware)
	if err != nil {
		return nil, fmt.Errorf("parsing firmware version %q: %w", firmware, err)
	}
	return v, nil
}

// GetCounts returns the controller's highest device and sensor index,
// zero-indexed (a reported count of 19 means indices 0..19 are valid).
func (c *Client) GetCounts() (int, int, error) {
	msg, err := c.req.Request(proto.DeviceSensorCount, nil)
	if err != nil {
		return 0, 0, err
	}
	fs := proto.NewFields(msg.Payload)
	deviceCount, ok, err := fs.Get(1)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, fmt.Errorf("device/sensor count response missing field 1")
	}
	sensorCount, ok, err := fs.Get(2)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, fmt.Errorf("device/sensor count response missing field 2")
	}
	return int(deviceCount.Int32()), int(sensorCount.Int32()), nil
}

// deviceInfoPayload is the fixed, bit-exact DEVICE_INFO request body for
// device index id.
func deviceInfoPayload(id byte) []byte {
	return []byte{0xFF, 0x00, 0x01, 0x00, 0x00, 0x00, id, 0xFF, 0x01, 0x03, 0x00, 0x00, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x00, 0x00}
}

// sensorInfoPayload is the fixed, bit-exact SENSOR_INFO request body for
// sensor index id.
func sensorInfoPayload(id byte) []byte {
	return []byte{0xFF, 0x01, 0x01, 0x00, 0x00, 0x00, id, 0xFF, 0x02, 0x01, 0x00, 0x00, 0x00, 0x00}
}

// GetDevice fetches and type-decodes a single device by index.
func (c *Client) GetDevice(id int) (*device.Device, error) {
	msg, err := c.req.Request(proto.DeviceInfo, deviceInfoPayload(byte(id)))
	if err != nil {
		return nil, err
	}
	return device.NewDevice(proto.NewFields(msg.Payload))
}

// GetDevices fetches every device index the controller advertises.
// excludeSystem skips index 0, the SystemDevice slot present on every
// controller.
func (c *Client) GetDevices(excludeSystem bool) (map[int]*device.Device, error) {
	deviceCount, _, err := c.GetCounts()
	if err != nil {
		return nil, err
	}
	start := 0
	if excludeSystem {
		start = 1
	}
	devices := make(map[int]*device.Device, deviceCount-start+1)
	for idx := start; idx <= deviceCount; idx++ {
		d, err := c.GetDevice(idx)
		if err != nil {
			return nil, fmt.Errorf("get device %d: %w", idx, err)
		}
		devices[idx] = d
	}
	return devices, nil
}

// GetSensor fetches and type-decodes a single sensor by index.
func (c *Client) GetSensor(id int) (*device.Sensor, error) {
	msg, err := c.req.Request(proto.SensorInfo, sensorInfoPayload(byte(id)))
	if err != nil {
		return nil, err
	}
	return device.NewSensor(proto.NewFields(msg.Payload))
}

// GetSensors fetches every sensor index the controller advertises.
func (c *Client) GetSensors() (map[int]*device.Sensor, error) {
	_, sensorCount, err := c.GetCounts()
	if err != nil {
		return nil, err
	}
	sensors := make(map[int]*device.Sensor, sensorCount+1)
	for idx := 0; idx <= sensorCount; idx++ {
		s, err := c.GetSensor(idx)
		if err != nil {
			return nil, fmt.Errorf("get sensor %d: %w", idx, err)
		}
		sensors[idx] = s
	}
	return sensors, nil
}

// GetSensorsState requests a SENSORS_STATE snapshot and returns it as a
// sensor-id to field map, without touching any live Sensor objects.
func (c *Client) GetSensorsState() (map[uint8]proto.Field, error) {
	msg, err := c.req.Request(proto.SensorsState, nil)
	if err != nil {
		return nil, err
	}
	return proto.NewFields(msg.Payload).AsMap()
}

// UpdateSensorsState requests a SENSORS_STATE snapshot and mutates only
// the StateField of sensors whose id appears in the response; sensors
// with no matching entry keep their previous StateField untouched.
func (c *Client) UpdateSensorsState(sensors map[int]*device.Sensor) error {
	byID, err := c.GetSensorsState()
	if err != nil {
		return err
	}
	for _, s := range sensors {
		if f, ok := byID[uint8(s.ID())]; ok {
			fCopy := f
			s.StateField = &fCopy
		}
	}
	return nil
}
