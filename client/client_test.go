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
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pico-marine/telemetry/device"
	"github.com/pico-marine/telemetry/proto"
)

// fakeRequester answers Request by type, recording every call it
// received. Requester is a single-method interface, small enough that a
// hand-rolled fake is clearer here than a generated mock.
type fakeRequester struct {
	responses map[proto.MessageType][]byte
	calls     []proto.MessageType
	err       error
}

func (f *fakeRequester) Request(typ proto.MessageType, payload []byte) (*proto.Message, error) {
	f.calls = append(f.calls, typ)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.responses[typ]
	if !ok {
		return nil, fmt.Errorf("fakeRequester: no response stubbed for %s", typ)
	}
	return &proto.Message{Type: typ, Payload: body}, nil
}

func encodeField(id uint8, v int32) []byte {
	b := make([]byte, 7)
	b[0] = 0xFF
	b[1] = id
	b[2] = byte(proto.FieldInt)
	binary.BigEndian.PutUint32(b[3:], uint32(v))
	return b
}

func TestGetSystemInfo(t *testing.T) {
	serial := make([]byte, 7)
	serial[0] = 0xFF
	serial[1] = 1
	serial[2] = byte(proto.FieldInt)
	binary.BigEndian.PutUint32(serial[3:], 123456)

	firmware := make([]byte, 7)
	firmware[0] = 0xFF
	firmware[1] = 2
	firmware[2] = byte(proto.FieldInt)
	binary.BigEndian.PutUint16(firmware[3:5], 1)
	binary.BigEndian.PutUint16(firmware[5:7], 14)

	req := &fakeRequester{responses: map[proto.MessageType][]byte{
		proto.SystemInfo: append(append([]byte{}, serial...), firmware...),
	}}
	c := New(req, nil)

	gotSerial, gotFirmware, err := c.GetSystemInfo()
	require.NoError(t, err)
	assert.Equal(t, uint32(123456), gotSerial)
	assert.Equal(t, "1.14", gotFirmware)
}

func TestGetCounts(t *testing.T) {
	req := &fakeRequester{responses: map[proto.MessageType][]byte{
		proto.DeviceSensorCount: append(encodeField(1, 3), encodeField(2, 7)...),
	}}
	c := New(req, nil)

	devices, sensors, err := c.GetCounts()
	require.NoError(t, err)
	assert.Equal(t, 3, devices)
	assert.Equal(t, 7, sensors)
}

func TestGetDevicesExcludesSystem(t *testing.T) {
	req := &fakeRequester{responses: map[proto.MessageType][]byte{
		proto.DeviceSensorCount: append(encodeField(1, 2), encodeField(2, 0)...),
		proto.DeviceInfo:        append(encodeField(0, 1), encodeField(1, int32(device.KindTank))...),
	}}
	c := New(req, nil)

	devices, err := c.GetDevices(true)
	require.NoError(t, err)
	assert.Len(t, devices, 2)
	_, hasSystemSlot := devices[0]
	assert.False(t, hasSystemSlot)
	assert.Equal(t, device.KindTank, devices[1].Kind)
}

func TestUpdateSensorsStateOnlyTouchesMatchedIDs(t *testing.T) {
	voltageFields := append(append(append(
		encodeField(1, 1), encodeField(2, int32(device.SensorVoltage))...),
		encodeField(3, 0)...), encodeField(4, 0)...)
	s1, err := device.NewSensor(proto.NewFields(voltageFields))
	require.NoError(t, err)

	unmatchedFields := append(append(append(
		encodeField(1, 99), encodeField(2, int32(device.SensorVoltage))...),
		encodeField(3, 0)...), encodeField(4, 0)...)
	s99, err := device.NewSensor(proto.NewFields(unmatchedFields))
	require.NoError(t, err)

	stateField := make([]byte, 7)
	stateField[0] = 0xFF
	stateField[1] = 1
	stateField[2] = byte(proto.FieldInt)
	binary.BigEndian.PutUint32(stateField[3:], 12000)

	req := &fakeRequester{responses: map[proto.MessageType][]byte{
		proto.SensorsState: stateField,
	}}
	c := New(req, nil)

	require.NoError(t, c.UpdateSensorsState(map[int]*device.Sensor{1: s1, 99: s99}))
	require.NotNil(t, s1.StateField)
	assert.Equal(t, int32(12000), s1.StateField.Int32())
	assert.Nil(t, s99.StateField)
}
