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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/pico-marine/telemetry/proto"
)

// TestGetCountsWithGeneratedMock exercises the MockGen-style
// MockRequester where call-order and argument matching matter, as
// opposed to fakeRequester's response-by-type table.
func TestGetCountsWithGeneratedMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockRequester(ctrl)

	body := append(encodeField(1, 5), encodeField(2, 11)...)
	m.EXPECT().
		Request(proto.DeviceSensorCount, gomock.Nil()).
		Return(&proto.Message{Type: proto.DeviceSensorCount, Payload: body}, nil)

	c := New(m, nil)
	devices, sensors, err := c.GetCounts()
	require.NoError(t, err)
	assert.Equal(t, 5, devices)
	assert.Equal(t, 11, sensors)
}

func TestFirmwareVersionWithGeneratedMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockRequester(ctrl)

	serial := make([]byte, 7)
	serial[0] = 0xFF
	serial[1] = 1
	serial[2] = byte(proto.FieldInt)
	binary.BigEndian.PutUint32(serial[3:], 1)

	firmware := make([]byte, 7)
	firmware[0] = 0xFF
	firmware[1] = 2
	firmware[2] = byte(proto.FieldInt)
	binary.BigEndian.PutUint16(firmware[3:5], 1)
	binary.BigEndian.PutUint16(firmware[5:7], 12)

	m.EXPECT().
		Request(proto.SystemInfo, gomock.Nil()).
		Return(&proto.Message{Type: proto.SystemInfo, Payload: append(append([]byte{}, serial...), firmware...)}, nil)

	c := New(m, nil)
	v, err := c.FirmwareVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.12.0", v.String())
}
