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

package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pico-marine/telemetry/proto"
)

func deviceInfoFields(t *testing.T, id, typeID int32) *proto.Fields {
	t.Helper()
	payload := append(encodeInt(0, id), encodeInt(1, typeID)...)
	return proto.NewFields(payload)
}

func TestTankDeviceTypeName(t *testing.T) {
	fs := deviceInfoFields(t, 1, int32(KindTank))
	d, err := NewDevice(fs)
	require.NoError(t, err)
	assert.Equal(t, "tank", d.Kind.String())
}

func TestDeviceMissingNameField(t *testing.T) {
	fs := deviceInfoFields(t, 1, int32(KindTank))
	d, err := NewDevice(fs)
	require.NoError(t, err)
	_, ok := d.Name()
	assert.False(t, ok)
}

func TestUnknownDeviceKindFallsBackToBase(t *testing.T) {
	fs := deviceInfoFields(t, 1, 42)
	d, err := NewDevice(fs)
	require.NoError(t, err)
	assert.Equal(t, "unknown", d.Kind.String())
	assert.NotContains(t, d.Attrs(), "parent_device_id")
}

func TestBatteryDeviceAttrs(t *testing.T) {
	payload := append(append(append(
		encodeInt(0, 1), encodeInt(1, int32(KindBattery))...),
		encodeInt(8, int32(BatteryLiFePO4))...),
		encodeInt(5, 9500)...) // capacity_c20 raw, *0.01 = 95.0
	fs := proto.NewFields(payload)

	d, err := NewDevice(fs)
	require.NoError(t, err)
	attrs := d.Attrs()
	assert.Equal(t, BatteryLiFePO4, attrs["battery_type"])
	assert.InDelta(t, 95.0, attrs["capacity_c20"], 0.0001)
}
