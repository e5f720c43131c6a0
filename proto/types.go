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

// Package proto implements the Simarine Pico wire protocol: frame
// encoding/decoding, the nonstandard CRC-16, and the TLV field cursor
// that walks a decoded frame's payload.
package proto

import "fmt"

// MessageType identifies the kind of a Message. Values are the
// controller's own command/response identifiers, discovered through
// packet captures; several are observed but undocumented and are
// recognized without being given invented semantics.
type MessageType uint8

// Known message types.
const (
	SystemInfo               MessageType = 0x01
	DeviceSensorCount        MessageType = 0x02
	SensorInfo               MessageType = 0x20
	DeviceInfo               MessageType = 0x41
	SensorsState             MessageType = 0xB0
	AtmosphericPressureHist  MessageType = 0xC1
	Unknown03                MessageType = 0x03
	Unknown10                MessageType = 0x10
	Unknown50                MessageType = 0x50
	UnknownAA                MessageType = 0xAA
)

var messageTypeNames = map[MessageType]string{
	SystemInfo:              "SYSTEM_INFO",
	DeviceSensorCount:       "DEVICE_SENSOR_COUNT",
	SensorInfo:              "SENSOR_INFO",
	DeviceInfo:              "DEVICE_INFO",
	SensorsState:            "SENSORS_STATE",
	AtmosphericPressureHist: "ATMOSPHERIC_PRESSURE_HISTORY",
	Unknown03:               "UNKNOWN_03",
	Unknown10:               "UNKNOWN_10",
	Unknown50:               "UNKNOWN_50",
	UnknownAA:               "UNKNOWN_AA",
}

// String implements fmt.Stringer.
func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MessageType(0x%02X)", uint8(t))
}

// Known returns true when t is one of the recognized message types
// above. Recognizing a type is not the same as understanding its
// payload semantics: Unknown03/Unknown10/Unknown50/UnknownAA are
// recognized but parsed generically.
func (t MessageType) Known() bool {
	_, ok := messageTypeNames[t]
	return ok
}
