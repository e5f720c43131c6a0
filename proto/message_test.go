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

package proto

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func TestCRCVectors(t *testing.T) {
	cases := []struct {
		name  string
		frame string
	}{
		{"request system info", "00 00 00 00 00 FF 01 00 00 00 00 00 03 FF 89 B8"},
		{"request device sensor count", "00 00 00 00 00 FF 02 00 00 00 00 00 03 FF 76 88"},
		{
			"response system info",
			"00 00 00 00 00 FF 01 84 B3 EE 93 00 11" +
				"FF 01 01 84 B3 EE 93 FF 02 01 00 01 00 15" +
				"FF 97 A3",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustHex(t, tc.frame)
			_, err := Parse(b)
			assert.NoError(t, err)
		})
	}
}

func TestCRCVectorRejectsFlippedBit(t *testing.T) {
	b := mustHex(t, "00 00 00 00 00 FF 01 00 00 00 00 00 03 FF 89 B9")
	_, err := Parse(b)
	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, CRCMismatch, pe.Kind)
}

func TestBuildParseRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		typ     MessageType
		payload []byte
	}{
		{"empty payload", SystemInfo, nil},
		{"device info request", DeviceInfo, mustHex(t, "FF 00 01 00 00 00 07 FF 01 03 00 00 00 00 FF 00 00 00 00")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Message{Type: tc.typ, Payload: tc.payload}
			wire := Build(m)
			got, err := Parse(wire)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, got.Type)
			assert.Equal(t, uint32(0), got.Serial)
			assert.Equal(t, tc.payload, got.Payload)
		})
	}
}

func TestParseRejectsShortFrame(t *testing.T) {
	_, err := Parse([]byte{0, 0, 0})
	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, InvalidHeaderLength, pe.Kind)
}

func TestParseRejectsBadPreamble(t *testing.T) {
	b := mustHex(t, "00 00 00 00 01 FF 01 00 00 00 00 00 03 FF 89 B8")
	_, err := Parse(b)
	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, InvalidHeaderPreamble, pe.Kind)
}

func TestParseRejectsBadHeaderMarker(t *testing.T) {
	b := mustHex(t, "00 00 00 00 00 AA 01 00 00 00 00 00 03 FF 89 B8")
	_, err := Parse(b)
	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, InvalidHeaderMarker, pe.Kind)
}

func TestParseRejectsBadChecksumMarker(t *testing.T) {
	b := mustHex(t, "00 00 00 00 00 FF 01 00 00 00 00 00 03 AA 89 B8")
	_, err := Parse(b)
	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, InvalidChecksumMarker, pe.Kind)
}

func TestExpectRejectsTypeMismatch(t *testing.T) {
	b := mustHex(t, "00 00 00 00 00 FF 01 00 00 00 00 00 03 FF 89 B8")
	_, err := Expect(b, DeviceSensorCount)
	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, MessageTypeMismatch, pe.Kind)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "SYSTEM_INFO", SystemInfo.String())
	assert.True(t, SystemInfo.Known())
	assert.False(t, MessageType(0xEE).Known())
	assert.Equal(t, "MessageType(0xEE)", MessageType(0xEE).String())
}
