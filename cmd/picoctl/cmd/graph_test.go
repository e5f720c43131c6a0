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

package cmd

import (
	"context"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pico-marine/telemetry/proto"
	"github.com/pico-marine/telemetry/transport"
)

func pressureHistoryPayload(t *testing.T, samples []uint16) []byte {
	t.Helper()
	payload := []byte{0xFF, 3, 0x0B}
	ts := make([]byte, 4)
	binary.BigEndian.PutUint32(ts, 1)
	payload = append(payload, ts...)
	payload = append(payload, 0xFF)
	payload = append(payload, ts...)
	payload = append(payload, 0xFF)
	require.Less(t, len(samples)/2, 256)
	payload = append(payload, byte(len(samples)/2))
	for i := 0; i+1 < len(samples); i += 2 {
		payload = append(payload, 0xFF)
		hi := make([]byte, 2)
		lo := make([]byte, 2)
		binary.BigEndian.PutUint16(hi, samples[i])
		binary.BigEndian.PutUint16(lo, samples[i+1])
		payload = append(payload, hi...)
		payload = append(payload, lo...)
	}
	return payload
}

func TestWaitForPressureHistoryDecodesSamples(t *testing.T) {
	u := transport.NewUDP("127.0.0.1", 0)
	require.NoError(t, u.Open())
	defer u.Close()

	localAddr, ok := u.LocalAddr().(*net.UDPAddr)
	require.True(t, ok)
	sender, err := net.DialUDP("udp", nil, localAddr)
	require.NoError(t, err)
	defer sender.Close()

	payload := pressureHistoryPayload(t, []uint16{0x560B, 0x560A, 0x5600, 0x5601})
	frame := proto.Build(&proto.Message{Type: proto.AtmosphericPressureHist, Payload: payload})

	go func() {
		time.Sleep(10 * time.Millisecond)
		_, _ = sender.Write(frame)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	samples, err := waitForPressureHistory(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x560B, 0x560A, 0x5600, 0x5601}, samples)
}

func TestWaitForPressureHistoryRespectsContextCancellation(t *testing.T) {
	u := transport.NewUDP("127.0.0.1", 0)
	require.NoError(t, u.Open())
	defer u.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := waitForPressureHistory(ctx, u)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
