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
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pico-marine/telemetry/proto"
	"github.com/pico-marine/telemetry/transport"
)

func udpClientPair(t *testing.T) (*transport.UDP, *net.UDPConn, func()) {
	t.Helper()
	u := transport.NewUDP("127.0.0.1", 0)
	require.NoError(t, u.Open())

	localAddr, ok := u.LocalAddr().(*net.UDPAddr)
	require.True(t, ok)
	sender, err := net.DialUDP("udp", nil, localAddr)
	require.NoError(t, err)

	return u, sender, func() {
		sender.Close()
		u.Close()
	}
}

func TestStartStopUDPListener(t *testing.T) {
	u, sender, cleanup := udpClientPair(t)
	defer cleanup()

	c := New(nil, u)
	received := make(chan transport.Datagram, 1)
	require.NoError(t, c.StartUDPListener(context.Background(), func(d transport.Datagram) {
		received <- d
	}))

	frame := proto.Build(&proto.Message{Type: proto.SystemInfo})
	_, err := sender.Write(frame)
	require.NoError(t, err)

	select {
	case d := <-received:
		assert.Equal(t, proto.SystemInfo, d.Message.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for datagram")
	}

	require.NoError(t, c.StopUDPListener())
}

func TestStartUDPListenerTwiceFails(t *testing.T) {
	u, _, cleanup := udpClientPair(t)
	defer cleanup()

	c := New(nil, u)
	require.NoError(t, c.StartUDPListener(context.Background(), func(transport.Datagram) {}))
	defer c.StopUDPListener()

	err := c.StartUDPListener(context.Background(), func(transport.Datagram) {})
	assert.ErrorIs(t, err, &ClientError{Kind: UDPListenerAlreadyRunning})
}

func TestStopUDPListenerWithoutStartFails(t *testing.T) {
	c := New(nil, nil)
	err := c.StopUDPListener()
	assert.ErrorIs(t, err, &ClientError{Kind: UDPListenerNotRunning})
}

func TestStartUDPListenerWithoutUDPFails(t *testing.T) {
	c := New(nil, nil)
	err := c.StartUDPListener(context.Background(), func(transport.Datagram) {})
	assert.ErrorIs(t, err, &ClientError{Kind: UDPListenerNotRunning})
}
