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
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/pico-marine/telemetry/proto"
)

// DefaultTCPPort is the controller's request/response listener port.
const DefaultTCPPort = 5001

// DefaultTimeout is applied to both the initial connect and each
// subsequent request when the caller does not override it.
const DefaultTimeout = 5 * time.Second

// tcpReadBuf is sized for a single response frame; the controller
// answers with exactly one frame per request that fits in one segment.
const tcpReadBuf = 8192

// TCP is a blocking request/response socket to a controller's TCP port.
// A TCP is not safe for concurrent Request calls; serialize them, the
// same way the controller itself is single-outstanding per connection.
type TCP struct {
	addr    string
	timeout time.Duration

	mu   sync.Mutex
	conn net.Conn
}

// NewTCP returns a TCP transport for addr (host:port). timeout governs
// both Open's dial and each Request's round trip; zero selects
// DefaultTimeout.
func NewTCP(addr string, timeout time.Duration) *TCP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCP{addr: addr, timeout: timeout}
}

// Open dials the controller. It is idempotent-forbidden: calling Open on
// an already-open transport fails with AlreadyOpen rather than silently
// replacing the connection.
func (t *TCP) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return transportErr(AlreadyOpen, "tcp transport to %s is already open", t.addr)
	}
	conn, err := net.DialTimeout("tcp", t.addr, t.timeout)
	if err != nil {
		return transportErr(OpenError, "dial %s: %v", t.addr, err)
	}
	t.conn = conn
	return nil
}

// Close releases the underlying socket. It is safe to call on an
// unopened or already-closed transport.
func (t *TCP) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// Request builds a frame for typ/payload, sends it in full, reads one
// response frame, and validates it against typ. On a read or decode
// failure the connection is left open; the caller decides whether to
// reconnect.
func (t *TCP) Request(typ proto.MessageType, payload []byte) (*proto.Message, error) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return nil, transportErr(OpenError, "tcp transport to %s is not open", t.addr)
	}

	frame := proto.Build(&proto.Message{Type: typ, Payload: payload})
	if err := conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, err
	}
	if _, err := conn.Write(frame); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, err
	}
	buf := make([]byte, tcpReadBuf)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return proto.Expect(buf[:n], typ)
}
