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
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/cespare/xxhash"
	"golang.org/x/sys/unix"

	"github.com/pico-marine/telemetry/proto"
)

// DefaultUDPPort is the controller's broadcast port.
const DefaultUDPPort = 43210

// pollInterval bounds how long a blocked read waits before re-checking
// ctx, so cancellation lands within one interval rather than one
// unbounded read.
const pollInterval = 500 * time.Millisecond

// udpReadBuf comfortably fits the largest broadcast this module decodes,
// the 72-hour atmospheric pressure history (1139-byte payload plus
// header and trailer).
const udpReadBuf = 2048

// Datagram pairs a decoded broadcast with the peer that sent it.
type Datagram struct {
	Message *proto.Message
	Peer    *net.UDPAddr
}

// StabilityKey hashes a message's type and payload into a single value
// a consumer can compare across broadcasts to tell a repeat apart from a
// genuine update. The protocol itself carries no sequence number or
// dedup marker; broadcasts simply repeat on an interval, so callers that
// care about "did this change" must hash the content themselves.
func StabilityKey(m *proto.Message) uint64 {
	h := xxhash.New()
	h.Write([]byte{byte(m.Type)})
	h.Write(m.Payload)
	return h.Sum64()
}

// UDP is a datagram socket tuned for ingesting the controller's
// broadcast traffic: SO_REUSEADDR and SO_REUSEPORT so multiple
// processes can observe the same broadcast, and SO_BROADCAST so the
// socket may itself send to the broadcast address if ever needed.
type UDP struct {
	host string
	port int

	mu   sync.Mutex
	conn *net.UDPConn
}

// NewUDP returns a UDP transport bound to host:port. An empty host binds
// to all interfaces; port defaults to DefaultUDPPort when zero.
func NewUDP(host string, port int) *UDP {
	if port == 0 {
		port = DefaultUDPPort
	}
	return &UDP{host: host, port: port}
}

func (u *UDP) controlSockopts(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		if sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); sockErr != nil {
			return
		}
		if sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); sockErr != nil {
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

// Open binds the socket. It is idempotent-forbidden, matching TCP.Open.
func (u *UDP) Open() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.conn != nil {
		return transportErr(AlreadyOpen, "udp transport on port %d is already open", u.port)
	}
	lc := net.ListenConfig{Control: u.controlSockopts}
	pc, err := lc.ListenPacket(context.Background(), "udp", fmt.Sprintf("%s:%d", u.host, u.port))
	if err != nil {
		return transportErr(OpenError, "listen udp :%d: %v", u.port, err)
	}
	u.conn = pc.(*net.UDPConn)
	return nil
}

// LocalAddr returns the socket's bound address, or nil if it is not
// open. Useful for tests and logs that need the actual bound address.
func (u *UDP) LocalAddr() net.Addr {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.conn == nil {
		return nil
	}
	return u.conn.LocalAddr()
}

// Close releases the socket. A blocked Recv unblocks with an error
// wrapping net.ErrClosed; a blocked Listen returns nil.
func (u *UDP) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.conn == nil {
		return nil
	}
	err := u.conn.Close()
	u.conn = nil
	return err
}

// Recv blocks for exactly one datagram and decodes it.
func (u *UDP) Recv() (Datagram, error) {
	u.mu.Lock()
	conn := u.conn
	u.mu.Unlock()
	if conn == nil {
		return Datagram{}, transportErr(OpenError, "udp transport on port %d is not open", u.port)
	}
	buf := make([]byte, udpReadBuf)
	n, peer, err := conn.ReadFromUDP(buf)
	if err != nil {
		return Datagram{}, err
	}
	m, err := proto.Parse(buf[:n])
	if err != nil {
		return Datagram{}, err
	}
	return Datagram{Message: m, Peer: peer}, nil
}

// Listen is a restartable iterator: it calls handle once per decoded
// datagram until ctx is done, at which point it returns ctx.Err() within
// one pollInterval of cancellation. A read timeout is swallowed and
// retried, never treated as termination. If the socket is closed out
// from under Listen, it returns nil - the same clean-shutdown contract
// as a caller-initiated Close.
func (u *UDP) Listen(ctx context.Context, handle func(Datagram)) error {
	u.mu.Lock()
	conn := u.conn
	u.mu.Unlock()
	if conn == nil {
		return transportErr(OpenError, "udp transport on port %d is not open", u.port)
	}

	buf := make([]byte, udpReadBuf)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(pollInterval)); err != nil {
			return err
		}
		n, peer, err := conn.ReadFromUDP(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		m, err := proto.Parse(buf[:n])
		if err != nil {
			continue
		}
		handle(Datagram{Message: m, Peer: peer})
	}
}
