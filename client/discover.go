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
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pico-marine/telemetry/transport"
)

// Discovered is the outcome of a passive discovery probe: the IP the
// broadcast arrived from, and whatever the subsequent TCP probe managed
// to read. A zero Discovered (empty IP) means discovery timed out
// without hearing a single broadcast.
type Discovered struct {
	IP       string
	Serial   uint32
	Firmware string
}

// Discover listens on udpHost for a single broadcast datagram, then
// opens a short-lived TCP connection to the sender to read its system
// info. It never returns an error for a clean timeout or a failed
// probe: a partially, or entirely, zero Discovered and a nil error both
// mean "nothing conclusive found", matching the passive nature of the
// operation. A non-nil error means the UDP socket itself could not be
// opened.
func Discover(ctx context.Context, udpHost string, udpPort int, timeout time.Duration) (Discovered, error) {
	logrus.Info("discovering simarine device via udp broadcast")

	udp := transport.NewUDP(udpHost, udpPort)
	if err := udp.Open(); err != nil {
		return Discovered{}, err
	}

	recvCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(recvCtx)

	// One goroutine closes the socket the moment the bound is reached,
	// whether that bound is the timeout or a successful receive
	// elsewhere in the group; the other blocks on the single read that
	// closing unblocks with net.ErrClosed.
	g.Go(func() error {
		<-gctx.Done()
		return udp.Close()
	})

	var datagram transport.Datagram
	g.Go(func() error {
		d, err := udp.Recv()
		if err != nil {
			return nil
		}
		datagram = d
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil {
		return Discovered{}, err
	}

	if datagram.Peer == nil {
		logrus.Info("discovery timed out")
		return Discovered{}, nil
	}
	peerIP := datagram.Peer.IP.String()

	logrus.Infof("found device at %s, probing system information", peerIP)
	// The broadcast's source address carries no usable TCP port, so the
	// probe always targets the controller's default management port.
	tcp := transport.NewTCP(fmt.Sprintf("%s:%d", peerIP, transport.DefaultTCPPort), 0)
	if err := tcp.Open(); err != nil {
		logrus.WithError(err).Warn("failed to probe system information")
		return Discovered{IP: peerIP}, nil
	}
	defer tcp.Close()

	c := New(tcp, nil)
	serial, firmware, err := c.GetSystemInfo()
	if err != nil {
		logrus.WithError(err).Warn("failed to probe system information")
		return Discovered{IP: peerIP}, nil
	}

	logrus.Infof("simarine device: ip=%s serial=%d firmware=%s", peerIP, serial, firmware)
	return Discovered{IP: peerIP, Serial: serial, Firmware: firmware}, nil
}
