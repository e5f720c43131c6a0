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

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pico-marine/telemetry/transport"
)

// udpListener tracks the single background goroutine driving
// transport.UDP.Listen, so StartUDPListener/StopUDPListener can refuse
// double-starts and no-op stops with a clear ClientError instead of
// silently leaking or panicking on a nil cancel func. The errgroup gives
// StopUDPListener a single join point even though there is only ever
// one goroutine in flight.
type udpListener struct {
	cancel context.CancelFunc
	group  *errgroup.Group
}

// StartUDPListener begins consuming broadcast datagrams in the
// background, calling handle for each one decoded until StopUDPListener
// is called or ctx is itself canceled by the caller. A handler panic is
// recovered and logged; it never brings down the listener goroutine.
func (c *Client) StartUDPListener(ctx context.Context, handle func(transport.Datagram)) error {
	if c.udp == nil {
		return clientErr(UDPListenerNotRunning, "client was built without a UDP transport")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listener != nil {
		return clientErr(UDPListenerAlreadyRunning, "StartUDPListener called while a listener is already running")
	}

	listenCtx, cancel := context.WithCancel(ctx)
	g, _ := errgroup.WithContext(context.Background())
	c.listener = &udpListener{cancel: cancel, group: g}

	g.Go(func() error {
		err := c.udp.Listen(listenCtx, func(d transport.Datagram) {
			defer func() {
				if r := recover(); r != nil {
					logrus.Errorf("udp listener handler panicked: %v", r)
				}
			}()
			handle(d)
		})
		if err != nil && listenCtx.Err() == nil {
			logrus.Errorf("udp listener exited: %v", err)
			return err
		}
		return nil
	})
	return nil
}

// StopUDPListener cancels the background listener and blocks until its
// goroutine has returned.
func (c *Client) StopUDPListener() error {
	c.mu.Lock()
	l := c.listener
	c.listener = nil
	c.mu.Unlock()

	if l == nil {
		return clientErr(UDPListenerNotRunning, "StopUDPListener called with no listener running")
	}
	l.cancel()
	_ = l.group.Wait()
	return nil
}
