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
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/pico-marine/telemetry/client"
	"github.com/pico-marine/telemetry/transport"
)

// Connect builds a client.Client from cfg, auto-discovering a host over
// UDP broadcast first if none was configured. It returns a close func
// the caller must run when done; close never panics on a partially
// built connection.
func Connect(ctx context.Context, cfg *client.Config) (*client.Client, func(), error) {
	host := cfg.Host
	if host == "" && cfg.AutoDiscover {
		found, err := client.Discover(ctx, cfg.UDPHost, cfg.UDPPort, cfg.DiscoverTimeout)
		if err != nil {
			return nil, func() {}, fmt.Errorf("discovering controller: %w", err)
		}
		if found.IP == "" {
			return nil, func() {}, fmt.Errorf("unable to discover a pico controller via udp broadcast")
		}
		log.Infof("discovered controller at %s", found.IP)
		host = found.IP
	}
	if host == "" {
		return nil, func() {}, fmt.Errorf("no host configured and auto-discovery is disabled")
	}

	tcp := transport.NewTCP(fmt.Sprintf("%s:%d", host, cfg.TCPPort), cfg.TCPTimeout)
	if err := tcp.Open(); err != nil {
		return nil, func() {}, fmt.Errorf("connecting to %s: %w", host, err)
	}

	udp := transport.NewUDP(cfg.UDPHost, cfg.UDPPort)
	udpOpen := udp.Open() == nil

	closeFn := func() {
		_ = tcp.Close()
		if udpOpen {
			_ = udp.Close()
		}
	}

	var udpForClient *transport.UDP
	if udpOpen {
		udpForClient = udp
	}
	return client.New(tcp, udpForClient), closeFn, nil
}
