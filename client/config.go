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
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config specifies how to reach a controller and which transports to
// wire up. It is the on-disk counterpart of the flags picoctl accepts.
type Config struct {
	Host string `yaml:"host"`

	TCPPort    int           `yaml:"tcp_port"`
	TCPTimeout time.Duration `yaml:"tcp_timeout"`

	UDPHost         string        `yaml:"udp_host"`
	UDPPort         int           `yaml:"udp_port"`
	AutoDiscover    bool          `yaml:"auto_discover"`
	DiscoverTimeout time.Duration `yaml:"discover_timeout"`

	MQTTBrokerAddr string        `yaml:"mqtt_broker_addr"`
	MQTTSerial     uint32        `yaml:"mqtt_serial"`
	MQTTTimeout    time.Duration `yaml:"mqtt_timeout"`
	UseMQTT        bool          `yaml:"use_mqtt"`
}

// DefaultConfig returns a Config with the controller's documented
// defaults: TCP port 5001, UDP broadcast port 43210, and auto-discovery
// enabled when no host is given.
func DefaultConfig() *Config {
	return &Config{
		TCPPort:         5001,
		TCPTimeout:      5 * time.Second,
		UDPPort:         43210,
		AutoDiscover:    true,
		DiscoverTimeout: 5 * time.Second,
		MQTTTimeout:     5 * time.Second,
	}
}

// Validate reports whether c is sane enough to build transports from.
func (c *Config) Validate() error {
	if c.Host == "" && !c.AutoDiscover && !c.UseMQTT {
		return fmt.Errorf("host must be provided, auto_discover must be true, or use_mqtt must be true")
	}
	if c.TCPPort <= 0 || c.TCPPort > 65535 {
		return fmt.Errorf("tcp_port out of range: %d", c.TCPPort)
	}
	if c.UDPPort <= 0 || c.UDPPort > 65535 {
		return fmt.Errorf("udp_port out of range: %d", c.UDPPort)
	}
	if c.DiscoverTimeout <= 0 {
		return fmt.Errorf("discover_timeout must be greater than zero")
	}
	if c.UseMQTT && c.MQTTBrokerAddr == "" {
		return fmt.Errorf("mqtt_broker_addr must be set when use_mqtt is true")
	}
	return nil
}

// ReadConfig reads and validates a Config from a YAML file, layering it
// over DefaultConfig.
func ReadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating %q: %w", path, err)
	}
	return c, nil
}
