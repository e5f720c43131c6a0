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

// Package cmd is the picoctl command tree: a cobra root plus one file
// per leaf command, each registering itself in init().
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pico-marine/telemetry/client"
)

// RootCmd is picoctl's entry point, exported so it can be extended
// without touching this package.
var RootCmd = &cobra.Command{
	Use:   "picoctl",
	Short: "Inspect and observe a Simarine Pico marine telemetry controller",
}

var (
	rootDebugFlag  bool
	rootHostFlag   string
	rootConfigFlag string
)

func init() {
	RootCmd.PersistentFlags().BoolVar(&rootDebugFlag, "debug", false, "enable debug logging")
	RootCmd.PersistentFlags().StringVar(&rootHostFlag, "host", "", "controller host or IP; empty triggers UDP auto-discovery")
	RootCmd.PersistentFlags().StringVar(&rootConfigFlag, "config", "", "path to a YAML config file")
}

// ConfigureVerbosity sets logrus's level from --debug. Any leaf command
// that runs before logging anything should call this first.
func ConfigureVerbosity() {
	log.SetLevel(log.InfoLevel)
	if rootDebugFlag {
		log.SetLevel(log.DebugLevel)
	}
}

// LoadConfig layers --config (if given) under DefaultConfig, then
// applies --host as an override, matching the source CLI's flag wins
// over file precedence.
func LoadConfig() (*client.Config, error) {
	cfg := client.DefaultConfig()
	if rootConfigFlag != "" {
		fromFile, err := client.ReadConfig(rootConfigFlag)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", rootConfigFlag, err)
		}
		cfg = fromFile
	}
	if rootHostFlag != "" {
		cfg.Host = rootHostFlag
		cfg.AutoDiscover = false
	}
	return cfg, nil
}

// SignalContext returns a context canceled on SIGINT/SIGTERM, the
// Go-idiomatic replacement for the source CLI's signal.signal +
// threading.Event pairing.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute runs the command tree, exiting nonzero on an unhandled error.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
