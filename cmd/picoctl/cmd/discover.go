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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pico-marine/telemetry/client"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Listen for one UDP broadcast and report the sending controller's address and firmware",
	RunE:  runDiscover,
}

func init() {
	RootCmd.AddCommand(discoverCmd)
}

func runDiscover(_ *cobra.Command, _ []string) error {
	ConfigureVerbosity()
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := SignalContext()
	defer cancel()

	found, err := client.Discover(ctx, cfg.UDPHost, cfg.UDPPort, cfg.DiscoverTimeout)
	if err != nil {
		return fmt.Errorf("discovering controller: %w", err)
	}
	if found.IP == "" {
		return fmt.Errorf("no controller responded within %s", cfg.DiscoverTimeout)
	}

	fmt.Printf("ip=%s serial=%d firmware=%s\n", found.IP, found.Serial, found.Firmware)
	return nil
}
