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
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pico-marine/telemetry/device"
)

var (
	runPretty      bool
	runMetricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch and print every device and sensor once",
	RunE:  runRun,
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runPretty, "pretty", false, "render as tables instead of JSON")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "if set, serve prometheus metrics on this address while running")
}

func runRun(_ *cobra.Command, _ []string) error {
	ConfigureVerbosity()
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := SignalContext()
	defer cancel()

	maybeServeMetrics(ctx, runMetricsAddr)

	c, closeFn, err := Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	devices, err := c.GetDevices(false)
	if err != nil {
		return fmt.Errorf("listing devices: %w", err)
	}
	sensors, err := c.GetSensors()
	if err != nil {
		return fmt.Errorf("listing sensors: %w", err)
	}
	if err := c.UpdateSensorsState(sensors); err != nil {
		log.WithError(err).Warn("failed to refresh sensor state")
	}

	if runPretty {
		printDevicesTable(devices)
		printSensorsTable(sensors)
		return nil
	}
	return printSnapshotJSON(devices, sensors)
}

func printDevicesTable(devices map[int]*device.Device) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("id", "type", "name")
	for id, d := range devices {
		name, _ := d.Name()
		table.Append(fmt.Sprint(id), d.Kind.String(), name)
	}
	table.Render()
}

func printSensorsTable(sensors map[int]*device.Sensor) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("id", "type", "device_id", "value", "unit")
	for id, s := range sensors {
		value := ""
		if s.StateField != nil {
			value = fmt.Sprintf("%v", s.Attrs()[s.Unit()])
		}
		table.Append(fmt.Sprint(id), s.Kind.String(), fmt.Sprint(s.DeviceID()), value, s.Unit())
	}
	table.Render()
}

func printSnapshotJSON(devices map[int]*device.Device, sensors map[int]*device.Sensor) error {
	snapshot := struct {
		Devices map[int]map[string]any `json:"devices"`
		Sensors map[int]map[string]any `json:"sensors"`
	}{
		Devices: make(map[int]map[string]any, len(devices)),
		Sensors: make(map[int]map[string]any, len(sensors)),
	}
	for id, d := range devices {
		snapshot.Devices[id] = d.Attrs()
	}
	for id, s := range sensors {
		snapshot.Sensors[id] = s.Attrs()
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}
