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
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pico-marine/telemetry/client"
	"github.com/pico-marine/telemetry/device"
	"github.com/pico-marine/telemetry/proto"
	"github.com/pico-marine/telemetry/transport"
)

var monitorConvert bool

var monitorCmd = &cobra.Command{
	Use:   "monitor pressure <sensor_id>",
	Short: "Print the delta between a live TCP sensor read and the UDP pressure-history head on every broadcast",
	Args:  cobra.ExactArgs(2),
	RunE:  runMonitor,
}

func init() {
	RootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&monitorConvert, "convert", false, "scale the history head sample to millibars (x0.01)")
}

func runMonitor(_ *cobra.Command, args []string) error {
	if args[0] != "pressure" {
		return fmt.Errorf("unknown monitor target %q, want \"pressure\"", args[0])
	}
	sensorID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid sensor id %q: %w", args[1], err)
	}
	ConfigureVerbosity()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := SignalContext()
	defer cancel()

	c, closeFn, err := Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	udp := transport.NewUDP(cfg.UDPHost, cfg.UDPPort)
	if err := udp.Open(); err != nil {
		return fmt.Errorf("opening udp listener: %w", err)
	}
	defer udp.Close()

	return udp.Listen(ctx, func(d transport.Datagram) {
		reportPressureDelta(ctx, c, sensorID, d)
	})
}

func reportPressureDelta(ctx context.Context, c *client.Client, sensorID int, d transport.Datagram) {
	if d.Message.Type != proto.AtmosphericPressureHist {
		return
	}
	fields, err := proto.NewFields(d.Message.Payload).Items()
	if err != nil {
		return
	}
	var head uint16
	found := false
	for _, f := range fields {
		if f.Type == proto.FieldTimeseries {
			samples := f.Timeseries()
			if len(samples) == 0 {
				return
			}
			head = samples[0]
			found = true
			break
		}
	}
	if !found {
		return
	}

	if ctx.Err() != nil {
		return
	}
	s, err := c.GetSensor(sensorID)
	if err != nil {
		log.WithError(err).Warn("failed to read sensor")
		return
	}
	if err := c.UpdateSensorsState(map[int]*device.Sensor{sensorID: s}); err != nil {
		log.WithError(err).Warn("failed to refresh sensor state")
		return
	}
	live, ok := s.Attrs()[s.Unit()].(float64)
	if !ok {
		log.Warn("sensor value is not numeric, skipping delta")
		return
	}

	headVal := float64(head)
	if monitorConvert {
		headVal *= 0.01
	}

	fmt.Printf("%s live=%.3f history_head=%.3f delta=%.3f\n",
		time.Now().Format("15:04:05"), live, headVal, live-headVal)
}
