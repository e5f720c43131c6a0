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
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pico-marine/telemetry/client"
	"github.com/pico-marine/telemetry/device"
	"github.com/pico-marine/telemetry/observer"
)

var (
	observeInterval         time.Duration
	observeOnce             bool
	observeFields           string
	observeJSON             bool
	observeIncludeUnchanged bool
	observeReHints          bool
)

var observeCmd = &cobra.Command{
	Use:   "observe device|sensor <id>",
	Short: "Poll a device or sensor and print what changes between polls",
	Args:  cobra.ExactArgs(2),
	RunE:  runObserve,
}

func init() {
	RootCmd.AddCommand(observeCmd)
	observeCmd.Flags().DurationVar(&observeInterval, "interval", time.Second, "poll interval")
	observeCmd.Flags().BoolVar(&observeOnce, "once", false, "poll exactly once and exit")
	observeCmd.Flags().StringVar(&observeFields, "fields", "", "comma-separated attribute name filter")
	observeCmd.Flags().BoolVar(&observeJSON, "json", false, "emit one JSON object per change instead of text")
	observeCmd.Flags().BoolVar(&observeIncludeUnchanged, "include-unchanged", false, "also report attributes that did not change")
	observeCmd.Flags().BoolVar(&observeReHints, "re-hints", false, "annotate each change with a heuristic hint")
}

func runObserve(_ *cobra.Command, args []string) error {
	ConfigureVerbosity()
	kind := args[0]
	if kind != "device" && kind != "sensor" {
		return fmt.Errorf("unknown observe target %q, want \"device\" or \"sensor\"", kind)
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[1], err)
	}

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

	getter, err := observeGetter(c, kind, id)
	if err != nil {
		return err
	}

	o := observer.New(getter, observeInterval)
	if observeFields != "" {
		o.FieldFilter = strings.Split(observeFields, ",")
	}
	o.IncludeUnchanged = observeIncludeUnchanged
	o.ReHints = observeReHints

	renderer := observer.NewRenderer(os.Stdout, os.Stdout.Fd())
	o.OnChange = func(diff observer.Diff, obj observer.Object) {
		if observeJSON {
			_ = renderer.RenderJSON(diff, obj)
			return
		}
		renderer.RenderText(diff, obj)
	}

	if observeOnce {
		_, _, err := o.Sample()
		return err
	}
	return o.Run(ctx)
}

func observeGetter(c *client.Client, kind string, id int) (func() (observer.Object, error), error) {
	switch kind {
	case "device":
		return func() (observer.Object, error) {
			d, err := c.GetDevice(id)
			if err != nil {
				return nil, err
			}
			return d, nil
		}, nil
	case "sensor":
		return func() (observer.Object, error) {
			s, err := c.GetSensor(id)
			if err != nil {
				return nil, err
			}
			if err := c.UpdateSensorsState(map[int]*device.Sensor{id: s}); err != nil {
				return nil, err
			}
			return s, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown observe target %q", kind)
	}
}
