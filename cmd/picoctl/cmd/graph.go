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

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pico-marine/telemetry/proto"
	"github.com/pico-marine/telemetry/transport"
)

var (
	graphConvert bool
	graphOut     string
)

var graphCmd = &cobra.Command{
	Use:   "graph pressure-history",
	Short: "Plot the 72-hour atmospheric pressure history broadcast",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

func init() {
	RootCmd.AddCommand(graphCmd)
	graphCmd.Flags().BoolVar(&graphConvert, "convert", false, "scale raw samples to millibars (x0.01) instead of plotting raw uint16 values")
	graphCmd.Flags().StringVar(&graphOut, "out", "pressure-history.png", "output PNG path")
}

func runGraph(_ *cobra.Command, args []string) error {
	if args[0] != "pressure-history" {
		return fmt.Errorf("unknown graph target %q, want \"pressure-history\"", args[0])
	}
	ConfigureVerbosity()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := SignalContext()
	defer cancel()

	udp := transport.NewUDP(cfg.UDPHost, cfg.UDPPort)
	if err := udp.Open(); err != nil {
		return fmt.Errorf("opening udp listener: %w", err)
	}
	defer udp.Close()

	samples, err := waitForPressureHistory(ctx, udp)
	if err != nil {
		return err
	}

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		v := float64(s)
		if graphConvert {
			v *= 0.01
		}
		// samples arrive newest-first; plot hours-ago on the x axis.
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}

	p := plot.New()
	p.Title.Text = "72-hour atmospheric pressure history"
	p.X.Label.Text = "hours ago"
	if graphConvert {
		p.Y.Label.Text = "millibars"
	} else {
		p.Y.Label.Text = "raw sample"
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building pressure-history plot: %w", err)
	}
	p.Add(line)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, graphOut); err != nil {
		return fmt.Errorf("saving %s: %w", graphOut, err)
	}
	fmt.Println(graphOut)
	return nil
}

// waitForPressureHistory blocks until a type-0xC1 broadcast arrives and
// returns its decoded TIMESERIES samples, newest-first. It stops and
// returns ctx.Err() if ctx is canceled first.
func waitForPressureHistory(ctx context.Context, udp *transport.UDP) ([]uint16, error) {
	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make(chan []uint16, 1)
	listenErr := make(chan error, 1)

	go func() {
		listenErr <- udp.Listen(listenCtx, func(d transport.Datagram) {
			if d.Message.Type != proto.AtmosphericPressureHist {
				return
			}
			fields, err := proto.NewFields(d.Message.Payload).Items()
			if err != nil {
				return
			}
			for _, f := range fields {
				if f.Type == proto.FieldTimeseries {
					select {
					case result <- f.Timeseries():
						cancel()
					default:
					}
					return
				}
			}
		})
	}()

	select {
	case samples := <-result:
		return samples, nil
	case err := <-listenErr:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
