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
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/pico-marine/telemetry/metrics"
)

// maybeServeMetrics starts an HTTP server exposing m's prometheus
// registry at addr, shutting down when ctx is canceled. It is a no-op
// when addr is empty, so leaf commands can call it unconditionally.
func maybeServeMetrics(ctx context.Context, addr string) *metrics.Metrics {
	if addr == "" {
		return nil
	}
	m := metrics.New()
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Infof("serving metrics on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server exited")
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	return m
}
