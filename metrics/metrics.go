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

// Package metrics exposes picoctl's own operational counters over
// Prometheus. A library caller that never touches this package pays
// nothing for it: nothing here runs until Metrics.Handler is mounted.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pico-marine/telemetry/proto"
)

// Metrics holds a self-contained registry for picoctl's counters and
// gauges, independent of the default global prometheus registry so a
// library embedding this package never collides with its host's own
// metrics.
type Metrics struct {
	registry *prometheus.Registry

	FramesParsed   prometheus.Counter
	CRCErrors      prometheus.Counter
	ProtocolErrors *prometheus.CounterVec
	Requests       *prometheus.CounterVec
	UDPListenerUp  prometheus.Gauge
}

// New registers and returns the full metric set on a fresh registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.FramesParsed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "picoctl_frames_parsed_total",
		Help: "Frames successfully decoded from any transport.",
	})
	m.CRCErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "picoctl_crc_errors_total",
		Help: "Frames rejected for a CRC-16 mismatch.",
	})
	m.ProtocolErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "picoctl_protocol_errors_total",
		Help: "Frames rejected during decode, by proto.ErrorKind.",
	}, []string{"kind"})
	m.Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "picoctl_requests_total",
		Help: "Client requests issued, by message type.",
	}, []string{"type"})
	m.UDPListenerUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "picoctl_udp_listener_up",
		Help: "1 while a client's background UDP listener is running, 0 otherwise.",
	})

	m.registry.MustRegister(m.FramesParsed, m.CRCErrors, m.ProtocolErrors, m.Requests, m.UDPListenerUp)
	return m
}

// Registerer exposes the underlying registry so a host process can fold
// these metrics into its own mux alongside its own collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.registry
}

// Handler returns an http.Handler serving this Metrics' registry in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveRequest increments the per-type request counter.
func (m *Metrics) ObserveRequest(typ proto.MessageType) {
	m.Requests.WithLabelValues(typ.String()).Inc()
}

// ObserveDecodeError classifies err and increments the matching
// counter: CRCErrors for a CRC mismatch, ProtocolErrors{kind=} for
// anything else proto.Parse/Expect can reject a frame for.
func (m *Metrics) ObserveDecodeError(err error) {
	var pe *proto.ProtocolError
	if e, ok := err.(*proto.ProtocolError); ok {
		pe = e
	}
	if pe == nil {
		m.ProtocolErrors.WithLabelValues("unknown").Inc()
		return
	}
	if pe.Kind == proto.CRCMismatch {
		m.CRCErrors.Inc()
		return
	}
	m.ProtocolErrors.WithLabelValues(pe.Kind.String()).Inc()
}
