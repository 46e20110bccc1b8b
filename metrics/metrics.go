// metrics.go - Prometheus counters for frames, drains and handshakes.
// Copyright (C) 2026  tug-dev contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package metrics exposes the Prometheus counters tolliver updates as it
// moves frames. Registration is opt-in: a nil *Metrics simply drops every
// observation, so a process that never calls New pays nothing.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the set of counters a Connection/Listener/Outbox update.
type Metrics struct {
	UnreliableSends  prometheus.Counter
	DurableSends     prometheus.Counter
	OutboxAppends    prometheus.Counter
	OutboxDeletes    prometheus.Counter
	OutboxDrained    prometheus.Counter
	HandshakeAccepts prometheus.Counter
	HandshakeRejects prometheus.Counter
}

// New registers tolliver's counters against reg and returns a Metrics
// ready to be passed to tolliver.Connection/Listener constructors. Pass
// prometheus.DefaultRegisterer for the common case.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UnreliableSends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tolliver_frames_unreliable_sent_total",
			Help: "Frames written via UnreliableSend.",
		}),
		DurableSends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tolliver_frames_durable_sent_total",
			Help: "Frames successfully delivered via DurableSend.",
		}),
		OutboxAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tolliver_outbox_appends_total",
			Help: "Records appended to the outbox.",
		}),
		OutboxDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tolliver_outbox_deletes_total",
			Help: "Records deleted from the outbox.",
		}),
		OutboxDrained: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tolliver_outbox_drained_total",
			Help: "Outbox records replayed on Connection construction.",
		}),
		HandshakeAccepts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tolliver_handshakes_accepted_total",
			Help: "Inbound handshakes that completed successfully.",
		}),
		HandshakeRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tolliver_handshakes_rejected_total",
			Help: "Inbound handshakes rejected or failed before completion.",
		}),
	}
	reg.MustRegister(m.UnreliableSends, m.DurableSends, m.OutboxAppends, m.OutboxDeletes,
		m.OutboxDrained, m.HandshakeAccepts, m.HandshakeRejects)
	return m
}

// Every method below is a nil-receiver-safe no-op when m is nil, so a
// Connection/Listener/Outbox that was never given a *Metrics can call
// these unconditionally.

func (m *Metrics) IncUnreliableSends() {
	if m != nil {
		m.UnreliableSends.Inc()
	}
}

func (m *Metrics) IncDurableSends() {
	if m != nil {
		m.DurableSends.Inc()
	}
}

func (m *Metrics) AddOutboxDrained(n int) {
	if m != nil {
		m.OutboxDrained.Add(float64(n))
	}
}

func (m *Metrics) IncOutboxAppends() {
	if m != nil {
		m.OutboxAppends.Inc()
	}
}

func (m *Metrics) IncOutboxDeletes() {
	if m != nil {
		m.OutboxDeletes.Inc()
	}
}

func (m *Metrics) IncHandshakeAccepts() {
	if m != nil {
		m.HandshakeAccepts.Inc()
	}
}

func (m *Metrics) IncHandshakeRejects() {
	if m != nil {
		m.HandshakeRejects.Inc()
	}
}
