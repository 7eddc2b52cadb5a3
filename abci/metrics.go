// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abci

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks round scheduling, completion, and timeout activity
// across the lifetime of an App. It follows the same registration
// shape as protocol/nova's metrics: one struct of pre-built
// collectors, registered once at construction.
type Metrics struct {
	roundsScheduled *prometheus.CounterVec
	roundsFinished  *prometheus.CounterVec
	timeoutsFired   *prometheus.CounterVec
	currentRound    *prometheus.GaugeVec
	roundCount      prometheus.Gauge
}

// NewMetrics builds and, if registerer is non-nil, registers the
// App's metric collectors. A nil registerer yields usable but
// unregistered collectors, for use in tests that don't want to touch
// the default registry.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		roundsScheduled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "periodengine_rounds_scheduled_total",
			Help: "Number of rounds scheduled, by round class.",
		}, []string{"round"}),
		roundsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "periodengine_rounds_finished_total",
			Help: "Number of rounds that fired an end_block event, by round class and event.",
		}, []string{"round", "event"}),
		timeoutsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "periodengine_timeouts_fired_total",
			Help: "Number of timeout deadlines that fired, by round class and event.",
		}, []string{"round", "event"}),
		currentRound: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "periodengine_current_round",
			Help: "1 for the currently scheduled round class, 0 otherwise.",
		}, []string{"round"}),
		roundCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "periodengine_round_count",
			Help: "Index of the most recently scheduled round (starts at 0).",
		}),
	}

	if registerer == nil {
		return m
	}
	for _, c := range []prometheus.Collector{m.roundsScheduled, m.roundsFinished, m.timeoutsFired, m.currentRound, m.roundCount} {
		registerer.MustRegister(c)
	}
	return m
}

// ObserveRoundScheduled records that name was just scheduled as the
// current round.
func (m *Metrics) ObserveRoundScheduled(name string) {
	m.roundsScheduled.WithLabelValues(name).Inc()
	m.currentRound.Reset()
	m.currentRound.WithLabelValues(name).Set(1)
}

// ObserveRoundEnd records that name's EndBlock fired event.
func (m *Metrics) ObserveRoundEnd(name, event string) {
	m.roundsFinished.WithLabelValues(name, event).Inc()
}

// ObserveTimeoutFired records that a timeout armed under name fired
// event.
func (m *Metrics) ObserveTimeoutFired(name, event string) {
	m.timeoutsFired.WithLabelValues(name, event).Inc()
}
