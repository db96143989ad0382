// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics counts what a fetch run did and can dump the counters in
// the Prometheus text format for a node_exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of one run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Pages       prometheus.Counter
	Entries     prometheus.Counter
	Skipped     prometheus.Counter
	FetchErrors prometheus.Counter
}

// New creates the counters on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Pages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scholar_fetch_pages_total",
			Help: "Listing pages fetched successfully.",
		}),
		Entries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scholar_fetch_entries_total",
			Help: "Listing entries parsed into publications.",
		}),
		Skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scholar_fetch_entries_skipped_total",
			Help: "Listing entries dropped because they could not be parsed.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scholar_fetch_errors_total",
			Help: "Page fetches that failed and ended pagination.",
		}),
	}
	m.registry.MustRegister(m.Pages, m.Entries, m.Skipped, m.FetchErrors)
	return m
}

func (m *Metrics) PageFetched() {
	if m != nil {
		m.Pages.Inc()
	}
}

func (m *Metrics) EntryParsed() {
	if m != nil {
		m.Entries.Inc()
	}
}

func (m *Metrics) EntrySkipped() {
	if m != nil {
		m.Skipped.Inc()
	}
}

func (m *Metrics) FetchFailed() {
	if m != nil {
		m.FetchErrors.Inc()
	}
}

// Registry exposes the registry backing the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all counters to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
