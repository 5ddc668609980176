// Package metrics defines the Prometheus collectors exported on the metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "billsplitter"

// Scan outcomes recorded on ReceiptScans.
const (
	ScanOK       = "ok"
	ScanEmpty    = "empty"
	ScanFailed   = "failed"
	ScanLocked   = "locked"
	ScanRejected = "rejected"
)

// Metrics holds every collector the server updates.
type Metrics struct {
	RPCRequests    *prometheus.CounterVec
	RPCDuration    *prometheus.HistogramVec
	ReceiptScans   *prometheus.CounterVec
	ItemsAdded     *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which tests use for isolation.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and Connect status code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		ReceiptScans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_scans_total",
			Help:      "Receipt scan attempts by outcome.",
		}, []string{"outcome"}),
		ItemsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_added_total",
			Help:      "Items added to bills by source (manual or receipt).",
		}, []string{"source"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Bills currently held in memory.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.RPCRequests,
			m.RPCDuration,
			m.ReceiptScans,
			m.ItemsAdded,
			m.ActiveSessions,
		)
	}
	return m
}
