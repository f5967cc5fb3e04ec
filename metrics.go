package mqstub

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "mqstub"

// newMetricsRegistry exposes the broker counters as Prometheus collectors.
// The collectors read the counters at scrape time.
func newMetricsRegistry(s *brokerStats) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	counter := func(name, help string, v *int64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(atomic.LoadInt64(v)) })
	}

	reg.MustRegister(
		counter("connections_total", "Total number of accepted connections", &s.connectionsCount),
		counter("packets_total", "Total number of decoded packets", &s.packetsCount),
		counter("connects_total", "Total number of CONNECT packets", &s.connectsCount),
		counter("publishes_total", "Total number of PUBLISH packets", &s.publishesCount),
		counter("skipped_packets_total", "Total number of packets of unsupported type", &s.skipCount),
		counter("malformed_packets_total", "Total number of connections closed on a decode error", &s.malformedCount),
		counter("received_bytes_total", "Total number of bytes read from clients", &s.bytesInCount),
		counter("sent_bytes_total", "Total number of bytes written to clients", &s.bytesOutCount),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connected_clients",
			Help:      "Current number of open connections",
		}, func() float64 { return float64(atomic.LoadInt64(&s.connectedClientsCount)) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "uptime_seconds",
			Help:      "Seconds since the broker started",
		}, func() float64 { return s.uptime().Seconds() }),
		collectors.NewGoCollector(),
	)

	return reg
}
