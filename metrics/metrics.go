package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	labmetrics "gitlab.com/gitlab-org/labkit/metrics"
)

var (
	// ServedFileSize is the size of the files served to clients
	ServedFileSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extension_server_served_file_size_bytes",
			Help:    "The size in bytes of the files served by the extension server",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"content_type"},
	)

	// DirectoryListings counts the generated directory index pages
	DirectoryListings = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extension_server_directory_listings_total",
		Help: "The number of directory listings generated for directories without an index file",
	})

	// RejectedRequestsCount is the number of requests rejected because of an unknown HTTP method
	RejectedRequestsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extension_server_unknown_method_rejected_requests",
		Help: "The number of requests with unknown HTTP method which were rejected",
	})

	// LimitListenerMaxConns is the configured connection limit of the HTTP listeners
	LimitListenerMaxConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "extension_server_limit_listener_max_conns",
		Help: "The maximum number of connections serviced at once by the HTTP listeners",
	})

	// LimitListenerConcurrentConns is the number of connections currently being serviced
	LimitListenerConcurrentConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "extension_server_limit_listener_concurrent_conns",
		Help: "The number of connections currently being serviced",
	})

	// LimitListenerWaitingConns is the number of accept calls waiting for a free slot
	LimitListenerWaitingConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "extension_server_limit_listener_waiting_conns",
		Help: "The number of accept calls waiting for a free connection slot",
	})

	// HTTPMetrics wraps a handler with request count, duration and size
	// metrics. The factory registers its collectors on creation.
	HTTPMetrics = labmetrics.NewHandlerFactory(labmetrics.WithNamespace("extension_server"))
)

func init() {
	prometheus.MustRegister(ServedFileSize)
	prometheus.MustRegister(DirectoryListings)
	prometheus.MustRegister(RejectedRequestsCount)
	prometheus.MustRegister(LimitListenerMaxConns)
	prometheus.MustRegister(LimitListenerConcurrentConns)
	prometheus.MustRegister(LimitListenerWaitingConns)
}
