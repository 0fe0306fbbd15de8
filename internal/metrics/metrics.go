package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "apiman_ui"
)

var (
	// Manager API Metrics
	ManagerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "manager_requests_total",
		Help:      "Count of API Manager REST calls by operation and response status.",
	}, []string{"operation", "status"})

	ManagerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "manager_request_duration_seconds",
		Help:      "Latency of API Manager REST calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// Organization Admin Metrics
	OrgDeletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "org_deletions_total",
		Help:      "Organization delete attempts confirmed in the console, by outcome.",
	}, []string{"outcome"})

	OrgDescriptionUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "org_description_updates_total",
		Help:      "Organization description updates submitted from the sidebar.",
	})

	DeleteDialogsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "delete_dialogs_open",
		Help:      "Delete-confirmation dialogs currently tracked by the server.",
	})

	DeleteDialogsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delete_dialogs_expired_total",
		Help:      "Delete-confirmation dialogs discarded after their TTL.",
	})

	PageErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_errors_total",
		Help:      "Remote failures handed to the page error handler, by source.",
	}, []string{"source"})
)
