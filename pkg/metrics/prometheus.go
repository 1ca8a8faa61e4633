package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SyncPasses          prometheus.Counter
	DocumentsProcessed  prometheus.Counter
	DocumentsFailed     prometheus.Counter
	JobCardsInactivated prometheus.Counter
	SyncDuration        prometheus.Histogram
	OperationUpdates    *prometheus.CounterVec
	SheetsPublished     *prometheus.CounterVec
	ErrorsCount         *prometheus.CounterVec
}

// NewMetricsWithRegistry creates metrics registered on reg
func NewMetricsWithRegistry(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SyncPasses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_passes_total",
			Help:      "The total number of completed sync passes",
		}),
		DocumentsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_processed_total",
			Help:      "The total number of job card documents extracted and reconciled",
		}),
		DocumentsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_failed_total",
			Help:      "The total number of job card documents skipped after an error",
		}),
		JobCardsInactivated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_cards_inactivated_total",
			Help:      "The total number of job cards marked inactive",
		}),
		SyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Time taken by a full sync pass",
			Buckets:   prometheus.DefBuckets,
		}),
		OperationUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_updates_total",
			Help:      "The total number of direct operation updates by outcome",
		}, []string{"outcome"}),
		SheetsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheets_published_total",
			Help:      "The total number of sheet replacements by sheet",
		}, []string{"sheet"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
