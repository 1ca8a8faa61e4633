package usecase

import (
	"workshop-service/internal/domain/entity"
	"workshop-service/pkg/logger"
	"workshop-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func testMetrics() *metrics.Metrics {
	return metrics.NewMetricsWithRegistry("test", prometheus.NewRegistry())
}

func testLogger() logger.Logger {
	return logger.NewNopLogger()
}

// cardGrid lays out a job card document with the given name and operations
func cardGrid(name string, ops ...string) entity.Grid {
	g := make(entity.Grid, 11)
	g[6] = []string{name}
	g[8] = []string{"PN-" + name}
	g[10] = []string{"Start date"}
	for _, op := range ops {
		g = append(g, []string{op})
	}
	return append(g, []string{"End date"})
}
