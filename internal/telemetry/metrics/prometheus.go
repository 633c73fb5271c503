package metrics

import (
	"github.com/IBM/pgxpoolprometheus"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the registry served on the metrics endpoint.
// Pool stats are exported when dbPool is not nil.
func SetupPrometheus(dbPool *pgxpool.Pool) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Add Go module build info, runtime metrics and process collectors.
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if dbPool != nil {
		promRegistry.MustRegister(
			pgxpoolprometheus.NewCollector(dbPool, map[string]string{"db_name": dbPool.Config().ConnConfig.Database}),
		)
	}

	return promRegistry
}
