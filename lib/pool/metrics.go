package pool

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Prometheus counters (process-wide, across all pool instances)
// --------------------------------------------------------------------------

var (
	metricAppends      = metrics.NewCounter(`pool_appends_total`)
	metricEvicted      = metrics.NewCounter(`pool_evicted_samples_total`)
	metricEpisodes     = metrics.NewCounter(`pool_episodes_total`)
	metricWorkerErrors = metrics.NewCounter(`pool_worker_errors_total`)
)

// WriteMetrics writes all pool metrics to w in Prometheus text format,
// including the standard Go process metrics.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, true)
}
