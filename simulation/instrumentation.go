package simulation

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	simulatedDays = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roi_simulation_days_total",
		Help: "Days simulated across all runs",
	})
	blocksMined = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roi_simulation_blocks_mined_total",
		Help: "Blocks won by the pool across all runs",
	})
	batchRunsCompleted = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roi_simulation_batch_runs_completed",
		Help: "Completed runs of the current batch",
	})
	batchRunsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roi_simulation_batch_runs",
		Help: "Requested runs of the current batch",
	})
)

var prom sync.Once

func RegisterPrometheus() {
	prom.Do(func() {
		prometheus.MustRegister(simulatedDays)
		prometheus.MustRegister(blocksMined)
		prometheus.MustRegister(batchRunsCompleted)
		prometheus.MustRegister(batchRunsTotal)
	})
}
