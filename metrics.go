package qsim

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

/*
Metrics tracks what the simulator has done: runs by outcome, shots drawn,
gates applied, drift corrections and run latency. Collectors live on the
registry given to NewMetrics so several simulators can coexist in a process.
*/
type Metrics struct {
	Runs           *prometheus.CounterVec
	Shots          prometheus.Counter
	GatesApplied   prometheus.Counter
	DriftEvents    prometheus.Counter
	RunLatency     prometheus.Histogram
	BatchQueueSize prometheus.Gauge
}

// NewMetrics registers the simulator collectors. A nil registerer gets a private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "runs_total",
			Help:      "Simulation runs by status.",
		}, []string{"status"}),
		Shots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "shots_total",
			Help:      "Measurement shots drawn.",
		}),
		GatesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "gates_applied_total",
			Help:      "Gate applications performed.",
		}),
		DriftEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "numerical_drift_total",
			Help:      "Runs whose final norm drifted beyond tolerance and was renormalized.",
		}),
		RunLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "qsim",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a simulation run.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		BatchQueueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "qsim",
			Name:      "batch_queue_size",
			Help:      "Jobs waiting in the batch pool.",
		}),
	}

	reg.MustRegister(m.Runs, m.Shots, m.GatesApplied, m.DriftEvents, m.RunLatency, m.BatchQueueSize)
	return m
}

func (m *Metrics) recordRun(startTime time.Time, shots int, err error) {
	m.RunLatency.Observe(time.Since(startTime).Seconds())

	if err != nil {
		m.Runs.WithLabelValues("error").Inc()
		return
	}

	m.Runs.WithLabelValues("ok").Inc()
	m.Shots.Add(float64(shots))
}
