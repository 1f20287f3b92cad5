package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors of the relay. Every method is safe on a nil
// receiver so components can run without instrumentation.
type Metrics struct {
	cacheLookups    *prometheus.CounterVec
	cacheEvictions  prometheus.Counter
	handleFailures  prometheus.Counter
	dispatches      *prometheus.CounterVec
	chunks          *prometheus.CounterVec
	dispatchSeconds prometheus.Histogram
	processRSS      prometheus.Gauge
	processCPU      prometheus.Gauge
	processThreads  prometheus.Gauge
}

// NewMetrics registers the relay collectors on reg.
// Tests should pass a fresh prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "handle_cache",
			Name:      "lookups_total",
			Help:      "Delivery handle lookups by result (hit, miss).",
		}, []string{"result"}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "handle_cache",
			Name:      "evictions_total",
			Help:      "Delivery handles evicted to make room for a new one.",
		}),
		handleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "handle_cache",
			Name:      "creation_failures_total",
			Help:      "Delivery handles the transport refused to create.",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "dispatch",
			Name:      "requests_total",
			Help:      "Dispatch requests by outcome and rejection reason.",
		}, []string{"outcome", "reason"}),
		chunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "dispatch",
			Name:      "chunks_total",
			Help:      "Chunks sent by status (delivered, failed).",
		}, []string{"status"}),
		dispatchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "relay",
			Subsystem: "dispatch",
			Name:      "duration_seconds",
			Help:      "Time spent handling one dispatch request.",
			Buckets:   prometheus.DefBuckets,
		}),
		processRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "relay",
			Subsystem: "process",
			Name:      "resident_memory_bytes",
			Help:      "Resident memory of the relay process.",
		}),
		processCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "relay",
			Subsystem: "process",
			Name:      "cpu_percent",
			Help:      "CPU usage of the relay process since the previous sample.",
		}),
		processThreads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "relay",
			Subsystem: "process",
			Name:      "threads",
			Help:      "OS threads of the relay process.",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.cacheLookups, m.cacheEvictions, m.handleFailures, m.dispatches, m.chunks, m.dispatchSeconds,
		m.processRSS, m.processCPU, m.processThreads,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.cacheLookups.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.cacheLookups.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) CacheEviction() {
	if m != nil {
		m.cacheEvictions.Inc()
	}
}

func (m *Metrics) HandleCreationFailed() {
	if m != nil {
		m.handleFailures.Inc()
	}
}

func (m *Metrics) Dispatch(outcome, reason string, seconds float64) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome, reason).Inc()
	m.dispatchSeconds.Observe(seconds)
}

func (m *Metrics) Chunk(delivered bool) {
	if m == nil {
		return
	}
	status := "failed"
	if delivered {
		status = "delivered"
	}
	m.chunks.WithLabelValues(status).Inc()
}

// ProcessSample records one resource sample of the relay process.
func (m *Metrics) ProcessSample(rssBytes uint64, cpuPercent float64, threads int32) {
	if m == nil {
		return
	}
	m.processRSS.Set(float64(rssBytes))
	m.processCPU.Set(cpuPercent)
	m.processThreads.Set(float64(threads))
}
