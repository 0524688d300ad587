package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics records metadata for scheduled jobs. The transitions counter
// tracks how many promotions each lifecycle tick activated or deactivated.
type JobMetrics struct {
	duration    *prometheus.HistogramVec
	success     *prometheus.CounterVec
	failure     *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewJobMetrics registers the scheduled-job metrics on the provided registerer.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of scheduled jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful scheduled job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed scheduled job executions.",
	}, []string{"job"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promotion_transitions_total",
		Help: "Promotions moved between active and inactive by the lifecycle job.",
	}, []string{"direction"})
	reg.MustRegister(duration, success, failure, transitions)
	return &JobMetrics{
		duration:    duration,
		success:     success,
		failure:     failure,
		transitions: transitions,
	}
}

// ObserveDuration records the duration for the named job.
func (m *JobMetrics) ObserveDuration(job string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (m *JobMetrics) IncSuccess(job string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (m *JobMetrics) IncFailure(job string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// AddActivated records promotions switched on by a lifecycle tick.
func (m *JobMetrics) AddActivated(count int64) {
	if m == nil || m.transitions == nil || count <= 0 {
		return
	}
	m.transitions.WithLabelValues("activated").Add(float64(count))
}

// AddDeactivated records promotions switched off by a lifecycle tick.
func (m *JobMetrics) AddDeactivated(count int64) {
	if m == nil || m.transitions == nil || count <= 0 {
		return
	}
	m.transitions.WithLabelValues("deactivated").Add(float64(count))
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
