package plan

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PlansTotal   prometheus.Counter
	PlansFailed  prometheus.Counter
	StepsTotal   *prometheus.CounterVec
	StepFailures *prometheus.CounterVec
	StepDuration prometheus.Histogram
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			PlansTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "sketchflow_plans_total",
				Help: "Total number of plan executions started",
			}),
			PlansFailed: promauto.NewCounter(prometheus.CounterOpts{
				Name: "sketchflow_plans_failed_total",
				Help: "Total number of plan executions aborted by a step failure",
			}),
			StepsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "sketchflow_plan_steps_total",
				Help: "Total number of successfully applied plan steps",
			}, []string{"operation"}),
			StepFailures: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "sketchflow_plan_step_failures_total",
				Help: "Total number of failed plan steps by error kind",
			}, []string{"kind"}),
			StepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "sketchflow_plan_step_duration_seconds",
				Help:    "Duration of applied plan steps",
				Buckets: prometheus.DefBuckets,
			}),
		}
	})
	return metricsInstance
}

func (m *Metrics) RecordPlan() {
	if m == nil || m.PlansTotal == nil {
		return
	}
	m.PlansTotal.Inc()
}

func (m *Metrics) RecordPlanFailure() {
	if m == nil || m.PlansFailed == nil {
		return
	}
	m.PlansFailed.Inc()
}

func (m *Metrics) RecordStep(operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if m.StepsTotal != nil {
		m.StepsTotal.WithLabelValues(operation).Inc()
	}
	if m.StepDuration != nil {
		m.StepDuration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) RecordStepFailure(kind ErrorKind) {
	if m == nil || m.StepFailures == nil {
		return
	}
	m.StepFailures.WithLabelValues(string(kind)).Inc()
}
