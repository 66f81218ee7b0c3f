package canvas

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ObjectsCreated prometheus.Counter
	ObjectsUpdated prometheus.Counter
	ObjectsDeleted prometheus.Counter
	CanvasClears   prometheus.Counter
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			ObjectsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Name: "sketchflow_canvas_objects_created_total",
				Help: "Total number of canvas objects created",
			}),
			ObjectsUpdated: promauto.NewCounter(prometheus.CounterOpts{
				Name: "sketchflow_canvas_objects_updated_total",
				Help: "Total number of canvas object updates applied",
			}),
			ObjectsDeleted: promauto.NewCounter(prometheus.CounterOpts{
				Name: "sketchflow_canvas_objects_deleted_total",
				Help: "Total number of canvas objects deleted",
			}),
			CanvasClears: promauto.NewCounter(prometheus.CounterOpts{
				Name: "sketchflow_canvas_clears_total",
				Help: "Total number of canvas clear operations",
			}),
		}
	})
	return metricsInstance
}

func (m *Metrics) RecordCreate() {
	if m == nil || m.ObjectsCreated == nil {
		return
	}
	m.ObjectsCreated.Inc()
}

func (m *Metrics) RecordUpdate() {
	if m == nil || m.ObjectsUpdated == nil {
		return
	}
	m.ObjectsUpdated.Inc()
}

func (m *Metrics) RecordDelete() {
	if m == nil || m.ObjectsDeleted == nil {
		return
	}
	m.ObjectsDeleted.Inc()
}

func (m *Metrics) RecordClear() {
	if m == nil || m.CanvasClears == nil {
		return
	}
	m.CanvasClears.Inc()
}
