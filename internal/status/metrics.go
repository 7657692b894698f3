package status

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stackwm"

// Metrics holds the prometheus collectors fed from engine events.
type Metrics struct {
	Restacks          prometheus.Counter
	FocusChanges      prometheus.Counter
	WorkspaceSwitches prometheus.Counter
	FramesAdded       prometheus.Counter
	FramesRemoved     prometheus.Counter
	FramesManaged     prometheus.Gauge
	Workspaces        prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Restacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restacks_total",
			Help:      "Total number of stacking order changes",
		}),
		FocusChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "focus_changes_total",
			Help:      "Total number of focus changes",
		}),
		WorkspaceSwitches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workspace_switches_total",
			Help:      "Total number of active workspace changes",
		}),
		FramesAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_added_total",
			Help:      "Total number of frames created",
		}),
		FramesRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_removed_total",
			Help:      "Total number of frames destroyed",
		}),
		FramesManaged: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frames_managed",
			Help:      "Number of frames currently managed",
		}),
		Workspaces: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workspaces",
			Help:      "Number of workspaces",
		}),
	}
}
