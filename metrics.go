package dochooks

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts registrar activity. A nil *Metrics records nothing.
type Metrics struct {
	hooks   *prometheus.CounterVec
	classes prometheus.Counter
	skipped prometheus.Counter
}

// NewMetrics creates the registrar counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		hooks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dochooks_hooks_registered_total",
				Help: "Hooks registered from doc comment annotations, by hook type.",
			},
			[]string{"type"},
		),
		classes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dochooks_classes_registered_total",
			Help: "Types whose methods were scanned for hook annotations.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dochooks_registrations_skipped_total",
			Help: "Register calls skipped because the type was already registered.",
		}),
	}

	for _, c := range []prometheus.Collector{m.hooks, m.classes, m.skipped} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) hookRegistered(typ HookType) {
	if m == nil {
		return
	}
	m.hooks.WithLabelValues(string(typ)).Inc()
}

func (m *Metrics) classRegistered() {
	if m == nil {
		return
	}
	m.classes.Inc()
}

func (m *Metrics) registrationSkipped() {
	if m == nil {
		return
	}
	m.skipped.Inc()
}
