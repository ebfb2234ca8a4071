package dochooks

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metricsTarget struct{}

func (metricsTarget) Save(id int) {}

func (metricsTarget) Title(s string) string { return s }

func (*metricsTarget) DocHooks() map[string]string {
	return map[string]string{
		"Save":  "@action save_post",
		"Title": "@filter the_title\n@filter widget_title",
	}
}

func TestMetrics(t *testing.T) {
	promReg := prometheus.NewRegistry()
	m, err := NewMetrics(promReg)
	require.NoError(t, err)

	r := NewRegistrar(NewRecorder(), WithMetrics(m))
	require.NoError(t, r.Register(&metricsTarget{}))
	require.NoError(t, r.Register(&metricsTarget{}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.hooks.WithLabelValues("action")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.hooks.WithLabelValues("filter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.classes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped))

	// The collectors are already registered.
	_, err = NewMetrics(promReg)
	assert.Error(t, err)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.hookRegistered(Action)
		m.classRegistered()
		m.registrationSkipped()
	})
}
