package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.LLMRequest("ok")
	m.LLMRequest("ok")
	m.LLMRequest("error")
	m.RunFinished("completed", 3*time.Second)
	m.ModuleItems("youtube", 12)
	m.ModuleItems("youtube", 3)
	m.ModuleError("twitter")

	assert.InDelta(t, 2, testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("ok")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("error")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RunsTotal.WithLabelValues("completed")), 0.001)
	assert.InDelta(t, 15, testutil.ToFloat64(m.ModuleItemsTotal.WithLabelValues("youtube")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ModuleErrorsTotal.WithLabelValues("twitter")), 0.001)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "aidigest_run_duration_seconds")
	assert.Contains(t, names, "aidigest_llm_requests_total")
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
