package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czxttkl/autotune/tune"
	"github.com/czxttkl/autotune/tune/trace"
)

func TestSink_Record_CountsSelections(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewSink(reg, nil)

	s.Record(tune.FamilyGaussian, "k", tune.Conv2DNative, 50_000)
	s.Record(tune.FamilyGaussian, "k", tune.Conv2DNative, 60_000)
	s.Record(tune.FamilyRandomChoice, "k", tune.Conv2DMKL, 70_000)

	native := s.selections.WithLabelValues("gaussian", "conv2d_native")
	assert.Equal(t, 2.0, testutil.ToFloat64(native))
	mkl := s.selections.WithLabelValues("random", "conv2d_mkl")
	assert.Equal(t, 1.0, testutil.ToFloat64(mkl))
}

func TestSink_Record_ObservesDurations(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewSink(reg, nil)

	s.Record(tune.FamilyGaussian, "k", tune.Conv2DNative, 2_000_000) // 2ms

	count := testutil.CollectAndCount(s.durations, "autotune_kernel_duration_seconds")
	assert.Equal(t, 1, count)
}

func TestSink_ForwardsToWrappedSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	mem := trace.NewMemorySink()
	s := NewSink(reg, mem)

	s.RegisterKey("k", func() string { return "kernel k" })
	s.Record(tune.FamilyGaussian, "k", tune.Conv2DNative, 100)

	repr, ok := mem.KeyRepr("k")
	require.True(t, ok)
	assert.Equal(t, "kernel k", repr)
	require.Len(t, mem.Records(), 1)
	assert.Equal(t, int64(100), mem.Records()[0].DeltaNs)
}

func TestNewSink_RegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewSink(reg, nil)
	s.Record(tune.FamilyGaussian, "k", tune.Conv2DNative, 100)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["autotune_selections_total"])
	assert.True(t, names["autotune_kernel_duration_seconds"])
}
