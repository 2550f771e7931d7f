package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czxttkl/autotune/tune"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_ParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	contents := `
invocations: 500
kernels:
  - name: conv_tiny
    arms:
      - implementation: conv2d_native
        cost_ns: 1000
        latency: {dist: gaussian, mean_ns: 900, stddev_ns: 50}
      - implementation: conv2d_mkl
        cost_ns: 1500
        latency: {dist: exponential, mean_ns: 2000}
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Invocations)
	require.Len(t, cfg.Kernels, 1)
	require.Len(t, cfg.Kernels[0].Arms, 2)
	assert.Equal(t, 2000.0, cfg.Kernels[0].Arms[1].Latency.MeanNs)
}

func TestConfig_Validate_Rejections(t *testing.T) {
	arm := ArmSpec{Implementation: "conv2d_native", CostNs: 100,
		Latency: LatencySpec{Dist: "gaussian", MeanNs: 100, StdDevNs: 10}}
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero invocations", Config{Kernels: []KernelSpec{{Name: "k", Arms: []ArmSpec{arm}}}}},
		{"no kernels", Config{Invocations: 1}},
		{"empty kernel name", Config{Invocations: 1, Kernels: []KernelSpec{{Arms: []ArmSpec{arm}}}}},
		{"duplicate kernel name", Config{Invocations: 1, Kernels: []KernelSpec{
			{Name: "k", Arms: []ArmSpec{arm}}, {Name: "k", Arms: []ArmSpec{arm}}}}},
		{"no arms no fallback", Config{Invocations: 1, Kernels: []KernelSpec{{Name: "k"}}}},
		{"unknown implementation", Config{Invocations: 1, Kernels: []KernelSpec{{Name: "k",
			Arms: []ArmSpec{{Implementation: "conv9d", CostNs: 1,
				Latency: LatencySpec{Dist: "gaussian", MeanNs: 1}}}}}}},
		{"bad cost", Config{Invocations: 1, Kernels: []KernelSpec{{Name: "k",
			Arms: []ArmSpec{{Implementation: "conv2d_native", CostNs: 0,
				Latency: LatencySpec{Dist: "gaussian", MeanNs: 1}}}}}}},
		{"unknown dist", Config{Invocations: 1, Kernels: []KernelSpec{{Name: "k",
			Arms: []ArmSpec{{Implementation: "conv2d_native", CostNs: 1,
				Latency: LatencySpec{Dist: "uniform", MeanNs: 1}}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestConfig_BuildKernels(t *testing.T) {
	kernels := DefaultConfig().BuildKernels()
	require.Len(t, kernels, 2)

	small := kernels[0]
	assert.Equal(t, tune.CallSiteKey("conv_small"), small.Key())
	assert.False(t, small.Fallback())
	assert.Len(t, small.Implementations(), 3)

	cost, ok := small.Costs().Find(tune.Conv2DNNPack)
	require.True(t, ok)
	assert.Equal(t, 80000.0, cost)

	// conv_small's native arm has the lowest true mean
	assert.Equal(t, 60000.0, small.BestMeanNs())
}

func TestKernel_FallbackOnly_NoImplementations(t *testing.T) {
	k := &Kernel{Name: "opaque", FallbackOnly: true}
	assert.True(t, k.Fallback())
	assert.Empty(t, k.Implementations())
}
