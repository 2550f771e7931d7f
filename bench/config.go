package bench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/czxttkl/autotune/tune"
)

// LatencySpec describes one arm's true latency distribution.
type LatencySpec struct {
	Dist     string  `yaml:"dist"` // "gaussian" or "exponential"
	MeanNs   float64 `yaml:"mean_ns"`
	StdDevNs float64 `yaml:"stddev_ns"` // gaussian only
}

// ArmSpec describes one candidate implementation of a kernel: the cost
// estimate handed to the bandit as a prior, and the true distribution the
// harness samples when that implementation runs.
type ArmSpec struct {
	Implementation string      `yaml:"implementation"`
	CostNs         float64     `yaml:"cost_ns"`
	Latency        LatencySpec `yaml:"latency"`
}

// KernelSpec describes one synthetic kernel.
type KernelSpec struct {
	Name     string    `yaml:"name"`
	Fallback bool      `yaml:"fallback"`
	Arms     []ArmSpec `yaml:"arms"`
}

// Config is the yaml-loadable benchmark workload.
type Config struct {
	Invocations int          `yaml:"invocations"`
	Kernels     []KernelSpec `yaml:"kernels"`
}

// DefaultConfig returns a two-kernel workload where the cost priors disagree
// with the true latencies, so learning is visible: the prior prefers the MKL
// arm while the native arm is actually fastest on conv_small.
func DefaultConfig() Config {
	return Config{
		Invocations: 10000,
		Kernels: []KernelSpec{
			{
				Name: "conv_small",
				Arms: []ArmSpec{
					{Implementation: "conv2d_native", CostNs: 90000,
						Latency: LatencySpec{Dist: "gaussian", MeanNs: 60000, StdDevNs: 8000}},
					{Implementation: "conv2d_nnpack", CostNs: 80000,
						Latency: LatencySpec{Dist: "gaussian", MeanNs: 95000, StdDevNs: 12000}},
					{Implementation: "conv2d_mkl", CostNs: 70000,
						Latency: LatencySpec{Dist: "exponential", MeanNs: 110000}},
				},
			},
			{
				Name: "conv_large",
				Arms: []ArmSpec{
					{Implementation: "conv2d_native", CostNs: 900000,
						Latency: LatencySpec{Dist: "gaussian", MeanNs: 980000, StdDevNs: 60000}},
					{Implementation: "conv2d_mkl", CostNs: 750000,
						Latency: LatencySpec{Dist: "gaussian", MeanNs: 720000, StdDevNs: 40000}},
				},
			},
		},
	}
}

// LoadConfig reads a yaml Config from path and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read workload %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse workload %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns an error if the workload is malformed.
func (c Config) Validate() error {
	if c.Invocations <= 0 {
		return fmt.Errorf("invocations must be positive, got %d", c.Invocations)
	}
	if len(c.Kernels) == 0 {
		return fmt.Errorf("workload names no kernels")
	}
	seen := make(map[string]bool)
	for _, k := range c.Kernels {
		if k.Name == "" {
			return fmt.Errorf("kernel with empty name")
		}
		if seen[k.Name] {
			return fmt.Errorf("duplicate kernel name %q", k.Name)
		}
		seen[k.Name] = true
		if !k.Fallback && len(k.Arms) == 0 {
			return fmt.Errorf("kernel %q has no arms and no fallback", k.Name)
		}
		for _, a := range k.Arms {
			if _, err := tune.ParseImplementation(a.Implementation); err != nil {
				return fmt.Errorf("kernel %q: %w", k.Name, err)
			}
			if a.CostNs <= 0 {
				return fmt.Errorf("kernel %q arm %s: cost_ns must be positive, got %v", k.Name, a.Implementation, a.CostNs)
			}
			switch a.Latency.Dist {
			case "gaussian":
				if a.Latency.MeanNs <= 0 || a.Latency.StdDevNs < 0 {
					return fmt.Errorf("kernel %q arm %s: invalid gaussian latency", k.Name, a.Implementation)
				}
			case "exponential":
				if a.Latency.MeanNs <= 0 {
					return fmt.Errorf("kernel %q arm %s: invalid exponential latency", k.Name, a.Implementation)
				}
			default:
				return fmt.Errorf("kernel %q arm %s: unknown latency dist %q", k.Name, a.Implementation, a.Latency.Dist)
			}
		}
	}
	return nil
}

// BuildKernels materializes the workload's kernels.
// Call Validate first; malformed specs panic here.
func (c Config) BuildKernels() []*Kernel {
	kernels := make([]*Kernel, 0, len(c.Kernels))
	for _, spec := range c.Kernels {
		k := &Kernel{
			Name:         spec.Name,
			FallbackOnly: spec.Fallback,
			Latency:      make(map[tune.Implementation]LatencySampler, len(spec.Arms)),
		}
		for _, a := range spec.Arms {
			impl, err := tune.ParseImplementation(a.Implementation)
			if err != nil {
				panic(err)
			}
			k.Prior = append(k.Prior, tune.CostEstimate{Impl: impl, Cost: a.CostNs})
			switch a.Latency.Dist {
			case "gaussian":
				k.Latency[impl] = GaussianLatency{MeanNs: a.Latency.MeanNs, StdDevNs: a.Latency.StdDevNs}
			case "exponential":
				k.Latency[impl] = ExponentialLatency{MeanNs: a.Latency.MeanNs}
			default:
				panic(fmt.Sprintf("unknown latency dist %q", a.Latency.Dist))
			}
		}
		kernels = append(kernels, k)
	}
	return kernels
}
