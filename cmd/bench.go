package cmd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/czxttkl/autotune/bench"
	"github.com/czxttkl/autotune/tune"
	"github.com/czxttkl/autotune/tune/metrics"
	"github.com/czxttkl/autotune/tune/trace"
)

var (
	invocations  int    // Override for the workload's invocation count (0 = use workload value)
	workloadPath string // Optional yaml workload file
	metricsAddr  string // Optional Prometheus /metrics listen address
)

// benchCmd replays a synthetic kernel workload through the dispatcher and
// reports what the bandit learned.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a synthetic autotuning benchmark",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		family, err := tune.ParseFamily(familyName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		cfg := bench.DefaultConfig()
		if workloadPath != "" {
			cfg, err = bench.LoadConfig(workloadPath)
			if err != nil {
				logrus.Fatalf("unable to read workload config: %v", err)
			}
		}
		if invocations > 0 {
			cfg.Invocations = invocations
		}

		memSink := trace.NewMemorySink()
		var sink tune.Sink = memSink
		if metricsAddr != "" {
			reg := prometheus.NewRegistry()
			sink = metrics.NewSink(reg, memSink)
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
				if err := http.ListenAndServe(metricsAddr, mux); err != nil {
					logrus.Errorf("metrics server: %v", err)
				}
			}()
			logrus.Infof("Serving Prometheus metrics on %s/metrics", metricsAddr)
		}

		kernels := cfg.BuildKernels()
		logrus.Infof("Starting benchmark: family=%s seed=%d kernels=%d invocations=%d",
			family, seed, len(kernels), cfg.Invocations)

		runner := bench.NewRunner(family, seed, kernels, sink)
		result := runner.Run(cfg.Invocations)

		logrus.Infof("Realized latency: %.0fns over %d invocations (oracle %.0fns, regret %.0fns)",
			result.TotalNs, result.Invocations, result.OracleNs, result.RegretNs())
		for impl, count := range result.ChoiceCount {
			logrus.Infof("  %s chosen %d times", impl, count)
		}

		runner.Dispatcher().Summarize()

		summary := trace.Summarize(memSink)
		for _, key := range summary.KeyOrder {
			ks := summary.PerKey[key]
			logrus.Infof("key=%s (%s): %d selections, mean=%.0fns std=%.0fns max=%dns",
				key, ks.Repr, ks.Count, ks.MeanDeltaNs, ks.StdDeltaNs, ks.MaxDeltaNs)
		}

		logrus.Info("Benchmark complete.")
	},
}

func init() {
	benchCmd.Flags().IntVar(&invocations, "invocations", 0, "Number of kernel invocations (overrides workload config)")
	benchCmd.Flags().StringVar(&workloadPath, "workload", "", "Path to a yaml workload config")
	benchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for Prometheus /metrics (disabled when empty)")

	rootCmd.AddCommand(benchCmd)
}
