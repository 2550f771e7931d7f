package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/czxttkl/autotune/tune/bandits"
)

var (
	// Shared CLI flags
	seed       int64  // Master seed controlling all randomness
	logLevel   string // Log verbosity level
	familyName string // Active bandit family (none, random, gaussian)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "autotune",
	Short: "Online multi-armed-bandit dispatcher for kernel selection",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Master seed for reproducible runs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&familyName, "family", "gaussian", "Bandit family (none, random, gaussian)")
}
