package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adas-hsim/adas-hsim/hsim"
	"github.com/adas-hsim/adas-hsim/hsim/ingest"
)

var (
	// Persistent flags shared by every subcommand.
	logLevel   string // Log verbosity level
	configPath string // Optional --config run-policy YAML file
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "adas-hsim",
	Short: "Hierarchical BDR schedulability analyzer and simulator for ADAS task sets",
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional run-policy YAML file (search precision, horizon caps)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sampleCmd)
}

// setUpLogging parses --log and configures the package-level logger used
// by every subcommand.
func setUpLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadRunPolicy loads --config if given, or returns nil (every caller
// falls back to package defaults on a nil policy).
func loadRunPolicy() *RunPolicy {
	if configPath == "" {
		return nil
	}
	policy, err := LoadRunPolicy(configPath)
	if err != nil {
		logrus.Fatalf("loading run policy: %v", err)
	}
	return policy
}

// loadModel reads a SystemModel from path, dispatching on file extension:
// ".json" uses hsim/ingest.FromJSON, anything else (".csv", ".txt", no
// extension) uses hsim/ingest.FromCSV, per spec §6's two ingestion
// formats.
func loadModel(path string) (*hsim.SystemModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ingest.FromJSON(f)
	}
	return ingest.FromCSV(f)
}
