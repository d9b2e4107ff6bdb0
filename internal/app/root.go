package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/config"
	"github.com/blackwell-systems/gradstat/internal/dataset"
	"github.com/blackwell-systems/gradstat/internal/query"
	"github.com/blackwell-systems/gradstat/internal/source"
)

var (
	dataPath string

	// RootCmd is the root command for gradstat.
	RootCmd = &cobra.Command{
		Use:   "gradstat",
		Short: "Analytics over school graduate enrollment data (1995-2023)",
		Long: `gradstat answers analytical queries over a longitudinal dataset of
school graduate performance: per-school per-year acceptance counts,
gender breakdown, and regional grouping.

The dataset file (.csv or SQLite) is set with --data or the
GRADSTAT_DATA environment variable (a .env file is honored).

Examples:
  # Year coverage and school directory
  gradstat years
  gradstat schools --region Baku

  # One school-year record
  gradstat stats --school 1042 --year 2020

  # Rankings, trends, comparisons
  gradstat rank --year 2023 --top 10
  gradstat trend --school 1042 --metric total
  gradstat compare --a 1042 --b 2077 --year 2023

  # Outlier years
  gradstat anomalies --school 1042 --metric total

  # Keep the dataset loaded, reloading on file change
  gradstat watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset file (default: $GRADSTAT_DATA)")
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// resolveDataPath returns the dataset path from the flag or the
// environment.
func resolveDataPath() (string, error) {
	if dataPath != "" {
		return dataPath, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.DataPath == "" {
		return "", fmt.Errorf("no dataset configured: pass --data or set %s", config.EnvDataPath)
	}
	return cfg.DataPath, nil
}

// loadEngine reads the dataset file, builds the immutable dataset, and
// wraps it in a query engine. Row rejections are reported to stderr
// and never abort the load.
func loadEngine() (*query.Engine, error) {
	path, err := resolveDataPath()
	if err != nil {
		return nil, err
	}

	rows, parseRejects, err := source.ReadRows(path)
	if err != nil {
		return nil, err
	}

	ds, report, err := dataset.Load(rows)
	if err != nil {
		return nil, err
	}

	if n := len(parseRejects) + len(report.Rejected); n > 0 {
		fmt.Fprintf(os.Stderr, "gradstat: %d of %d rows rejected during load\n", n, n+report.Accepted)
	}

	return query.New(ds), nil
}

// defaultSensitivity resolves the configured anomaly threshold.
func defaultSensitivity() float64 {
	cfg, err := config.Load()
	if err != nil {
		return 0 // query layer applies its own default
	}
	return cfg.Sensitivity
}
