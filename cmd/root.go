package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/statboard/internal/config"
	"github.com/KaramelBytes/statboard/internal/dashboard"
	"github.com/KaramelBytes/statboard/internal/dataset"
	"github.com/KaramelBytes/statboard/internal/logging"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Data source flags (override config if set)
	flagDataDir    string
	flagBaseURL    string
	flagTimeoutSec int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "statboard",
	Short: "statboard: descriptive statistics and chart data for tabular datasets",
	Long: `statboard parses the basketball player and education/income datasets, groups
them by category, computes per-group summaries and kernel density estimates, and
writes the flat chart records a dashboard consumes. Any CSV/TSV/XLSX file can also
be summarized with the summary and density commands.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.statboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the datasets (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "fetch datasets from this URL prefix instead of data-dir (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeoutSec, "timeout", 0, "dataset load timeout in seconds (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config report the error themselves
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		logging.Init(os.Stderr, "info", debug)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data-dir") && flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if f.Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	if f.Changed("timeout") && flagTimeoutSec >= 0 {
		cfg.LoadTimeoutSec = flagTimeoutSec
	}
	logging.Init(os.Stderr, cfg.LogLevel, debug)
}

// requireConfig returns the loaded configuration, failing when it is invalid.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func dataSource(c *cfgpkg.Global) dataset.Source {
	return dataset.Source{Dir: c.DataDir, BaseURL: c.BaseURL, Timeout: c.LoadTimeout()}
}

func dashboardOptions(c *cfgpkg.Global) dashboard.Options {
	opts := dashboard.DefaultOptions()
	if len(c.Bandwidths) > 0 {
		opts.Bandwidths = c.Bandwidths
	}
	if c.DensityPoints > 0 {
		opts.DensityPoints = c.DensityPoints
	}
	if len(c.DensityCategories) > 0 {
		opts.DensityCategories = c.DensityCategories
	}
	return opts
}

// loadInput loads the datasets the given sources need. Each dataset is
// fetched once; a failure aborts with no partial input.
func loadInput(ctx context.Context, c *cfgpkg.Global, sources ...dashboard.Source) (dashboard.Input, error) {
	src := dataSource(c)
	var in dashboard.Input
	for _, s := range sources {
		switch s {
		case dashboard.Players:
			if in.Players != nil {
				continue
			}
			d, err := src.Load(ctx, c.PlayersFile)
			if err != nil {
				return dashboard.Input{}, fmt.Errorf("load players: %w", err)
			}
			in.Players = d
		case dashboard.Education:
			if in.Education != nil {
				continue
			}
			d, err := src.Load(ctx, c.EducationFile)
			if err != nil {
				return dashboard.Input{}, fmt.Errorf("load education: %w", err)
			}
			in.Education = d
		}
	}
	return in, nil
}
