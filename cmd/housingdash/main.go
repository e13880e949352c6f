package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"housingdash/cmd/housingdash/ui"
	"housingdash/internal/config"
	"housingdash/internal/dataset"
	"housingdash/internal/logging"
	"housingdash/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	inputPath  string
	verbose    bool

	// Resolved once per invocation in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "housingdash",
	Short: "Housing funding dashboard",
	Long: `housingdash loads city housing-funding records, aggregates funding per city
and per province, and presents the results as a terminal dashboard, chart
images, a markdown summary or an XLSX workbook.

Run without arguments to start the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The dashboard owns the terminal, so it only logs to the configured file.
		return setup(!cmd.HasParent())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "Input file (overrides input.path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cityCmd)
	rootCmd.AddCommand(provincesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads and validates the config and builds the logger.
func setup(quiet bool) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if inputPath != "" {
		c.Input.Path = inputPath
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logging.New(c.Logging, logging.Options{Verbose: verbose, Quiet: quiet})
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

// loadDataset reads the configured input through the configured field spec.
func loadDataset() (*dataset.Dataset, []dataset.RowParseWarning, error) {
	spec, err := cfg.FieldSpec()
	if err != nil {
		return nil, nil, fmt.Errorf("field config: %w", err)
	}
	return dataset.Load(cfg.Input.Path, spec, dataset.LoadOptions{
		Records: cfg.RecordOptions(),
		Logger:  logger,
	})
}

// loadReport loads the dataset for a one-shot command. Unlike the dashboard,
// commands fail on an unreadable source.
func loadReport() (*dataset.Dataset, report.Report, error) {
	ds, warnings, err := loadDataset()
	if err != nil {
		return nil, report.Report{}, err
	}
	if len(warnings) > 0 {
		logger.Warn("rows loaded with warnings", zap.Int("warnings", len(warnings)))
	}
	r := report.New(ds, cfg.FundingColumns(), len(warnings))
	logger.Named(string(logging.CategoryAggregate)).Debug("funding aggregated",
		zap.Int("cities", len(r.Cities)),
		zap.Int64("total", r.Summary.TotalFunding))
	return ds, r, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return ui.Run(ui.Options{
		Load:         loadDataset,
		Columns:      cfg.FundingColumns(),
		Sort:         cfg.SortOrder(),
		Theme:        cfg.UI.Theme,
		SidebarWidth: cfg.UI.SidebarWidth,
		Logger:       logger,
	})
}
