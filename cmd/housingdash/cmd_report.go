package main

import (
	"fmt"

	"housingdash/internal/logging"
	"housingdash/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	summaryRaw   bool
	summaryWidth int
	exportOut    string
)

// summaryCmd prints the markdown summary
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a funding summary",
	Long: `Prints headline figures, province totals and the city list as markdown,
rendered for the terminal with the configured theme. Use --raw for plain
markdown.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

// exportCmd writes the XLSX workbook
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the aggregated tables to an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryRaw, "raw", false, "Print markdown without terminal styling")
	summaryCmd.Flags().IntVar(&summaryWidth, "width", 100, "Wrap width")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "housing_funding.xlsx", "Workbook path")
}

func runSummary(cmd *cobra.Command, args []string) error {
	_, r, err := loadReport()
	if err != nil {
		return err
	}

	md := report.Markdown(r)
	if summaryRaw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	out, err := report.Terminal(md, cfg.UI.Theme, summaryWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	_, r, err := loadReport()
	if err != nil {
		return err
	}
	if err := report.WriteWorkbook(exportOut, r); err != nil {
		return err
	}
	logger.Named(string(logging.CategoryReport)).Info("workbook written",
		zap.String("path", exportOut),
		zap.Int("cities", len(r.Cities)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportOut)
	return nil
}
