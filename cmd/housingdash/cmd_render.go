package main

import (
	"fmt"

	"housingdash/internal/dataset"
	"housingdash/internal/funding"
	"housingdash/internal/geometry"
	"housingdash/internal/logging"
	"housingdash/internal/render"
	"housingdash/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderOut    string
	renderFormat string
)

// renderCmd writes the three dashboard charts as image files
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the charts to PNG or SVG files",
	Long: `Computes bar, pie and line chart geometry with the configured canvas size
and margins, and writes city_funding, provincial_funding and
cumulative_funding images into the output directory.

A dataset with no provincial funding skips the pie chart.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output directory (default charts.out_dir)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "png or svg (default charts.format)")
}

func runRender(cmd *cobra.Command, args []string) error {
	format := cfg.RenderFormat()
	if renderFormat != "" {
		f, err := render.ParseFormat(renderFormat)
		if err != nil {
			return err
		}
		format = f
	}
	out := renderOut
	if out == "" {
		out = cfg.Charts.OutDir
	}

	ds, r, err := loadReport()
	if err != nil {
		return err
	}
	charts, err := buildCharts(ds, r, cfg.Geometry())
	if err != nil {
		return err
	}

	paths, err := render.New(format, cfg.Geometry(), logger).WriteAll(cmd.Context(), out, charts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// buildCharts lays out every chart. A pie that cannot be drawn is left out;
// any other geometry error is fatal.
func buildCharts(ds *dataset.Dataset, r report.Report, opts geometry.Options) (render.Charts, error) {
	log := logger.Named(string(logging.CategoryGeometry))
	cols := cfg.FundingColumns()

	labels, values := funding.CityFunding(ds, cols)
	bar, err := geometry.NewBarChart(labels, values, opts)
	if err != nil {
		return render.Charts{}, fmt.Errorf("bar chart: %w", err)
	}

	xs, ys := funding.CumulativeFunding(ds, cols)
	line, err := geometry.NewLineChart(xs, ys, opts)
	if err != nil {
		return render.Charts{}, fmt.Errorf("line chart: %w", err)
	}
	charts := render.Charts{Bar: &bar, Line: &line}

	codes := r.Provinces.Codes()
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = report.ProvinceName(c)
	}
	pie, err := geometry.NewPieChart(r.Provinces.Weights(), names, opts)
	switch {
	case geometry.IsInvalidSeries(err):
		log.Warn("skipping pie chart", zap.Error(err))
	case err != nil:
		return render.Charts{}, fmt.Errorf("pie chart: %w", err)
	default:
		charts.Pie = &pie
	}
	return charts, nil
}
