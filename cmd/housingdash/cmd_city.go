package main

import (
	"fmt"
	"strconv"
	"strings"

	"housingdash/cmd/housingdash/ui"
	"housingdash/internal/funding"
	"housingdash/internal/money"
	"housingdash/internal/report"

	"github.com/spf13/cobra"
)

// cityCmd looks up cities by name
var cityCmd = &cobra.Command{
	Use:   "city QUERY",
	Short: "Show funding for cities matching QUERY",
	Long: `Lists every city whose name contains QUERY, ignoring case, with its
province, funding and homes.

Example:
  housingdash city calgary`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCity,
}

// provincesCmd prints the provincial breakdown
var provincesCmd = &cobra.Command{
	Use:   "provinces",
	Short: "Show funding per province (top four plus Other)",
	Args:  cobra.NoArgs,
	RunE:  runProvinces,
}

func runCity(cmd *cobra.Command, args []string) error {
	_, r, err := loadReport()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	matches := funding.Search(r.Cities, query)
	if len(matches) == 0 {
		return fmt.Errorf("no city matches %q", query)
	}

	table := ui.NewSimpleTable("", []string{"#", "City", "Province", "Funding", "Homes"})
	table.RightAlign[0] = true
	table.RightAlign[3] = true
	table.RightAlign[4] = true
	for _, c := range funding.SortCities(matches, cfg.SortOrder()) {
		table.AddRow(
			strconv.Itoa(c.Index+1),
			c.Name,
			report.ProvinceName(c.Province),
			money.Format(c.Funding),
			strconv.FormatInt(c.Homes, 10),
		)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.View(ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))))
	return nil
}

func runProvinces(cmd *cobra.Command, args []string) error {
	_, r, err := loadReport()
	if err != nil {
		return err
	}

	table := ui.NewSimpleTable("", []string{"Province", "Funding", "Share"})
	table.RightAlign[1] = true
	table.RightAlign[2] = true
	for _, p := range r.Provinces.Entries() {
		table.AddRow(
			report.ProvinceName(p.Code),
			money.Format(p.Total),
			fmt.Sprintf("%.1f%%", r.Share(p.Total)),
		)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.View(ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))))
	fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", money.Format(r.Provinces.Total()))
	return nil
}
