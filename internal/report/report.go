// Package report turns aggregated funding data into human-facing artifacts:
// a markdown summary for the terminal and an XLSX workbook.
package report

import (
	"fmt"
	"strings"

	"housingdash/internal/dataset"
	"housingdash/internal/funding"
	"housingdash/internal/money"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
)

// Report is a snapshot of one loaded dataset.
type Report struct {
	LoadID    uuid.UUID
	Source    string
	Summary   funding.Summary
	Cities    []funding.City
	Provinces funding.ProvinceTotals
	Warnings  int
}

// New aggregates ds into a Report. warnings is the number of row warnings
// produced while loading.
func New(ds *dataset.Dataset, cols funding.Columns, warnings int, opts ...funding.Option) Report {
	r := Report{
		Summary:   funding.Summarize(ds, cols, opts...),
		Cities:    funding.Cities(ds, cols, opts...),
		Provinces: funding.ProvincialFunding(ds, cols, opts...),
		Warnings:  warnings,
	}
	if ds != nil {
		r.LoadID = ds.LoadID
		r.Source = ds.Source
	}
	return r
}

// Share returns part as a percentage of the report's total funding.
func (r Report) Share(part int64) float64 {
	if r.Summary.TotalFunding == 0 {
		return 0
	}
	return 100 * float64(part) / float64(r.Summary.TotalFunding)
}

// ProvinceName returns the display name for a province code.
func ProvinceName(code string) string {
	for _, p := range funding.Provinces {
		if p.Code == code {
			return p.Name
		}
	}
	return code
}

// Markdown renders the report as a markdown document.
func Markdown(r Report) string {
	var sb strings.Builder

	sb.WriteString("# Housing Funding Summary\n\n")
	if r.Source != "" {
		fmt.Fprintf(&sb, "Source: `%s`\n\n", r.Source)
	}

	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Total funding | %s |\n", money.Format(r.Summary.TotalFunding))
	fmt.Fprintf(&sb, "| Homes | %d |\n", r.Summary.TotalHomes)
	fmt.Fprintf(&sb, "| Cities | %d |\n", r.Summary.Cities)
	fmt.Fprintf(&sb, "| Provinces | %d |\n", r.Summary.Provinces)
	if r.Summary.Cities > 0 {
		fmt.Fprintf(&sb, "| Largest | %s (%s) |\n", r.Summary.Largest.Name, money.Humanize(r.Summary.Largest.Funding))
	}
	sb.WriteString("\n")

	sb.WriteString("## Provinces\n\n")
	sb.WriteString("| Province | Funding | Share |\n|---|---:|---:|\n")
	for _, p := range r.Provinces.Entries() {
		fmt.Fprintf(&sb, "| %s | %s | %.1f%% |\n", ProvinceName(p.Code), money.Format(p.Total), r.Share(p.Total))
	}
	sb.WriteString("\n")

	sb.WriteString("## Cities\n\n")
	if len(r.Cities) == 0 {
		sb.WriteString("_No cities loaded._\n")
	} else {
		sb.WriteString("| City | Province | Funding | Homes |\n|---|---|---:|---:|\n")
		for _, c := range r.Cities {
			fmt.Fprintf(&sb, "| %s | %s | %s | %d |\n", escape(c.Name), c.Province, money.Format(c.Funding), c.Homes)
		}
	}

	if r.Warnings > 0 {
		fmt.Fprintf(&sb, "\n> %d row(s) produced warnings while loading.\n", r.Warnings)
	}
	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Terminal renders markdown for a terminal of the given width. style is a
// glamour style name ("dark", "light", "notty") or "auto" to detect one.
func Terminal(md, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStylePath(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
