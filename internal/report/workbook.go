package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SummarySheet   = "Summary"
	CitiesSheet    = "Cities"
	ProvincesSheet = "Provinces"
)

// thousands is excelize's built-in "#,##0" number format.
const thousands = 3

// Workbook builds an XLSX workbook with summary, city and province sheets.
// The caller must Close the returned file.
func Workbook(r Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{CitiesSheet, ProvincesSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	w := sheetWriter{f: f}
	w.styles()

	w.row(SummarySheet, 1, "Metric", "Value")
	w.row(SummarySheet, 2, "Source", r.Source)
	w.row(SummarySheet, 3, "Total funding", r.Summary.TotalFunding)
	w.row(SummarySheet, 4, "Homes", r.Summary.TotalHomes)
	w.row(SummarySheet, 5, "Cities", r.Summary.Cities)
	w.row(SummarySheet, 6, "Provinces", r.Summary.Provinces)
	w.row(SummarySheet, 7, "Largest", r.Summary.Largest.Name)
	w.header(SummarySheet, 2)
	w.number(SummarySheet, "B3", "B4")
	w.width(SummarySheet, "A", "B", 24)

	w.row(CitiesSheet, 1, "City", "Province", "Funding", "Homes")
	for i, c := range r.Cities {
		w.row(CitiesSheet, i+2, c.Name, c.Province, c.Funding, c.Homes)
	}
	w.header(CitiesSheet, 4)
	if n := len(r.Cities); n > 0 {
		w.number(CitiesSheet, "C2", fmt.Sprintf("D%d", n+1))
	}
	w.width(CitiesSheet, "A", "A", 32)
	w.width(CitiesSheet, "B", "D", 16)

	w.row(ProvincesSheet, 1, "Code", "Province", "Funding", "Share %")
	entries := r.Provinces.Entries()
	for i, p := range entries {
		w.row(ProvincesSheet, i+2, p.Code, ProvinceName(p.Code), p.Total, round1(r.Share(p.Total)))
	}
	w.header(ProvincesSheet, 4)
	if n := len(entries); n > 0 {
		w.number(ProvincesSheet, "C2", fmt.Sprintf("C%d", n+1))
	}
	w.width(ProvincesSheet, "A", "D", 18)

	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("build workbook: %w", w.err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook builds the workbook and saves it to path.
func WriteWorkbook(path string, r Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// sheetWriter keeps the first excelize error; later calls are no-ops.
type sheetWriter struct {
	f        *excelize.File
	err      error
	bold     int
	numFmtID int
}

func (w *sheetWriter) styles() {
	if w.err != nil {
		return
	}
	w.bold, w.err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"A8DADC"}},
	})
	if w.err != nil {
		return
	}
	w.numFmtID, w.err = w.f.NewStyle(&excelize.Style{NumFmt: thousands})
}

func (w *sheetWriter) row(sheet string, n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) header(sheet string, cols int) {
	if w.err != nil {
		return
	}
	end, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(sheet, "A1", end, w.bold)
}

func (w *sheetWriter) number(sheet, from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, from, to, w.numFmtID)
}

func (w *sheetWriter) width(sheet, from, to string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(sheet, from, to, width)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
