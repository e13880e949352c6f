// Package records reads delimited text, XLSX sheets and JSON arrays into
// ordered raw records of string fields. No typing or cleanup happens here.
package records

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record is one input line split into raw fields.
type Record []string

// Format selects how a source is split into records.
type Format int

const (
	FormatAuto Format = iota
	FormatComma
	FormatTab
	FormatXLSX
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatComma:
		return "csv"
	case FormatTab:
		return "tsv"
	case FormatXLSX:
		return "xlsx"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// ParseFormat maps a config value to a Format. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "csv", "comma":
		return FormatComma, nil
	case "tsv", "tab":
		return FormatTab, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatAuto, fmt.Errorf("unknown input format %q (valid: auto, csv, tsv, xlsx, json)", s)
}

// Detect resolves FormatAuto from the file extension.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab", ".txt":
		return FormatTab
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".json":
		return FormatJSON
	default:
		return FormatComma
	}
}

// Delimiter returns the field separator for delimited formats, or 0.
func (f Format) Delimiter() rune {
	switch f {
	case FormatComma:
		return ','
	case FormatTab:
		return '\t'
	}
	return 0
}

// Options control a read.
type Options struct {
	Format Format
	// Sheet names the XLSX worksheet; the first sheet is used when empty.
	Sheet string
}

// ReadError reports a source that could not be opened or parsed.
type ReadError struct {
	Path string
	Op   string // "open", "read" or "parse"
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("records: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("records: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsReadError reports whether err carries a *ReadError.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// ReadFile reads every record of the file at path, header included.
func ReadFile(path string, opts Options) ([]Record, error) {
	format := opts.Format
	if format == FormatAuto {
		format = Detect(path)
	}

	if format == FormatXLSX {
		return readXLSX(path, opts.Sheet)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	recs, err := Read(f, Options{Format: format})
	if err != nil {
		var re *ReadError
		if errors.As(err, &re) {
			re.Path = path
		}
		return nil, err
	}
	return recs, nil
}

// Read parses delimited text or JSON from r. FormatAuto is treated as comma.
func Read(r io.Reader, opts Options) ([]Record, error) {
	switch opts.Format {
	case FormatJSON:
		return readJSON(r)
	case FormatXLSX:
		return nil, &ReadError{Op: "read", Err: errors.New("xlsx sources must be read with ReadFile")}
	case FormatTab:
		return readDelimited(r, '\t')
	default:
		return readDelimited(r, ',')
	}
}

func readDelimited(r io.Reader, comma rune) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	var out []Record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ReadError{Op: "parse", Err: err}
		}
		out = append(out, Record(fields))
	}
	return out, nil
}

func readJSON(r io.Reader) ([]Record, error) {
	var raw [][]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &ReadError{Op: "parse", Err: fmt.Errorf("expected an array of arrays: %w", err)}
	}

	out := make([]Record, 0, len(raw))
	for i, row := range raw {
		rec := make(Record, len(row))
		for j, v := range row {
			s, err := scalarString(v)
			if err != nil {
				return nil, &ReadError{Op: "parse", Err: fmt.Errorf("row %d field %d: %w", i, j, err)}
			}
			rec[j] = s
		}
		out = append(out, rec)
	}
	return out, nil
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}

func readXLSX(path, sheet string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &ReadError{Path: path, Op: "read", Err: errors.New("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ReadError{Path: path, Op: "read", Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		out = append(out, Record(row))
	}
	return out, nil
}
