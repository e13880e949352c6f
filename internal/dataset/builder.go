package dataset

import (
	"errors"
	"fmt"
	"strings"

	"housingdash/internal/fieldspec"
	"housingdash/internal/logging"
	"housingdash/internal/money"
	"housingdash/internal/records"

	"go.uber.org/zap"
)

// missingValue is the placeholder the source data uses for "no figure".
const missingValue = "--"

// RowParseWarning records a row-level problem that did not stop the batch.
// Line is the 1-based record number in the source, header included.
type RowParseWarning struct {
	Line    int
	Field   string
	Raw     string
	Reason  string
	Skipped bool
}

func (w RowParseWarning) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "line %d", w.Line)
	if w.Field != "" {
		fmt.Fprintf(&sb, " field %q", w.Field)
	}
	if w.Raw != "" {
		fmt.Fprintf(&sb, " value %q", w.Raw)
	}
	sb.WriteString(": ")
	sb.WriteString(w.Reason)
	if w.Skipped {
		sb.WriteString(" (row skipped)")
	}
	return sb.String()
}

type buildConfig struct {
	logger    *zap.Logger
	delimiter string
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithLogger logs every warning under the "rows" category.
func WithLogger(l *zap.Logger) BuildOption {
	return func(c *buildConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDelimiter sets the separator used to re-join surplus fields. Defaults
// to a comma.
func WithDelimiter(d rune) BuildOption {
	return func(c *buildConfig) {
		if d != 0 {
			c.delimiter = string(d)
		}
	}
}

// Build turns raw records into typed rows. The first record is the header
// and is skipped. Rows with too few fields are dropped with a warning;
// numeric cells that fail to parse become 0 with a warning and the row is
// kept.
func Build(recs []records.Record, spec fieldspec.Spec, opts ...BuildOption) ([]Row, []RowParseWarning) {
	cfg := buildConfig{logger: zap.NewNop(), delimiter: ","}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger.Named(string(logging.CategoryRows))

	if len(recs) <= 1 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(recs)-1)
	var warnings []RowParseWarning
	warn := func(w RowParseWarning) {
		warnings = append(warnings, w)
		log.Warn("row parse warning",
			zap.Int("line", w.Line),
			zap.String("field", w.Field),
			zap.String("raw", w.Raw),
			zap.String("reason", w.Reason),
			zap.Bool("skipped", w.Skipped))
	}

	for i, rec := range recs[1:] {
		line := i + 2

		if len(rec) < len(spec) {
			warn(RowParseWarning{
				Line:    line,
				Reason:  fmt.Sprintf("expected %d fields, got %d", len(spec), len(rec)),
				Skipped: true,
			})
			continue
		}

		if surplus := len(rec) - len(spec); surplus > 0 {
			var folded bool
			rec, folded = fold(rec, spec, cfg.delimiter)
			if !folded {
				warn(RowParseWarning{
					Line:   line,
					Reason: fmt.Sprintf("ignored %d surplus fields", surplus),
				})
			}
		}

		row := make(Row, len(spec))
		for j, f := range spec {
			raw := rec[j]
			v, err := cast(clean(raw), f.Type)
			if err != nil {
				warn(RowParseWarning{Line: line, Field: f.Name, Raw: raw, Reason: err.Error()})
			}
			row[j] = Entry{Field: f.Name, Value: v}
		}
		rows = append(rows, row)
	}

	log.Debug("rows built", zap.Int("rows", len(rows)), zap.Int("warnings", len(warnings)))
	return rows, warnings
}

// fold re-joins a value that was split on an unquoted delimiter, such as
// "London, Ontario", into the first String field. Without a String field
// the trailing surplus is cut off and false is returned.
func fold(rec records.Record, spec fieldspec.Spec, delim string) (records.Record, bool) {
	surplus := len(rec) - len(spec)
	k := spec.FirstOf(fieldspec.String)
	if k < 0 {
		return rec[:len(spec)], false
	}

	out := make(records.Record, 0, len(spec))
	out = append(out, rec[:k]...)
	out = append(out, strings.Join(rec[k:k+surplus+1], delim))
	out = append(out, rec[k+surplus+1:]...)
	return out, true
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

var errMissing = errors.New("empty numeric value")

func cast(s string, t fieldspec.Type) (Value, error) {
	switch t {
	case fieldspec.Integer:
		if s == missingValue {
			return NewInteger(0), nil
		}
		d, err := money.ParseNumber(s)
		if err != nil {
			return NewInteger(0), numericErr(err)
		}
		n, err := money.Whole(d)
		if err != nil {
			return NewInteger(0), err
		}
		return NewInteger(n), nil
	case fieldspec.Float:
		if s == missingValue {
			return NewFloat(0), nil
		}
		d, err := money.ParseNumber(s)
		if err != nil {
			return NewFloat(0), numericErr(err)
		}
		return NewFloat(d.InexactFloat64()), nil
	default:
		return NewString(s), nil
	}
}

func numericErr(err error) error {
	if errors.Is(err, money.ErrEmpty) {
		return errMissing
	}
	return err
}
