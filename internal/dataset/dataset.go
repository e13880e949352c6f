// Package dataset builds typed rows from raw records according to a field
// spec and exposes the load entry point used by the dashboard.
package dataset

import (
	"housingdash/internal/fieldspec"
	"housingdash/internal/logging"
	"housingdash/internal/records"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dataset is one load cycle's worth of rows, in source order minus the
// header. It is rebuilt wholesale on reload and never edited in place.
type Dataset struct {
	LoadID uuid.UUID
	Source string
	Fields fieldspec.Spec
	Rows   []Row
}

// Empty returns a dataset with no rows, used when the source is unreadable.
func Empty(source string, spec fieldspec.Spec) *Dataset {
	return &Dataset{LoadID: uuid.New(), Source: source, Fields: spec, Rows: []Row{}}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Value returns the value of field in row i.
func (d *Dataset) Value(i int, field string) (Value, bool) {
	if d == nil || i < 0 || i >= len(d.Rows) {
		return nil, false
	}
	e, ok := d.Rows[i].Get(field)
	if !ok {
		return nil, false
	}
	return e.Value, true
}

// LoadOptions configures Load.
type LoadOptions struct {
	Records records.Options
	Logger  *zap.Logger
}

// Load reads path and builds the dataset. A read failure returns an empty
// dataset together with the *records.ReadError so callers can render a
// placeholder.
func Load(path string, spec fieldspec.Spec, opts LoadOptions) (*Dataset, []RowParseWarning, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ds := Empty(path, spec)
	logger = logger.With(
		zap.String("load_id", ds.LoadID.String()),
		zap.String("source", path))
	log := logger.Named(string(logging.CategoryLoad))

	format := opts.Records.Format
	if format == records.FormatAuto {
		format = records.Detect(path)
	}
	log.Debug("reading source", zap.Stringer("format", format))

	recs, err := records.ReadFile(path, records.Options{Format: format, Sheet: opts.Records.Sheet})
	if err != nil {
		log.Error("failed to read source", zap.Error(err))
		return ds, nil, err
	}

	rows, warnings := Build(recs, spec,
		WithLogger(logger),
		WithDelimiter(format.Delimiter()))
	ds.Rows = rows

	log.Info("dataset loaded",
		zap.Int("records", len(recs)),
		zap.Int("rows", len(rows)),
		zap.Int("warnings", len(warnings)))
	return ds, warnings, nil
}
