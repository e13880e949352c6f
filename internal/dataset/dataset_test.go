package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"housingdash/internal/fieldspec"
	"housingdash/internal/logging"
	"housingdash/internal/money"
	"housingdash/internal/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func readCSV(t *testing.T, in string) []records.Record {
	t.Helper()
	recs, err := records.Read(strings.NewReader(in), records.Options{Format: records.FormatComma})
	require.NoError(t, err)
	return recs
}

func TestBuildEndToEndRow(t *testing.T) {
	recs := readCSV(t, "City,Funding,Homes\nLondon, Ontario,\"$74,000,000\",500\n")

	rows, warnings := Build(recs, fieldspec.Default())
	require.Empty(t, warnings)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Len(t, row, 3)
	assert.Equal(t, Entry{Field: "City", Value: NewString("London, Ontario")}, row[0])
	assert.Equal(t, Entry{Field: "Funding", Value: NewInteger(74000000)}, row[1])
	assert.Equal(t, Entry{Field: "Homes", Value: NewInteger(500)}, row[2])
}

func TestBuildRowCount(t *testing.T) {
	in := "City,Funding,Homes\n" +
		"Vaughan, Ontario,59000000,300\n" +
		"\"Hamilton, Ontario\",\"$93,500,000\",700\n" +
		"Kelowna\n" +
		"Halifax, Nova Scotia,79300000,--\n"
	recs := readCSV(t, in)

	rows, warnings := Build(recs, fieldspec.Default())
	assert.Len(t, rows, len(recs)-1-1, "header and the short row are excluded")
	require.Len(t, warnings, 1)
	assert.True(t, warnings[0].Skipped)
	assert.Equal(t, 4, warnings[0].Line)

	for _, r := range rows {
		assert.Len(t, r, 3)
	}
	assert.Equal(t, "Hamilton, Ontario", rows[1][0].Value.String())
	assert.Equal(t, NewInteger(0), rows[2][2].Value, "-- reads as zero without a warning")
}

func TestBuildNumericFailureKeepsRow(t *testing.T) {
	recs := readCSV(t, "City,Funding,Homes\nBrampton, Ontario,TBD,n/a\n")

	rows, warnings := Build(recs, fieldspec.Default())
	require.Len(t, rows, 1)
	assert.Equal(t, NewInteger(0), rows[0][1].Value)
	assert.Equal(t, NewInteger(0), rows[0][2].Value)

	require.Len(t, warnings, 2)
	assert.Equal(t, "Funding", warnings[0].Field)
	assert.Equal(t, "TBD", warnings[0].Raw)
	assert.False(t, warnings[0].Skipped)
	assert.Contains(t, warnings[0].Error(), `field "Funding"`)
}

func TestBuildIntegerRejectsStrayText(t *testing.T) {
	spec := fieldspec.Spec{{Name: "City", Type: fieldspec.String}, {Name: "Homes", Type: fieldspec.Integer}}
	tests := []struct {
		raw      string
		want     int64
		warnings int
	}{
		{"-5", -5, 0},
		{"\" 1,200 \"", 1200, 0},
		{"12.5", 13, 0},
		{"12abc", 0, 1},
		{"N/A 3", 0, 1},
		{"99999999999999999999999", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rows, warnings := Build(readCSV(t, "City,Homes\nRegina,"+tt.raw+"\n"), spec)
			require.Len(t, rows, 1)
			assert.Equal(t, NewInteger(tt.want), rows[0][1].Value)
			require.Len(t, warnings, tt.warnings)
			if tt.warnings > 0 {
				assert.Equal(t, "Homes", warnings[0].Field)
				assert.False(t, warnings[0].Skipped)
			}
		})
	}
}

func TestBuildIntegerOutOfRange(t *testing.T) {
	spec := fieldspec.Spec{{Name: "City", Type: fieldspec.String}, {Name: "Funding", Type: fieldspec.Integer}}
	rows, warnings := Build(readCSV(t, "City,Funding\nRegina,\"$99,999,999,999,999,999,999\"\n"), spec)

	require.Len(t, rows, 1)
	assert.Equal(t, NewInteger(0), rows[0][1].Value)
	require.Len(t, warnings, 1)
	assert.Equal(t, money.ErrOutOfRange.Error(), warnings[0].Reason)
}

func TestBuildFloatRejectsStrayText(t *testing.T) {
	spec := fieldspec.Spec{{Name: "City", Type: fieldspec.String}, {Name: "Rate", Type: fieldspec.Float}}
	rows, warnings := Build(readCSV(t, "City,Rate\nRegina,-1.25\nSaskatoon,1.5x\n"), spec)

	require.Len(t, rows, 2)
	assert.Equal(t, NewFloat(-1.25), rows[0][1].Value)
	assert.Equal(t, NewFloat(0), rows[1][1].Value)
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].Line)
}

func TestBuildFloatField(t *testing.T) {
	spec := fieldspec.Spec{{Name: "City", Type: fieldspec.String}, {Name: "Funding", Type: fieldspec.Float}}
	recs := readCSV(t, "City,Funding\nKelowna,\"$31,500,000.75\"\n")

	rows, warnings := Build(recs, spec)
	require.Empty(t, warnings)
	v, ok := rows[0][1].Value.(FloatValue)
	require.True(t, ok)
	assert.Equal(t, fieldspec.Float, v.Type())
	assert.InDelta(t, 31500000.75, v.Float(), 1e-6)
}

func TestBuildSurplusWithoutStringField(t *testing.T) {
	spec := fieldspec.Spec{{Name: "A", Type: fieldspec.Integer}}
	recs := readCSV(t, "A\n1,2,3\n")

	rows, warnings := Build(recs, spec)
	require.Len(t, rows, 1)
	assert.Equal(t, NewInteger(1), rows[0][0].Value)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Reason, "2 surplus")
}

func TestBuildHeaderOnly(t *testing.T) {
	rows, warnings := Build(readCSV(t, "City,Funding,Homes\n"), fieldspec.Default())
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
	assert.Empty(t, warnings)
}

func TestBuildLogsWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	recs := readCSV(t, "City,Funding,Homes\nshort\n")

	_, warnings := Build(recs, fieldspec.Default(), WithLogger(zap.New(core)))
	require.Len(t, warnings, 1)

	entries := logs.FilterMessage("row parse warning").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(logging.CategoryRows), entries[0].LoggerName)
	assert.Equal(t, int64(2), entries[0].ContextMap()["line"])
}

func TestValueTagsMatchPayload(t *testing.T) {
	assert.Equal(t, fieldspec.String, NewString("x").Type())
	assert.Equal(t, fieldspec.Integer, NewInteger(1).Type())
	assert.Equal(t, fieldspec.Float, NewFloat(1.5).Type())
	assert.Equal(t, "1.5", NewFloat(1.5).String())
	assert.Equal(t, "Funding = 7 (Integer)", Entry{Field: "Funding", Value: NewInteger(7)}.String())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "funding.tsv")
	content := "City\tFunding\tHomes\nLondon, Ontario\t\"$74,000,000\"\t500\nHalifax, Nova Scotia\t79300000\t320\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, warnings, err := Load(path, fieldspec.Default(), LoadOptions{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, path, ds.Source)
	assert.NotEqual(t, [16]byte{}, [16]byte(ds.LoadID))

	v, ok := ds.Value(1, "Homes")
	require.True(t, ok)
	assert.Equal(t, NewInteger(320), v)

	_, ok = ds.Value(5, "Homes")
	assert.False(t, ok)
	_, ok = ds.Value(0, "Population")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	ds, warnings, err := Load(path, fieldspec.Default(), LoadOptions{Logger: zap.NewNop()})
	require.Error(t, err)
	assert.True(t, records.IsReadError(err))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NotNil(t, ds, "an empty dataset is still returned")
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, warnings)
}

func TestNilDatasetLen(t *testing.T) {
	var ds *Dataset
	assert.Equal(t, 0, ds.Len())
}
