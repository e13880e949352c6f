package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"housingdash/internal/config"
	"housingdash/internal/logging"
	"housingdash/internal/records"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const fixture = "City,Funding,Homes\n" +
	"\"London, Ontario\",\"$74,000,000\",500\n" +
	"\"Calgary, Alberta\",\"$228,000,000\",1500\n" +
	"\"Whitehorse\",\"$1,000,000\",10\n"

// withFixture writes a dataset, field config and app config into a temp
// dir and runs setup against them.
func withFixture(t *testing.T, edit func(*config.Config)) string {
	t.Helper()
	dir := t.TempDir()

	input := filepath.Join(dir, "funding.csv")
	require.NoError(t, os.WriteFile(input, []byte(fixture), 0o644))
	fields := filepath.Join(dir, "FundingConfig.json")
	require.NoError(t, os.WriteFile(fields,
		[]byte(`{"City":"String","Funding":"String","Homes":"Integer"}`), 0o644))

	c := config.DefaultConfig()
	c.Input.Path = input
	c.Fields.Path = fields
	c.Charts.OutDir = filepath.Join(dir, "charts")
	c.Logging.Level = "error"
	c.UI.Theme = "light"
	if edit != nil {
		edit(c)
	}
	configPath = filepath.Join(dir, "housingdash.yaml")
	require.NoError(t, c.Save(configPath))

	inputPath = ""
	verbose = false
	t.Cleanup(func() { cfg, logger = nil, nil })
	return dir
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	return cmd, &buf
}

func TestSetupAppliesInputFlag(t *testing.T) {
	dir := withFixture(t, nil)
	inputPath = filepath.Join(dir, "other.csv")
	require.NoError(t, setup(true))
	assert.Equal(t, inputPath, cfg.Input.Path)
	assert.NotNil(t, logger)
}

func TestSetupRejectsInvalidConfig(t *testing.T) {
	withFixture(t, func(c *config.Config) { c.Charts.Format = "gif" })
	err := setup(true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "charts.format")
}

func TestSummaryRaw(t *testing.T) {
	withFixture(t, nil)
	require.NoError(t, setup(true))

	summaryRaw = true
	t.Cleanup(func() { summaryRaw = false })
	cmd, out := testCmd()
	require.NoError(t, runSummary(cmd, nil))

	assert.Contains(t, out.String(), "# Housing Funding Summary")
	assert.Contains(t, out.String(), "Calgary, Alberta")
	assert.Contains(t, out.String(), "$303,000,000")
}

func TestSummaryStyled(t *testing.T) {
	withFixture(t, nil)
	require.NoError(t, setup(true))

	cmd, out := testCmd()
	require.NoError(t, runSummary(cmd, nil))
	assert.Contains(t, out.String(), "Provinces")
}

func TestSummaryMissingInput(t *testing.T) {
	dir := withFixture(t, nil)
	inputPath = filepath.Join(dir, "missing.csv")
	require.NoError(t, setup(true))

	cmd, _ := testCmd()
	err := runSummary(cmd, nil)
	require.Error(t, err)
	assert.True(t, records.IsReadError(err))
}

func TestRenderSVG(t *testing.T) {
	dir := withFixture(t, nil)
	require.NoError(t, setup(true))

	renderFormat = "svg"
	renderOut = filepath.Join(dir, "out")
	t.Cleanup(func() { renderFormat, renderOut = "", "" })

	cmd, out := testCmd()
	require.NoError(t, runRender(cmd, nil))

	paths := strings.Fields(out.String())
	require.Len(t, paths, 3)
	for _, p := range paths {
		assert.Equal(t, ".svg", filepath.Ext(p))
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<svg")
	}
}

func TestRenderSkipsEmptyPie(t *testing.T) {
	dir := withFixture(t, nil)
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("City,Funding,Homes\nWhitehorse,$0,1\n"), 0o644))
	inputPath = empty
	require.NoError(t, setup(true))

	cmd, out := testCmd()
	require.NoError(t, runRender(cmd, nil))

	paths := strings.Fields(out.String())
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Equal(t, ".png", filepath.Ext(p))
		assert.NotContains(t, p, "provincial")
	}
}

func TestRenderBadFormat(t *testing.T) {
	withFixture(t, nil)
	require.NoError(t, setup(true))

	renderFormat = "bmp"
	t.Cleanup(func() { renderFormat = "" })
	cmd, _ := testCmd()
	assert.Error(t, runRender(cmd, nil))
}

func TestExport(t *testing.T) {
	dir := withFixture(t, nil)
	require.NoError(t, setup(true))

	exportOut = filepath.Join(dir, "funding.xlsx")
	t.Cleanup(func() { exportOut = "housing_funding.xlsx" })
	cmd, out := testCmd()
	require.NoError(t, runExport(cmd, nil))
	assert.Contains(t, out.String(), exportOut)

	f, err := excelize.OpenFile(exportOut)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary", "Cities", "Provinces"}, f.GetSheetList())
}

func TestCity(t *testing.T) {
	withFixture(t, nil)
	require.NoError(t, setup(true))

	cmd, out := testCmd()
	require.NoError(t, runCity(cmd, []string{"CAL"}))
	assert.Contains(t, out.String(), "Calgary, Alberta")
	assert.Contains(t, out.String(), "$228,000,000")
	assert.NotContains(t, out.String(), "London")

	cmd, _ = testCmd()
	err := runCity(cmd, []string{"nowhere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nowhere")
}

func TestProvinces(t *testing.T) {
	withFixture(t, nil)
	require.NoError(t, setup(true))

	cmd, out := testCmd()
	require.NoError(t, runProvinces(cmd, nil))
	for _, want := range []string{"Alberta", "Ontario", "Other", "75.2%", "Total: $303,000,000"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestLoadReportLogsUnderCategories(t *testing.T) {
	withFixture(t, nil)
	require.NoError(t, setup(true))
	core, logs := observer.New(zapcore.DebugLevel)
	logger = zap.New(core)

	_, r, err := loadReport()
	require.NoError(t, err)
	assert.Len(t, r.Cities, 3)

	entries := logs.FilterMessage("funding aggregated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(logging.CategoryAggregate), entries[0].LoggerName)
	assert.Equal(t, int64(303000000), entries[0].ContextMap()["total"])
	assert.NotEmpty(t, logs.FilterLoggerName(string(logging.CategoryLoad)).All())
}
