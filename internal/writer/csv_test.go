package writer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquant/nsechain/internal/models"
)

func testRows(iv *float64) []*models.OptionRow {
	return []*models.OptionRow{
		{
			Timestamp:         "2024-06-27 10:30:00",
			Symbol:            "NIFTY.NSE.OPT.20240627.22000.CALL",
			OptionType:        "CALL",
			Strike:            22000,
			Expiry:            "2024-06-27",
			Last:              120.5,
			Volume:            1000,
			ImpliedVolatility: iv,
			Underlying:        "NIFTY",
		},
	}
}

func newTestWriter(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	w, err := NewCSVWriter(dir, logger)
	require.NoError(t, err)
	return w, dir
}

func TestWriteCreatesDatedFileWithHeader(t *testing.T) {
	w, dir := newTestWriter(t)

	require.NoError(t, w.WriteRows(context.Background(), "NIFTY", testRows(nil)))

	data, err := os.ReadFile(filepath.Join(dir, "NIFTY_2024-06-27.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "timestamp,symbol,option_type,strike,expiry"))
	assert.Contains(t, lines[1], "NIFTY.NSE.OPT.20240627.22000.CALL")
}

func TestAppendSkipsHeader(t *testing.T) {
	w, dir := newTestWriter(t)
	ctx := context.Background()

	require.NoError(t, w.WriteRows(ctx, "NIFTY", testRows(nil)))
	require.NoError(t, w.WriteRows(ctx, "NIFTY", testRows(nil)))

	data, err := os.ReadFile(filepath.Join(dir, "NIFTY_2024-06-27.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,"))
}

func TestNilAnalyticsSerializeAsEmptyCells(t *testing.T) {
	w, dir := newTestWriter(t)
	ctx := context.Background()

	iv := 15.25
	require.NoError(t, w.WriteRows(ctx, "NIFTY", testRows(nil)))
	require.NoError(t, w.WriteRows(ctx, "NIFTY", testRows(&iv)))

	data, err := os.ReadFile(filepath.Join(dir, "NIFTY_2024-06-27.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	header := strings.Split(lines[0], ",")
	ivCol := -1
	for i, h := range header {
		if h == "impliedVolatility" {
			ivCol = i
		}
	}
	require.NotEqual(t, -1, ivCol)

	absent := strings.Split(lines[1], ",")
	present := strings.Split(lines[2], ",")
	assert.Equal(t, "", absent[ivCol])
	assert.Equal(t, "15.25", present[ivCol])
}

func TestEmptyBatchWritesNothing(t *testing.T) {
	w, dir := newTestWriter(t)

	require.NoError(t, w.WriteRows(context.Background(), "NIFTY", nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
