package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"solar-appraisal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadHourlyMeterCSV(t *testing.T) {
	path := writeTemp(t, "hourly.csv",
		"Date,Time,Usage already billed,Meter reading status\n"+
			"2024-01-01,00:00,0.523,Actual\n"+
			"2024-01-01,01:00,0.417,Estimated\n")

	got, err := ReadHourlyMeterCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got[0].Timestamp)
	assert.InDelta(t, 0.523, got[0].UsageKWh, 1e-9)
	assert.Equal(t, model.ReadingActual, got[0].Status)
	assert.Equal(t, model.ReadingEstimated, got[1].Status)
}

func TestReadHourlyMeterCSVColumnOrderIndependent(t *testing.T) {
	// Column order varies between portal exports; resolution is by name.
	path := writeTemp(t, "hourly.csv",
		"Meter reading status,Usage already billed,Time,Date\n"+
			"Actual,1.25,14:00,2024-03-09\n")

	got, err := ReadHourlyMeterCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1.25, got[0].UsageKWh, 1e-9)
	assert.Equal(t, 14, got[0].Timestamp.Hour())
}

func TestReadHourlyMeterCSVMissingColumns(t *testing.T) {
	path := writeTemp(t, "bad.csv", "Date,Usage\n2024-01-01,1.0\n")
	_, err := ReadHourlyMeterCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestConvertHalfHourlyToHourly(t *testing.T) {
	// Real exports carry 5 metadata rows before the header and day-first
	// dates.
	content := "NMI,12345\n" +
		"Address,1 Example St\n" +
		"Export period,Jan 2024\n" +
		"Generated,01/02/2024\n" +
		"\n" +
		"Date,Time,Usage already billed,Meter reading status\n" +
		"01/01/2024,00:00,0.2,Actual\n" +
		"01/01/2024,00:30,0.3,Actual\n" +
		"01/01/2024,01:00,0.1,Actual\n" +
		"01/01/2024,01:30,0.4,Estimated\n"
	inPath := writeTemp(t, "half.csv", content)
	outPath := filepath.Join(t.TempDir(), "hourly.csv")

	got, err := ConvertHalfHourlyToHourly(inPath, outPath)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got[0].Timestamp)
	assert.InDelta(t, 0.5, got[0].UsageKWh, 1e-9)
	assert.Equal(t, model.ReadingActual, got[0].Status)

	// Second hour contains an estimated reading, so the hour is estimated.
	assert.InDelta(t, 0.5, got[1].UsageKWh, 1e-9)
	assert.Equal(t, model.ReadingEstimated, got[1].Status)

	// The written file round-trips through the hourly reader.
	reread, err := ReadHourlyMeterCSV(outPath)
	require.NoError(t, err)
	require.Len(t, reread, 2)
	assert.InDelta(t, got[0].UsageKWh, reread[0].UsageKWh, 1e-3)
	assert.Equal(t, got[1].Status, reread[1].Status)
}

func TestConvertHalfHourlyToHourlySortsOutput(t *testing.T) {
	content := "a\nb\nc\nd\ne\n" +
		"Date,Time,Usage already billed,Meter reading status\n" +
		"02/01/2024,05:00,0.1,Actual\n" +
		"01/01/2024,23:30,0.2,Actual\n" +
		"01/01/2024,23:00,0.3,Actual\n"
	inPath := writeTemp(t, "half.csv", content)

	got, err := ConvertHalfHourlyToHourly(inPath, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Timestamp.Before(got[1].Timestamp))
	assert.InDelta(t, 0.5, got[0].UsageKWh, 1e-9)
}
