package data

import (
	"path/filepath"
	"testing"
	"time"

	"solar-appraisal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolarCSVRoundTrip(t *testing.T) {
	records := []model.SolarRecord{
		{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ACOutputKWh: 0},
		{Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), ACOutputKWh: 3.141593},
	}
	path := filepath.Join(t.TempDir(), "solar.csv")

	require.NoError(t, WriteSolarCSV(path, records))
	got, err := ReadSolarCSV(path)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, records[0].Timestamp, got[0].Timestamp)
	assert.InDelta(t, records[1].ACOutputKWh, got[1].ACOutputKWh, 1e-6)
}

func TestReadSolarCSVMissingColumns(t *testing.T) {
	path := writeTemp(t, "bad.csv", "time,watts\n2024-01-01 00:00,100\n")
	_, err := ReadSolarCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestReadSolarCSVBadValue(t *testing.T) {
	path := writeTemp(t, "bad.csv", "datetime,ac_kwh\n2024-01-01 00:00,not-a-number\n")
	_, err := ReadSolarCSV(path)
	require.Error(t, err)
}
