package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDistinctDaysCountsDatesNotIntervals(t *testing.T) {
	// Gappy series spanning 3 dates; 24-hour division would say 0.
	intervals := []IntervalRecord{
		{Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)},
		{Timestamp: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{Timestamp: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{Timestamp: time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, 3, DistinctDays(intervals))
}

func TestDistinctDaysEmpty(t *testing.T) {
	assert.Equal(t, 0, DistinctDays(nil))
}
