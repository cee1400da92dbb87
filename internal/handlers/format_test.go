package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"workday-admin/internal/models"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"ninety minutes", 5400000, "1h 30m"},
		{"eight hours", 28800000, "8h 0m"},
		{"under a minute", 59000, "0h 0m"},
		{"zero renders dash", 0, "-"},
		{"negative renders dash", -1, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.ms))
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "-", formatClock(nil))

	ts := time.Date(2026, 8, 27, 9, 30, 15, 0, time.Local)
	assert.Equal(t, "09:30:15", formatClock(&ts))
}

func TestFormatBreak(t *testing.T) {
	start := time.Date(2026, 8, 27, 12, 0, 0, 0, time.Local)

	open := models.Break{Start: start}
	assert.Equal(t, "12:00:00 - ...", formatBreak(open))

	end := start.Add(30 * time.Minute)
	closed := models.Break{Start: start, End: &end}
	assert.Equal(t, "12:00:00 - 12:30:00", formatBreak(closed))
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		want         int
	}{
		{"partial last page", 45, 20, 3},
		{"exact fit", 40, 20, 2},
		{"empty listing still one page", 0, 20, 1},
		{"single item", 1, 50, 1},
		{"zero limit guarded", 45, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, totalPages(tt.total, tt.limit))
		})
	}
}

func TestBuildRows(t *testing.T) {
	start := time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local)
	end := start.Add(8 * time.Hour)

	rows := buildRows([]models.Workday{
		{
			Date:           "2026-08-27",
			StartTime:      &start,
			EndTime:        &end,
			TotalWorkTime:  27000000,
			TotalBreakTime: 1800000,
			Breaks:         []models.Break{{Start: start.Add(3 * time.Hour)}},
		},
		{Date: "2026-08-26"},
	})

	assert.Len(t, rows, 2)
	assert.Equal(t, "09:00:00", rows[0].Start)
	assert.Equal(t, "7h 30m", rows[0].Work)
	assert.Equal(t, "0h 30m", rows[0].Break)
	assert.Equal(t, []string{"12:00:00 - ..."}, rows[0].Breaks)

	// A day with nothing recorded renders placeholders across the board.
	assert.Equal(t, "-", rows[1].Start)
	assert.Equal(t, "-", rows[1].End)
	assert.Equal(t, "-", rows[1].Work)
	assert.Equal(t, "-", rows[1].Break)
}
