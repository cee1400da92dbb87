package handlers

import (
	"fmt"
	"time"

	"workday-admin/internal/models"
)

// formatDuration renders a millisecond total as whole hours and
// remainder minutes. Zero or absent durations render as a dash, never
// "0h 0m".
func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dh %dm", ms/3600000, (ms%3600000)/60000)
}

// formatClock renders a timestamp as a local wall-clock time, or a dash
// when absent.
func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("15:04:05")
}

// formatBreak renders one break interval; open breaks trail off.
func formatBreak(b models.Break) string {
	end := "..."
	if b.End != nil {
		end = b.End.Local().Format("15:04:05")
	}
	return b.Start.Local().Format("15:04:05") + " - " + end
}

// totalPages is the page count for a listing: at least 1, even when the
// listing is empty.
func totalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}
