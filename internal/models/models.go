// Package models holds the data shapes exchanged with the time-tracking
// API. They are passthrough types: the API owns their meaning.
package models

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// User is an account in the time-tracking system.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Break is a pause within a workday. End is nil while the break is open.
type Break struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end"`
}

// Workday is one day's attendance record for a user. Durations are
// millisecond totals computed by the API.
type Workday struct {
	ID             string     `json:"_id"`
	Date           string     `json:"date"`
	StartTime      *time.Time `json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	TotalWorkTime  int64      `json:"totalWorkTime"`
	TotalBreakTime int64      `json:"totalBreakTime"`
	Breaks         []Break    `json:"breaks"`
}

// WorkdayPage is one page of a user's workdays plus the unpaged total,
// used to drive pagination.
type WorkdayPage struct {
	Items []Workday `json:"items"`
	Total int       `json:"total"`
}
