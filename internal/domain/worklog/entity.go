package worklog

import (
	"math"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"    // start recorded, no end yet
	StatusCompleted Status = "completed" // end recorded, duration derived
	StatusWeekOff   Status = "week_off"  // day blocked in advance, zero duration
)

// WorkLog is one day's attendance record for one user. At most one exists
// per (UserID, Date); the worklogs table enforces this with a unique
// constraint.
type WorkLog struct {
	ID              string
	UserID          string
	Date            time.Time // day granularity, stored as DATE
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	UserName  *string
	UserEmail *string
}

// DeriveDuration computes the stored duration and status from the session
// timestamps. Duration is never accepted as input; the service layer calls
// this before every write that sets or changes the end timestamp.
func DeriveDuration(status Status, start time.Time, end *time.Time) (*int, Status) {
	if status == StatusWeekOff {
		zero := 0
		return &zero, StatusWeekOff
	}
	if end != nil {
		minutes := int(math.Round(end.Sub(start).Minutes()))
		return &minutes, StatusCompleted
	}
	return nil, StatusActive
}

// DateOnly normalizes a timestamp to its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
