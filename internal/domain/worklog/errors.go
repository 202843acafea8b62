package worklog

import "errors"

// Work log domain errors
var (
	// Session errors
	ErrSessionAlreadyStarted = errors.New("work already started for today")
	ErrNoSessionToday        = errors.New("no work session found for today")
	ErrSessionAlreadyEnded   = errors.New("work already ended for today")

	// Week off errors
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrWeekOffOverlap   = errors.New("work logs already exist for some dates in this period")

	ErrWorkLogNotFound = errors.New("work log not found")
)
