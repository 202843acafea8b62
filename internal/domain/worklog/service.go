package worklog

import (
	"context"
)

// WorkLogService defines business logic for attendance sessions.
// Every operation is scoped to the authenticated caller; the user ID is
// resolved from the request context, never from client input.
type WorkLogService interface {
	// StartSession opens today's work session for the caller.
	StartSession(ctx context.Context) (WorkLogResponse, error)

	// EndSession closes today's session and derives its duration.
	EndSession(ctx context.Context) (WorkLogResponse, error)

	// MarkWeekOff blocks every working day in the inclusive date range
	// with a zero-duration week_off log. Weekend days are skipped.
	MarkWeekOff(ctx context.Context, req WeekOffRequest) (WeekOffResponse, error)

	// ListMyLogs retrieves the caller's logs, newest first.
	ListMyLogs(ctx context.Context, filter MyLogsFilter) (ListWorkLogsResponse, error)
}
