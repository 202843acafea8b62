package worklog

import (
	"context"
	"time"
)

// WorkLogRepository defines data access methods for work log records.
type WorkLogRepository interface {
	// Create inserts a single work log. A unique-violation on
	// (user_id, date) is returned as the raw storage error; the service
	// layer translates it.
	Create(ctx context.Context, log WorkLog) (WorkLog, error)

	// CreateBatch inserts every log in one round trip and returns the
	// number inserted. Callers wrap it in a transaction when the batch
	// must be all-or-nothing.
	CreateBatch(ctx context.Context, logs []WorkLog) (int, error)

	// GetByUserAndDate retrieves the log for a specific user on a specific
	// date, or nil when none exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*WorkLog, error)

	// Update persists end time, duration and status of an existing log.
	Update(ctx context.Context, log WorkLog) (WorkLog, error)

	// ListByUserAndDateRange retrieves a user's logs with date in
	// [from, to] inclusive, ordered by date ascending.
	ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]WorkLog, error)

	// ListByDateRange retrieves all users' logs with date in [from, to]
	// inclusive, joined with owner name and email, ordered by start time.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]WorkLog, error)

	// ListByUser retrieves a user's logs date-descending with pagination.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]WorkLog, int64, error)
}
