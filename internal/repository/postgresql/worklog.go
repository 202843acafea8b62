package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hemloeth/attendance/internal/domain/worklog"
	"github.com/hemloeth/attendance/internal/pkg/database"
)

type workLogRepositoryImpl struct {
	db *database.DB
}

func NewWorkLogRepository(db *database.DB) worklog.WorkLogRepository {
	return &workLogRepositoryImpl{db: db}
}

// Create implements worklog.WorkLogRepository.
func (r *workLogRepositoryImpl) Create(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	query := `
		INSERT INTO worklogs (id, user_id, date, start_time, end_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.ID,
		log.UserID,
		log.Date,
		log.StartTime,
		log.EndTime,
		log.DurationMinutes,
		log.Status,
	).Scan(&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return worklog.WorkLog{}, err
	}

	return log, nil
}

// CreateBatch implements worklog.WorkLogRepository.
func (r *workLogRepositoryImpl) CreateBatch(ctx context.Context, logs []worklog.WorkLog) (int, error) {
	if len(logs) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO worklogs (id, user_id, date, start_time, end_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, log := range logs {
		id := log.ID
		if id == "" {
			id = uuid.NewString()
		}
		batch.Queue(query, id, log.UserID, log.Date, log.StartTime, log.EndTime, log.DurationMinutes, log.Status)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	created := 0
	for range logs {
		if _, err := results.Exec(); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

// GetByUserAndDate implements worklog.WorkLogRepository.
func (r *workLogRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*worklog.WorkLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time, duration_minutes, status, created_at, updated_at
		FROM worklogs
		WHERE user_id = $1
		  AND date = $2
		LIMIT 1
	`

	var log worklog.WorkLog
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&log.ID,
		&log.UserID,
		&log.Date,
		&log.StartTime,
		&log.EndTime,
		&log.DurationMinutes,
		&log.Status,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No existing work log found
		}
		return nil, fmt.Errorf("failed to get work log by user and date: %w", err)
	}

	return &log, nil
}

// Update implements worklog.WorkLogRepository.
func (r *workLogRepositoryImpl) Update(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE worklogs
		SET end_time = $1, duration_minutes = $2, status = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.EndTime,
		log.DurationMinutes,
		log.Status,
		log.ID,
	).Scan(&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return worklog.WorkLog{}, worklog.ErrWorkLogNotFound
		}
		return worklog.WorkLog{}, fmt.Errorf("failed to update work log: %w", err)
	}

	return log, nil
}

// ListByUserAndDateRange implements worklog.WorkLogRepository.
func (r *workLogRepositoryImpl) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]worklog.WorkLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time, duration_minutes, status, created_at, updated_at
		FROM worklogs
		WHERE user_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs by range: %w", err)
	}
	defer rows.Close()

	return scanWorkLogs(rows, false)
}

// ListByDateRange implements worklog.WorkLogRepository.
func (r *workLogRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]worklog.WorkLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.user_id, w.date, w.start_time, w.end_time, w.duration_minutes, w.status,
			   w.created_at, w.updated_at,
			   u.name AS user_name,
			   u.email AS user_email
		FROM worklogs w
		JOIN users u ON u.id = w.user_id
		WHERE w.date >= $1
		  AND w.date <= $2
		ORDER BY w.start_time ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs by date: %w", err)
	}
	defer rows.Close()

	return scanWorkLogs(rows, true)
}

// ListByUser implements worklog.WorkLogRepository.
func (r *workLogRepositoryImpl) ListByUser(ctx context.Context, userID string, limit, offset int) ([]worklog.WorkLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time, duration_minutes, status, created_at, updated_at
		FROM worklogs
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work logs: %w", err)
	}
	defer rows.Close()

	logs, err := scanWorkLogs(rows, false)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM worklogs WHERE user_id = $1`
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work logs: %w", err)
	}

	return logs, total, nil
}

func scanWorkLogs(rows pgx.Rows, joined bool) ([]worklog.WorkLog, error) {
	var logs []worklog.WorkLog
	for rows.Next() {
		var log worklog.WorkLog
		dest := []interface{}{
			&log.ID,
			&log.UserID,
			&log.Date,
			&log.StartTime,
			&log.EndTime,
			&log.DurationMinutes,
			&log.Status,
			&log.CreatedAt,
			&log.UpdatedAt,
		}
		if joined {
			dest = append(dest, &log.UserName, &log.UserEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work logs: %w", err)
	}
	return logs, nil
}
