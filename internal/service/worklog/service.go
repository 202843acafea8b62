package worklog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hemloeth/attendance/internal/domain/user"
	"github.com/hemloeth/attendance/internal/domain/worklog"
	"github.com/hemloeth/attendance/internal/pkg/database"
	"github.com/hemloeth/attendance/internal/pkg/metrics"
	"github.com/hemloeth/attendance/internal/repository/postgresql"
)

// weekOffStartHour is the nominal start hour stamped on week off entries.
const weekOffStartHour = 9

type WorkLogServiceImpl struct {
	db *database.DB
	worklog.WorkLogRepository
	user.UserRepository
	location *time.Location
	metrics  metrics.Collector
	runTx    func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewWorkLogService(db *database.DB, workLogRepository worklog.WorkLogRepository, userRepository user.UserRepository, location *time.Location, collector metrics.Collector) worklog.WorkLogService {
	if location == nil {
		location = time.Local
	}
	return &WorkLogServiceImpl{
		db:                db,
		WorkLogRepository: workLogRepository,
		UserRepository:    userRepository,
		location:          location,
		metrics:           collector,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// currentUser resolves the authenticated user from the verified token
// claims, with a fresh database lookup so role changes take effect on the
// next request.
func (w *WorkLogServiceImpl) currentUser(ctx context.Context) (user.User, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return user.User{}, fmt.Errorf("email claim is missing or invalid")
	}

	userData, err := w.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return userData, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// StartSession implements worklog.WorkLogService.
func (w *WorkLogServiceImpl) StartSession(ctx context.Context) (worklog.WorkLogResponse, error) {
	userData, err := w.currentUser(ctx)
	if err != nil {
		return worklog.WorkLogResponse{}, err
	}

	nowLocal := time.Now().In(w.location)
	today := worklog.DateOnly(nowLocal)

	existing, err := w.WorkLogRepository.GetByUserAndDate(ctx, userData.ID, today)
	if err != nil {
		return worklog.WorkLogResponse{}, fmt.Errorf("failed to check today's work log: %w", err)
	}
	if existing != nil {
		return worklog.WorkLogResponse{}, worklog.ErrSessionAlreadyStarted
	}

	log := worklog.WorkLog{
		UserID:    userData.ID,
		Date:      today,
		StartTime: nowLocal.UTC(),
		Status:    worklog.StatusActive,
	}

	created, err := w.WorkLogRepository.Create(ctx, log)
	if err != nil {
		// Two requests racing past the existence check resolve at the
		// unique constraint on (user_id, date)
		if isUniqueViolation(err) {
			return worklog.WorkLogResponse{}, worklog.ErrSessionAlreadyStarted
		}
		return worklog.WorkLogResponse{}, fmt.Errorf("failed to create work log: %w", err)
	}

	w.metrics.RecordSessionStarted()

	return worklog.ToResponse(created), nil
}

// EndSession implements worklog.WorkLogService.
func (w *WorkLogServiceImpl) EndSession(ctx context.Context) (worklog.WorkLogResponse, error) {
	userData, err := w.currentUser(ctx)
	if err != nil {
		return worklog.WorkLogResponse{}, err
	}

	nowLocal := time.Now().In(w.location)
	today := worklog.DateOnly(nowLocal)

	existing, err := w.WorkLogRepository.GetByUserAndDate(ctx, userData.ID, today)
	if err != nil {
		return worklog.WorkLogResponse{}, fmt.Errorf("failed to check today's work log: %w", err)
	}
	if existing == nil {
		return worklog.WorkLogResponse{}, worklog.ErrNoSessionToday
	}
	// Week off logs carry end = start, so this also rejects ending a day
	// marked off in advance.
	if existing.EndTime != nil {
		return worklog.WorkLogResponse{}, worklog.ErrSessionAlreadyEnded
	}

	end := nowLocal.UTC()
	existing.EndTime = &end
	existing.DurationMinutes, existing.Status = worklog.DeriveDuration(existing.Status, existing.StartTime, existing.EndTime)

	updated, err := w.WorkLogRepository.Update(ctx, *existing)
	if err != nil {
		return worklog.WorkLogResponse{}, fmt.Errorf("failed to update work log: %w", err)
	}

	w.metrics.RecordSessionEnded()

	return worklog.ToResponse(updated), nil
}

// MarkWeekOff implements worklog.WorkLogService.
func (w *WorkLogServiceImpl) MarkWeekOff(ctx context.Context, req worklog.WeekOffRequest) (worklog.WeekOffResponse, error) {
	if err := req.Validate(); err != nil {
		return worklog.WeekOffResponse{}, err
	}

	userData, err := w.currentUser(ctx)
	if err != nil {
		return worklog.WeekOffResponse{}, err
	}

	startDate, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	endDate, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if startDate.After(endDate) {
		return worklog.WeekOffResponse{}, worklog.ErrInvalidDateRange
	}

	// Any log on any date in the range blocks the whole request, including
	// weekend dates the insert below would skip.
	existing, err := w.WorkLogRepository.ListByUserAndDateRange(ctx, userData.ID, startDate, endDate)
	if err != nil {
		return worklog.WeekOffResponse{}, fmt.Errorf("failed to check existing work logs: %w", err)
	}
	if len(existing) > 0 {
		return worklog.WeekOffResponse{}, worklog.ErrWeekOffOverlap
	}

	logs := weekOffEntries(userData.ID, startDate, endDate, w.location)

	if len(logs) == 0 {
		return worklog.WeekOffResponse{Logs: []worklog.WorkLogResponse{}}, nil
	}

	// All days insert or none do
	err = w.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		if _, err := w.WorkLogRepository.CreateBatch(txCtx, logs); err != nil {
			if isUniqueViolation(err) {
				return worklog.ErrWeekOffOverlap
			}
			return fmt.Errorf("failed to create week off entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return worklog.WeekOffResponse{}, err
	}

	w.metrics.RecordWeekOffDays(len(logs))

	resp := worklog.WeekOffResponse{
		DaysCreated: len(logs),
		Logs:        make([]worklog.WorkLogResponse, 0, len(logs)),
	}
	for _, log := range logs {
		resp.Logs = append(resp.Logs, worklog.ToResponse(log))
	}

	return resp, nil
}

// weekOffEntries expands an inclusive date range into week off work logs.
// Weekends are already off and get no entry.
func weekOffEntries(userID string, startDate, endDate time.Time, loc *time.Location) []worklog.WorkLog {
	var logs []worklog.WorkLog
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if worklog.IsWeekend(d) {
			continue
		}
		start := time.Date(d.Year(), d.Month(), d.Day(), weekOffStartHour, 0, 0, 0, loc).UTC()
		end := start // week off days carry a zero-length session
		duration, status := worklog.DeriveDuration(worklog.StatusWeekOff, start, &end)
		logs = append(logs, worklog.WorkLog{
			ID:              uuid.NewString(),
			UserID:          userID,
			Date:            d,
			StartTime:       start,
			EndTime:         &end,
			DurationMinutes: duration,
			Status:          status,
		})
	}
	return logs
}

// ListMyLogs implements worklog.WorkLogService.
func (w *WorkLogServiceImpl) ListMyLogs(ctx context.Context, filter worklog.MyLogsFilter) (worklog.ListWorkLogsResponse, error) {
	userData, err := w.currentUser(ctx)
	if err != nil {
		return worklog.ListWorkLogsResponse{}, err
	}

	filter.Normalize()
	offset := (filter.Page - 1) * filter.Limit

	logs, total, err := w.WorkLogRepository.ListByUser(ctx, userData.ID, filter.Limit, offset)
	if err != nil {
		return worklog.ListWorkLogsResponse{}, fmt.Errorf("failed to list work logs: %w", err)
	}

	resp := worklog.ListWorkLogsResponse{
		Logs:       make([]worklog.WorkLogResponse, 0, len(logs)),
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}
	for _, log := range logs {
		resp.Logs = append(resp.Logs, worklog.ToResponse(log))
	}

	return resp, nil
}
