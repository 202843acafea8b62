package worklog

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemloeth/attendance/internal/domain/user"
	"github.com/hemloeth/attendance/internal/domain/worklog"
	"github.com/hemloeth/attendance/internal/pkg/metrics"
)

type fakeWorkLogRepo struct {
	logs           []worklog.WorkLog
	createBatchErr error
}

func (f *fakeWorkLogRepo) Create(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	if log.ID == "" {
		log.ID = "wl-" + log.Date.Format("20060102")
	}
	log.CreatedAt = time.Now()
	log.UpdatedAt = log.CreatedAt
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeWorkLogRepo) CreateBatch(ctx context.Context, logs []worklog.WorkLog) (int, error) {
	if f.createBatchErr != nil {
		return 0, f.createBatchErr
	}
	f.logs = append(f.logs, logs...)
	return len(logs), nil
}

func (f *fakeWorkLogRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*worklog.WorkLog, error) {
	for i := range f.logs {
		if f.logs[i].UserID == userID && f.logs[i].Date.Equal(date) {
			return &f.logs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeWorkLogRepo) Update(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	for i := range f.logs {
		if f.logs[i].ID == log.ID {
			f.logs[i] = log
			return log, nil
		}
	}
	return worklog.WorkLog{}, worklog.ErrWorkLogNotFound
}

func (f *fakeWorkLogRepo) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]worklog.WorkLog, error) {
	var out []worklog.WorkLog
	for _, log := range f.logs {
		if log.UserID == userID && !log.Date.Before(from) && !log.Date.After(to) {
			out = append(out, log)
		}
	}
	return out, nil
}

func (f *fakeWorkLogRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]worklog.WorkLog, error) {
	var out []worklog.WorkLog
	for _, log := range f.logs {
		if !log.Date.Before(from) && !log.Date.After(to) {
			out = append(out, log)
		}
	}
	return out, nil
}

func (f *fakeWorkLogRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]worklog.WorkLog, int64, error) {
	var out []worklog.WorkLog
	for _, log := range f.logs {
		if log.UserID == userID {
			out = append(out, log)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users = append(f.users, newUser)
	return newUser, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, email string, name string, image *string) error {
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, email string, role user.Role) error {
	return nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// authedContext builds a context carrying a verified token for the given
// user, the way the Verifier middleware would.
func authedContext(t *testing.T, email string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": "u1",
		"email":   email,
		"role":    "user",
		"type":    "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(logs *fakeWorkLogRepo, users *fakeUserRepo) worklog.WorkLogService {
	svc := NewWorkLogService(nil, logs, users, time.UTC, metrics.Noop{}).(*WorkLogServiceImpl)
	// No pool behind the fakes, so run the transactional body directly.
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}
	return svc
}

func TestStartSession(t *testing.T) {
	logs := &fakeWorkLogRepo{}
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(logs, users)
	ctx := authedContext(t, "alice@example.com")

	resp, err := svc.StartSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, string(worklog.StatusActive), resp.Status)
	assert.Nil(t, resp.EndTime)
	assert.Nil(t, resp.DurationMinutes)

	_, err = svc.StartSession(ctx)
	assert.ErrorIs(t, err, worklog.ErrSessionAlreadyStarted)
}

func TestStartSessionUnknownUser(t *testing.T) {
	svc := newTestService(&fakeWorkLogRepo{}, &fakeUserRepo{})
	ctx := authedContext(t, "ghost@example.com")

	_, err := svc.StartSession(ctx)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestEndSession(t *testing.T) {
	logs := &fakeWorkLogRepo{}
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(logs, users)
	ctx := authedContext(t, "alice@example.com")

	_, err := svc.EndSession(ctx)
	assert.ErrorIs(t, err, worklog.ErrNoSessionToday)

	_, err = svc.StartSession(ctx)
	require.NoError(t, err)

	resp, err := svc.EndSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(worklog.StatusCompleted), resp.Status)
	require.NotNil(t, resp.DurationMinutes)
	assert.GreaterOrEqual(t, *resp.DurationMinutes, 0)

	_, err = svc.EndSession(ctx)
	assert.ErrorIs(t, err, worklog.ErrSessionAlreadyEnded)
}

func TestEndSessionOnWeekOffDay(t *testing.T) {
	today := worklog.DateOnly(time.Now().UTC())
	start := today.Add(9 * time.Hour)
	zero := 0
	logs := &fakeWorkLogRepo{logs: []worklog.WorkLog{
		{
			ID:              "wl1",
			UserID:          "u1",
			Date:            today,
			StartTime:       start,
			EndTime:         &start,
			DurationMinutes: &zero,
			Status:          worklog.StatusWeekOff,
		},
	}}
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(logs, users)
	ctx := authedContext(t, "alice@example.com")

	// The week off log already has its end set, so this is a conflict, not
	// a missing session.
	_, err := svc.EndSession(ctx)
	assert.ErrorIs(t, err, worklog.ErrSessionAlreadyEnded)
}

func TestMarkWeekOffInvalidRange(t *testing.T) {
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(&fakeWorkLogRepo{}, users)
	ctx := authedContext(t, "alice@example.com")

	_, err := svc.MarkWeekOff(ctx, worklog.WeekOffRequest{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-05",
	})
	assert.ErrorIs(t, err, worklog.ErrInvalidDateRange)
}

func TestMarkWeekOffValidation(t *testing.T) {
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(&fakeWorkLogRepo{}, users)
	ctx := authedContext(t, "alice@example.com")

	_, err := svc.MarkWeekOff(ctx, worklog.WeekOffRequest{
		StartDate: "06/10/2025",
		EndDate:   "2025-06-12",
	})
	assert.Error(t, err)
}

func TestMarkWeekOffWeekendOnly(t *testing.T) {
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(&fakeWorkLogRepo{}, users)
	ctx := authedContext(t, "alice@example.com")

	// 2025-06-07 and 2025-06-08 are Saturday and Sunday
	resp, err := svc.MarkWeekOff(ctx, worklog.WeekOffRequest{
		StartDate: "2025-06-07",
		EndDate:   "2025-06-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.DaysCreated)
	assert.Empty(t, resp.Logs)
}

func TestMarkWeekOff(t *testing.T) {
	logs := &fakeWorkLogRepo{}
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(logs, users)
	ctx := authedContext(t, "alice@example.com")

	// 2025-06-02 through 2025-06-06 is Monday through Friday
	resp, err := svc.MarkWeekOff(ctx, worklog.WeekOffRequest{
		StartDate: "2025-06-02",
		EndDate:   "2025-06-06",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.DaysCreated)
	assert.Len(t, resp.Logs, 5)

	require.Len(t, logs.logs, 5)
	for _, log := range logs.logs {
		assert.Equal(t, "u1", log.UserID)
		assert.Equal(t, worklog.StatusWeekOff, log.Status)
		require.NotNil(t, log.EndTime)
		assert.True(t, log.EndTime.Equal(log.StartTime))
		require.NotNil(t, log.DurationMinutes)
		assert.Equal(t, 0, *log.DurationMinutes)
	}
}

func TestMarkWeekOffOverlapsExistingLog(t *testing.T) {
	// An active log on Saturday sits inside the range even though the range
	// expansion skips weekends. It must still block the whole request.
	saturday, _ := time.ParseInLocation("2006-01-02", "2025-06-07", time.UTC)
	logs := &fakeWorkLogRepo{logs: []worklog.WorkLog{
		{
			ID:        "wl1",
			UserID:    "u1",
			Date:      saturday,
			StartTime: saturday.Add(9 * time.Hour),
			Status:    worklog.StatusActive,
		},
	}}
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(logs, users)
	ctx := authedContext(t, "alice@example.com")

	_, err := svc.MarkWeekOff(ctx, worklog.WeekOffRequest{
		StartDate: "2025-06-07",
		EndDate:   "2025-06-09",
	})
	assert.ErrorIs(t, err, worklog.ErrWeekOffOverlap)
	require.Len(t, logs.logs, 1)
}

func TestMarkWeekOffInsertConflict(t *testing.T) {
	logs := &fakeWorkLogRepo{
		createBatchErr: &pgconn.PgError{Code: "23505", ConstraintName: "worklogs_user_date_key"},
	}
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(logs, users)
	ctx := authedContext(t, "alice@example.com")

	_, err := svc.MarkWeekOff(ctx, worklog.WeekOffRequest{
		StartDate: "2025-06-02",
		EndDate:   "2025-06-03",
	})
	assert.ErrorIs(t, err, worklog.ErrWeekOffOverlap)
}

func TestWeekOffEntries(t *testing.T) {
	start, _ := time.ParseInLocation("2006-01-02", "2025-06-06", time.UTC) // Friday
	end, _ := time.ParseInLocation("2006-01-02", "2025-06-10", time.UTC)   // Tuesday

	entries := weekOffEntries("u1", start, end, time.UTC)

	require.Len(t, entries, 3) // Fri, Mon, Tue
	for _, e := range entries {
		assert.Equal(t, "u1", e.UserID)
		assert.Equal(t, worklog.StatusWeekOff, e.Status)
		assert.False(t, worklog.IsWeekend(e.Date))
		assert.Equal(t, 9, e.StartTime.UTC().Hour())
		require.NotNil(t, e.EndTime)
		assert.True(t, e.EndTime.Equal(e.StartTime), "week off end must equal start")
		require.NotNil(t, e.DurationMinutes)
		assert.Equal(t, 0, *e.DurationMinutes)
		assert.NotEmpty(t, e.ID)
	}
	assert.Equal(t, "2025-06-06", entries[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-06-09", entries[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-06-10", entries[2].Date.Format("2006-01-02"))
}

func TestListMyLogs(t *testing.T) {
	today := worklog.DateOnly(time.Now().UTC())
	logs := &fakeWorkLogRepo{}
	for i := 0; i < 3; i++ {
		d := today.AddDate(0, 0, -i)
		logs.logs = append(logs.logs, worklog.WorkLog{
			ID:        "wl-" + d.Format("20060102"),
			UserID:    "u1",
			Date:      d,
			StartTime: d.Add(9 * time.Hour),
			Status:    worklog.StatusActive,
		})
	}
	users := &fakeUserRepo{users: []user.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleUser},
	}}
	svc := newTestService(logs, users)
	ctx := authedContext(t, "alice@example.com")

	resp, err := svc.ListMyLogs(ctx, worklog.MyLogsFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Logs, 2)
	assert.Equal(t, int64(3), resp.TotalItems)
	assert.Equal(t, 2, resp.TotalPages)

	// Out-of-range values fall back to defaults
	resp, err = svc.ListMyLogs(ctx, worklog.MyLogsFilter{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
}
