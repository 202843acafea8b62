package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemloeth/attendance/internal/domain/worklog"
	"github.com/hemloeth/attendance/internal/handler/http/response"
)

type stubWorkLogService struct {
	startResp worklog.WorkLogResponse
	startErr  error
	endResp   worklog.WorkLogResponse
	endErr    error
	weekOff   worklog.WeekOffResponse
	weekErr   error
	listResp  worklog.ListWorkLogsResponse
	listErr   error
}

func (s *stubWorkLogService) StartSession(ctx context.Context) (worklog.WorkLogResponse, error) {
	return s.startResp, s.startErr
}

func (s *stubWorkLogService) EndSession(ctx context.Context) (worklog.WorkLogResponse, error) {
	return s.endResp, s.endErr
}

func (s *stubWorkLogService) MarkWeekOff(ctx context.Context, req worklog.WeekOffRequest) (worklog.WeekOffResponse, error) {
	return s.weekOff, s.weekErr
}

func (s *stubWorkLogService) ListMyLogs(ctx context.Context, filter worklog.MyLogsFilter) (worklog.ListWorkLogsResponse, error) {
	return s.listResp, s.listErr
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWorkLogHandlerStart(t *testing.T) {
	handler := NewWorkLogHandler(&stubWorkLogService{
		startResp: worklog.WorkLogResponse{
			ID:     "wl1",
			UserID: "u1",
			Date:   "2025-06-02",
			Status: string(worklog.StatusActive),
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/work/start", nil)
	rec := httptest.NewRecorder()
	handler.Start(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestWorkLogHandlerStartConflict(t *testing.T) {
	handler := NewWorkLogHandler(&stubWorkLogService{
		startErr: worklog.ErrSessionAlreadyStarted,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/work/start", nil)
	rec := httptest.NewRecorder()
	handler.Start(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestWorkLogHandlerEndNoSession(t *testing.T) {
	handler := NewWorkLogHandler(&stubWorkLogService{
		endErr: worklog.ErrNoSessionToday,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/work/end", nil)
	rec := httptest.NewRecorder()
	handler.End(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkLogHandlerWeekOffBadJSON(t *testing.T) {
	handler := NewWorkLogHandler(&stubWorkLogService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/work/week-off", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.WeekOff(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkLogHandlerWeekOffInvalidRange(t *testing.T) {
	handler := NewWorkLogHandler(&stubWorkLogService{
		weekErr: worklog.ErrInvalidDateRange,
	})

	body := strings.NewReader(`{"start_date":"2025-06-10","end_date":"2025-06-05"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/work/week-off", body)
	rec := httptest.NewRecorder()
	handler.WeekOff(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestWorkLogHandlerMyLogsMeta(t *testing.T) {
	handler := NewWorkLogHandler(&stubWorkLogService{
		listResp: worklog.ListWorkLogsResponse{
			Logs:       []worklog.WorkLogResponse{{ID: "wl1"}},
			Page:       2,
			Limit:      10,
			TotalItems: 11,
			TotalPages: 2,
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/work/logs?page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	handler.MyLogs(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(11), resp.Meta.TotalItems)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}
