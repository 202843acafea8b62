package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hemloeth/attendance/internal/domain/worklog"
	"github.com/hemloeth/attendance/internal/handler/http/response"
)

type WorkLogHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	WeekOff(w http.ResponseWriter, r *http.Request)
	MyLogs(w http.ResponseWriter, r *http.Request)
}

type WorkLogHandlerImpl struct {
	workLogService worklog.WorkLogService
}

func NewWorkLogHandler(workLogService worklog.WorkLogService) WorkLogHandler {
	return &WorkLogHandlerImpl{workLogService: workLogService}
}

// Start implements WorkLogHandler.
func (h *WorkLogHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	resp, err := h.workLogService.StartSession(r.Context())
	if err != nil {
		slog.Error("Start session service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Work session started", "work_log_id", resp.ID)
	response.Created(w, "Work session started", resp)
}

// End implements WorkLogHandler.
func (h *WorkLogHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	resp, err := h.workLogService.EndSession(r.Context())
	if err != nil {
		slog.Error("End session service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Work session ended", "work_log_id", resp.ID)
	response.SuccessWithMessage(w, "Work session ended", resp)
}

// WeekOff implements WorkLogHandler.
func (h *WorkLogHandlerImpl) WeekOff(w http.ResponseWriter, r *http.Request) {
	var weekOffReq worklog.WeekOffRequest

	if err := json.NewDecoder(r.Body).Decode(&weekOffReq); err != nil {
		slog.Error("Week off decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.workLogService.MarkWeekOff(r.Context(), weekOffReq)
	if err != nil {
		slog.Error("Week off service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Week off marked", "days_created", resp.DaysCreated)
	response.Created(w, "Week off marked", resp)
}

// MyLogs implements WorkLogHandler.
func (h *WorkLogHandlerImpl) MyLogs(w http.ResponseWriter, r *http.Request) {
	var filter worklog.MyLogsFilter
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.workLogService.ListMyLogs(r.Context(), filter)
	if err != nil {
		slog.Error("List my logs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Logs, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalItems,
		TotalPages: resp.TotalPages,
	})
}
