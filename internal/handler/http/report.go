package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hemloeth/attendance/internal/domain/report"
	"github.com/hemloeth/attendance/internal/handler/http/response"
	"github.com/hemloeth/attendance/internal/pkg/export"
)

type ReportHandler interface {
	DailyLogs(w http.ResponseWriter, r *http.Request)
	MonthlyReports(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReports(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// DailyLogs implements ReportHandler.
func (h *ReportHandlerImpl) DailyLogs(w http.ResponseWriter, r *http.Request) {
	req := report.DailyReportRequest{Date: r.URL.Query().Get("date")}

	resp, err := h.reportService.DailyReport(r.Context(), req)
	if err != nil {
		slog.Error("Daily report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// MonthlyReports implements ReportHandler.
func (h *ReportHandlerImpl) MonthlyReports(w http.ResponseWriter, r *http.Request) {
	req := report.MonthlyReportRequest{Month: r.URL.Query().Get("month")}

	resp, err := h.reportService.MonthlyReport(r.Context(), req)
	if err != nil {
		slog.Error("Monthly report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ExportMonthlyReports implements ReportHandler.
func (h *ReportHandlerImpl) ExportMonthlyReports(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	resp, err := h.reportService.MonthlyReport(r.Context(), report.MonthlyReportRequest{Month: month})
	if err != nil {
		slog.Error("Monthly report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	payload, err := export.MonthlyReport(resp, format)
	if err != nil {
		slog.Error("Monthly report export error", "error", err, "format", format)
		response.HandleError(w, err)
		return
	}

	slog.Info("Monthly report exported", "month", month, "format", format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(month)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
