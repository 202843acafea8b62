package report

import (
	"context"
)

// ReportService defines the reporting engine. Both operations are gated to
// admin callers at the transport layer.
type ReportService interface {
	// DailyReport returns a flat listing of every work log on the given
	// day, joined with the owning user's name and email.
	DailyReport(ctx context.Context, req DailyReportRequest) (DailyReport, error)

	// MonthlyReport aggregates completed work logs per role=user user over
	// a calendar month.
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
}
