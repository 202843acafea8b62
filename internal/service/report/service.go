package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hemloeth/attendance/internal/domain/report"
	"github.com/hemloeth/attendance/internal/domain/user"
	"github.com/hemloeth/attendance/internal/domain/worklog"
	"github.com/hemloeth/attendance/internal/pkg/metrics"
)

type ReportServiceImpl struct {
	worklog.WorkLogRepository
	user.UserRepository
	location *time.Location
	metrics  metrics.Collector
}

func NewReportService(workLogRepository worklog.WorkLogRepository, userRepository user.UserRepository, location *time.Location, collector metrics.Collector) report.ReportService {
	if location == nil {
		location = time.Local
	}
	return &ReportServiceImpl{
		WorkLogRepository: workLogRepository,
		UserRepository:    userRepository,
		location:          location,
		metrics:           collector,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DailyReport implements report.ReportService.
func (r *ReportServiceImpl) DailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyReport, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReport{}, err
	}

	dateStr := req.Date
	if dateStr == "" {
		dateStr = time.Now().In(r.location).Format("2006-01-02")
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to parse report date: %w", err)
	}

	logs, err := r.WorkLogRepository.ListByDateRange(ctx, date, date)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to list work logs: %w", err)
	}

	result := report.DailyReport{
		Date: dateStr,
		Logs: make([]report.DailyLogEntry, 0, len(logs)),
	}
	for _, log := range logs {
		entry := report.DailyLogEntry{
			Date:            log.Date.Format("2006-01-02"),
			StartTime:       log.StartTime.Format(time.RFC3339),
			DurationMinutes: log.DurationMinutes,
			Status:          string(log.Status),
		}
		if log.UserName != nil {
			entry.UserName = *log.UserName
		}
		if log.UserEmail != nil {
			entry.UserEmail = *log.UserEmail
		}
		if log.EndTime != nil {
			end := log.EndTime.Format(time.RFC3339)
			entry.EndTime = &end
		}
		result.Logs = append(result.Logs, entry)
	}

	r.metrics.RecordReportGenerated("daily")

	return result, nil
}

// MonthlyReport implements report.ReportService.
func (r *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	monthStr := req.Month
	if monthStr == "" {
		monthStr = time.Now().In(r.location).Format("2006-01")
	}
	monthStart, err := time.ParseInLocation("2006-01", monthStr, time.UTC)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to parse report month: %w", err)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	// Admins are excluded from the aggregation
	users, err := r.UserRepository.ListByRole(ctx, user.RoleUser)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list users: %w", err)
	}

	logs, err := r.WorkLogRepository.ListByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list work logs: %w", err)
	}

	logsByUser := make(map[string][]worklog.WorkLog)
	for _, log := range logs {
		logsByUser[log.UserID] = append(logsByUser[log.UserID], log)
	}

	result := report.MonthlyReport{
		Month:       monthStr,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Reports:     make([]report.UserMonthlySummary, 0, len(users)),
	}
	for _, u := range users {
		result.Reports = append(result.Reports, summarize(u, logsByUser[u.ID], daysInMonth))
	}

	r.metrics.RecordReportGenerated("monthly")

	return result, nil
}

// summarize aggregates one user's work logs for the month. Minutes are
// accumulated as integers; rounding happens once per derived figure.
func summarize(u user.User, logs []worklog.WorkLog, daysInMonth int) report.UserMonthlySummary {
	summary := report.UserMonthlySummary{
		UserID:             u.ID,
		UserName:           u.Name,
		UserEmail:          u.Email,
		WorkingDaysInMonth: daysInMonth,
		WorkLogs:           make([]report.MonthlyLogEntry, 0, len(logs)),
	}

	totalMinutes := 0
	var weekOffLogs []worklog.WorkLog

	for _, log := range logs {
		switch log.Status {
		case worklog.StatusCompleted:
			summary.TotalDays++
			summary.CompletedSessions++
			if log.DurationMinutes != nil {
				totalMinutes += *log.DurationMinutes
			}
		case worklog.StatusActive:
			summary.IncompleteSessions++
		case worklog.StatusWeekOff:
			summary.WeekOffDays++
			weekOffLogs = append(weekOffLogs, log)
		}

		entry := report.MonthlyLogEntry{
			Date:            log.Date.Format("2006-01-02"),
			StartTime:       log.StartTime.Format(time.RFC3339),
			DurationMinutes: log.DurationMinutes,
			Status:          string(log.Status),
		}
		if log.EndTime != nil {
			end := log.EndTime.Format(time.RFC3339)
			entry.EndTime = &end
		}
		summary.WorkLogs = append(summary.WorkLogs, entry)
	}

	rawHours := float64(totalMinutes) / 60
	summary.TotalHours = round2(rawHours)
	if summary.TotalDays > 0 {
		summary.AverageHoursPerDay = round2(rawHours / float64(summary.TotalDays))
	}
	if daysInMonth > 0 {
		summary.AttendanceRate = round2(float64(summary.TotalDays) / float64(daysInMonth) * 100)
	}
	summary.WeekOffPeriods = WeekOffPeriods(weekOffLogs)

	return summary
}

// WeekOffPeriods merges week off logs into closed date intervals. Logs one
// calendar day apart extend the current interval; a larger gap starts a new
// one. The logs must be sorted by date ascending. An empty input yields the
// single sentinel entry "None".
func WeekOffPeriods(logs []worklog.WorkLog) []string {
	if len(logs) == 0 {
		return []string{"None"}
	}

	var periods []string
	start := logs[0].Date
	end := logs[0].Date

	flush := func() {
		periods = append(periods, fmt.Sprintf("%s to %s",
			start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	for _, log := range logs[1:] {
		if log.Date.Sub(end) == 24*time.Hour {
			end = log.Date
			continue
		}
		flush()
		start = log.Date
		end = log.Date
	}
	flush()

	return periods
}
