package report

import (
	"github.com/hemloeth/attendance/internal/pkg/validator"
)

// ========================================
// DAILY LOGS
// ========================================

type DailyReportRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today when empty
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyReport struct {
	Date string          `json:"date"`
	Logs []DailyLogEntry `json:"logs"`
}

type DailyLogEntry struct {
	UserName        string  `json:"user_name"`
	UserEmail       string  `json:"user_email"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Status          string  `json:"status"`
}

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	Month string `json:"month"` // YYYY-MM, defaults to current month when empty
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.Month) {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyReport struct {
	Month       string               `json:"month"`
	GeneratedAt string               `json:"generated_at"`
	Reports     []UserMonthlySummary `json:"reports"`
}

type UserMonthlySummary struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`

	TotalDays          int     `json:"total_days"`
	TotalHours         float64 `json:"total_hours"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`

	WorkingDaysInMonth int     `json:"working_days_in_month"`
	AttendanceRate     float64 `json:"attendance_rate"`
	CompletedSessions  int     `json:"completed_sessions"`
	IncompleteSessions int     `json:"incomplete_sessions"`
	WeekOffDays        int     `json:"week_off_days"`

	// Closed "start to end" intervals of consecutive week-off days;
	// the single element "None" when the user took none.
	WeekOffPeriods []string `json:"week_off_periods"`

	WorkLogs []MonthlyLogEntry `json:"work_logs"`
}

type MonthlyLogEntry struct {
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Status          string  `json:"status"`
}
