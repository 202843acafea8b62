package worklog

import (
	"time"

	"github.com/hemloeth/attendance/internal/pkg/validator"
)

// ========================================
// WORK LOG DTOs
// ========================================

type WeekOffRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *WeekOffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyLogsFilter struct {
	Page  int
	Limit int
}

func (f *MyLogsFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}

type WorkLogResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Status          string  `json:"status"`
}

type WeekOffResponse struct {
	DaysCreated int               `json:"days_created"`
	Logs        []WorkLogResponse `json:"logs"`
}

type ListWorkLogsResponse struct {
	Logs       []WorkLogResponse `json:"work_logs"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalItems int64             `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

// ToResponse maps a work log entity to its API representation.
func ToResponse(log WorkLog) WorkLogResponse {
	resp := WorkLogResponse{
		ID:              log.ID,
		UserID:          log.UserID,
		Date:            log.Date.Format("2006-01-02"),
		StartTime:       log.StartTime.Format(time.RFC3339),
		DurationMinutes: log.DurationMinutes,
		Status:          string(log.Status),
	}
	if log.EndTime != nil {
		end := log.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	return resp
}
