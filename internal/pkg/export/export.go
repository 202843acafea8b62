// Package export renders monthly report summaries to downloadable
// documents. It is pure formatting over already-computed data.
package export

import (
	"fmt"
	"strconv"

	"github.com/hemloeth/attendance/internal/domain/report"
)

// Format identifies a supported export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned for unknown format query values.
var ErrUnsupportedFormat = fmt.Errorf("unsupported export format")

// ContentType returns the MIME type for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Filename returns the download filename for a monthly report.
func (f Format) Filename(month string) string {
	return fmt.Sprintf("monthly-report-%s.%s", month, string(f))
}

// ParseFormat validates a format query value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// MonthlyReport renders the report in the requested format.
func MonthlyReport(rep report.MonthlyReport, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return monthlyCSV(rep)
	case FormatXLSX:
		return monthlyXLSX(rep)
	case FormatPDF:
		return monthlyPDF(rep)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

var summaryHeader = []string{
	"Employee Name", "Email", "Total Days", "Total Hours",
	"Average Hours/Day", "Attendance Rate (%)", "Week Off Days",
}

func summaryRow(s report.UserMonthlySummary) []string {
	return []string{
		s.UserName,
		s.UserEmail,
		strconv.Itoa(s.TotalDays),
		strconv.FormatFloat(s.TotalHours, 'f', 2, 64),
		strconv.FormatFloat(s.AverageHoursPerDay, 'f', 2, 64),
		strconv.FormatFloat(s.AttendanceRate, 'f', 2, 64),
		strconv.Itoa(s.WeekOffDays),
	}
}

func formatDuration(minutes *int) string {
	if minutes == nil {
		return "-"
	}
	return fmt.Sprintf("%dh %dm", *minutes/60, *minutes%60)
}
