package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/hemloeth/attendance/internal/domain/report"
)

func monthlyPDF(rep report.MonthlyReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Monthly Attendance Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", rep.Month))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Generated on: %s", rep.GeneratedAt))
	pdf.Ln(12)

	var totalDays int
	var totalHours float64
	for _, s := range rep.Reports {
		totalDays += s.TotalDays
		totalHours += s.TotalHours
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total Employees: %d", len(rep.Reports)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Days Worked: %d", totalDays))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Hours: %.2fh", totalHours))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Employee Details")
	pdf.Ln(10)

	for i, s := range rep.Reports {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("%d. %s", i+1, s.UserName))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Cell(0, 5, fmt.Sprintf("   Email: %s", s.UserEmail))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("   Total Days: %d | Total Hours: %.2fh | Avg: %.2fh/day | Attendance: %.2f%%",
			s.TotalDays, s.TotalHours, s.AverageHoursPerDay, s.AttendanceRate))
		pdf.Ln(5)
		for _, period := range s.WeekOffPeriods {
			if period == "None" {
				break
			}
			pdf.Cell(0, 5, fmt.Sprintf("   Week off: %s", period))
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
