package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hemloeth/attendance/internal/domain/report"
)

func monthlyXLSX(rep report.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(summaryHeader))
	for i, h := range summaryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, s := range rep.Reports {
		row := []interface{}{
			s.UserName, s.UserEmail, s.TotalDays, s.TotalHours,
			s.AverageHoursPerDay, s.AttendanceRate, s.WeekOffDays,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	// One detail sheet per employee with logged days
	for _, s := range rep.Reports {
		if len(s.WorkLogs) == 0 {
			continue
		}
		sheet := sheetName(s.UserName)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		detailHeader := []interface{}{"Date", "Start Time", "End Time", "Duration", "Status"}
		if err := f.SetSheetRow(sheet, "A1", &detailHeader); err != nil {
			return nil, err
		}
		for i, log := range s.WorkLogs {
			end := "-"
			if log.EndTime != nil {
				end = *log.EndTime
			}
			row := []interface{}{log.Date, log.StartTime, end, formatDuration(log.DurationMinutes), log.Status}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetName truncates to the 31-character limit Excel imposes.
func sheetName(name string) string {
	runes := []rune(name)
	if len(runes) > 31 {
		return string(runes[:31])
	}
	return name
}
