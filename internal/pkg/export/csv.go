package export

import (
	"bytes"
	"encoding/csv"

	"github.com/hemloeth/attendance/internal/domain/report"
)

func monthlyCSV(rep report.MonthlyReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(summaryHeader); err != nil {
		return nil, err
	}
	for _, s := range rep.Reports {
		if err := w.Write(summaryRow(s)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
