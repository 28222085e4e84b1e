package utils

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// ReportCSVRow is the flattened export shape of one report. Handlers map
// their models onto it so this package stays model-agnostic.
type ReportCSVRow struct {
	ID           int
	EmployeeCode string
	EmployeeName string
	ReportDate   time.Time
	Title        string
	Content      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var reportCSVHeader = []string{
	"id",
	"employee_code",
	"employee_name",
	"report_date",
	"title",
	"content",
	"created_at",
	"updated_at",
}

// WriteReportsCSV writes the rows as RFC 4180 CSV with a header line.
func WriteReportsCSV(w io.Writer, rows []ReportCSVRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(reportCSVHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ID),
			row.EmployeeCode,
			row.EmployeeName,
			row.ReportDate.Format("2006-01-02"),
			row.Title,
			row.Content,
			row.CreatedAt.Format(time.RFC3339),
			row.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
