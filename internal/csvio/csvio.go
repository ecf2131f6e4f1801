// Package csvio reads the bulk-creation input table and writes the two
// output tables (annotated rows, normalized records) as CSV.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tvarga/jiraflow/pkg/models"
)

// Input table column names. All three are required.
const (
	colSummary     = "summary"
	colDescription = "description"
	colIssueType   = "issuetype"
)

// ReadInputRows parses the input table. The first record is the header and
// must contain the summary, description and issuetype columns; extra columns
// are ignored.
func ReadInputRows(r io.Reader) ([]models.InputRow, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read input csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input csv is empty")
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, required := range []string{colSummary, colDescription, colIssueType} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("input csv is missing required column %q", required)
		}
	}

	rows := make([]models.InputRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, models.InputRow{
			Summary:     record[index[colSummary]],
			Description: record[index[colDescription]],
			IssueType:   record[index[colIssueType]],
		})
	}
	return rows, nil
}

// WriteAnnotatedRows writes the input table with the load_success and
// load_result columns appended. Rows reconciliation never reached keep both
// cells empty.
func WriteAnnotatedRows(w io.Writer, rows []models.InputRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{colSummary, colDescription, colIssueType, "load_success", "load_result"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		success := ""
		if row.Annotated() {
			success = strconv.FormatBool(*row.LoadSuccess)
		}
		record := []string{row.Summary, row.Description, row.IssueType, success, row.LoadResult}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteRecords writes the normalized record stream as a two-column table.
// Record payloads are emitted as their raw JSON.
func WriteRecords(w io.Writer, records []models.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"OBJECT_NAME", "RECORD_DATA"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		if err := writer.Write([]string{record.Object, string(record.Data)}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
