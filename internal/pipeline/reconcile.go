package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tvarga/jiraflow/pkg/models"
)

// ExhaustionPolicy decides what reconciliation does when the success sequence
// runs out before the non-error rows do.
type ExhaustionPolicy int

const (
	// StopOnExhaustion ends the pass, leaving the current and all remaining
	// rows unannotated.
	StopOnExhaustion ExhaustionPolicy = iota

	// MarkUnknownOnExhaustion annotates the remaining non-error rows as
	// failed with an "Unknown error" result.
	MarkUnknownOnExhaustion
)

// unknownError is the result recorded when the service reports a failure
// without any field messages, and under MarkUnknownOnExhaustion.
const unknownError = "Unknown error"

// Reconcile aligns a bulk-create response against the original row sequence,
// annotating each row in place with LoadSuccess and LoadResult. Rows listed
// in the response's errors never consume a success; every other row consumes
// the next unread success in order. The returned slice is the input slice,
// always of the same length.
func Reconcile(rows []models.InputRow, resp *models.BulkCreateResponse, onExhaustion ExhaustionPolicy) []models.InputRow {
	errorsByRow := make(map[int]models.BulkCreateError, len(resp.Errors))
	for _, e := range resp.Errors {
		errorsByRow[e.FailedElementNumber] = e
	}

	next := 0
	for i := range rows {
		if e, failed := errorsByRow[i]; failed {
			annotate(&rows[i], false, errorResult(e))
			continue
		}

		if next >= len(resp.Issues) {
			if onExhaustion == MarkUnknownOnExhaustion {
				annotate(&rows[i], false, unknownError)
				continue
			}
			break
		}
		annotate(&rows[i], true, resp.Issues[next].Key)
		next++
	}

	return rows
}

func annotate(row *models.InputRow, success bool, result string) {
	row.LoadSuccess = &success
	row.LoadResult = result
}

// errorResult renders a per-row error as "; "-joined "field: message" pairs.
// Field names are sorted so the result is deterministic.
func errorResult(e models.BulkCreateError) string {
	fields := make([]string, 0, len(e.ElementErrors.Errors))
	for field := range e.ElementErrors.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.ElementErrors.Errors[field]))
	}

	if len(parts) == 0 {
		return unknownError
	}
	return strings.Join(parts, "; ")
}
