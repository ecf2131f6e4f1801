package jira

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvarga/jiraflow/pkg/models"
)

func TestBuildIssuePayloadShape(t *testing.T) {
	row := models.InputRow{
		Summary:     "Issue 1",
		Description: "Description 1",
		IssueType:   "Task",
	}

	payload := BuildIssuePayload(row, "PRJ")

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	// The service rejects any deviation from this nesting.
	assert.JSONEq(t, `{
		"fields": {
			"project": {"key": "PRJ"},
			"summary": "Issue 1",
			"description": {
				"type": "doc",
				"version": 1,
				"content": [{
					"type": "paragraph",
					"content": [{"type": "text", "text": "Description 1"}]
				}]
			},
			"issuetype": {"name": "Task"}
		}
	}`, string(data))
}

func TestIssuePayloadRoundTrip(t *testing.T) {
	row := models.InputRow{
		Summary:     "Round trip",
		Description: "Some longer description\nwith a newline",
		IssueType:   "Story",
	}

	data, err := json.Marshal(BuildIssuePayload(row, "PRJ"))
	require.NoError(t, err)

	var decoded models.IssuePayload
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, row.Summary, decoded.Fields.Summary)
	assert.Equal(t, row.Description, decoded.Fields.Description.PlainText())
	assert.Equal(t, row.IssueType, decoded.Fields.IssueType.Name)
	assert.Equal(t, "PRJ", decoded.Fields.Project.Key)
}

func TestBuildBulkPayloadsPreservesOrder(t *testing.T) {
	rows := []models.InputRow{
		{Summary: "First", IssueType: "Task"},
		{Summary: "Second", IssueType: "Task"},
		{Summary: "Third", IssueType: "Story"},
	}

	payloads := BuildBulkPayloads(rows, "PRJ")

	require.Len(t, payloads, 3)
	for i, payload := range payloads {
		assert.Equal(t, rows[i].Summary, payload.Fields.Summary)
	}
}
