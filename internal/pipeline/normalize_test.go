package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvarga/jiraflow/pkg/models"
)

func TestNormalizeOrdering(t *testing.T) {
	issues := []models.TrackedObject{
		decodeObject(t, `{"key":"I-1","fields":{"updated":"2023-01-01T00:00:00.000+0000"}}`),
		decodeObject(t, `{"key":"I-2","fields":{"updated":"2023-01-02T00:00:00.000+0000"}}`),
	}
	projects := []json.RawMessage{
		json.RawMessage(`{"key":"P-1"}`),
	}
	users := []json.RawMessage{
		json.RawMessage(`{"accountId":"u1"}`),
		json.RawMessage(`{"accountId":"u2"}`),
	}

	records := Normalize(issues, projects, users)

	// Category blocks never interleave: all issues, then projects, then users.
	require.Len(t, records, 5)
	assert.Equal(t, []string{ObjectIssues, ObjectIssues, ObjectProjects, ObjectUsers, ObjectUsers},
		[]string{records[0].Object, records[1].Object, records[2].Object, records[3].Object, records[4].Object})

	assert.JSONEq(t, `{"key":"I-1","fields":{"updated":"2023-01-01T00:00:00.000+0000"}}`, string(records[0].Data))
	assert.JSONEq(t, `{"key":"I-2","fields":{"updated":"2023-01-02T00:00:00.000+0000"}}`, string(records[1].Data))
	assert.JSONEq(t, `{"key":"P-1"}`, string(records[2].Data))
	assert.JSONEq(t, `{"accountId":"u1"}`, string(records[3].Data))
	assert.JSONEq(t, `{"accountId":"u2"}`, string(records[4].Data))
}

func TestNormalizeEmptyCollections(t *testing.T) {
	records := Normalize(nil, nil, nil)
	assert.Empty(t, records)

	records = Normalize(nil, []json.RawMessage{json.RawMessage(`{"key":"P-1"}`)}, nil)
	require.Len(t, records, 1)
	assert.Equal(t, ObjectProjects, records[0].Object)
}

func TestNormalizePreservesRawIssueDocument(t *testing.T) {
	// Fields the pipeline never reads must survive into the record payload.
	raw := `{"key":"I-1","fields":{"updated":"2023-01-01T00:00:00.000+0000","labels":["etl","backlog"],"customfield_10016":5}}`
	issues := []models.TrackedObject{decodeObject(t, raw)}

	records := Normalize(issues, nil, nil)

	require.Len(t, records, 1)
	assert.JSONEq(t, raw, string(records[0].Data))
}
