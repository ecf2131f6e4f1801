// Package models defines data structures shared across the application.
package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// InputRow is one row of the bulk-creation input table. A row is identified
// by its 0-based position in the table; reconciliation annotates it in place.
type InputRow struct {
	// Summary is the issue summary field
	Summary string

	// Description is the plain-text issue description
	Description string

	// IssueType is the Jira issue type name (e.g., "Task", "Story")
	IssueType string

	// LoadSuccess reports whether the row was created. Nil means the row was
	// never annotated (the success cursor ran out before reaching it).
	LoadSuccess *bool

	// LoadResult holds the created issue key on success, or a human-readable
	// error summary on failure
	LoadResult string
}

// Annotated reports whether reconciliation reached this row.
func (r *InputRow) Annotated() bool {
	return r.LoadSuccess != nil
}

// BulkCreateResponse is the decoded body of a bulk issue-create call. The
// issues sequence contains the successfully created rows in original row
// order, with failed positions skipped.
type BulkCreateResponse struct {
	Errors []BulkCreateError `json:"errors"`
	Issues []CreatedIssue    `json:"issues"`
}

// BulkCreateError describes one failed row of a bulk create.
type BulkCreateError struct {
	// Status is the status code the service assigned to this element
	Status int `json:"status"`

	// FailedElementNumber is the 0-based position of the failed row in the request
	FailedElementNumber int `json:"failedElementNumber"`

	// ElementErrors carries the per-field error messages
	ElementErrors ElementErrors `json:"elementErrors"`
}

// ElementErrors maps field names to validation messages.
type ElementErrors struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// CreatedIssue is one successfully created issue in a bulk response.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// TrackedObject is one issue-shaped record from a search response. Raw keeps
// the complete document so downstream export is lossless; Fields is a typed
// view of the parts the pipeline reads.
type TrackedObject struct {
	Raw    json.RawMessage
	Fields TrackedFields
}

// TrackedFields exposes the nested fields the pipeline inspects. The user and
// project members stay opaque blobs; only Updated is interpreted, and only by
// lexical comparison.
type TrackedFields struct {
	Updated   string          `json:"updated"`
	Project   json.RawMessage `json:"project"`
	Assignee  json.RawMessage `json:"assignee"`
	Reporter  json.RawMessage `json:"reporter"`
	Approvals json.RawMessage `json:"approvals"`
	Voter     json.RawMessage `json:"voter"`
	Watcher   json.RawMessage `json:"watcher"`
}

// UnmarshalJSON decodes the typed view while retaining the raw document.
func (o *TrackedObject) UnmarshalJSON(data []byte) error {
	o.Raw = append(o.Raw[:0], data...)

	var view struct {
		Fields TrackedFields `json:"fields"`
	}
	if err := json.Unmarshal(data, &view); err != nil {
		return err
	}
	o.Fields = view.Fields
	return nil
}

// MarshalJSON emits the original document unchanged.
func (o TrackedObject) MarshalJSON() ([]byte, error) {
	if len(o.Raw) == 0 {
		return []byte("null"), nil
	}
	return o.Raw, nil
}

// Present reports whether a decoded sub-blob actually carried a value.
// encoding/json hands RawMessage the literal "null" for JSON null.
func Present(blob json.RawMessage) bool {
	return len(blob) > 0 && !bytes.Equal(blob, []byte("null"))
}

// SearchResponse is the decoded body of a Jira search call.
type SearchResponse struct {
	StartAt    int             `json:"startAt"`
	MaxResults int             `json:"maxResults"`
	Total      int             `json:"total"`
	Issues     []TrackedObject `json:"issues"`
}

// IssuePayload is one element of a bulk issueUpdates request.
type IssuePayload struct {
	Fields IssueFields `json:"fields"`
}

// IssueFields is the fields block of an issue-create payload. The description
// uses the service's rich-text document format; the nesting must be
// reproduced exactly for the service to accept it.
type IssueFields struct {
	Project     ProjectRef `json:"project"`
	Summary     string     `json:"summary"`
	Description Document   `json:"description"`
	IssueType   TypeRef    `json:"issuetype"`
}

// ProjectRef identifies the target project by key.
type ProjectRef struct {
	Key string `json:"key"`
}

// TypeRef identifies an issue type by name.
type TypeRef struct {
	Name string `json:"name"`
}

// Document is a rich-text description document.
type Document struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	Content []Node `json:"content"`
}

// Node is one node of a rich-text document.
type Node struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Content []Node `json:"content,omitempty"`
}

// NewDocument wraps plain text in the single-paragraph document shape the
// bulk-create endpoint expects.
func NewDocument(text string) Document {
	return Document{
		Type:    "doc",
		Version: 1,
		Content: []Node{
			{
				Type: "paragraph",
				Content: []Node{
					{Type: "text", Text: text},
				},
			},
		},
	}
}

// PlainText flattens a document back to its text content, in node order.
func (d Document) PlainText() string {
	var sb strings.Builder
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.Type == "text" {
				sb.WriteString(n.Text)
			}
			walk(n.Content)
		}
	}
	walk(d.Content)
	return sb.String()
}

// Record is one row of the normalized long-format output table.
type Record struct {
	// Object is the record category: "issues", "projects" or "users"
	Object string

	// Data is the record payload, passed through untouched
	Data json.RawMessage
}
