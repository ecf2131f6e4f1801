// Package pipeline contains the transformation core: watermark extraction
// from search responses, reconciliation of bulk-write responses onto input
// rows, and normalization of the polled collections into one record stream.
package pipeline

import (
	"encoding/json"
	"errors"

	"github.com/tvarga/jiraflow/pkg/models"
)

// EmptyPolicy decides what watermark extraction does with an empty input
// collection.
type EmptyPolicy int

const (
	// ReturnEmptyWatermark yields an empty watermark for empty input.
	ReturnEmptyWatermark EmptyPolicy = iota

	// FailOnEmpty returns an error for empty input.
	FailOnEmpty
)

// ErrNoObjects is returned by watermark extraction under FailOnEmpty.
var ErrNoObjects = errors.New("no objects to extract a watermark from")

// LatestUpdated returns the maximum fields.updated value across the objects.
// Timestamps are compared lexically, which is sound because the service emits
// them in a fixed-width, zero-padded format.
func LatestUpdated(objects []models.TrackedObject, onEmpty EmptyPolicy) (string, error) {
	if len(objects) == 0 {
		if onEmpty == FailOnEmpty {
			return "", ErrNoObjects
		}
		return "", nil
	}

	latest := objects[len(objects)-1].Fields.Updated
	for _, o := range objects {
		if latest < o.Fields.Updated {
			latest = o.Fields.Updated
		}
	}
	return latest, nil
}

// ExtractIssues returns the issues of a search response unchanged, plus the
// watermark over their updated timestamps.
func ExtractIssues(resp *models.SearchResponse, onEmpty EmptyPolicy) ([]models.TrackedObject, string, error) {
	watermark, err := LatestUpdated(resp.Issues, onEmpty)
	if err != nil {
		return nil, "", err
	}
	return resp.Issues, watermark, nil
}

// ExtractProjects pulls the project blob out of each issue that carries one,
// plus the watermark over the carrying issues. Issues without a project are
// skipped; order is preserved.
func ExtractProjects(issues []models.TrackedObject, onEmpty EmptyPolicy) ([]json.RawMessage, string, error) {
	watermark, err := LatestUpdated(issues, onEmpty)
	if err != nil {
		return nil, "", err
	}

	var projects []json.RawMessage
	for _, issue := range issues {
		if models.Present(issue.Fields.Project) {
			projects = append(projects, issue.Fields.Project)
		}
	}
	return projects, watermark, nil
}

// ExtractUsers pulls every populated user blob out of each issue, plus the
// watermark over the carrying issues. Users are emitted issue by issue in a
// fixed field order (assignee, reporter, approvals, voter, watcher), with no
// deduplication.
func ExtractUsers(issues []models.TrackedObject, onEmpty EmptyPolicy) ([]json.RawMessage, string, error) {
	watermark, err := LatestUpdated(issues, onEmpty)
	if err != nil {
		return nil, "", err
	}

	var users []json.RawMessage
	for _, issue := range issues {
		f := issue.Fields
		for _, blob := range []json.RawMessage{f.Assignee, f.Reporter, f.Approvals, f.Voter, f.Watcher} {
			if models.Present(blob) {
				users = append(users, blob)
			}
		}
	}
	return users, watermark, nil
}
