package pipeline

import (
	"encoding/json"

	"github.com/tvarga/jiraflow/pkg/models"
)

// Record categories, in emission order.
const (
	ObjectIssues   = "issues"
	ObjectProjects = "projects"
	ObjectUsers    = "users"
)

// Normalize flattens the three polled collections into one long-format record
// stream: every issue, then every project, then every user, each tagged with
// its category. No deduplication, sorting or filtering.
func Normalize(issues []models.TrackedObject, projects, users []json.RawMessage) []models.Record {
	records := make([]models.Record, 0, len(issues)+len(projects)+len(users))

	for _, issue := range issues {
		records = append(records, models.Record{Object: ObjectIssues, Data: issue.Raw})
	}
	for _, project := range projects {
		records = append(records, models.Record{Object: ObjectProjects, Data: project})
	}
	for _, user := range users {
		records = append(records, models.Record{Object: ObjectUsers, Data: user})
	}

	return records
}
