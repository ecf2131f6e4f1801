package jira

import (
	"github.com/tvarga/jiraflow/pkg/models"
)

// BuildIssuePayload maps one input row onto the create-issue document shape,
// wrapping the description in the service's rich-text format.
func BuildIssuePayload(row models.InputRow, projectKey string) models.IssuePayload {
	return models.IssuePayload{
		Fields: models.IssueFields{
			Project:     models.ProjectRef{Key: projectKey},
			Summary:     row.Summary,
			Description: models.NewDocument(row.Description),
			IssueType:   models.TypeRef{Name: row.IssueType},
		},
	}
}

// BuildBulkPayloads maps a whole input table, preserving row order.
func BuildBulkPayloads(rows []models.InputRow, projectKey string) []models.IssuePayload {
	payloads := make([]models.IssuePayload, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, BuildIssuePayload(row, projectKey))
	}
	return payloads
}
