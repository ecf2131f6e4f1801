// Package jira provides the gateway to the Jira REST API. It only assembles
// requests and decodes responses; all interpretation of the payloads happens
// in the pipeline package.
package jira

import (
	"context"
	"fmt"
	"net/url"

	jira "github.com/andygrunwald/go-jira"

	"github.com/tvarga/jiraflow/internal/config"
	"github.com/tvarga/jiraflow/pkg/models"
)

// Client handles interactions with the Jira API.
type Client struct {
	client *jira.Client
}

// NewClient creates a Jira client authenticated with the configured
// email/token pair.
func NewClient(cfg *config.Config) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Email,
		Password: cfg.Jira.Token,
	}

	client, err := jira.NewClient(tp.Client(), cfg.Jira.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &Client{client: client}, nil
}

// SearchIssuesUpdatedAfter queries for issues updated on or after the given
// date. A single page of results is returned; no pagination cursor is
// followed.
func (c *Client) SearchIssuesUpdatedAfter(ctx context.Context, date string) (*models.SearchResponse, error) {
	jql := fmt.Sprintf("updated >= '%s'", date)
	return c.search(ctx, url.Values{"jql": {jql}})
}

// SearchProjectIssuesUpdatedAfter queries for issues in projects the caller
// can edit, updated on or after the given date. The response carries issues;
// the project objects are extracted downstream from fields.project.
func (c *Client) SearchProjectIssuesUpdatedAfter(ctx context.Context, date string) (*models.SearchResponse, error) {
	jql := fmt.Sprintf("project in projectsWhereUserHasPermission('Edit Issues') AND updated >= '%s'", date)
	return c.search(ctx, url.Values{"jql": {jql}})
}

// SearchUserFieldIssuesUpdatedAfter queries for issues updated on or after
// the given date with only the user-bearing fields populated. The page size
// is capped at 1000; callers must not assume more than one page.
func (c *Client) SearchUserFieldIssuesUpdatedAfter(ctx context.Context, date string) (*models.SearchResponse, error) {
	jql := fmt.Sprintf("updated >= '%s'", date)
	return c.search(ctx, url.Values{
		"jql":        {jql},
		"fields":     {"assignee,reporter,approvals,voter,watcher,updated,"},
		"maxResults": {"1000"},
	})
}

func (c *Client) search(ctx context.Context, params url.Values) (*models.SearchResponse, error) {
	req, err := c.client.NewRequestWithContext(ctx, "GET", "rest/api/3/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	result := &models.SearchResponse{}
	if _, err := c.client.Do(req, result); err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	return result, nil
}

// CreateBulkIssues creates the given issues in one synchronous bulk call.
// Partial failures are not an error here: they come back inside the response
// and are reconciled onto the input rows by the caller.
func (c *Client) CreateBulkIssues(ctx context.Context, payloads []models.IssuePayload) (*models.BulkCreateResponse, error) {
	body := map[string][]models.IssuePayload{"issueUpdates": payloads}

	req, err := c.client.NewRequestWithContext(ctx, "POST", "rest/api/3/issue/bulk", body)
	if err != nil {
		return nil, fmt.Errorf("failed to build bulk create request: %w", err)
	}

	result := &models.BulkCreateResponse{}
	if _, err := c.client.Do(req, result); err != nil {
		return nil, fmt.Errorf("bulk create request failed: %w", err)
	}
	return result, nil
}

// Myself verifies the configured credentials against the service, returning
// the account's display name. Used as a preflight before the create flow.
func (c *Client) Myself(ctx context.Context) (string, error) {
	req, err := c.client.NewRequestWithContext(ctx, "GET", "rest/api/3/myself", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build myself request: %w", err)
	}

	var result struct {
		DisplayName string `json:"displayName"`
	}
	if _, err := c.client.Do(req, &result); err != nil {
		return "", fmt.Errorf("authentication check failed: %w", err)
	}
	return result.DisplayName, nil
}
