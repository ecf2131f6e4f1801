package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tvarga/jiraflow/internal/config"
	"github.com/tvarga/jiraflow/internal/csvio"
	"github.com/tvarga/jiraflow/internal/jira"
	"github.com/tvarga/jiraflow/internal/logging"
	"github.com/tvarga/jiraflow/internal/pipeline"
	"github.com/tvarga/jiraflow/pkg/models"
)

// runQueryObjects polls for recently updated issues, projects and users,
// normalizes the three collections into one record table and reports the new
// watermark per category. The three reads are independent, so they are
// issued concurrently.
func runQueryObjects(cmd *cobra.Command) error {
	since, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	client, err := jira.NewClient(cfg)
	if err != nil {
		return err
	}

	date := dateOnly(since)
	logging.Info("querying objects", "since", date, "url", cfg.Jira.URL)

	var (
		issuesResp   *models.SearchResponse
		projectsResp *models.SearchResponse
		usersResp    *models.SearchResponse
	)

	group, ctx := errgroup.WithContext(context.Background())
	group.Go(func() error {
		var err error
		issuesResp, err = client.SearchIssuesUpdatedAfter(ctx, date)
		return err
	})
	group.Go(func() error {
		var err error
		projectsResp, err = client.SearchProjectIssuesUpdatedAfter(ctx, date)
		return err
	})
	group.Go(func() error {
		var err error
		usersResp, err = client.SearchUserFieldIssuesUpdatedAfter(ctx, date)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	issues, issuesWatermark, err := pipeline.ExtractIssues(issuesResp, pipeline.ReturnEmptyWatermark)
	if err != nil {
		return err
	}
	projects, projectsWatermark, err := pipeline.ExtractProjects(projectsResp.Issues, pipeline.ReturnEmptyWatermark)
	if err != nil {
		return err
	}
	users, usersWatermark, err := pipeline.ExtractUsers(usersResp.Issues, pipeline.ReturnEmptyWatermark)
	if err != nil {
		return err
	}

	logging.Info("extracted objects",
		"issues", len(issues),
		"projects", len(projects),
		"users", len(users))
	logging.Info("new watermarks",
		"issues", issuesWatermark,
		"projects", projectsWatermark,
		"users", usersWatermark)

	records := pipeline.Normalize(issues, projects, users)

	out, done, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	defer done()

	return csvio.WriteRecords(out, records)
}

// dateOnly truncates a full timestamp like 2021-09-01T00:00:00.000+0000 to
// its date part. Shorter inputs pass through unchanged.
func dateOnly(ts string) string {
	if len(ts) <= 10 {
		return ts
	}
	return ts[:10]
}
