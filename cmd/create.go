package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tvarga/jiraflow/internal/config"
	"github.com/tvarga/jiraflow/internal/csvio"
	"github.com/tvarga/jiraflow/internal/jira"
	"github.com/tvarga/jiraflow/internal/logging"
	"github.com/tvarga/jiraflow/internal/pipeline"
)

// runCreateIssues reads the input table, creates its rows in one bulk call
// and writes the table back annotated with per-row load status. Partial
// failures are not an error: they end up in the load_result column.
func runCreateIssues(cmd *cobra.Command) error {
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	if input == "" {
		return fmt.Errorf("--input is required with --create-issues")
	}

	markUnknown, err := cmd.Flags().GetBool("mark-unknown")
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := config.ValidateProjectKey(cfg); err != nil {
		return err
	}

	logging.Info("creating issues",
		"input", input,
		"project", cfg.Jira.ProjectKey,
		"url", cfg.Jira.URL,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	file, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open input csv: %w", err)
	}
	defer file.Close()

	rows, err := csvio.ReadInputRows(file)
	if err != nil {
		return err
	}

	client, err := jira.NewClient(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	account, err := client.Myself(ctx)
	if err != nil {
		return err
	}
	logging.Debug("authenticated", "account", account)

	resp, err := client.CreateBulkIssues(ctx, jira.BuildBulkPayloads(rows, cfg.Jira.ProjectKey))
	if err != nil {
		return err
	}

	policy := pipeline.StopOnExhaustion
	if markUnknown {
		policy = pipeline.MarkUnknownOnExhaustion
	}
	rows = pipeline.Reconcile(rows, resp, policy)

	created := 0
	for _, row := range rows {
		if row.Annotated() && *row.LoadSuccess {
			created++
		}
	}
	logging.Info("bulk create finished",
		"rows", len(rows),
		"created", created,
		"failed", len(resp.Errors))

	out, done, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	defer done()

	return csvio.WriteAnnotatedRows(out, rows)
}

// outputWriter resolves the --output flag, defaulting to stdout.
func outputWriter(cmd *cobra.Command) (io.Writer, func() error, error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}
	if output == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output csv: %w", err)
	}
	return file, file.Close, nil
}
