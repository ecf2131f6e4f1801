// Package cmd provides the command-line interface for the jiraflow tool.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jiraflow",
	Short: "jiraflow loads and polls work items in a Jira instance",
	Long: `jiraflow is a small ETL utility for a Jira instance.

It supports two flows:

1. --create-issues reads a CSV table of work items, creates them in one bulk
   call, and writes the table back with a per-row load status.
2. --query-objects polls for recently updated issues, projects and users,
   and writes them out as one normalized record table.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		createIssues, err := cmd.Flags().GetBool("create-issues")
		if err != nil {
			return err
		}
		queryObjects, err := cmd.Flags().GetBool("query-objects")
		if err != nil {
			return err
		}

		if createIssues && queryObjects {
			return fmt.Errorf("--create-issues and --query-objects are mutually exclusive")
		}

		switch {
		case createIssues:
			return runCreateIssues(cmd)
		case queryObjects:
			return runQueryObjects(cmd)
		default:
			fmt.Println("No option such as that.")
			return nil
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().Bool("create-issues", false, "Create issues in bulk from the input CSV")
	rootCmd.Flags().Bool("query-objects", false, "Query latest issues, projects and users")
	rootCmd.Flags().StringP("input", "i", "", "Input CSV with summary, description and issuetype columns")
	rootCmd.Flags().StringP("output", "o", "", "Output CSV path (defaults to stdout)")
	rootCmd.Flags().String("since", "2021-09-01T00:00:00.000+0000", "Lower bound for the update queries")
	rootCmd.Flags().Bool("mark-unknown", false, "Annotate rows without a result instead of leaving them blank")
}
