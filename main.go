// Package main is the entry point for the jiraflow CLI.
package main

import (
	"fmt"
	"os"

	"github.com/tvarga/jiraflow/cmd"
	"github.com/tvarga/jiraflow/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
