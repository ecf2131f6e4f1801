package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Full timestamp",
			input:    "2021-09-01T00:00:00.000+0000",
			expected: "2021-09-01",
		},
		{
			name:     "Date only passes through",
			input:    "2021-09-01",
			expected: "2021-09-01",
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, dateOnly(tc.input))
		})
	}
}

// execute runs the root command with the given args and restores flag state
// afterwards, since cobra keeps flag values between invocations.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		rootCmd.Flags().Set("create-issues", "false")
		rootCmd.Flags().Set("query-objects", "false")
		rootCmd.Flags().Set("input", "")
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestMutuallyExclusiveFlags(t *testing.T) {
	err := execute(t, "--create-issues", "--query-objects")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestCreateIssuesRequiresInput(t *testing.T) {
	err := execute(t, "--create-issues")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")
}

func TestNoFlagsPrintsFallback(t *testing.T) {
	err := execute(t)
	assert.NoError(t, err)
}
