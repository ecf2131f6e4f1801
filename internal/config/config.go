// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira JiraConfig
}

// JiraConfig holds the Jira connection settings.
type JiraConfig struct {
	// URL is the base URL of the Jira instance
	URL string

	// Email is the account email used for basic auth
	Email string

	// Token is the API token used for basic auth
	Token string

	// ProjectKey is the project issues are created in
	ProjectKey string
}

// LoadConfig initializes and loads configuration from a .env file (if
// present) and environment variables. Environment variables win over the
// file.
func LoadConfig() (*Config, error) {
	// A missing .env file is not an error; plain env vars are enough.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.email", "JIRA_EMAIL")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("jira.project", "JIRA_PROJECT")

	config := &Config{
		Jira: JiraConfig{
			URL:        strings.TrimRight(v.GetString("jira.url"), "/"),
			Email:      v.GetString("jira.email"),
			Token:      v.GetString("jira.token"),
			ProjectKey: v.GetString("jira.project"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Email == "" {
		missingVars = append(missingVars, "JIRA_EMAIL")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// ValidateProjectKey checks the setting required only by the create flow.
func ValidateProjectKey(config *Config) error {
	if config.Jira.ProjectKey == "" {
		return fmt.Errorf("missing required environment variables: [JIRA_PROJECT]")
	}
	return nil
}
