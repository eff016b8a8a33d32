package ciutil

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// Environment variables read by this package.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	EnvDatabaseURL         = "DATABASE_URL"
	EnvGearcastTestDBURL   = "GEARCAST_TEST_DB_URL"
	EnvGearcastDatabaseURL = "GEARCAST_DATABASE_URL"
)

// IsCI reports whether the process runs under a known CI provider.
func IsCI() bool {
	for _, v := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the value of the first non-empty variable in
// envVars, or defaultValue. Using any but the first name logs a warning.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("Using fallback environment variable",
				"used_var", envVar,
				"preferred_var", envVars[0],
				"value", MaskSensitiveValue(val))
		}
		return val
	}
	return defaultValue
}

// MaskSensitiveValue hides the password of a connection URL and the middle
// of anything that looks like a key or token.
func MaskSensitiveValue(value string) string {
	if u, err := url.Parse(value); err == nil && u.Scheme != "" && u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "****")
			// url.String escapes the mask; restore it for readability.
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return value
	}

	lower := strings.ToLower(value)
	if len(value) > 8 && (strings.Contains(lower, "key") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "secret")) {
		return value[:4] + "****" + value[len(value)-4:]
	}
	return value
}
