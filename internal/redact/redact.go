// Package redact scrubs credentials, connection strings, file paths and
// similar details from text before it is logged or returned to a client.
//
// Provider and storage errors routinely echo request URLs and headers, so
// API keys in query strings and Authorization values are covered alongside
// database URLs.
package redact

import (
	"regexp"
)

// Redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order; earlier rules win over later, broader ones.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]+`),
		replacement: "Bearer " + RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(postgres|postgresql|mysql|redis|amqp)://[^@\s]+@`),
		replacement: RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|token|access_token|sig|signature)=)[^&\s"']+`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|apikey|secret|password|token)(\s*[:=]\s*)['"]?[^'"&\s,]{3,}`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(AKIA|ASIA)[A-Z0-9]{12,}`),
		replacement: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:[\s\S]*`),
		replacement: RedactedStackPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: RedactedEmailPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(^|[\s(])(/[\w.-]+){2,}`),
		replacement: "${1}" + RedactedPathPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(^|[\s(])[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		replacement: "${1}" + RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
