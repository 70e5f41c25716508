// Package redact scrubs sensitive material from strings before they reach
// logs or error responses: connection strings, secrets, signed tokens and
// filesystem paths that tend to ride along inside wrapped errors.
package redact

import "regexp"

// rule pairs a pattern with the placeholder that replaces its matches.
type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

var rules = []rule{
	// Database connection strings with inline credentials.
	{
		pattern:     regexp.MustCompile(`(?i)(postgres(?:ql)?|mysql|redis)://[^@\s]+@`),
		placeholder: "[REDACTED_DSN]",
	},
	// password=..., secret: "...", key=... style assignments.
	{
		pattern:     regexp.MustCompile(`(?i)(password|passwd|api[_-]?key|secret)(['":=]+\s?)[^'"&\s]{3,}`),
		placeholder: "[REDACTED_CREDENTIAL]",
	},
	// Signed JWTs (three base64url segments starting with eyJ).
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		placeholder: "[REDACTED_JWT]",
	},
	// Absolute filesystem paths.
	{
		pattern:     regexp.MustCompile(`(/[\w.-]+){2,}`),
		placeholder: "[REDACTED_PATH]",
	},
	// host:port pairs that would reveal internal topology.
	{
		pattern:     regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}:\d{1,5}\b`),
		placeholder: "[REDACTED_HOST]",
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
// Returns the empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
