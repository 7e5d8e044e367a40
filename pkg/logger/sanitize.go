package logger

import (
	"regexp"
	"strings"
)

var credentialPatterns = []struct {
	regex       *regexp.Regexp
	replacement string
}{
	{regex: regexp.MustCompile(`(?i)api_?key=[^\s]+`), replacement: "api_key=[redacted]"},
	{regex: regexp.MustCompile(`(?i)secret=[^\s]+`), replacement: "secret=[redacted]"},
	{regex: regexp.MustCompile(`(?i)token=[^\s]+`), replacement: "token=[redacted]"},
	{regex: regexp.MustCompile(`(?i)password=[^\s]+`), replacement: "password=[redacted]"},
	{regex: regexp.MustCompile(`(?i)authorization:\s*bearer\s+[a-z0-9\-._~+/=]+`), replacement: "authorization: Bearer [redacted]"},
	{regex: regexp.MustCompile(`xox[a-z]-[a-zA-Z0-9-]+`), replacement: "[redacted slack token]"},
	{regex: regexp.MustCompile(`shpat_[a-zA-Z0-9]+`), replacement: "[redacted shopify token]"},
	{regex: regexp.MustCompile(`(?i)https?://[^:@\s]+:[^@\s]+@`), replacement: "http://[redacted]:[redacted]@"},
	{regex: regexp.MustCompile(`(?i)(password|secret|token)\s*"[^"]+"`), replacement: "$1\"[redacted]\""},
}

// SanitizeLogLines performs minimal redaction on log lines for safe exposure
// through the diagnostics resource.
func SanitizeLogLines(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		for _, pattern := range credentialPatterns {
			l = pattern.regex.ReplaceAllString(l, pattern.replacement)
		}
		out[i] = l
	}
	return out
}

// SecretKey reports whether a field name looks like it carries a secret.
// Step inputs are redacted by field name before they are logged.
func SecretKey(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range []string{"key", "token", "secret", "password", "credential"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
