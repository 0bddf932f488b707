// Package redact scrubs sensitive information from strings before they are
// logged or returned in error responses. Session tokens, connection-string
// credentials, secrets, identity emails, SQL text and file paths can all end
// up inside wrapped store or token errors.
package redact

import "regexp"

// Placeholders substituted for redacted content.
const (
	Placeholder           = "[REDACTED]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; tokens go first so the secret rule never sees
// a raw signature.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: JWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mongodb(?:\+srv)?|mysql)://[^@\s/]+@`),
		replacement: "${1}://" + CredentialPlaceholder + "@",
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(password|passwd|pwd|secret|api[_-]?key|token)(\s*[=:]\s*)['"]?[^'"&\s]{3,}['"]?`,
		),
		replacement: "${1}${2}" + Placeholder,
	},
	{
		pattern:     regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		replacement: EmailPlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`\b(?:SELECT\b[^;]*?\bFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM)\b[^;]*`,
		),
		replacement: SQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){3,}`),
		replacement: PathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
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

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
