package security

import "strings"

const mask = "***"

// sensitiveParts match argument keys that may carry credentials.
var sensitiveParts = []string{
	"token",
	"secret",
	"password",
	"passwd",
	"authorization",
	"consumer_key",
	"oauth",
	"signature",
	"cookie",
	"session",
	"bearer",
	"credential",
}

// RedactArguments returns a copy of arguments safe to log.
func RedactArguments(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	redacted := make(map[string]any, len(values))
	for key, value := range values {
		if IsSensitiveKey(key) {
			redacted[key] = mask
			continue
		}
		redacted[key] = value
	}
	return redacted
}

// IsSensitiveKey reports whether key looks like it holds a credential.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, part := range sensitiveParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
