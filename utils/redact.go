package utils

import "strings"

// RedactSecret masks a token or API key so it can be logged safely.
// Short values are fully masked; longer ones keep the first and last
// four characters for correlation.
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 12 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}
