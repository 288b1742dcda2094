package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds icon identifiers. Identities are short, human-chosen
// slugs or generated UUIDs (36 characters).
const maxIDLength = 64

// iconIDRegex matches valid icon identifiers: a letter or digit followed by
// letters, digits, dots, dashes or underscores.
var iconIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateIconID validates an icon identity for safety and correctness.
// Identities end up in URLs (/api/apps/{id}) and log lines, so the rules are
// conservative:
//   - No empty identities
//   - No control characters
//   - Maximum length of 64 characters
//   - Only letters, digits, '.', '-' and '_'
func ValidateIconID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "icon id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "icon id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "icon id contains invalid control characters")
		}
	}

	if !iconIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid icon id: %q", id)
	}

	return nil
}

// ValidateLink validates an outbound link attached to an app.
// The placeholder "#" is accepted; anything else must use http or https.
func ValidateLink(rawURL string) error {
	if rawURL == "" || rawURL == "#" {
		return nil
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "link must use http or https scheme: %q", rawURL)
	}

	return nil
}

// ValidateDimension validates a positive size such as an icon width or a
// frame rate.
func ValidateDimension(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values. TOML and JSON decoders
// accept both, and neither survives position arithmetic.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number, got %v", name, v)
	}
	return nil
}
