package errors

import (
	"net/mail"
	"strings"
	"unicode"
)

// maxMemberIDLength bounds member identifiers accepted from files, the
// member store and API requests.
const maxMemberIDLength = 128

// ValidateMemberID validates a member identifier for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No surrounding whitespace
//   - Maximum length of 128 characters
//
// Structural checks (uniqueness, parent references) belong to the lineage
// engine, not here.
func ValidateMemberID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMember, "member id cannot be empty")
	}

	if len(id) > maxMemberIDLength {
		return New(ErrCodeInvalidMember, "member id too long (max %d characters)", maxMemberIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMember, "member id contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidMember, "member id %q has leading or trailing whitespace", id)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateEmail checks that s is a bare address such as "arthur@fam.com".
// Display-name forms ("Arthur <arthur@fam.com>") are rejected.
func ValidateEmail(s string) error {
	if s == "" {
		return New(ErrCodeInvalidInput, "email cannot be empty")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return New(ErrCodeInvalidInput, "invalid email address: %q", s)
	}
	return nil
}
