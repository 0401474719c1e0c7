package security

import (
	"regexp"
	"strings"
)

var (
	unsafeTokenChars = regexp.MustCompile(`[^a-zA-Z0-9_.\-]`)
	jwtPattern       = regexp.MustCompile(`^[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+$`)
	hexKeyPattern    = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)
)

// TokenValidator provides validation and handling of TMDB credentials
type TokenValidator struct {
	minLength int
	maxLength int
}

// NewTokenValidator creates a new token validator with reasonable defaults
func NewTokenValidator() *TokenValidator {
	return &TokenValidator{
		minLength: 8,
		maxLength: 1024,
	}
}

// SanitizeToken trims whitespace and an optional "Bearer " prefix, then
// drops characters that could be used for header injection.
func (v *TokenValidator) SanitizeToken(token string) string {
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return unsafeTokenChars.ReplaceAllString(token, "")
}

// ValidateToken checks length constraints and the allowed alphabet
func (v *TokenValidator) ValidateToken(token string) bool {
	if len(token) < v.minLength || len(token) > v.maxLength {
		return false
	}
	return !unsafeTokenChars.MatchString(token)
}

// IsReadAccessToken reports whether token looks like a TMDB v4 read access
// token (a JWT), which is what the bearer scheme expects.
func (v *TokenValidator) IsReadAccessToken(token string) bool {
	return v.ValidateToken(token) && jwtPattern.MatchString(token)
}

// IsLegacyAPIKey reports whether token is a 32 character hex v3 API key
func (v *TokenValidator) IsLegacyAPIKey(token string) bool {
	return hexKeyPattern.MatchString(token)
}

// MaskToken creates a masked version for logging (shows only first/last few chars)
func (v *TokenValidator) MaskToken(token string) string {
	if len(token) == 0 {
		return "[empty]"
	}

	if len(token) <= 8 {
		return "[***]"
	}

	return token[:3] + "..." + token[len(token)-3:]
}
