package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateTraitName validates a trait name supplied as user input (sort
// flags, query parameters). It rejects names that cannot appear in a valid
// dataset before any lookup is attempted.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 64 characters
//   - Lowercase letters only (trait vocabulary is lowercase by convention)
//
// Membership in a concrete dataset's trait domain is checked separately by
// the dataset package.
func ValidateTraitName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTrait, "trait name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidTrait, "trait name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTrait, "trait name contains invalid control characters")
		}
	}

	if !traitNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTrait, "invalid trait name: %q", name)
	}

	return nil
}

// traitNameRegex matches lowercase trait identifiers (e.g. "roots", "fruits").
var traitNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateTreeID validates a tree identifier supplied as user input.
// Tree identifiers come from the dataset and may be numeric or free-form
// strings, but must not contain control characters or be unreasonably long.
func ValidateTreeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "tree identifier cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "tree identifier too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "tree identifier contains invalid control characters")
		}
	}

	return nil
}

// ValidateDatasetPath validates a dataset file path for safety.
// It prevents null-byte injection and enforces a reasonable length; the
// path may be absolute or relative since it names a local file chosen by
// the operator, not an untrusted repository path.
func ValidateDatasetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "dataset path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "dataset path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "dataset path contains invalid characters")
		}
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
