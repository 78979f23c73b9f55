package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// nameRegex matches scene identifiers: container names and item ids.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateName validates a container name or item id from a scene file.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
//   - Letters, digits and ._:- only, starting with a letter or digit
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "%s name cannot be empty", kind)
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidScene, "%s name too long (max 128 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "%s name contains invalid control characters", kind)
		}
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidScene, "invalid %s name: %q", kind, name)
	}

	return nil
}

// ValidateFraction checks that v is a finite number in [0, max).
// Margins and paddings are fractions of a container and must stay below 1.
func ValidateFraction(field string, v, max float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	if v < 0 || v >= max {
		return New(ErrCodeInvalidInput, "%s must be in [0, %g), got %g", field, max, v)
	}
	return nil
}

// ValidatePositive checks that v is a finite number greater than zero.
func ValidatePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be a positive number, got %g", field, v)
	}
	return nil
}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}

	return nil
}
