package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxGenerators bounds the number of generators accepted from untrusted
// input (files, HTTP requests). The search itself has no such limit.
const MaxGenerators = 64

// generatorNameRegex matches generator names usable in the text format:
// a letter followed by letters, digits or underscores.
var generatorNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateGeneratorName validates a generator name for the text format.
//
// The validation rules are:
//   - No empty names
//   - Must start with a letter
//   - Only letters, digits and underscores afterwards
//   - Maximum length of 32 characters
func ValidateGeneratorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGenerator, "generator name cannot be empty")
	}
	if len(name) > 32 {
		return New(ErrCodeInvalidGenerator, "generator name too long (max 32 characters): %q", name)
	}
	if !generatorNameRegex.MatchString(name) {
		return New(ErrCodeInvalidGenerator, "invalid generator name: %q", name)
	}
	return nil
}

// ValidateGeneratorNames validates every name and rejects duplicates.
func ValidateGeneratorNames(names []string) error {
	if len(names) > MaxGenerators {
		return New(ErrCodeInvalidPresentation, "too many generators (max %d)", MaxGenerators)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if err := ValidateGeneratorName(name); err != nil {
			return err
		}
		if seen[name] {
			return New(ErrCodeInvalidGenerator, "duplicate generator name: %q", name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateDegree checks that a covering degree lies within [1, max].
// Degrees outside the range of the precomputed permutation tables are a
// caller contract violation and must be rejected before a search begins.
func ValidateDegree(degree, max int) error {
	if degree < 1 || degree > max {
		return New(ErrCodeUnsupportedDegree, "degree %d outside supported range 1..%d", degree, max)
	}
	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
