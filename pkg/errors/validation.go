package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// documentNameRegex matches safe tree document names: they become file
// names in the file store and _id values in the Mongo store.
var documentNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateDocumentName validates a stored tree name for safety.
// It rejects names that could be used for path traversal in the file
// store backend.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Must start with an alphanumeric; only [A-Za-z0-9._-] afterwards
//   - No path traversal sequences (..)
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDocument, "document name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidDocument, "document name too long (max 128 characters)")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidDocument, "document name cannot contain path traversal sequences (..)")
	}
	if !documentNameRegex.MatchString(name) {
		return New(ErrCodeInvalidDocument, "invalid document name: %q", name)
	}
	return nil
}

// ValidateNodeID validates a node id supplied by an external caller
// (CLI flag or API path parameter). IDs are positive integers; zero is
// the reserved "none" sentinel.
func ValidateNodeID(id int) error {
	if id <= 0 {
		return New(ErrCodeInvalidNodeID, "node id must be a positive integer, got %d", id)
	}
	return nil
}

// ValidateOutputPath validates a file path passed for rendered output.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	return nil
}
