package errors

import (
	"strings"
	"unicode"
)

// ValidateColumnName validates a column name for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
//
// Classification functions may map any valid column name to any group key;
// group keys have their own validation in [ValidateGroupName].
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColumn, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidColumn, "column name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColumn, "column name contains invalid control characters")
		}
	}

	if strings.Contains(name, "\x00") {
		return New(ErrCodeInvalidColumn, "column name contains null bytes")
	}

	return nil
}

// ValidateGroupName validates a group key produced by a classification
// function or supplied through an option list.
//
// Validation rules:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGroup, "group name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidGroup, "group name too long (max 256 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidGroup, "group name contains invalid characters")
		}
	}

	return nil
}
