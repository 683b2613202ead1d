package errors

import (
	"strings"
	"unicode"
)

// ValidateHookCommand checks a raw command destined for the pre-init or
// post-init hook lists. Hooks are emitted one per line, so a command may not
// span lines or contain control characters. An empty command is a blank line.
func ValidateHookCommand(cmd string) error {
	for _, r := range cmd {
		if r == '\n' || r == '\r' {
			return New(ErrCodeInvalidInput, "hook command cannot span lines: %q", cmd)
		}
		if unicode.IsControl(r) && r != '\t' {
			return New(ErrCodeInvalidInput, "hook command contains control characters: %q", cmd)
		}
	}
	return nil
}

// ValidatePropertyKey checks the key of a generic "set" property.
// Keys are a single gnuplot word such as "grid" or "key".
func ValidatePropertyKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "property key cannot be empty")
	}
	for _, r := range key {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "property key must be a single word: %q", key)
		}
	}
	return nil
}

// ValidatePath validates an output or data file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - No single quotes, since paths are emitted single-quoted
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "'") {
		return New(ErrCodeInvalidPath, "path cannot contain single quotes: %q", path)
	}

	return nil
}
