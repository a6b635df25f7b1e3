package errors

import (
	"strings"
	"unicode"
)

// ValidateDataName validates a named dataset reference before it reaches a resolver.
// Names are resolved against directories, database collections and cache keys,
// so they must not be usable for path traversal or injection.
//
// Rules:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences (..), backslashes or absolute paths
//   - Maximum length of 256 characters
func ValidateDataName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidData, "data name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidData, "data name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidData, "data name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidData, "data name must be relative: %q", name)
	}

	for _, pattern := range []string{"..", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidData, "data name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a local file path given on the command line or in a config file.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
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

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
