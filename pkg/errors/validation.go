package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxDocumentSize bounds a single timetable source accepted over the API.
const MaxDocumentSize = 1 << 20

// ValidateDocumentName validates the name of an uploaded timetable file.
// It must be a plain base name: the name ends up in output file names.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 255 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "document name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidInput, "document name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "document name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidInput, "document name cannot be %q", name)
	}

	return nil
}

// ValidateDocumentSize rejects empty and oversized documents.
func ValidateDocumentSize(size int) error {
	if size == 0 {
		return New(ErrCodeInvalidInput, "document is empty")
	}
	if size > MaxDocumentSize {
		return New(ErrCodeInvalidInput, "document too large (max %d bytes)", MaxDocumentSize)
	}
	return nil
}

// ValidatePath validates an output path chosen by the user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory ("out/" or ".")
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

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}
	if base := filepath.Base(path); base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}

	return nil
}
