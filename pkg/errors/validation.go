package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxFieldNameLength bounds data field names accepted from files and requests.
const maxFieldNameLength = 128

// ValidateFieldName validates a data field name used in scales, filters and
// positions. Field names are free-form (spaces and unicode are allowed) but
// must be non-empty, reasonably short and free of control characters.
//
// The "*" separator is rejected because positions are written as "x*y".
func ValidateFieldName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "field name cannot be empty")
	}

	if len(name) > maxFieldNameLength {
		return New(ErrCodeInvalidInput, "field name too long (max %d characters)", maxFieldNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "field name contains invalid control characters")
		}
	}

	if strings.Contains(name, "*") {
		return New(ErrCodeInvalidInput, "field name cannot contain '*': %q", name)
	}

	return nil
}

// recipeNameRegex matches registered recipe names (lowercase, dash separated).
var recipeNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateRecipeName validates a recipe name before registry lookup.
func ValidateRecipeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRecipe, "recipe name cannot be empty")
	}
	if !recipeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidRecipe, "invalid recipe name: %q", name)
	}
	return nil
}

// ValidateDimensions validates a chart frame size in pixels.
func ValidateDimensions(width, height float64) error {
	const maxDimension = 20000
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "width and height must be positive (got %gx%g)", width, height)
	}
	if width > maxDimension || height > maxDimension {
		return New(ErrCodeInvalidInput, "width and height must not exceed %d pixels", maxDimension)
	}
	return nil
}

// ValidatePath validates a data file path supplied by an API client. Paths
// are resolved below the server's data directory, so they must be relative,
// must not climb out of it and must be free of control characters and
// backslashes.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}
