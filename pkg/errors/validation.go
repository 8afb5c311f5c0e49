package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateColumnName validates a CSV column name supplied by the user.
// Column names are matched against header cells verbatim, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "column name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "column name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name contains invalid control characters")
		}
	}

	return nil
}

// hexColorRegex matches 3- or 6-digit hex color codes with a leading '#'.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// cssColorNameRegex matches simple CSS color keywords (letters only).
var cssColorNameRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

// ValidateColor validates a color value from a theme table.
// Accepts hex codes (#FF0000, #f00) and CSS color keywords (red, steelblue).
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidTheme, "color cannot be empty")
	}

	if strings.HasPrefix(color, "#") {
		if !hexColorRegex.MatchString(color) {
			return New(ErrCodeInvalidTheme, "invalid hex color: %q", color)
		}
		return nil
	}

	if !cssColorNameRegex.MatchString(color) {
		return New(ErrCodeInvalidTheme, "invalid color name: %q", color)
	}

	return nil
}

// ValidateOutputPath validates an output file path for safety.
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
