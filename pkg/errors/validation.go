package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// dottedNameRegex matches identifiers joined by dots, e.g. "pkg.mod.Class".
var dottedNameRegex = regexp.MustCompile(`^\w+(\.\w+)*$`)

// ValidateDottedName validates a fully qualified entity name.
func ValidateDottedName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	if len(name) > 512 {
		return New(ErrCodeInvalidName, "name too long (max 512 characters)")
	}
	if !dottedNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid dotted name: %q", name)
	}
	return nil
}

// formatRegex matches Graphviz output format names such as "gif", "cmapx" or "svgz".
var formatRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*(:[a-z0-9_]+)*$`)

// ValidateFormat validates an output format passed to the layout tool as -T<format>.
// Only plain format names are accepted so a format can never smuggle extra
// command-line arguments.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !formatRegex.MatchString(format) {
		return New(ErrCodeInvalidFormat, "invalid output format: %q", format)
	}
	return nil
}

// validDirections is the set of Graphviz rankdir values.
var validDirections = map[string]bool{"TB": true, "BT": true, "LR": true, "RL": true}

// ValidateDirection validates a layout direction. The empty string means
// "use the builder's default" and is accepted.
func ValidateDirection(dir string) error {
	if dir == "" || validDirections[dir] {
		return nil
	}
	return New(ErrCodeInvalidDirection, "invalid direction: %s (must be TB, BT, LR or RL)", dir)
}

// ValidatePath validates a relative output path for safety.
// It prevents path traversal and ensures a reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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
