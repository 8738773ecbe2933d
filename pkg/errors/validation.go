package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// Limits applied to externally supplied values.
const (
	maxNodeIDLength = 256
	maxPathLength   = 500

	// MaxDimension bounds the width, height and radius of a layout frame.
	MaxDimension = 100000.0
)

// ValidateNodeID validates a node id received from outside the process
// (HTTP requests, CLI flags, persisted view state).
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a document path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be one of .json, .yaml, .yml, .toml
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return nil
	default:
		return New(ErrCodeInvalidPath, "unsupported document extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// ValidateDimensions checks that a layout frame is finite, positive and
// within MaxDimension on both axes.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidDimensions, "dimensions must be finite")
		}
		if v <= 0 {
			return New(ErrCodeInvalidDimensions, "dimensions must be positive (got %gx%g)", width, height)
		}
		if v > MaxDimension {
			return New(ErrCodeInvalidDimensions, "dimensions too large (max %g)", MaxDimension)
		}
	}
	return nil
}
