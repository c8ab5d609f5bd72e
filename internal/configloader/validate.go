package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/mdxor/pkg/config"
)

// ValidationError describes one rejected or suspicious configuration value.
type ValidationError struct {
	Field    string // dotted path, e.g. "parse.frontmatter" or "ignore[2]"
	Value    any
	Message  string
	FilePath string // config file the value came from, when known
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult separates fatal problems from advisory ones.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// validFormats is every format any command accepts.
func validFormats() []config.OutputFormat {
	formats := slices.Clone(config.CheckFormats())
	for _, format := range config.TreeFormats() {
		if !format.IsOneOf(formats) {
			formats = append(formats, format)
		}
	}
	return formats
}

// Validate checks a merged or single-layer configuration.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !IsValidFlavor(cfg.Flavor) {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: %s", cfg.Flavor, config.FlavorNames())
	}
	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		names := make([]string, 0, 6)
		for _, format := range validFormats() {
			names = append(names, string(format))
		}
		result.fail("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, strings.Join(names, ", "))
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "invalid extension %q; must start with a dot", ext)
		}
	}
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern")
		}
	}

	if cfg.Flavor == config.FlavorCommonMark && config.BoolValue(cfg.Parse.Frontmatter, false) {
		result.warn("parse.frontmatter", true, "frontmatter is not part of CommonMark; goldmark comparisons will disagree")
	}

	return result
}

// ValidateWithFile validates cfg and stamps every finding with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, findings := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	return result
}

// IsValidFlavor reports whether f names a supported flavor.
func IsValidFlavor(f config.Flavor) bool {
	switch f {
	case config.FlavorCommonMark, config.FlavorGFM, config.FlavorMDX:
		return true
	default:
		return false
	}
}

// IsValidFormat reports whether some command accepts f.
func IsValidFormat(f config.OutputFormat) bool {
	return f.IsOneOf(validFormats())
}
