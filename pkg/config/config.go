// Package config defines the mdxor configuration model.
// The types are plain data; discovery, merging and validation live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/mdxor/pkg/langdetect"
	"github.com/yaklabco/mdxor/pkg/parser"
)

// Flavor selects the syntax extensions used for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
	FlavorMDX        Flavor = "mdx"
)

// ParseConfig holds parser switches. Nil values fall back to the
// flavor's defaults.
type ParseConfig struct {
	// LazyContinuation lets paragraph text continue inside list items and
	// block quotes without the container's indentation or marker.
	LazyContinuation *bool `yaml:"lazy_continuation,omitempty"`

	// Frontmatter recognises a leading YAML frontmatter block.
	Frontmatter *bool `yaml:"frontmatter,omitempty"`

	// DetectLanguages guesses the language of fenced code without an info string.
	DetectLanguages *bool `yaml:"detect_languages,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Flavor is the Markdown flavor ("commonmark", "gfm" or "mdx").
	Flavor Flavor `yaml:"flavor"`

	// Parse holds parser switches.
	Parse ParseConfig `yaml:"parse"`

	// Extensions lists the file extensions treated as documents.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs is the number of parallel workers (0 means one per CPU).
	Jobs int `yaml:"-"`

	// Strict turns verification warnings into failures.
	Strict bool `yaml:"-"`

	// Compare diffs each document's block structure against goldmark.
	Compare bool `yaml:"-"`
}

// DefaultExtensions returns the document extensions used when none are configured.
func DefaultExtensions() []string {
	return []string{".md", ".mdx", ".markdown"}
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorMDX,
		Extensions: DefaultExtensions(),
		Format:     FormatText,
	}
}

// ParserOptions converts the configuration into parser options.
func (c *Config) ParserOptions() parser.Options {
	flavor, ok := parser.ParseFlavor(string(c.Flavor))
	if !ok {
		flavor = parser.FlavorMDX
	}

	opts := parser.OptionsForFlavor(flavor)
	opts.LazyContinuation = BoolValue(c.Parse.LazyContinuation, opts.LazyContinuation)
	opts.Frontmatter = BoolValue(c.Parse.Frontmatter, opts.Frontmatter)
	if BoolValue(c.Parse.DetectLanguages, false) {
		opts.Detector = langdetect.New()
	}
	return opts
}

// BoolValue dereferences p, returning def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
