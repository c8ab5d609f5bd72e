package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Flavor is written as the active flavor. Defaults to mdx.
	Flavor Flavor

	// Minimal omits the commented documentation.
	Minimal bool
}

// GenerateTemplate creates the content of a default .mdxor.yml.
func GenerateTemplate(opts TemplateOptions) []byte {
	flavor := opts.Flavor
	if flavor == "" {
		flavor = FlavorMDX
	}

	var buf bytes.Buffer
	if opts.Minimal {
		fmt.Fprintf(&buf, "flavor: %s\n", flavor)
		return buf.Bytes()
	}

	buf.WriteString("# mdxor configuration\n\n")
	buf.WriteString("# Markdown flavor: commonmark, gfm or mdx\n")
	fmt.Fprintf(&buf, "flavor: %s\n\n", flavor)

	buf.WriteString("parse:\n")
	buf.WriteString("  # Continue paragraphs in list items and block quotes on unindented lines\n")
	buf.WriteString("  lazy_continuation: true\n")
	buf.WriteString("  # Recognise a leading --- YAML block (ignored for commonmark)\n")
	fmt.Fprintf(&buf, "  frontmatter: %t\n", flavor != FlavorCommonMark)
	buf.WriteString("  # Guess the language of fenced code blocks without an info string\n")
	buf.WriteString("  detect_languages: false\n\n")

	buf.WriteString("# File extensions treated as documents\n")
	buf.WriteString("extensions:\n")
	for _, ext := range DefaultExtensions() {
		fmt.Fprintf(&buf, "  - %q\n", ext)
	}
	buf.WriteByte('\n')

	buf.WriteString("# File patterns to ignore (glob patterns)\n")
	buf.WriteString("# ignore:\n")
	for _, pattern := range []string{"node_modules/**", "vendor/**"} {
		fmt.Fprintf(&buf, "#   - %q\n", pattern)
	}

	return buf.Bytes()
}

// FlavorNames returns the supported flavor names joined for help text.
func FlavorNames() string {
	return strings.Join([]string{string(FlavorCommonMark), string(FlavorGFM), string(FlavorMDX)}, ", ")
}
