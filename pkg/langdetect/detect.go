// Package langdetect guesses the language of fenced code blocks that carry
// no info string. It uses go-enry for shebang and classifier based detection,
// backed by a table of patterns that are highly indicative on their own.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language tags returned by the detector.
const (
	LangGo         = "go"
	LangPython     = "python"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangJSX        = "jsx"
	LangJSON       = "json"
	LangYAML       = "yaml"
	LangHTML       = "html"
	LangSQL        = "sql"
	LangRust       = "rust"
	LangDockerfile = "dockerfile"
	LangBash       = "bash"
)

// defaultCandidates are the languages the classifier chooses between.
//
//nolint:gochecknoglobals // Read-only candidate list.
var defaultCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detector guesses code block languages. The zero value is not usable;
// create one with New. A Detector is safe for concurrent use.
type Detector struct {
	candidates []string
	classifier bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithCandidates restricts the classifier to the given go-enry language names.
func WithCandidates(names ...string) Option {
	return func(d *Detector) {
		d.candidates = names
	}
}

// WithoutClassifier disables the statistical classifier, leaving shebangs
// and patterns.
func WithoutClassifier() Option {
	return func(d *Detector) {
		d.classifier = false
	}
}

// New creates a Detector.
func New(opts ...Option) *Detector {
	d := &Detector{candidates: defaultCandidates, classifier: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the fence tag for content, or "" when no confident guess
// can be made.
func (d *Detector) Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if !d.classifier {
		return ""
	}
	if lang, safe := enry.GetLanguageByClassifier(content, d.candidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// patternRule matches content that is unambiguous for one language.
type patternRule struct {
	lang  string
	match func(c snippet) bool
}

// snippet holds the views of content the rules inspect.
type snippet struct {
	raw     []byte
	trimmed []byte
	text    string
}

// patternRules are tried in order; earlier rules are more specific.
//
//nolint:gochecknoglobals // Read-only rule table.
var patternRules = []patternRule{
	{LangGo, func(c snippet) bool {
		return bytes.HasPrefix(c.trimmed, []byte("package "))
	}},
	{LangJSX, func(c snippet) bool {
		hasTag := strings.Contains(c.text, "/>") || strings.Contains(c.text, "</")
		return hasTag && (strings.Contains(c.text, "return (") ||
			strings.Contains(c.text, "return <") ||
			strings.Contains(c.text, "export default"))
	}},
	{LangPython, func(c snippet) bool {
		if strings.Contains(c.text, "def ") && strings.Contains(c.text, "):") {
			return true
		}
		if strings.Contains(c.text, "__name__") || strings.Contains(c.text, "__main__") {
			return true
		}
		// Python imports; Go uses "import (" and JavaScript quotes its modules.
		if !strings.Contains(c.text, "import ") || strings.Contains(c.text, "import (") {
			return false
		}
		if strings.ContainsAny(c.text, `'"`) {
			return false
		}
		return strings.Contains(c.text, "from ") || bytes.HasPrefix(c.trimmed, []byte("import "))
	}},
	{LangHTML, func(c snippet) bool {
		lower := bytes.ToLower(c.trimmed)
		for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(marker)) {
				return true
			}
		}
		return false
	}},
	{LangJSON, func(c snippet) bool {
		return (bytes.HasPrefix(c.trimmed, []byte("{")) || bytes.HasPrefix(c.trimmed, []byte("["))) &&
			bytes.Contains(c.trimmed, []byte(`"`))
	}},
	{LangDockerfile, func(c snippet) bool {
		return bytes.HasPrefix(c.trimmed, []byte("FROM ")) ||
			(bytes.Contains(c.raw, []byte("\nFROM ")) && bytes.Contains(c.raw, []byte("\nRUN "))) ||
			(bytes.Contains(c.raw, []byte("WORKDIR ")) && bytes.Contains(c.raw, []byte("COPY ")))
	}},
	{LangSQL, func(c snippet) bool {
		upper := strings.ToUpper(strings.TrimSpace(c.text))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{LangRust, func(c snippet) bool {
		return strings.Contains(c.text, "fn main()") ||
			strings.Contains(c.text, "println!") ||
			strings.Contains(c.text, "let mut ")
	}},
	{LangTypeScript, func(c snippet) bool {
		return (strings.Contains(c.text, "interface ") && strings.Contains(c.text, ": ")) ||
			strings.Contains(c.text, ": string") ||
			strings.Contains(c.text, ": number")
	}},
	{LangJavaScript, func(c snippet) bool {
		return strings.Contains(c.text, "=>") ||
			strings.Contains(c.text, "const ") ||
			strings.Contains(c.text, "let ") ||
			strings.Contains(c.text, "console.log")
	}},
	{LangYAML, func(c snippet) bool {
		return yamlKeyCount(c.raw) >= 2
	}},
}

func detectByPattern(content []byte) string {
	c := snippet{raw: content, trimmed: bytes.TrimSpace(content), text: string(content)}
	for _, rule := range patternRules {
		if rule.match(c) {
			return rule.lang
		}
	}
	return ""
}

// yamlKeyCount counts lines shaped like "key: value" or "- item".
func yamlKeyCount(content []byte) int {
	count := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		// Lines with parentheses or braces look like code.
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return LangBash
	}
	return strings.ToLower(lang)
}
