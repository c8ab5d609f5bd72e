package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdxor/pkg/config"
)

const envVarPrefix = "MDXOR_"

// envVar binds one MDXOR_* variable to a configuration field.
type envVar struct {
	suffix string
	field  string // dotted config path, as in validation errors
	help   string
	apply  func(cfg *config.Config, raw string) error
}

func envString(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		set(cfg, raw)
		return nil
	}
}

func envBool(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("expected a boolean, got %q", raw)
		}
		set(cfg, value)
		return nil
	}
}

func envList(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		set(cfg, splitList(raw))
		return nil
	}
}

//nolint:gochecknoglobals // read-only binding table
var envVars = []envVar{
	{"FLAVOR", "flavor", "Markdown flavor: commonmark, gfm or mdx",
		envString(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) })},
	{"FORMAT", "format", "Output format: text, table, json, yaml, summary or tree",
		envString(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config, raw string) error {
			jobs, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", raw)
			}
			c.Jobs = jobs
			return nil
		}},
	{"STRICT", "strict", "Fail when documents diverge from goldmark",
		envBool(func(c *config.Config, v bool) { c.Strict = v })},
	{"COMPARE", "compare", "Diff block structure against goldmark",
		envBool(func(c *config.Config, v bool) { c.Compare = v })},
	{"LAZY_CONTINUATION", "parse.lazy_continuation", "Allow lazy paragraph continuation",
		envBool(func(c *config.Config, v bool) { c.Parse.LazyContinuation = config.Bool(v) })},
	{"FRONTMATTER", "parse.frontmatter", "Recognise YAML frontmatter",
		envBool(func(c *config.Config, v bool) { c.Parse.Frontmatter = config.Bool(v) })},
	{"DETECT_LANGUAGES", "parse.detect_languages", "Guess code block languages",
		envBool(func(c *config.Config, v bool) { c.Parse.DetectLanguages = config.Bool(v) })},
	{"EXTENSIONS", "extensions", "Comma-separated document extensions",
		envList(func(c *config.Config, v []string) { c.Extensions = v })},
	{"IGNORE", "ignore", "Comma-separated ignore globs",
		envList(func(c *config.Config, v []string) { c.Ignore = v })},
}

// LoadFromEnv applies non-empty MDXOR_* variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, binding := range envVars {
		name := envVarPrefix + binding.suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := binding.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(raw string) []string {
	var items []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnvVarName returns the variable that sets field, or "".
func GetEnvVarName(field string) string {
	idx := slices.IndexFunc(envVars, func(b envVar) bool { return b.field == field })
	if idx < 0 {
		return ""
	}
	return envVarPrefix + envVars[idx].suffix
}

// ListEnvVars maps each supported variable to its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, binding := range envVars {
		vars[envVarPrefix+binding.suffix] = binding.help
	}
	return vars
}
