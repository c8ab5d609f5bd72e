package configloader

import "github.com/yaklabco/mdxor/pkg/config"

// merge layers override on top of base and returns a new Config.
// Zero scalars and nil slices or switches in override leave base alone, so a
// file can turn a parse switch off but cannot clear a list. Strict and
// Compare can only be turned on.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	setIf(&out.Flavor, override.Flavor)
	setIf(&out.Format, override.Format)
	setIf(&out.Jobs, override.Jobs)
	out.Strict = base.Strict || override.Strict
	out.Compare = base.Compare || override.Compare

	setIfNotNil(&out.Parse.LazyContinuation, override.Parse.LazyContinuation)
	setIfNotNil(&out.Parse.Frontmatter, override.Parse.Frontmatter)
	setIfNotNil(&out.Parse.DetectLanguages, override.Parse.DetectLanguages)

	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		out.Ignore = override.Ignore
	}
	return &out
}

func setIf[T comparable](dst *T, value T) {
	var zero T
	if value != zero {
		*dst = value
	}
}

func setIfNotNil[T any](dst **T, value *T) {
	if value != nil {
		*dst = value
	}
}

// MergeAll folds configs left to right; later entries win.
func MergeAll(configs ...*config.Config) *config.Config {
	var merged *config.Config
	for i, cfg := range configs {
		if i == 0 {
			merged = cfg
			continue
		}
		merged = merge(merged, cfg)
	}
	return merged
}
