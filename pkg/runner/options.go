// Package runner discovers documents and parses them concurrently.
package runner

import (
	"github.com/yaklabco/mdxor/pkg/config"
)

// Options selects the documents a run processes and how many at once.
// Globs are matched against slash paths relative to WorkingDir.
type Options struct {
	Paths      []string // files or directories; "." when empty
	WorkingDir string   // base for relative Paths; the process cwd when empty
	Extensions []string // DefaultExtensions when empty

	IncludeGlobs []string // when set, only matching files are kept
	ExcludeGlobs []string // matching files and directories are skipped

	// FollowSymlinks descends into symlinked directories. Symlinked files
	// are always processed.
	FollowSymlinks bool

	Jobs int // worker count; runtime.NumCPU when <= 0
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}
	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs
	return opts
}

// DefaultExtensions returns the default set of document extensions.
func DefaultExtensions() []string {
	return config.DefaultExtensions()
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
