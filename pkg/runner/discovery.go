package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skippedDirs are directory names never descended into.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skippedDirs = []string{"node_modules"}

// matcher decides which discovered paths become documents.
type matcher struct {
	workDir    string
	extensions []string
	opts       Options
}

// Discover finds documents matching opts under the given working directory.
// It returns a deterministically sorted, deduplicated list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := &matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Explicitly named files skip the hidden-file check.
			if m.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (m *matcher) rel(path string) string {
	relPath, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk recursively collects matching documents below root.
func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || slices.Contains(skippedDirs, entry.Name()) {
				return filepath.SkipDir
			}
			if matchesExcludePattern(m.rel(path), m.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped
			}
			if info.IsDir() {
				if !m.opts.FollowSymlinks {
					return nil
				}
				// Walk the target: WalkDir uses Lstat on its root, so walking
				// the link itself would stop immediately.
				subFiles, err := m.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if m.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matchesFile checks extension, exclude and include criteria.
func (m *matcher) matchesFile(path string) bool {
	if !hasMatchingExtension(path, m.extensions) {
		return false
	}

	relPath := m.rel(path)
	if matchesExcludePattern(relPath, m.opts.ExcludeGlobs) {
		return false
	}
	if len(m.opts.IncludeGlobs) > 0 && !matchesIncludePattern(relPath, m.opts.IncludeGlobs) {
		return false
	}
	return true
}

// hasMatchingExtension compares extensions case-insensitively.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// matchesExcludePattern checks if the path matches any exclude pattern.
func matchesExcludePattern(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return MatchGlob(relPath, pattern)
	})
}

// matchesIncludePattern checks if the path matches any include pattern.
func matchesIncludePattern(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return MatchGlob(relPath, pattern)
	})
}

// MatchGlob matches a slash-separated relative path against a doublestar
// pattern such as "*.md", "docs/**" or "**/drafts/*.mdx". A pattern without
// a slash is also tried against the base name. Malformed patterns never match.
func MatchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if matched, err := doublestar.Match(pattern, path); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "/") {
		return false
	}
	matched, err := doublestar.Match(pattern, filepath.Base(path))
	return err == nil && matched
}
