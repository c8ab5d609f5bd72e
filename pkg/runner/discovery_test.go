package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxor/pkg/runner"
)

// makeTree creates each slash-separated path under a new temp dir and returns the dir.
func makeTree(t *testing.T, paths ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, rel := range paths {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+rel+"\n"), 0o644))
	}
	return dir
}

// relPaths converts discovered absolute paths back to slash paths under dir.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	layout := []string{
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/drafts/wip.mdx",
		"components/card.mdx",
		"vendor/pkg/doc.md",
		"node_modules/lib/readme.md",
		".hidden.md",
		".git/config.md",
		"docs/.secret.md",
		"src/main.go",
		"notes.txt",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			want: []string{
				"components/card.mdx",
				"docs/api.markdown",
				"docs/drafts/wip.mdx",
				"docs/guide.md",
				"readme.md",
				"vendor/pkg/doc.md",
			},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".MDX", ".txt"}},
			want: []string{"components/card.mdx", "docs/drafts/wip.mdx", "notes.txt"},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "**/drafts/**", "*.markdown"}},
			want: []string{"components/card.mdx", "docs/guide.md", "readme.md"},
		},
		{
			name: "include globs",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api.markdown", "docs/drafts/wip.mdx", "docs/guide.md"},
		},
		{
			name: "selected paths",
			opts: runner.Options{Paths: []string{"components", "docs/guide.md"}},
			want: []string{"components/card.mdx", "docs/guide.md"},
		},
		{
			name: "explicit hidden file",
			opts: runner.Options{Paths: []string{".hidden.md", "readme.md"}},
			want: []string{".hidden.md", "readme.md"},
		},
		{
			name: "duplicates collapse",
			opts: runner.Options{Paths: []string{"readme.md", "./readme.md", ".", "readme.md"}},
			want: []string{
				"components/card.mdx",
				"docs/api.markdown",
				"docs/drafts/wip.mdx",
				"docs/guide.md",
				"readme.md",
				"vendor/pkg/doc.md",
			},
		},
	}

	dir := makeTree(t, layout...)

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := testCase.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_SortedAndStable(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "z.md", "a.mdx", "m/n.md", "b.md")
	opts := runner.Options{WorkingDir: dir}

	first, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	assert.IsNonDecreasing(t, first)

	for range 3 {
		again, err := runner.Discover(context.Background(), opts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "a.md")

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: dir,
	})
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "real/doc.md")
	external := makeTree(t, "external.mdx")

	if err := os.Symlink(filepath.Join(dir, "real", "doc.md"), filepath.Join(dir, "alias.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(external, filepath.Join(dir, "linked")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"alias.md", "real/doc.md"}, relPaths(t, dir, files),
		"file links are documents; directory links are skipped by default")

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(external, "external.mdx"))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t, []string{".md", ".mdx", ".markdown"}, runner.DefaultExtensions())
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"readme.md", "*.md", true},
		{"docs/readme.md", "*.md", true},
		{"docs/readme.mdx", "*.md", false},
		{"vendor/a/b.md", "vendor/**", true},
		{"src/vendor/a.md", "vendor/**", false},
		{"a/drafts/b/c.mdx", "**/drafts/**", true},
		{"docs/guide.md", "docs/*.md", true},
		{"docs/sub/guide.md", "docs/*.md", false},
		{"docs/guide.mdx", "docs/*.{md,mdx}", true},
		{"x.md", "[", false},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, runner.MatchGlob(testCase.path, testCase.pattern),
			"MatchGlob(%q, %q)", testCase.path, testCase.pattern)
	}
}
