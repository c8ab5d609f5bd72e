package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxor/pkg/compare"
	"github.com/yaklabco/mdxor/pkg/config"
	"github.com/yaklabco/mdxor/pkg/fsutil"
	"github.com/yaklabco/mdxor/pkg/mdast"
	"github.com/yaklabco/mdxor/pkg/parser"
	"github.com/yaklabco/mdxor/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newRunner() *runner.Runner {
	return runner.New(parser.New(parser.DefaultOptions()))
}

func TestNew(t *testing.T) {
	t.Parallel()

	p := parser.New(parser.DefaultOptions())
	r := runner.New(p)

	assert.Same(t, p, r.Parser)
	assert.Nil(t, r.Comparer)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"notes.txt": "not a document"})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md":            "# A\n\ntext\n",
		"b.mdx":           "import X from 'x'\n\n<X />\n",
		"docs/c.markdown": "- one\n- two\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesParsed)
	assert.Equal(t, 0, result.Stats.FilesErrored)
	assert.Positive(t, result.Stats.BytesParsed)

	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.mdx"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "docs", "c.markdown"), result.Files[2].Path)

	for _, outcome := range result.Files {
		require.NoError(t, outcome.Error)
		require.NotNil(t, outcome.Tree)
		assert.NoError(t, parser.Verify(outcome.Tree))
	}

	embedded := mdast.FindByKind(result.Files[1].Tree.Root, mdast.NodeEmbeddedBlock)
	assert.Len(t, embedded, 2)
}

func TestRunner_Run_InvalidEncoding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"bad.md":  "# ok\n\xff\xfe\n",
		"good.md": "fine\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesParsed)

	bad := result.Files[0]
	require.Error(t, bad.Error)
	assert.ErrorIs(t, bad.Error, parser.ErrInputEncoding)
	assert.Contains(t, bad.Error.Error(), "bad.md")
	assert.Nil(t, bad.Tree)

	errs := result.Errors()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], parser.ErrInputEncoding)
}

func TestRunner_Run_Compare(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"agree.md":   "# Title\n\n- a\n- b\n",
		"diverge.md": "import A from 'a'\n\n# H\n",
	})

	opts := parser.DefaultOptions()
	r := runner.New(parser.New(opts))
	r.Comparer = compare.New(opts)

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.False(t, result.Files[0].Diverged())
	assert.True(t, result.Files[1].Diverged())
	assert.Equal(t, 1, result.Stats.FilesDiverged)
	assert.True(t, result.HasDivergence())
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 12 {
		files[filepath.Join("docs", string(rune('a'+i))+".md")] = "# Doc\n\n*em* and `code`\n"
	}
	writeFiles(t, dir, files)

	serial, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t,
			compare.Lines(compare.Outline(serial.Files[i].Tree.Root)),
			compare.Lines(compare.Outline(parallel.Files[i].Tree.Root)),
		)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunner_ProcessFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"big.md": "0123456789\n"})

	r := newRunner()
	r.MaxFileSize = 4

	outcome := r.ProcessFile(context.Background(), filepath.Join(dir, "big.md"))
	require.Error(t, outcome.Error)
	assert.ErrorIs(t, outcome.Error, fsutil.ErrTooLarge)

	outcome = r.ProcessFile(context.Background(), filepath.Join(dir, "missing.md"))
	assert.ErrorIs(t, outcome.Error, fsutil.ErrNotFound)
}

func TestRunner_ProcessContent(t *testing.T) {
	t.Parallel()

	outcome := newRunner().ProcessContent(context.Background(), "<stdin>", []byte("**bold**\n"))
	require.NoError(t, outcome.Error)
	require.NotNil(t, outcome.Tree)

	strong := mdast.FindByKind(outcome.Tree.Root, mdast.NodeEmphasis)
	require.Len(t, strong, 1)
	assert.Equal(t, 2, strong[0].Inline.EmphasisLevel)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"docs"})
	assert.Equal(t, []string{"docs"}, opts.Paths)
	assert.Equal(t, cfg.Extensions, opts.Extensions)
	assert.Equal(t, []string{"vendor/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)

	assert.Empty(t, runner.OptionsFromConfig(nil, nil).Extensions)
}
