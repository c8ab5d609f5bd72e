package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffLines_Equal(t *testing.T) {
	t.Parallel()

	assert.Nil(t, DiffLines("a.md", nil, nil))
	assert.Nil(t, DiffLines("a.md", []string{"Paragraph"}, []string{"Paragraph"}))
}

func TestDiffLines_Changed(t *testing.T) {
	t.Parallel()

	reference := []string{"Heading level=1", "Paragraph", "ThematicBreak"}
	candidate := []string{"Heading level=2", "Paragraph", "ThematicBreak"}

	diff := DiffLines("doc.md", reference, candidate)
	require.NotNil(t, diff)
	assert.True(t, diff.HasChanges())
	assert.Equal(t, 1, diff.Missing)
	assert.Equal(t, 1, diff.Extra)

	require.Len(t, diff.Hunks, 1)
	hunk := diff.Hunks[0]
	assert.Equal(t, 1, hunk.ReferenceStart)
	assert.Equal(t, 3, hunk.ReferenceCount)
	assert.Equal(t, 1, hunk.CandidateStart)
	assert.Equal(t, 3, hunk.CandidateCount)

	diff.ReferenceName = "goldmark"
	diff.CandidateName = "mdxor"
	want := "--- goldmark/doc.md\n" +
		"+++ mdxor/doc.md\n" +
		"@@ -1,3 +1,3 @@\n" +
		"-Heading level=1\n" +
		"+Heading level=2\n" +
		" Paragraph\n" +
		" ThematicBreak\n"
	assert.Equal(t, want, diff.String())
}

func TestDiffLines_SeparateHunks(t *testing.T) {
	t.Parallel()

	reference := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	candidate := []string{"A", "b", "c", "d", "e", "f", "g", "h", "i", "J"}

	diff := DiffLines("", reference, candidate)
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 2)
	assert.Equal(t, 1, diff.Hunks[0].ReferenceStart)
	assert.Equal(t, 8, diff.Hunks[1].ReferenceStart)
	assert.Contains(t, diff.String(), "--- reference\n+++ candidate\n")
}

func TestDiffLines_Insertions(t *testing.T) {
	t.Parallel()

	diff := DiffLines("x.md", []string{"Paragraph"}, []string{"Paragraph", "Paragraph"})
	require.NotNil(t, diff)
	assert.Equal(t, 0, diff.Missing)
	assert.Equal(t, 1, diff.Extra)
}

func TestDiff_NilSafe(t *testing.T) {
	t.Parallel()

	var diff *Diff
	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.String())
}

func TestLine_Prefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " ", Line{Kind: LineContext}.Prefix())
	assert.Equal(t, "+", Line{Kind: LineExtra}.Prefix())
	assert.Equal(t, "-", Line{Kind: LineMissing}.Prefix())
}
