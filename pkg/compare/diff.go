package compare

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between a reference outline and a candidate outline.
type Diff struct {
	// Path is the document path shown in the header.
	Path string

	// ReferenceName and CandidateName label the two sides.
	ReferenceName string
	CandidateName string

	// Hunks contains the changed regions with context.
	Hunks []Hunk

	// Missing counts reference lines absent from the candidate.
	Missing int

	// Extra counts candidate lines absent from the reference.
	Extra int
}

// Hunk is one changed region of a diff.
type Hunk struct {
	ReferenceStart int
	ReferenceCount int
	CandidateStart int
	CandidateCount int
	Lines          []Line
}

// Line is a single outline line within a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind says which side a diff line belongs to.
type LineKind int

const (
	// LineContext appears on both sides.
	LineContext LineKind = iota

	// LineExtra appears only in the candidate.
	LineExtra

	// LineMissing appears only in the reference.
	LineMissing
)

// contextLines is the number of context lines shown around changes.
const contextLines = 2

// DiffLines compares two outlines rendered as lines.
// Returns nil when they are equal.
func DiffLines(path string, reference, candidate []string) *Diff {
	if equalLines(reference, candidate) {
		return nil
	}

	ops := buildOps(reference, candidate, longestCommonSubsequence(reference, candidate))
	diff := &Diff{
		Path:  path,
		Hunks: groupIntoHunks(ops),
	}
	for _, op := range ops {
		switch op.kind {
		case LineExtra:
			diff.Extra++
		case LineMissing:
			diff.Missing++
		case LineContext:
		}
	}
	return diff
}

// HasChanges reports whether the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- %s\n", d.header(d.ReferenceName, "reference"))
	fmt.Fprintf(&builder, "+++ %s\n", d.header(d.CandidateName, "candidate"))

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.ReferenceStart, hunk.ReferenceCount,
			hunk.CandidateStart, hunk.CandidateCount)

		for _, line := range hunk.Lines {
			builder.WriteString(line.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

func (d *Diff) header(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if d.Path == "" {
		return name
	}
	return name + "/" + strings.TrimPrefix(d.Path, "/")
}

// Prefix returns the unified diff marker for the line.
func (l Line) Prefix() string {
	switch l.Kind {
	case LineExtra:
		return "+"
	case LineMissing:
		return "-"
	default:
		return " "
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type diffOp struct {
	kind    LineKind
	content string
}

// buildOps walks both outlines alongside their common subsequence.
func buildOps(ref, cand, lcs []string) []diffOp {
	var ops []diffOp
	refIdx, candIdx, lcsIdx := 0, 0, 0

	for refIdx < len(ref) || candIdx < len(cand) {
		if lcsIdx < len(lcs) && refIdx < len(ref) && candIdx < len(cand) &&
			ref[refIdx] == lcs[lcsIdx] && cand[candIdx] == lcs[lcsIdx] {
			ops = append(ops, diffOp{kind: LineContext, content: ref[refIdx]})
			refIdx++
			candIdx++
			lcsIdx++
			continue
		}

		for refIdx < len(ref) && (lcsIdx >= len(lcs) || ref[refIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{kind: LineMissing, content: ref[refIdx]})
			refIdx++
		}

		for candIdx < len(cand) && (lcsIdx >= len(lcs) || cand[candIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{kind: LineExtra, content: cand[candIdx]})
			candIdx++
		}
	}

	return ops
}

// groupIntoHunks groups operations into hunks, merging changes separated by
// no more than twice the context size.
func groupIntoHunks(ops []diffOp) []Hunk {
	type changeRange struct {
		start, end int
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for opIdx, op := range ops {
		isChange := op.kind != LineContext
		if isChange && !inChange {
			rangeStart = opIdx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, opIdx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	var hunks []Hunk
	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) && ranges[mergeEnd].start-ranges[mergeEnd-1].end <= contextLines*2 {
			mergeEnd++
		}

		hunks = append(hunks, buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end))
		rangeIdx = mergeEnd
	}

	return hunks
}

func buildHunk(ops []diffOp, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := Hunk{ReferenceStart: 1, CandidateStart: 1}
	for _, op := range ops[:start] {
		if op.kind != LineExtra {
			hunk.ReferenceStart++
		}
		if op.kind != LineMissing {
			hunk.CandidateStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, Line{Kind: op.kind, Content: op.content})

		switch op.kind {
		case LineContext:
			hunk.ReferenceCount++
			hunk.CandidateCount++
		case LineMissing:
			hunk.ReferenceCount++
		case LineExtra:
			hunk.CandidateCount++
		}
	}

	return hunk
}

// longestCommonSubsequence computes the LCS of two line slices.
func longestCommonSubsequence(ref, cand []string) []string {
	refLen, candLen := len(ref), len(cand)
	if refLen == 0 || candLen == 0 {
		return nil
	}

	dp := make([][]int, refLen+1)
	for idx := range dp {
		dp[idx] = make([]int, candLen+1)
	}

	for row := 1; row <= refLen; row++ {
		for col := 1; col <= candLen; col++ {
			if ref[row-1] == cand[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcsLen := dp[refLen][candLen]
	if lcsLen == 0 {
		return nil
	}

	lcs := make([]string, lcsLen)
	row, col, idx := refLen, candLen, lcsLen-1
	for row > 0 && col > 0 {
		switch {
		case ref[row-1] == cand[col-1]:
			lcs[idx] = ref[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
