package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdxor/pkg/compare"
)

// FormatDiff renders an outline diff in unified format with colored lines.
// Returns the empty string for a nil or empty diff.
func (s *Styles) FormatDiff(diff *compare.Diff) string {
	if !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder
	for line := range strings.Lines(diff.String()) {
		builder.WriteString(s.FormatDiffLine(strings.TrimSuffix(line, "\n")))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// FormatDiffLine colors a single unified diff line by its marker.
func (s *Styles) FormatDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return s.DiffHeader.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatDiffStat summarises a diff as "-N missing, +M extra".
func (s *Styles) FormatDiffStat(missing, extra int) string {
	return fmt.Sprintf("%s, %s",
		s.DiffRemove.Render(fmt.Sprintf("-%d missing", missing)),
		s.DiffAdd.Render(fmt.Sprintf("+%d extra", extra)),
	)
}
