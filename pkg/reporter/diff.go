package reporter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdxor/internal/ui/pretty"
	"github.com/yaklabco/mdxor/pkg/compare"
)

// WriteDiff writes an outline diff between the reference parser and the
// native parser for one document. A nil diff prints a one-line "identical"
// notice when ShowSummary is set.
func WriteDiff(opts Options, path string, diff *compare.Diff) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)

	displayPath := relativePath(path)

	if !diff.HasChanges() {
		if opts.ShowSummary {
			fmt.Fprintf(bw, "%s: %s\n", styles.FilePath.Render(displayPath),
				styles.Success.Render("outlines match "+compare.ReferenceName))
		}
		return bw.Flush()
	}

	header := fmt.Sprintf("diff %s/%s %s/%s",
		diff.ReferenceName, displayPath, diff.CandidateName, displayPath)
	fmt.Fprintln(bw, styles.DiffHeader.Render(header))
	fmt.Fprint(bw, styles.FormatDiff(diff))

	if opts.ShowSummary {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, styles.FormatDiffStat(diff.Missing, diff.Extra))
	}

	return bw.Flush()
}

// relativePath converts an absolute path to a relative path from the current directory.
// If the relative path would require too many "../" traversals, use the basename instead.
func relativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return rel
}
