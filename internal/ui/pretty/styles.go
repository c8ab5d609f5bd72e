// Package pretty renders parse trees, outline diffs and run summaries with
// lipgloss styles.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indexes used across the output.
const (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("6")
	colorTeal    = lipgloss.Color("14")
	colorGrey    = lipgloss.Color("8")
	colorSilver  = lipgloss.Color("7")
)

// Styles holds one lipgloss style per visual role.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Parse tree rendering.
	FilePath  lipgloss.Style
	Location  lipgloss.Style
	NodeKind  lipgloss.Style
	BlockKind lipgloss.Style
	Attr      lipgloss.Style
	Literal   lipgloss.Style
	TreeGuide lipgloss.Style
	Message   lipgloss.Style

	// Outline diffs.
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader      lipgloss.Style
	TableBorder      lipgloss.Style
	TableErrorRow    lipgloss.Style
	TableDivergedRow lipgloss.Style
	TableLegend      lipgloss.Style
	TableSeparator   lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the colored palette, or plain styles that render text
// unchanged when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	styles := &Styles{}
	if !colorEnabled {
		for _, style := range styles.all() {
			*style = lipgloss.NewStyle()
		}
		return styles
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	bold := lipgloss.NewStyle().Bold(true)

	styles.Error = fg(colorRed).Bold(true)
	styles.Warning = fg(colorYellow).Bold(true)
	styles.Info = fg(colorBlue).Bold(true)

	styles.FilePath = bold
	styles.Location = fg(colorGrey)
	styles.NodeKind = fg(colorMagenta)
	styles.BlockKind = fg(colorBlue).Bold(true)
	styles.Attr = fg(colorCyan)
	styles.Literal = fg(colorGreen)
	styles.TreeGuide = fg(colorGrey)
	styles.Message = lipgloss.NewStyle()

	styles.DiffHeader = bold
	styles.DiffHunk = fg(colorTeal)
	styles.DiffAdd = fg(colorGreen)
	styles.DiffRemove = fg(colorRed)
	styles.DiffContext = fg(colorGrey)

	styles.SummaryTitle = bold
	styles.SummaryValue = lipgloss.NewStyle()
	styles.Success = fg(colorGreen).Bold(true)
	styles.Failure = fg(colorRed).Bold(true)

	styles.TableHeader = fg(colorSilver).Bold(true)
	styles.TableBorder = fg(colorGrey)
	styles.TableErrorRow = fg(colorRed)
	styles.TableDivergedRow = fg(colorYellow)
	styles.TableLegend = fg(colorGrey).Italic(true)
	styles.TableSeparator = fg(colorGrey)

	styles.Dim = fg(colorGrey)
	styles.Bold = bold

	return styles
}

func (s *Styles) all() []*lipgloss.Style {
	return []*lipgloss.Style{
		&s.Error, &s.Warning, &s.Info,
		&s.FilePath, &s.Location, &s.NodeKind, &s.BlockKind, &s.Attr, &s.Literal, &s.TreeGuide, &s.Message,
		&s.DiffHeader, &s.DiffHunk, &s.DiffAdd, &s.DiffRemove, &s.DiffContext,
		&s.SummaryTitle, &s.SummaryValue, &s.Success, &s.Failure,
		&s.TableHeader, &s.TableBorder, &s.TableErrorRow, &s.TableDivergedRow, &s.TableLegend, &s.TableSeparator,
		&s.Dim, &s.Bold,
	}
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute; anything else means auto, which requires a terminal and an
// empty NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
