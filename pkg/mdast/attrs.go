package mdast

// BlockAttrs carries the kind-specific fields of a block node. Only the
// fields relevant to the node's kind are set.
type BlockAttrs struct {
	HeadingLevel int  // 1-6
	Setext       bool // underlined heading

	// Content is the span handed to the inline resolver for paragraphs and
	// headings.
	Content SourceRange

	List          *ListAttrs
	ListItem      *ListItemAttrs
	ContentIndent int // column where a list item's content begins

	CodeBlock *CodeBlockAttrs

	// Embedded is the verbatim payload of NodeEmbeddedBlock and NodeFrontmatter.
	Embedded *EmbeddedAttrs

	Table *TableAttrs
	Cell  *TableCellAttrs

	// Header marks the first row of a table.
	Header bool
}

// ListAttrs describes a list container.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string // "-", "+" or "*"
	StartNumber  int
	Delimiter    string // "." or ")"
	Tight        bool
}

// ListItemAttrs describes a list item. Checked is nil unless the item opens
// with a task marker, "[ ]" or "[x]".
type ListItemAttrs struct {
	Checked *bool
}

// IsTask reports whether the item carries a task marker.
func (a *ListItemAttrs) IsTask() bool {
	return a != nil && a.Checked != nil
}

// CellAlignment is the alignment a table delimiter row sets for a column.
type CellAlignment uint8

const (
	AlignNone CellAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

//nolint:gochecknoglobals // name table
var cellAlignmentNames = [...]string{
	AlignNone:   "none",
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

func (a CellAlignment) String() string {
	if int(a) < len(cellAlignmentNames) {
		return cellAlignmentNames[a]
	}
	return "unknown"
}

// TableAttrs holds one alignment per column.
type TableAttrs struct {
	Alignments []CellAlignment
}

// TableCellAttrs describes one cell. Column is zero-based.
type TableCellAttrs struct {
	Column int
	Align  CellAlignment
}

// CodeBlockAttrs describes fenced and indented code.
type CodeBlockAttrs struct {
	FenceChar   byte // '`' or '~'; zero when Indented
	FenceLength int
	Info        string
	Language    string // first word of Info

	// DetectedLanguage is guessed from Literal when Language is empty and
	// detection is enabled.
	DetectedLanguage string

	Literal  string
	Indented bool
}

// EmbeddedForm is the syntax of an embedded payload.
type EmbeddedForm uint8

const (
	EmbedJSX EmbeddedForm = iota
	EmbedESM
	EmbedExpression
	EmbedYAML
)

//nolint:gochecknoglobals // name table
var embeddedFormNames = [...]string{
	EmbedJSX:        "jsx",
	EmbedESM:        "esm",
	EmbedExpression: "expression",
	EmbedYAML:       "yaml",
}

func (f EmbeddedForm) String() string {
	if int(f) < len(embeddedFormNames) {
		return embeddedFormNames[f]
	}
	return "unknown"
}

// EmbeddedAttrs is a payload kept exactly as written. Raw excludes the
// braces of an expression. Name is the JSX element name and is empty for
// fragments and the other forms.
type EmbeddedAttrs struct {
	Form EmbeddedForm
	Name string
	Raw  string
}

// InlineAttrs carries the kind-specific fields of an inline node.
type InlineAttrs struct {
	Text          string // NodeText and NodeCodeSpan
	Link          *LinkAttrs
	EmphasisLevel int  // 1 emphasis, 2 strong
	Hard          bool // hard line break
	Embedded      *EmbeddedAttrs
}

// ReferenceStyle is the syntax a link or image was written in.
type ReferenceStyle uint8

const (
	RefStyleInline    ReferenceStyle = iota // [text](url)
	RefStyleFull                            // [text][label]
	RefStyleCollapsed                       // [label][]
	RefStyleShortcut                        // [label]
	RefStyleAutolink                        // <https://example.com>
)

//nolint:gochecknoglobals // name table
var referenceStyleNames = [...]string{
	RefStyleInline:    "inline",
	RefStyleFull:      "full",
	RefStyleCollapsed: "collapsed",
	RefStyleShortcut:  "shortcut",
	RefStyleAutolink:  "autolink",
}

func (s ReferenceStyle) String() string {
	if int(s) < len(referenceStyleNames) {
		return referenceStyleNames[s]
	}
	return "unknown"
}

// LinkAttrs describes a resolved link or image. ReferenceLabel is empty
// for inline links and autolinks.
type LinkAttrs struct {
	Destination    string
	Title          string
	ReferenceLabel string
	ReferenceStyle ReferenceStyle
}

// NewBlockAttrs returns empty block attributes.
func NewBlockAttrs() *BlockAttrs { return &BlockAttrs{} }

// NewInlineAttrs returns empty inline attributes.
func NewInlineAttrs() *InlineAttrs { return &InlineAttrs{} }
