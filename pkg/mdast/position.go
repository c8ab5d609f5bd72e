package mdast

import "strconv"

// SourceRange is a half-open byte interval [StartOffset, EndOffset) of the
// document source.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// Range builds a SourceRange.
func Range(start, end int) SourceRange {
	return SourceRange{StartOffset: start, EndOffset: end}
}

func (r SourceRange) Len() int      { return r.EndOffset - r.StartOffset }
func (r SourceRange) IsEmpty() bool { return r.StartOffset == r.EndOffset }

// Contains reports whether the byte at offset lies inside r.
func (r SourceRange) Contains(offset int) bool {
	return r.StartOffset <= offset && offset < r.EndOffset
}

// Encloses reports whether other is well formed and lies within r.
// Empty ranges touching either boundary count as enclosed.
func (r SourceRange) Encloses(other SourceRange) bool {
	if other.StartOffset > other.EndOffset {
		return false
	}
	return r.StartOffset <= other.StartOffset && other.EndOffset <= r.EndOffset
}

// Overlaps reports whether r and other share a byte.
func (r SourceRange) Overlaps(other SourceRange) bool {
	return other.StartOffset < r.EndOffset && r.StartOffset < other.EndOffset
}

// String renders r as "[start,end)".
func (r SourceRange) String() string {
	return "[" + strconv.Itoa(r.StartOffset) + "," + strconv.Itoa(r.EndOffset) + ")"
}

// Position is a 1-based line and column; columns count bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether p was resolved; the zero Position is not.
func (p Position) IsValid() bool { return p.Line > 0 && p.Column > 0 }

// String renders p as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// SourcePosition is a SourceRange resolved to line and column coordinates.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

func (sp SourcePosition) Start() Position { return Position{Line: sp.StartLine, Column: sp.StartColumn} }
func (sp SourcePosition) End() Position   { return Position{Line: sp.EndLine, Column: sp.EndColumn} }

// IsValid reports whether both ends were resolved.
func (sp SourcePosition) IsValid() bool {
	return sp.Start().IsValid() && sp.End().IsValid()
}

// IsSingleLine reports whether the range starts and ends on one line.
func (sp SourcePosition) IsSingleLine() bool { return sp.StartLine == sp.EndLine }

// String renders sp as "l:c-l:c", or "-" when unresolved.
func (sp SourcePosition) String() string {
	if !sp.IsValid() {
		return "-"
	}
	return sp.Start().String() + "-" + sp.End().String()
}
