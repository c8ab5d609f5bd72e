package analysis

import "slices"

// SortField orders the per-file and per-kind listings.
type SortField string

const (
	SortByCount  SortField = "count"  // most nodes first
	SortByAlpha  SortField = "alpha"  // by path or kind name
	SortByStatus SortField = "status" // errors, then divergences, then clean files
)

// SortFields lists the accepted sort fields.
func SortFields() []SortField {
	return []SortField{SortByStatus, SortByCount, SortByAlpha}
}

func (s SortField) IsValid() bool {
	return slices.Contains(SortFields(), s)
}

// Options controls which sections Analyze fills in.
type Options struct {
	IncludeByFile bool
	IncludeByKind bool

	SortBy   SortField
	SortDesc bool // counts descending

	// WorkingDir, when set, makes file paths relative to it.
	WorkingDir string
}

// DefaultOptions fills every section, ordered by status.
func DefaultOptions() Options {
	return Options{
		IncludeByFile: true,
		IncludeByKind: true,
		SortBy:        SortByStatus,
		SortDesc:      true,
	}
}
