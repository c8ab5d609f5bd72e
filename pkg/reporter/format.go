package reporter

import (
	"fmt"
	"strings"
)

// Format names an output format for check results.
type Format string

// Output formats for check results. FormatText is the default.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatSummary Format = "summary"
)

// Formats lists the supported formats in help order.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatYAML, FormatSummary}
}

// ParseFormat resolves a format name. The empty string selects FormatText.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if format := Format(name); format.IsValid() {
		return format, nil
	}

	names := make([]string, 0, len(renderers))
	for _, format := range Formats() {
		names = append(names, string(format))
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether a renderer exists for f.
func (f Format) IsValid() bool {
	_, ok := renderers[f]
	return ok
}
