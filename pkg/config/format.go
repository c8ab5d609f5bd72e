package config

// OutputFormat specifies how results are printed.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
	FormatTree    OutputFormat = "tree"
)

// CheckFormats returns the formats accepted by the check command.
func CheckFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatYAML, FormatSummary}
}

// TreeFormats returns the formats accepted by the parse command.
func TreeFormats() []OutputFormat {
	return []OutputFormat{FormatTree, FormatJSON, FormatYAML}
}

// IsOneOf reports whether f is among formats.
func (f OutputFormat) IsOneOf(formats []OutputFormat) bool {
	for _, candidate := range formats {
		if f == candidate {
			return true
		}
	}
	return false
}
