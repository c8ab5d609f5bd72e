package parser

import (
	"strings"

	"golang.org/x/text/cases"
)

// linkDefinition is the target of a link reference definition.
type linkDefinition struct {
	label       string
	destination string
	title       string
}

// labelTable maps normalised labels to link definitions for a single parse.
// The block pass fills it completely before any inline resolution runs, so
// references may precede their definitions.
type labelTable struct {
	defs map[string]linkDefinition
}

func newLabelTable() *labelTable {
	return &labelTable{defs: make(map[string]linkDefinition)}
}

// define records a definition. The first definition of a label wins.
func (t *labelTable) define(def linkDefinition) bool {
	key := NormalizeLabel(def.label)
	if key == "" {
		return false
	}
	if _, exists := t.defs[key]; exists {
		return false
	}
	t.defs[key] = def
	return true
}

func (t *labelTable) lookup(label string) (linkDefinition, bool) {
	def, ok := t.defs[NormalizeLabel(label)]
	return def, ok
}

func (t *labelTable) len() int {
	return len(t.defs)
}

// NormalizeLabel returns the matching key for a link label: Unicode
// case-folded, so "ẞ" matches "SS", with surrounding whitespace trimmed and
// internal runs of whitespace collapsed to a single space.
func NormalizeLabel(label string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return strings.Join(strings.Fields(cases.Fold().String(label)), " ")
}
