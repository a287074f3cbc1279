// Package labels holds the label data model and the pure reconciliation
// engine that decides which create, update and delete operations bring a
// repository's current labels in line with a desired set.
package labels

import (
	"regexp"
	"sort"
	"strings"
)

var colorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Label is a named, colored tag defined on a repository
type Label struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// LabelSet maps a label name to its color
type LabelSet map[string]string

// Names returns the label names in lexicographic order
func (s LabelSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Labels returns the set as a slice ordered by name
func (s LabelSet) Labels() []Label {
	out := make([]Label, 0, len(s))
	for _, name := range s.Names() {
		out = append(out, Label{Name: name, Color: s[name]})
	}
	return out
}

// Clone returns an independent copy of the set
func (s LabelSet) Clone() LabelSet {
	out := make(LabelSet, len(s))
	for name, color := range s {
		out[name] = color
	}
	return out
}

// Equal reports whether both sets hold the same names with matching colors
func (s LabelSet) Equal(other LabelSet) bool {
	if len(s) != len(other) {
		return false
	}
	for name, color := range s {
		otherColor, ok := other[name]
		if !ok || !ColorsEqual(color, otherColor) {
			return false
		}
	}
	return true
}

// ColorsEqual compares two hex color codes case-insensitively.
// A leading '#' is not stripped.
func ColorsEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ValidColor reports whether color is a 6 hex-digit code without '#'
func ValidColor(color string) bool {
	return colorPattern.MatchString(color)
}
