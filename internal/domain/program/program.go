// Package program resolves the two numeric program coding schemes of the
// institutional roster export to the shared set of program labels.
package program

import (
	"github.com/rpggio/lealogineo/internal/domain/field"
)

// Label is a resolved program label or the unresolved marker.
type Label struct {
	name string
}

// Unresolved is the label of unknown, missing or unparsable codes.
var Unresolved = Label{}

// Resolved reports whether the label maps to a known program.
func (l Label) Resolved() bool {
	return l.name != ""
}

// String renders the label, using the sentinel for unresolved labels.
func (l Label) String() string {
	if l.name == "" {
		return field.Unknown
	}
	return l.name
}

// DetailedProgramLabels maps detailed program codes ("Lehramt") to labels.
var DetailedProgramLabels = map[int]string{
	1: "G",
	2: "HRSGe",
	3: "GyGe",
	4: "BK",
	5: "SF",
}

// ProgramGroupLabels maps program group codes ("Lehramtgruppe") to labels.
var ProgramGroupLabels = map[int]string{
	10: "G",
	20: "HRSGe",
	30: "GyGe",
	40: "BK",
	50: "SF",
}

// Labels lists every distinct label in display order.
func Labels() []string {
	return []string{"G", "HRSGe", "GyGe", "BK", "SF"}
}

// Resolve looks up a label using the detailed code first and the group code
// second. A detailed code only defers to the group code when it is not
// integer-like; an integer code missing from its table resolves to Unresolved.
func Resolve(detailedCode, groupCode string) Label {
	if n, ok := field.ToIntegerIfNumeric(detailedCode); ok {
		return lookup(DetailedProgramLabels, n)
	}
	if n, ok := field.ToIntegerIfNumeric(groupCode); ok {
		return lookup(ProgramGroupLabels, n)
	}
	return Unresolved
}

func lookup(table map[int]string, code int) Label {
	name, ok := table[code]
	if !ok {
		return Unresolved
	}
	return Label{name: name}
}
