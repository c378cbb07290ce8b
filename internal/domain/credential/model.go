// Package credential turns identity-platform exports of unknown layout into
// uniform credential records. Every field is a list of candidates in the
// order they were found; the first candidate is authoritative.
package credential

import "strconv"

// Category tags of platform accounts.
const (
	CategoryTrainee = "LAA"
	CategoryStaff   = "SAB"
)

// Token prefixes recognized in cell and leaf content.
const (
	SeminarPrefix = "Seminar_"
	GroupPrefix   = "LAA_"
)

// Record is one ingested platform account.
type Record struct {
	ID            string
	Surnames      []string
	GivenNames    []string
	Emails        []string
	Seminars      []string
	Groups        []string
	Categories    []string
	Passwords     []string
	SafePasswords []string
}

func recordID(index int) string {
	return "user" + strconv.Itoa(index)
}

// First returns the authoritative candidate of values, or def when there is none.
func First(values []string, def string) string {
	if len(values) == 0 || values[0] == "" {
		return def
	}
	return values[0]
}

func (r Record) Surname() string      { return First(r.Surnames, "") }
func (r Record) GivenName() string    { return First(r.GivenNames, "") }
func (r Record) Seminar() string      { return First(r.Seminars, "") }
func (r Record) Category() string     { return First(r.Categories, CategoryStaff) }
func (r Record) Password() string     { return First(r.Passwords, "") }
func (r Record) SafePassword() string { return First(r.SafePasswords, "") }

// Node is one element of a parsed markup document.
type Node struct {
	Tag      string
	Text     string
	Children []*Node
}

// Leaf reports whether n has no child elements.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// Walk visits n and its descendants in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
