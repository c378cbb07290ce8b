// Package letter groups credential records into output documents and drives
// their rendering.
package letter

import (
	"path/filepath"

	"github.com/rpggio/lealogineo/internal/domain/credential"
)

// Defaults used when a record lacks the value.
const (
	DefaultSeminar   = "Seminar_UNBEKANNT"
	DefaultSurname   = "Nachname"
	DefaultGivenName = "Vorname"
	UnknownProgram   = "UNBEKANNT"
	collectiveSuffix = "Sammel"
	footerSeparator  = " - "
)

// Mode selects which kinds of documents are produced.
type Mode struct {
	Individual bool
	Collective bool
}

// Effective forces individual mode when neither mode is enabled.
func (m Mode) Effective() Mode {
	if !m.Individual && !m.Collective {
		m.Individual = true
	}
	return m
}

// GroupKey buckets records for collective documents.
type GroupKey struct {
	Category string
	Program  string
}

// Section is one record's block within a document.
type Section struct {
	Record credential.Record
	Footer string
}

// Unit is one output document.
type Unit struct {
	Dir        string
	FileName   string
	Footer     string
	Collective bool
	Key        GroupKey
	Sections   []Section
}

// Path is the full output path of the document.
func (u Unit) Path() string {
	return filepath.Join(u.Dir, u.FileName)
}

// FooterFor returns the footer of section i, falling back to the unit footer.
func (u Unit) FooterFor(i int) string {
	if i >= 0 && i < len(u.Sections) && u.Sections[i].Footer != "" {
		return u.Sections[i].Footer
	}
	return u.Footer
}

// Letterhead holds the institution-specific strings printed in every letter.
type Letterhead struct {
	PortalLink  string
	SupportName string
	SupportMail string
}
