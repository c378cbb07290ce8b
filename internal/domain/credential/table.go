package credential

import "strings"

// Header names of the platform's flat account export.
const (
	HeaderSurname      = "Nachname"
	HeaderGivenName    = "Vorname"
	HeaderPassword     = "Kennwort"
	HeaderSafePassword = "Datensafe-Kennwort"
	HeaderCategory     = "System"
)

// TableResult is the outcome of ingesting a flat table.
type TableResult struct {
	Records []Record
	// Skipped counts rows dropped for an empty password.
	Skipped int
}

// FromTable ingests rows whose first row is the header. Rows with an empty
// password cell are skipped when the header has a password column.
func FromTable(rows [][]string) TableResult {
	var res TableResult
	if len(rows) == 0 {
		return res
	}
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	cell := func(row []string, name string) (string, bool) {
		i, ok := index[name]
		if !ok {
			return "", false
		}
		if i >= len(row) {
			return "", true
		}
		return row[i], true
	}

	for _, row := range rows[1:] {
		if pw, ok := cell(row, HeaderPassword); ok && pw == "" {
			res.Skipped++
			continue
		}
		rec := Record{ID: recordID(len(res.Records))}
		appendCell := func(dst *[]string, name string) {
			if v, ok := cell(row, name); ok {
				*dst = append(*dst, v)
			}
		}
		appendCell(&rec.Surnames, HeaderSurname)
		appendCell(&rec.GivenNames, HeaderGivenName)
		appendCell(&rec.Passwords, HeaderPassword)
		appendCell(&rec.SafePasswords, HeaderSafePassword)
		appendCell(&rec.Categories, HeaderCategory)

		for _, raw := range row {
			scanContent(&rec, strings.TrimSpace(raw))
		}
		if len(rec.Categories) == 0 {
			rec.Categories = append(rec.Categories, CategoryStaff)
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// scanContent applies the content predicates shared by both input shapes.
func scanContent(rec *Record, value string) {
	if strings.Contains(value, "@") {
		rec.Emails = append(rec.Emails, value)
	}
	if strings.HasPrefix(value, SeminarPrefix) {
		rec.Seminars = append(rec.Seminars, value)
	}
	if strings.HasPrefix(value, GroupPrefix) {
		rec.Groups = append(rec.Groups, value)
	}
}
