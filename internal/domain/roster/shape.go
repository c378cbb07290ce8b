package roster

// Output and rejected table headers use the import names of the identity platform.
const (
	ColLEAID         = "LEAID"
	ColIdentNr       = "IdentNr"
	ColNachname      = "Nachname"
	ColVorname       = "Vorname"
	ColTyp           = "Typ"
	ColSeminar       = "Seminar"
	ColLehramt       = "Lehramt"
	ColJahrgang      = "Jahrgang"
	ColKernseminar   = "Kernseminar"
	ColFachseminar1  = "Fachseminar_1"
	ColFachseminar2  = "Fachseminar_2"
	AcceptedSheet    = "Referendare"
	RejectedSheet    = "Referendare-FEHLER"
	MissingIdentNr   = "IdentNr fehlt"
	seminarPrefix    = "Seminar_"
	programPrefix    = "LAA_"
	secondaryIDWidth = 10
)

// OutputShape is the set of optional field groups active in a run. The
// classifier and the column projection both read it, so synthesized fields
// and emitted columns always agree.
type OutputShape struct {
	ProgramGroup bool
	Cohort       bool
	Seminars     bool
}

// FullShape enables every optional field group.
func FullShape() OutputShape {
	return OutputShape{ProgramGroup: true, Cohort: true, Seminars: true}
}

// Columns returns the accepted-table header in output order.
func (s OutputShape) Columns() []string {
	cols := []string{ColLEAID, ColIdentNr, ColNachname, ColVorname, ColTyp}
	if s.ProgramGroup {
		cols = append(cols, ColSeminar, ColLehramt)
	}
	if s.Cohort {
		cols = append(cols, ColJahrgang)
	}
	if s.Seminars {
		cols = append(cols, ColKernseminar, ColFachseminar1, ColFachseminar2)
	}
	return cols
}

// Project renders rec as a row matching Columns.
func (s OutputShape) Project(rec OutputRecord) []string {
	row := []string{rec.Identifier, rec.SecondaryID, rec.Surname, rec.GivenName, rec.Category}
	if s.ProgramGroup {
		row = append(row, rec.Seminar, rec.Program)
	}
	if s.Cohort {
		row = append(row, rec.Cohort)
	}
	if s.Seminars {
		row = append(row, rec.CoreSeminar, rec.SubjectSeminar1, rec.SubjectSeminar2)
	}
	return row
}

// RejectedColumns is the fixed header of the rejected table.
func RejectedColumns() []string {
	return []string{ColLEAID, ColIdentNr, ColNachname, ColVorname, ColTyp, ColLehramt}
}

// Row renders rec as a row matching RejectedColumns.
func (rec RejectedRecord) Row() []string {
	return []string{rec.Identifier, rec.SecondaryID, rec.Surname, rec.GivenName, rec.Category, rec.Program}
}

// Tables projects a batch into the accepted and rejected tables.
func (s OutputShape) Tables(p Batch) (accepted, rejected Table) {
	accepted = Table{Sheet: AcceptedSheet, Columns: s.Columns(), Rows: make([][]string, 0, len(p.Accepted))}
	for _, rec := range p.Accepted {
		accepted.Rows = append(accepted.Rows, s.Project(rec))
	}
	rejected = Table{Sheet: RejectedSheet, Columns: RejectedColumns(), Rows: make([][]string, 0, len(p.Rejected))}
	for _, rec := range p.Rejected {
		rejected.Rows = append(rejected.Rows, rec.Row())
	}
	return accepted, rejected
}
