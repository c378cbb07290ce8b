package roster

import "fmt"

// Columns names the source columns read by the classifier.
type Columns struct {
	PrimaryID    string
	SecondaryID  string
	Surname      string
	GivenName    string
	ProgramCode  string
	ProgramGroup string
	StartDate    string
	CoreSeminar  string
	Subject1     string
	Subject2     string
}

// DefaultColumns are the column names of the institutional roster export.
func DefaultColumns() Columns {
	return Columns{
		PrimaryID:    "LAA_Logineo",
		SecondaryID:  "LAA_IdentNr",
		Surname:      "LAA_Name",
		GivenName:    "LAA_Vorname",
		ProgramCode:  "Lehramt",
		ProgramGroup: "Lehramtgruppe",
		StartDate:    "VDVon",
		CoreSeminar:  "KursSeminarSchluessel",
		Subject1:     "KursFach1Schluessel",
		Subject2:     "KursFach2Schluessel",
	}
}

// WithDefaults fills empty column names from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.PrimaryID, d.PrimaryID)
	fill(&c.SecondaryID, d.SecondaryID)
	fill(&c.Surname, d.Surname)
	fill(&c.GivenName, d.GivenName)
	fill(&c.ProgramCode, d.ProgramCode)
	fill(&c.ProgramGroup, d.ProgramGroup)
	fill(&c.StartDate, d.StartDate)
	fill(&c.CoreSeminar, d.CoreSeminar)
	fill(&c.Subject1, d.Subject1)
	fill(&c.Subject2, d.Subject2)
	return c
}

// DefaultCategory is the category tag written for every accepted trainee.
const DefaultCategory = "LAA"

// Rules is the rule set of one conversion run.
type Rules struct {
	PrimaryKey PrimaryKey
	Shape      OutputShape
	Columns    Columns
	Category   string
}

// DefaultRules keys rows by LEAID and emits every optional field.
func DefaultRules() Rules {
	return Rules{
		PrimaryKey: PrimaryKeyLEAID,
		Shape:      FullShape(),
		Columns:    DefaultColumns(),
		Category:   DefaultCategory,
	}
}

// Validate rejects primary-key modes the classifier does not know.
func (r Rules) Validate() error {
	switch r.PrimaryKey {
	case PrimaryKeyLEAID, PrimaryKeyIdentNr:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPrimaryKey, r.PrimaryKey)
	}
}

func (r Rules) category() string {
	if r.Category == "" {
		return DefaultCategory
	}
	return r.Category
}
