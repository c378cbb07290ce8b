package roster_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

func TestClassify_EndToEndExample(t *testing.T) {
	src := roster.SourceRecord{
		"LAA_Logineo": "27.0",
		"LAA_IdentNr": "",
		"LAA_Name":    "Müller",
		"LAA_Vorname": "Anna",
		"Lehramt":     "3",
	}
	out, err := roster.Classify(src, roster.DefaultRules())
	require.NoError(t, err)
	require.Nil(t, out.Rejected)
	require.NotNil(t, out.Accepted)

	want := roster.OutputRecord{
		Identifier:  "27",
		SecondaryID: "IdentNr fehlt",
		Surname:     "Müller",
		GivenName:   "Anna",
		Category:    "LAA",
		Seminar:     "Seminar_GyGe",
		Program:     "LAA_GyGe",
		Cohort:      "LAA_GyGe_???",
	}
	if diff := cmp.Diff(want, *out.Accepted); diff != "" {
		t.Fatalf("accepted record mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_SecondaryIDPadding(t *testing.T) {
	rules := roster.DefaultRules()
	rules.PrimaryKey = roster.PrimaryKeyIdentNr

	tests := []struct {
		name     string
		ident    string
		accepted bool
		want     string
	}{
		{"ten characters get a leading zero", "1234567890", true, "01234567890"},
		{"eleven characters unchanged", "12345678901", true, "12345678901"},
		{"surrounding space trimmed", "  1234567890 ", true, "01234567890"},
		{"too short", "12345", false, "IdentNr fehlt"},
		{"nine characters", "123456789", false, "IdentNr fehlt"},
		{"empty", "", false, "IdentNr fehlt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := roster.Classify(roster.SourceRecord{
				"LAA_Logineo": "5",
				"LAA_IdentNr": tt.ident,
			}, rules)
			require.NoError(t, err)
			if tt.accepted {
				require.NotNil(t, out.Accepted)
				require.Equal(t, tt.want, out.Accepted.SecondaryID)
				return
			}
			require.NotNil(t, out.Rejected)
			require.Equal(t, tt.want, out.Rejected.SecondaryID)
		})
	}
}

func TestClassify_PrimaryIDMode(t *testing.T) {
	rules := roster.DefaultRules()

	out, err := roster.Classify(roster.SourceRecord{"LAA_Logineo": "  ", "Lehramtgruppe": "40"}, rules)
	require.NoError(t, err)
	require.NotNil(t, out.Rejected)
	require.Equal(t, "LAA_BK", out.Rejected.Program)
	require.Equal(t, "LAA", out.Rejected.Category)

	out, err = roster.Classify(roster.SourceRecord{"LAA_Logineo": "00123456789"}, rules)
	require.NoError(t, err)
	require.NotNil(t, out.Accepted)
	require.Equal(t, "123456789", out.Accepted.Identifier)
}

func TestClassify_RejectedAlwaysCarriesProgram(t *testing.T) {
	rules := roster.DefaultRules()
	rules.Shape = roster.OutputShape{}

	out, err := roster.Classify(roster.SourceRecord{"Lehramt": "junk"}, rules)
	require.NoError(t, err)
	require.NotNil(t, out.Rejected)
	require.Equal(t, "LAA_???", out.Rejected.Program)
}

func TestClassify_ToggleIndependence(t *testing.T) {
	src := roster.SourceRecord{
		"LAA_Logineo":           "42",
		"Lehramt":               "2",
		"VDVon":                 "2024-11-01",
		"KursSeminarSchluessel": "  Kern  Seminar ",
		"KursFach1Schluessel":   "Mathe",
		"KursFach2Schluessel":   "   ",
	}

	rules := roster.DefaultRules()
	out, err := roster.Classify(src, rules)
	require.NoError(t, err)
	rec := out.Accepted
	require.Equal(t, "Seminar_HRSGe", rec.Seminar)
	require.Equal(t, "LAA_HRSGe", rec.Program)
	require.Equal(t, "LAA_HRSGe_2024-11", rec.Cohort)
	require.Equal(t, "Seminar_Kern_Seminar", rec.CoreSeminar)
	require.Equal(t, "Seminar_Mathe", rec.SubjectSeminar1)
	require.Equal(t, "", rec.SubjectSeminar2)

	rules.Shape = roster.OutputShape{Cohort: true, Seminars: true}
	out, err = roster.Classify(src, rules)
	require.NoError(t, err)
	require.Empty(t, out.Accepted.Seminar)
	require.Empty(t, out.Accepted.Program)
	require.Equal(t, "LAA_HRSGe_2024-11", out.Accepted.Cohort)

	rules.Shape = roster.OutputShape{}
	out, err = roster.Classify(src, rules)
	require.NoError(t, err)
	require.Empty(t, out.Accepted.Cohort)
	require.Empty(t, out.Accepted.CoreSeminar)
	require.Empty(t, out.Accepted.SubjectSeminar1)
}

func TestClassify_InvalidPrimaryKey(t *testing.T) {
	rules := roster.DefaultRules()
	rules.PrimaryKey = "Email"

	_, err := roster.Classify(roster.SourceRecord{"LAA_Logineo": "1"}, rules)
	require.ErrorIs(t, err, roster.ErrInvalidPrimaryKey)

	_, err = roster.Partition([]roster.SourceRecord{{"LAA_Logineo": "1"}}, rules)
	require.ErrorIs(t, err, roster.ErrInvalidPrimaryKey)
}

func TestClassify_CustomColumns(t *testing.T) {
	rules := roster.DefaultRules()
	rules.Columns = roster.Columns{PrimaryID: "Konto", Surname: "Name"}

	out, err := roster.Classify(roster.SourceRecord{"Konto": "7", "Name": "Schulz", "LAA_Vorname": "Eva"}, rules)
	require.NoError(t, err)
	require.Equal(t, "7", out.Accepted.Identifier)
	require.Equal(t, "Schulz", out.Accepted.Surname)
	require.Equal(t, "Eva", out.Accepted.GivenName)
}

func TestPartition_PreservesOrder(t *testing.T) {
	records := []roster.SourceRecord{
		{"LAA_Logineo": "1", "LAA_Name": "A"},
		{"LAA_Name": "B"},
		{"LAA_Logineo": "2", "LAA_Name": "C"},
		{"LAA_Name": "D"},
		{"LAA_Logineo": "3", "LAA_Name": "E"},
	}
	batch, err := roster.Partition(records, roster.DefaultRules())
	require.NoError(t, err)

	var accepted, rejected []string
	for _, r := range batch.Accepted {
		accepted = append(accepted, r.Surname)
	}
	for _, r := range batch.Rejected {
		rejected = append(rejected, r.Surname)
	}
	require.Equal(t, []string{"A", "C", "E"}, accepted)
	require.Equal(t, []string{"B", "D"}, rejected)
}

func TestParsePrimaryKey(t *testing.T) {
	for in, want := range map[string]roster.PrimaryKey{
		"":            roster.PrimaryKeyLEAID,
		"LEAID":       roster.PrimaryKeyLEAID,
		"PrimaryId":   roster.PrimaryKeyLEAID,
		"identnr":     roster.PrimaryKeyIdentNr,
		"SecondaryId": roster.PrimaryKeyIdentNr,
	} {
		got, err := roster.ParsePrimaryKey(in)
		require.NoError(t, err, "input %q", in)
		require.Equal(t, want, got)
	}
	_, err := roster.ParsePrimaryKey("mail")
	require.ErrorIs(t, err, roster.ErrInvalidPrimaryKey)
}

func TestOutputShape_Columns(t *testing.T) {
	require.Equal(t, []string{
		"LEAID", "IdentNr", "Nachname", "Vorname", "Typ",
		"Seminar", "Lehramt", "Jahrgang", "Kernseminar", "Fachseminar_1", "Fachseminar_2",
	}, roster.FullShape().Columns())
	require.Equal(t, []string{"LEAID", "IdentNr", "Nachname", "Vorname", "Typ", "Jahrgang"},
		roster.OutputShape{Cohort: true}.Columns())

	shape := roster.OutputShape{Seminars: true}
	row := shape.Project(roster.OutputRecord{Identifier: "1", CoreSeminar: "Seminar_K"})
	require.Len(t, row, len(shape.Columns()))
	require.Equal(t, "Seminar_K", row[5])
}
