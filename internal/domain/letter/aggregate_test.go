package letter_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/lealogineo/internal/domain/credential"
	"github.com/rpggio/lealogineo/internal/domain/letter"
	"github.com/stretchr/testify/require"
)

var runTime = time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)

func rec(id, surname, given, category, seminar string) credential.Record {
	r := credential.Record{ID: id}
	if surname != "" {
		r.Surnames = []string{surname}
	}
	if given != "" {
		r.GivenNames = []string{given}
	}
	if category != "" {
		r.Categories = []string{category}
	}
	if seminar != "" {
		r.Seminars = []string{seminar}
	}
	return r
}

func TestAggregate_Individual(t *testing.T) {
	units, err := letter.Aggregate([]credential.Record{
		rec("user0", "Meier", "Jan", "LAA", "Seminar_GyGe"),
		rec("user1", "", "", "", ""),
	}, letter.Options{OutputRoot: "out", Timestamp: runTime})
	require.NoError(t, err)
	require.Len(t, units, 2)

	u := units[0]
	require.False(t, u.Collective)
	require.Equal(t, filepath.Join("out", "Seminar_GyGe", "LAA"), u.Dir)
	require.Equal(t, "LAA_Meier, Jan_2024-09-01_08-30-00.pdf", u.FileName)
	require.Equal(t, "Seminar_GyGe - LAA - Meier, Jan", u.Footer)
	require.Len(t, u.Sections, 1)

	blank := units[1]
	require.Equal(t, filepath.Join("out", "Seminar_UNBEKANNT", "SAB"), blank.Dir)
	require.Equal(t, "SAB_Nachname, Vorname_2024-09-01_08-30-00.pdf", blank.FileName)
	require.Equal(t, "", blank.Footer)
}

func TestAggregate_CollectiveGrouping(t *testing.T) {
	records := []credential.Record{
		rec("user0", "A", "Anna", "LAA", "Seminar_GyGe"),
		rec("user1", "B", "Ben", "LAA", "Seminar_BK"),
		rec("user2", "C", "Cem", "LAA", "Seminar_GyGe"),
		rec("user3", "D", "", "SAB", ""),
	}
	units, err := letter.Aggregate(records, letter.Options{
		Mode:       letter.Mode{Collective: true},
		OutputRoot: "out",
		Timestamp:  runTime,
	})
	require.NoError(t, err)
	require.Len(t, units, 3)

	gyge := units[0]
	require.True(t, gyge.Collective)
	require.Equal(t, letter.GroupKey{Category: "LAA", Program: "GyGe"}, gyge.Key)
	require.Len(t, gyge.Sections, 2)
	require.Equal(t, "user0", gyge.Sections[0].Record.ID)
	require.Equal(t, "user2", gyge.Sections[1].Record.ID)
	require.Equal(t, "Seminar_GyGe - LAA - A, Anna", gyge.Sections[0].Footer)
	require.Equal(t, "Seminar_GyGe - LAA - Sammel", gyge.Footer)
	require.Equal(t, filepath.Join("out", "Seminar_GyGe", "LAA", "SAMMEL_LAA_GyGe_2024-09-01_08-30-00.pdf"), gyge.Path())

	require.Equal(t, letter.GroupKey{Category: "LAA", Program: "BK"}, units[1].Key)

	unknown := units[2]
	require.Equal(t, filepath.Join("out", "Seminar_UNBEKANNT", "SAB", "SAMMEL_SAB_UNBEKANNT_2024-09-01_08-30-00.pdf"), unknown.Path())
	require.Equal(t, "SAB - Sammel", unknown.Footer)
	require.Equal(t, "SAB - D", unknown.Sections[0].Footer)
}

func TestAggregate_BothModes(t *testing.T) {
	units, err := letter.Aggregate([]credential.Record{
		rec("user0", "A", "Anna", "LAA", "Seminar_GyGe"),
	}, letter.Options{Mode: letter.Mode{Individual: true, Collective: true}, Timestamp: runTime})
	require.NoError(t, err)
	require.Len(t, units, 2)
	require.False(t, units[0].Collective)
	require.True(t, units[1].Collective)
}

func TestAggregate_NameCollisions(t *testing.T) {
	units, err := letter.Aggregate([]credential.Record{
		rec("user0", "Meier", "Jan", "LAA", "Seminar_GyGe"),
		rec("user1", "Meier", "Jan", "LAA", "Seminar_GyGe"),
		rec("user2", "Meier", "Jan", "LAA", "Seminar_GyGe"),
		rec("user3", "Meier", "Jan", "LAA", "Seminar_BK"),
	}, letter.Options{Timestamp: runTime})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, u := range units {
		require.False(t, seen[u.Path()], "duplicate path %s", u.Path())
		seen[u.Path()] = true
	}
	require.Equal(t, "LAA_Meier, Jan_2024-09-01_08-30-00.pdf", units[0].FileName)
	require.Equal(t, "LAA_Meier, Jan_2024-09-01_08-30-00_2.pdf", units[1].FileName)
	require.Equal(t, "LAA_Meier, Jan_2024-09-01_08-30-00_3.pdf", units[2].FileName)
	require.Equal(t, "LAA_Meier, Jan_2024-09-01_08-30-00.pdf", units[3].FileName)
}

func TestAggregate_SanitizesNames(t *testing.T) {
	units, err := letter.Aggregate([]credential.Record{
		rec("user0", "O/Neil", "J:R", "LAA", "Seminar_a/b"),
	}, letter.Options{Timestamp: runTime})
	require.NoError(t, err)
	require.Equal(t, filepath.Join("Seminar_a_b", "LAA"), units[0].Dir)
	require.Equal(t, "LAA_O_Neil, J_R_2024-09-01_08-30-00.pdf", units[0].FileName)
}

func TestAggregate_NoRecords(t *testing.T) {
	_, err := letter.Aggregate(nil, letter.Options{Mode: letter.Mode{Individual: true, Collective: true}})
	require.ErrorIs(t, err, letter.ErrNoEligibleRecords)

	_, err = letter.Aggregate(nil, letter.Options{})
	require.ErrorIs(t, err, letter.ErrNoEligibleRecords)
}

func TestMode_Effective(t *testing.T) {
	require.Equal(t, letter.Mode{Individual: true}, letter.Mode{}.Effective())
	require.Equal(t, letter.Mode{Collective: true}, letter.Mode{Collective: true}.Effective())
}

func TestUnit_FooterFor(t *testing.T) {
	u := letter.Unit{Footer: "default", Sections: []letter.Section{{Footer: "first"}, {}}}
	require.Equal(t, "first", u.FooterFor(0))
	require.Equal(t, "default", u.FooterFor(1))
	require.Equal(t, "default", u.FooterFor(7))
}

func TestProgramFromSeminar(t *testing.T) {
	require.Equal(t, "GyGe", letter.ProgramFromSeminar("Seminar_GyGe"))
	require.Equal(t, "Kurs", letter.ProgramFromSeminar("Kurs"))
	require.Equal(t, "", letter.ProgramFromSeminar(""))
}

func TestCompose(t *testing.T) {
	head := letter.Letterhead{PortalLink: "zfsl.example", SupportName: "Admin", SupportMail: "admin@zfsl.example"}

	staff := credential.Record{
		Surnames:      []string{"Meier"},
		GivenNames:    []string{"Jan"},
		Emails:        []string{`"jan@zfsl.example"`, "  "},
		Categories:    []string{"SAB"},
		Passwords:     []string{"pw"},
		SafePasswords: []string{"safe"},
	}
	texts := blockTexts(letter.Compose(staff, head))
	require.Contains(t, texts, "Sehr geehrte/r Jan Meier,")
	require.Contains(t, texts, "https://zfsl.example")
	require.Contains(t, texts, "jan@zfsl.example")
	require.Contains(t, texts, "Safe-Kennwort:")
	require.Contains(t, texts, "safe")
	require.NotContains(t, texts, "")

	trainee := staff
	trainee.Categories = []string{"LAA"}
	texts = blockTexts(letter.Compose(trainee, head))
	require.NotContains(t, texts, "Safe-Kennwort:")
	require.Contains(t, texts, "Nach Ihrer Erstanmeldung muss das Zugangspasswort geändert werden.")
}

func blockTexts(blocks []letter.Block) []string {
	var out []string
	for _, b := range blocks {
		if b.Style != letter.StyleSpacer {
			out = append(out, b.Text)
		}
	}
	return out
}
