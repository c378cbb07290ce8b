package letter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpggio/lealogineo/internal/domain/credential"
)

// TimestampLayout formats run timestamps in document file names.
const TimestampLayout = "2006-01-02_15-04-05"

// Options configures aggregation.
type Options struct {
	Mode            Mode
	OutputRoot      string
	DefaultCategory string
	DefaultSeminar  string
	Timestamp       time.Time
}

func (o Options) category() string {
	if o.DefaultCategory == "" {
		return credential.CategoryStaff
	}
	return o.DefaultCategory
}

func (o Options) seminar() string {
	if o.DefaultSeminar == "" {
		return DefaultSeminar
	}
	return o.DefaultSeminar
}

// Aggregate partitions records into documents: one per record in individual
// mode and one per GroupKey in collective mode, individual documents first.
// Paths are unique within the result.
func Aggregate(records []credential.Record, opts Options) ([]Unit, error) {
	mode := opts.Mode.Effective()
	ts := opts.Timestamp.Format(TimestampLayout)
	paths := newPathSet()

	var units []Unit
	if mode.Individual {
		for _, rec := range records {
			units = append(units, paths.place(individualUnit(rec, opts, ts)))
		}
	}
	if mode.Collective {
		for _, u := range collectiveUnits(records, opts, ts) {
			units = append(units, paths.place(u))
		}
	}
	if len(units) == 0 {
		return nil, ErrNoEligibleRecords
	}
	return units, nil
}

func individualUnit(rec credential.Record, opts Options, ts string) Unit {
	seminar := credential.First(rec.Seminars, opts.seminar())
	category := credential.First(rec.Categories, opts.category())
	surname := credential.First(rec.Surnames, DefaultSurname)
	givenName := credential.First(rec.GivenNames, DefaultGivenName)

	footer := joinFooter(rec.Seminar(), credential.First(rec.Categories, ""), displayName(rec))
	return Unit{
		Dir:      filepath.Join(opts.OutputRoot, sanitize(seminar), sanitize(category)),
		FileName: sanitize(fmt.Sprintf("%s_%s, %s_%s.pdf", category, surname, givenName, ts)),
		Footer:   footer,
		Key:      GroupKey{Category: category, Program: ProgramFromSeminar(rec.Seminar())},
		Sections: []Section{{Record: rec, Footer: footer}},
	}
}

func collectiveUnits(records []credential.Record, opts Options, ts string) []Unit {
	var order []GroupKey
	members := make(map[GroupKey][]credential.Record)
	for _, rec := range records {
		key := GroupKey{
			Category: credential.First(rec.Categories, opts.category()),
			Program:  ProgramFromSeminar(rec.Seminar()),
		}
		if _, seen := members[key]; !seen {
			order = append(order, key)
		}
		members[key] = append(members[key], rec)
	}

	units := make([]Unit, 0, len(order))
	for _, key := range order {
		seminarLabel := ""
		if key.Program != "" {
			seminarLabel = credential.SeminarPrefix + key.Program
		}
		dirSeminar := seminarLabel
		if dirSeminar == "" {
			dirSeminar = opts.seminar()
		}
		program := key.Program
		if program == "" {
			program = UnknownProgram
		}

		u := Unit{
			Dir:        filepath.Join(opts.OutputRoot, sanitize(dirSeminar), sanitize(key.Category)),
			FileName:   sanitize(fmt.Sprintf("SAMMEL_%s_%s_%s.pdf", key.Category, program, ts)),
			Footer:     joinFooter(seminarLabel, key.Category, collectiveSuffix),
			Collective: true,
			Key:        key,
		}
		for _, rec := range members[key] {
			category := credential.First(rec.Categories, "")
			if category == "" {
				category = key.Category
			}
			u.Sections = append(u.Sections, Section{
				Record: rec,
				Footer: joinFooter(seminarLabel, category, displayName(rec)),
			})
		}
		units = append(units, u)
	}
	return units
}

// ProgramFromSeminar strips the seminar prefix from a seminar token.
func ProgramFromSeminar(seminar string) string {
	return strings.TrimPrefix(seminar, credential.SeminarPrefix)
}

func displayName(rec credential.Record) string {
	var parts []string
	for _, p := range []string{rec.Surname(), rec.GivenName()} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func joinFooter(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, footerSeparator)
}

// sanitize replaces characters that are unsafe in file and directory names.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, c, "_")
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		name = "unnamed"
	}
	return name
}

type pathSet map[string]bool

func newPathSet() pathSet {
	return make(pathSet)
}

// place suffixes the file name with _2, _3, ... until its path is unused.
func (s pathSet) place(u Unit) Unit {
	ext := filepath.Ext(u.FileName)
	stem := strings.TrimSuffix(u.FileName, ext)
	name := u.FileName
	for n := 2; s[filepath.Join(u.Dir, name)]; n++ {
		name = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
	s[filepath.Join(u.Dir, name)] = true
	u.FileName = name
	return u
}
