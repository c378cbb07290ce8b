package roster

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rpggio/lealogineo/internal/domain/field"
	"github.com/rpggio/lealogineo/internal/domain/program"
)

// Classify decides whether src has a usable primary identifier under rules
// and synthesizes the accepted or rejected record. Malformed field content is
// never an error; only an unknown primary-key mode is.
func Classify(src SourceRecord, rules Rules) (Outcome, error) {
	if err := rules.Validate(); err != nil {
		return Outcome{}, err
	}
	cols := rules.Columns.WithDefaults()

	rawPrimary := strings.TrimSpace(src.Get(cols.PrimaryID))
	secondary, secondaryOK := secondaryID(src.Get(cols.SecondaryID))

	var ok bool
	switch rules.PrimaryKey {
	case PrimaryKeyIdentNr:
		ok = secondaryOK
	case PrimaryKeyLEAID:
		ok = rawPrimary != ""
	}

	label := program.Resolve(src.Get(cols.ProgramCode), src.Get(cols.ProgramGroup))
	identifier := field.NormalizeNumericText(rawPrimary)
	surname := field.NormalizeName(strings.TrimSpace(src.Get(cols.Surname)))
	givenName := field.NormalizeName(strings.TrimSpace(src.Get(cols.GivenName)))

	if !ok {
		return Outcome{Rejected: &RejectedRecord{
			Identifier:  identifier,
			SecondaryID: secondary,
			Surname:     surname,
			GivenName:   givenName,
			Category:    rules.category(),
			Program:     programPrefix + label.String(),
		}}, nil
	}

	rec := OutputRecord{
		Identifier:  identifier,
		SecondaryID: secondary,
		Surname:     surname,
		GivenName:   givenName,
		Category:    rules.category(),
	}
	shape := rules.Shape
	if shape.ProgramGroup {
		rec.Seminar = seminarPrefix + label.String()
		rec.Program = programPrefix + label.String()
	}
	if shape.Cohort {
		rec.Cohort = programPrefix + label.String() + "_" + field.ExtractYearMonth(src.Get(cols.StartDate))
	}
	if shape.Seminars {
		rec.CoreSeminar = seminarKey(src.Get(cols.CoreSeminar))
		rec.SubjectSeminar1 = seminarKey(src.Get(cols.Subject1))
		rec.SubjectSeminar2 = seminarKey(src.Get(cols.Subject2))
	}
	return Outcome{Accepted: &rec}, nil
}

// secondaryID returns the output form of a registry identifier and whether it
// is long enough to key a row. Exactly ten characters get one leading zero.
func secondaryID(raw string) (string, bool) {
	id := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(id)
	if n <= secondaryIDWidth-1 {
		return MissingIdentNr, false
	}
	if n == secondaryIDWidth {
		return "0" + id, true
	}
	return id, true
}

func seminarKey(raw string) string {
	slug := field.Slug(raw)
	if slug == "" {
		return ""
	}
	return seminarPrefix + slug
}

// Partition classifies records in order. Any classification error aborts the
// batch and no partial result is returned.
func Partition(records []SourceRecord, rules Rules) (Batch, error) {
	var out Batch
	if err := rules.Validate(); err != nil {
		return out, err
	}
	for i, src := range records {
		o, err := Classify(src, rules)
		if err != nil {
			return Batch{}, fmt.Errorf("classifying row %d: %w", i+1, err)
		}
		if o.Accepted != nil {
			out.Accepted = append(out.Accepted, *o.Accepted)
		} else {
			out.Rejected = append(out.Rejected, *o.Rejected)
		}
	}
	return out, nil
}
