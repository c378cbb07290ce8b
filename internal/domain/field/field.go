// Package field coerces ambiguous spreadsheet text into canonical scalar values.
package field

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Unknown is the sentinel written wherever a value could not be derived.
const Unknown = "???"

var (
	yearMonthRe   = regexp.MustCompile(`(\d{4})-(\d{2})`)
	integerLikeRe = regexp.MustCompile(`^([+-]?)(\d+)(?:\.0*)?$`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// ExtractYearMonth returns the first YYYY-MM token found in s, or Unknown.
func ExtractYearMonth(s string) string {
	if s == "" {
		return Unknown
	}
	m := yearMonthRe.FindStringSubmatch(s)
	if m == nil {
		return Unknown
	}
	return m[1] + "-" + m[2]
}

// ToIntegerIfNumeric parses plain integers and whole numbers rendered with a
// trailing ".0" fraction. Anything else, including the empty string, fails.
func ToIntegerIfNumeric(s string) (int, bool) {
	sign, digits, ok := splitIntegerLike(s)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(sign + digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeNumericText returns the canonical decimal form of integer-like text
// and the trimmed input otherwise. The result never uses exponent notation and
// is not limited by the range of a machine integer.
func NormalizeNumericText(s string) string {
	sign, digits, ok := splitIntegerLike(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	if sign == "-" {
		return "-" + digits
	}
	return digits
}

// CollapseWhitespaceToUnderscore replaces every whitespace run with one underscore.
func CollapseWhitespaceToUnderscore(s string) string {
	return whitespaceRe.ReplaceAllString(s, "_")
}

// Slug trims s and collapses its inner whitespace, yielding a group-name fragment.
func Slug(s string) string {
	return CollapseWhitespaceToUnderscore(strings.TrimSpace(s))
}

// NormalizeName converts s to Unicode NFC so that names exported by different
// systems compare and sort identically.
func NormalizeName(s string) string {
	return norm.NFC.String(s)
}

func splitIntegerLike(s string) (sign, digits string, ok bool) {
	m := integerLikeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
