package field_test

import (
	"strings"
	"testing"

	"github.com/rpggio/lealogineo/internal/domain/field"
	"github.com/stretchr/testify/require"
)

func TestExtractYearMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-01", "2024-05"},
		{"Beginn 2023-11-01 00:00:00", "2023-11"},
		{"01.05.2024", field.Unknown},
		{"", field.Unknown},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, field.ExtractYearMonth(tt.in), "input %q", tt.in)
	}
}

func TestToIntegerIfNumeric(t *testing.T) {
	n, ok := field.ToIntegerIfNumeric("27")
	require.True(t, ok)
	require.Equal(t, 27, n)

	n, ok = field.ToIntegerIfNumeric(" 27.0 ")
	require.True(t, ok)
	require.Equal(t, 27, n)

	for _, in := range []string{"", "27.5", "abc", "1e3", "2 7"} {
		_, ok := field.ToIntegerIfNumeric(in)
		require.False(t, ok, "input %q", in)
	}
}

func TestNormalizeNumericText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"27.0", "27"},
		{"0027", "27"},
		{"000", "0"},
		{"123456789012345", "123456789012345"},
		{"98765432109876543210.00", "98765432109876543210"},
		{" Müller ", "Müller"},
		{"1.5E+10", "1.5E+10"},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, field.NormalizeNumericText(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeNumericText_Idempotent(t *testing.T) {
	inputs := []string{"27.0", "-0012", "x 1", "  42  ", "12345678.000", "", "1,5"}
	for _, in := range inputs {
		once := field.NormalizeNumericText(in)
		require.Equal(t, once, field.NormalizeNumericText(once), "input %q", in)
	}
}

func TestNormalizeNumericText_NoExponent(t *testing.T) {
	digits := "1"
	for i := 1; i <= 18; i++ {
		out := field.NormalizeNumericText(digits + ".0")
		require.NotContains(t, strings.ToLower(out), "e")
		require.NotContains(t, out, ".")
		require.Equal(t, digits, out)
		digits += "0"
	}
}

func TestSlug(t *testing.T) {
	require.Equal(t, "GyGe_Kurs_1", field.Slug("  GyGe  Kurs\t1 "))
	require.Equal(t, "", field.Slug("   "))
	require.Equal(t, "a_b", field.CollapseWhitespaceToUnderscore("a \n b"))
}

func TestNormalizeName(t *testing.T) {
	decomposed := "Mu\u0308ller"
	require.Equal(t, "M\u00fcller", field.NormalizeName(decomposed))
}
