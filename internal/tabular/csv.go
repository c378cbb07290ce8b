package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Text encodings of CSV files.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVOptions configures CSV reading and writing.
type CSVOptions struct {
	Delimiter rune
	Encoding  string
}

// ParseEncoding normalizes an encoding name. Empty selects UTF-8.
func ParseEncoding(s string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "windows-1252", "cp1252", "latin-1", "latin1", "iso-8859-1":
		return EncodingWindows1252, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEncoding, s)
	}
}

// ParseDelimiter accepts a single character. Empty selects a comma.
func ParseDelimiter(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: delimiter %q must be one character", ErrUnsupportedFormat, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func (o CSVOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// readCSV decodes r into rows, removing a UTF-8 byte order mark.
func readCSV(r io.Reader, opts CSVOptions) ([][]string, error) {
	enc, err := ParseEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if enc == EncodingWindows1252 {
		r = charmap.Windows1252.NewDecoder().Reader(r)
	} else {
		br := bufio.NewReader(r)
		if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = br.Discard(len(utf8BOM))
		}
		r = br
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.delimiter()
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return rows, nil
}

// writeCSV encodes rows to w in the configured encoding.
func writeCSV(w io.Writer, rows [][]string, opts CSVOptions) error {
	enc, err := ParseEncoding(opts.Encoding)
	if err != nil {
		return err
	}
	if enc == EncodingWindows1252 {
		tw := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Writer(w)
		if c, ok := tw.(io.Closer); ok {
			defer c.Close()
		}
		w = tw
	}
	cw := csv.NewWriter(w)
	cw.Comma = opts.delimiter()
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
