// Package pdf lays out credential letters and writes them as PDF files.
package pdf

import (
	"strings"
	"unicode/utf8"

	"github.com/rpggio/lealogineo/internal/domain/letter"
)

// A4 portrait geometry in points.
const (
	PageWidth    = 595.0
	PageHeight   = 842.0
	MarginLeft   = 52.0
	MarginRight  = 52.0
	MarginTop    = 60.0
	MarginBottom = 60.0
	FooterY      = 30.0
	FooterSize   = 8
)

// Fonts are PDF standard fonts, so no embedding is required.
const (
	FontRegular = "Helvetica"
	FontBold    = "Helvetica-Bold"
)

// Line is one positioned line of text.
type Line struct {
	Text string
	Font string
	Size int
	X    float64
	Y    float64
}

// Page is one laid-out page.
type Page struct {
	Lines  []Line
	Footer string
}

type style struct {
	font    string
	size    int
	before  float64
	leading float64
}

var styles = map[letter.Style]style{
	letter.StyleBody:    {FontRegular, 11, 4, 14},
	letter.StyleHeading: {FontBold, 12, 10, 16},
	letter.StyleValue:   {FontBold, 13, 6, 17},
	letter.StyleSpacer:  {FontRegular, 11, 8, 0},
}

// Layout wraps and paginates doc. Every section starts on a new page and all
// of its pages carry the section footer.
func Layout(doc letter.Document) []Page {
	var pages []Page
	for i, blocks := range doc.Sections {
		footer := doc.Unit.FooterFor(i)
		page := Page{Footer: footer}
		y := PageHeight - MarginTop

		for _, b := range blocks {
			st := styles[b.Style]
			if b.Style == letter.StyleSpacer {
				y -= st.before
				continue
			}
			y -= st.before
			for _, text := range wrap(b.Text, maxRunes(st.size)) {
				if y-st.leading < MarginBottom {
					pages = append(pages, page)
					page = Page{Footer: footer}
					y = PageHeight - MarginTop
				}
				y -= st.leading
				page.Lines = append(page.Lines, Line{Text: text, Font: st.font, Size: st.size, X: MarginLeft, Y: y})
			}
		}
		pages = append(pages, page)
	}
	return pages
}

// maxRunes estimates how many characters of the given size fit on a line,
// assuming an average glyph width of half the font size.
func maxRunes(size int) int {
	return int((PageWidth - MarginLeft - MarginRight) / (float64(size) * 0.5))
}

// wrap splits text into lines of at most width runes, breaking at spaces.
// Words longer than width are split.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curLen = 0
	}
	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			if curLen > 0 {
				flush()
			}
			r := []rune(w)
			lines = append(lines, string(r[:width]))
			w = string(r[width:])
		}
		n := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+n > width {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += n
	}
	if curLen > 0 {
		flush()
	}
	return lines
}
