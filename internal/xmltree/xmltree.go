// Package xmltree parses XML account exports into credential node trees.
package xmltree

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/lealogineo/internal/domain/credential"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	// ErrNotXML indicates a file without the .xml extension.
	ErrNotXML = errors.New("credential export must be an .xml file")
	// ErrEmptyDocument indicates a document without a root element.
	ErrEmptyDocument = errors.New("xml document has no root element")
	// ErrSourceNotFound indicates a missing input file.
	ErrSourceNotFound = errors.New("xml file not found")
)

// Parse reads one XML document. Element names lose their namespace prefix.
// Declared encodings other than UTF-8 are decoded via their IANA label.
func Parse(r io.Reader) (*credential.Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("unsupported xml encoding %q: %w", label, err)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var (
		root  *credential.Node
		stack []*credential.Node
		text  []*strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &credential.Node{Tag: t.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
			text = append(text, &strings.Builder{})
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			n := stack[len(stack)-1]
			n.Text = text[len(text)-1].String()
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// Reader loads XML exports from disk.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a reader.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadTree parses the document at path.
func (r *Reader) ReadTree(ctx context.Context, path string) (*credential.Node, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xml") {
		return nil, fmt.Errorf("%w: %s", ErrNotXML, filepath.Base(path))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("xml export parsed", "path", path, "root", root.Tag, "children", len(root.Children))
	return root, nil
}
