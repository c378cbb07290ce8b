package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rpggio/lealogineo/internal/domain/letter"
)

// Renderer writes letter documents through pdfcpu's JSON page description.
type Renderer struct {
	conf   *model.Configuration
	logger *slog.Logger
}

// NewRenderer creates a renderer that does not touch the pdfcpu config directory.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	api.DisableConfigDir()
	return &Renderer{conf: model.NewDefaultConfiguration(), logger: logger}
}

// Render lays out doc and writes it to doc.Unit.Path().
func (r *Renderer) Render(ctx context.Context, doc letter.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.Write(&buf, doc); err != nil {
		return err
	}
	if err := os.MkdirAll(doc.Unit.Dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", doc.Unit.Dir, err)
	}
	if err := writeFileAtomic(doc.Unit.Path(), buf.Bytes()); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	r.logger.Debug("pdf rendered", "path", doc.Unit.Path(), "bytes", buf.Len())
	return nil
}

// Remove deletes a rendered document. A missing file is not an error.
func (r *Renderer) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing pdf: %w", err)
	}
	return nil
}

// writeFileAtomic writes data beside path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".letter-*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Write renders doc as PDF into buf.
func (r *Renderer) Write(buf *bytes.Buffer, doc letter.Document) error {
	desc, err := Describe(Layout(doc))
	if err != nil {
		return err
	}
	if err := api.Create(nil, bytes.NewReader(desc), buf, r.conf); err != nil {
		return fmt.Errorf("creating pdf: %w", err)
	}
	return nil
}

type fontSpec struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type textSpec struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  fontSpec   `json:"font"`
}

type contentSpec struct {
	Text []textSpec `json:"text"`
}

type pageSpec struct {
	Content contentSpec `json:"content"`
}

type documentSpec struct {
	Paper  string              `json:"paper"`
	Origin string              `json:"origin"`
	Pages  map[string]pageSpec `json:"pages"`
}

// Describe encodes pages as a pdfcpu JSON page description.
func Describe(pages []Page) ([]byte, error) {
	spec := documentSpec{Paper: "A4P", Origin: "LowerLeft", Pages: make(map[string]pageSpec, len(pages))}
	for i, p := range pages {
		var texts []textSpec
		for _, l := range p.Lines {
			if l.Text == "" {
				continue
			}
			texts = append(texts, textSpec{
				Value: l.Text,
				Pos:   [2]float64{l.X, l.Y},
				Font:  fontSpec{Name: l.Font, Size: l.Size},
			})
		}
		if p.Footer != "" {
			texts = append(texts, textSpec{
				Value: p.Footer,
				Pos:   [2]float64{MarginLeft, FooterY},
				Font:  fontSpec{Name: FontRegular, Size: FooterSize},
			})
		}
		spec.Pages[strconv.Itoa(i+1)] = pageSpec{Content: contentSpec{Text: texts}}
	}
	out, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("encoding page description: %w", err)
	}
	return out, nil
}
