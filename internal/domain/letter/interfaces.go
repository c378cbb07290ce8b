package letter

import (
	"context"

	"github.com/rpggio/lealogineo/internal/domain/credential"
)

// TableReader loads a flat account export as rows, header first.
type TableReader interface {
	ReadRows(ctx context.Context, path string) ([][]string, error)
}

// TreeReader loads a markup account export.
type TreeReader interface {
	ReadTree(ctx context.Context, path string) (*credential.Node, error)
}

// Document is a unit with the composed text of each section. Each section
// starts on a new page and carries the footer Unit.FooterFor(i).
type Document struct {
	Unit     Unit
	Sections [][]Block
}

// Renderer writes a document to Unit.Path(). Remove deletes a document
// written earlier in the same run.
type Renderer interface {
	Render(ctx context.Context, doc Document) error
	Remove(path string) error
}

// Recorder receives per-run counts.
type Recorder interface {
	ObserveLetters(ingested, skipped, rendered int)
}
