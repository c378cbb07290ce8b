package mocks

import (
	"context"
	"sync"

	"github.com/rpggio/lealogineo/internal/domain/credential"
	"github.com/rpggio/lealogineo/internal/domain/letter"
	"github.com/stretchr/testify/mock"
)

// TableReader is a mock for letter.TableReader.
type TableReader struct {
	mock.Mock
}

func (m *TableReader) ReadRows(ctx context.Context, path string) ([][]string, error) {
	args := m.Called(ctx, path)
	if rows, ok := args.Get(0).([][]string); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

// TreeReader is a mock for letter.TreeReader.
type TreeReader struct {
	mock.Mock
}

func (m *TreeReader) ReadTree(ctx context.Context, path string) (*credential.Node, error) {
	args := m.Called(ctx, path)
	if root, ok := args.Get(0).(*credential.Node); ok {
		return root, args.Error(1)
	}
	return nil, args.Error(1)
}

// Renderer is a mock for letter.Renderer. It keeps every rendered document.
type Renderer struct {
	mock.Mock

	mu       sync.Mutex
	Rendered []letter.Document
}

func (m *Renderer) Render(ctx context.Context, doc letter.Document) error {
	args := m.Called(ctx, doc)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.Rendered = append(m.Rendered, doc)
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *Renderer) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// LetterRecorder is a mock for letter.Recorder.
type LetterRecorder struct {
	mock.Mock
}

func (m *LetterRecorder) ObserveLetters(ingested, skipped, rendered int) {
	m.Called(ingested, skipped, rendered)
}
