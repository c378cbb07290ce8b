package letter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/lealogineo/internal/domain/credential"
	"golang.org/x/sync/errgroup"
)

// Service generates credential letters.
type Service struct {
	tables   TableReader
	trees    TreeReader
	renderer Renderer
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a letter service. recorder may be nil.
func NewService(tables TableReader, trees TreeReader, renderer Renderer, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tables:   tables,
		trees:    trees,
		renderer: renderer,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for file name timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GenerateRequest describes one letter run.
type GenerateRequest struct {
	SourcePath      string
	OutputDir       string
	Mode            Mode
	Mapping         credential.TagMapping
	Letterhead      Letterhead
	DefaultCategory string
	DefaultSeminar  string
	Workers         int
	// DryRun aggregates without rendering.
	DryRun bool
}

// GenerateResult summarizes a letter run.
type GenerateResult struct {
	RunID    string
	Ingested int
	Skipped  int
	Units    []Unit
}

// Paths lists the output path of every unit.
func (r *GenerateResult) Paths() []string {
	out := make([]string, 0, len(r.Units))
	for _, u := range r.Units {
		out = append(out, u.Path())
	}
	return out
}

// Ingest loads and ingests a credential export. The second return value
// counts rows skipped for an empty password.
func (s *Service) Ingest(ctx context.Context, path string, mapping credential.TagMapping) ([]credential.Record, int, error) {
	if strings.TrimSpace(path) == "" {
		return nil, 0, ErrMissingSource
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		root, err := s.trees.ReadTree(ctx, path)
		if err != nil {
			return nil, 0, fmt.Errorf("reading credential tree: %w", err)
		}
		return credential.FromTree(root, mapping), 0, nil
	case ".csv", ".xlsx", ".xlsm":
		rows, err := s.tables.ReadRows(ctx, path)
		if err != nil {
			return nil, 0, fmt.Errorf("reading credential table: %w", err)
		}
		res := credential.FromTable(rows)
		return res.Records, res.Skipped, nil
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedSource, filepath.Base(path))
	}
}

// Generate ingests the export, aggregates it into documents and renders them
// with a bounded number of workers. The first render failure cancels the rest
// and removes every document already written.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	runID := uuid.NewString()
	s.logger.Info("letter run started", "run_id", runID, "source", req.SourcePath)

	records, skipped, err := s.Ingest(ctx, req.SourcePath, req.Mapping)
	if err != nil {
		return nil, err
	}
	res := &GenerateResult{RunID: runID, Ingested: len(records), Skipped: skipped}
	s.logger.Info("credentials ingested", "run_id", runID, "records", len(records), "skipped", skipped)

	units, err := Aggregate(records, Options{
		Mode:            req.Mode,
		OutputRoot:      req.OutputDir,
		DefaultCategory: req.DefaultCategory,
		DefaultSeminar:  req.DefaultSeminar,
		Timestamp:       s.now(),
	})
	if err != nil {
		s.observe(res)
		return res, err
	}
	res.Units = units
	if req.DryRun {
		return res, nil
	}

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	var (
		mu       sync.Mutex
		rendered []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, u := range units {
		doc := Document{Unit: u, Sections: make([][]Block, 0, len(u.Sections))}
		for _, sec := range u.Sections {
			doc.Sections = append(doc.Sections, Compose(sec.Record, req.Letterhead))
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := s.renderer.Render(gctx, doc); err != nil {
				return fmt.Errorf("rendering %s: %w", doc.Unit.Path(), err)
			}
			mu.Lock()
			rendered = append(rendered, doc.Unit.Path())
			mu.Unlock()
			s.logger.Info("letter written", "run_id", runID, "path", doc.Unit.Path(), "sections", len(doc.Sections))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.discard(runID, rendered)
		return nil, err
	}

	s.observe(res)
	s.logger.Info("letter run finished", "run_id", runID, "documents", len(units))
	return res, nil
}

func (s *Service) discard(runID string, paths []string) {
	for _, p := range paths {
		if err := s.renderer.Remove(p); err != nil {
			s.logger.Warn("removing letter failed", "run_id", runID, "path", p, "error", err)
			continue
		}
		s.logger.Info("letter removed", "run_id", runID, "path", p)
	}
}

func (s *Service) observe(res *GenerateResult) {
	if s.recorder != nil {
		s.recorder.ObserveLetters(res.Ingested, res.Skipped, len(res.Units))
	}
}
