package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rpggio/lealogineo/internal/config"
	"github.com/rpggio/lealogineo/internal/domain/letter"
	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/rpggio/lealogineo/internal/metrics"
	"github.com/rpggio/lealogineo/internal/pdf"
	"github.com/rpggio/lealogineo/internal/sqlite"
	"github.com/rpggio/lealogineo/internal/tabular"
	"github.com/rpggio/lealogineo/internal/xmltree"
)

// app holds what every command needs: configuration, logger and metrics.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	closers []io.Closer
}

func newApp(opts *globalOptions, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	a := &app{cfg: cfg, metrics: metrics.New()}

	logWriter := stderr
	if cfg.Log.Path != "" {
		file, err := openCappedLog(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file)
			logWriter = file
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return a, nil
}

// close flushes metrics and releases the log file.
func (a *app) close() {
	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.logger.Warn("metrics not written", "path", path, "error", err)
		}
	}
	for _, c := range a.closers {
		c.Close()
	}
}

func (a *app) rosterService() (*roster.Service, error) {
	opts, err := a.cfg.Roster.CSVOptions()
	if err != nil {
		return nil, err
	}
	xlsx, err := tabular.NewExporter(roster.FormatXLSX, opts, a.logger)
	if err != nil {
		return nil, err
	}
	csv, err := tabular.NewExporter(roster.FormatCSV, opts, a.logger)
	if err != nil {
		return nil, err
	}
	exporters := map[roster.OutputFormat]roster.Exporter{
		roster.FormatXLSX:   xlsx,
		roster.FormatCSV:    csv,
		roster.FormatSQLite: sqlite.NewExporter(a.logger),
	}
	return roster.NewService(tabular.NewReader(opts, a.logger), exporters, a.metrics, a.logger), nil
}

func (a *app) letterService() (*letter.Service, error) {
	opts, err := a.cfg.Letters.CSVOptions()
	if err != nil {
		return nil, err
	}
	return letter.NewService(
		tabular.NewReader(opts, a.logger),
		xmltree.NewReader(a.logger),
		pdf.NewRenderer(a.logger),
		a.metrics,
		a.logger,
	), nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
