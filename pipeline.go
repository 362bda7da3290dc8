package utfall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/utfall/domain/model"
)

// Pipeline runs the whole fetch-and-load sequence for one configuration.
type Pipeline struct {
	cfg      *Config
	client   *http.Client
	logger   *slog.Logger
	manifest model.Manifest
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithHTTPClient sets the HTTP client used for the probe and the download.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Pipeline) {
		if client != nil {
			p.client = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithManifest replaces the utf_all column manifest.
func WithManifest(m model.Manifest) Option {
	return func(p *Pipeline) {
		if len(m) > 0 {
			p.manifest = m
		}
	}
}

// Report summarizes a run.
type Report struct {
	// RunID identifies the run in log lines.
	RunID string
	// Fetched tells whether the remote file was downloaded.
	Fetched bool
	// Marker is the freshness marker of the local file after the run.
	Marker model.FreshnessMarker
	// Bytes is the downloaded size; 0 when the download was skipped.
	Bytes int64
	// Rows is the number of rows loaded.
	Rows int
	// Batches is the number of committed transactions.
	Batches int
	// Duration is the wall time of the run.
	Duration time.Duration
}

// NewPipeline creates a pipeline for cfg.
func NewPipeline(cfg *Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.HTTPTimeout},
		logger:   slog.Default(),
		manifest: UtfAllManifest(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// localState is what is known before deciding whether to download.
type localState struct {
	remote     model.FreshnessMarker
	stored     model.FreshnessMarker
	dataExists bool
}

// Run fetches the remote CSV if it changed and reloads the destination table from it.
// Every failure except the metadata probe is fatal and returned.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}
	logger := p.logger.With("run_id", report.RunID)

	if err := os.MkdirAll(p.cfg.BaseDir, dirPerm); err != nil {
		return report, fmt.Errorf("failed to create base directory %s: %w", p.cfg.BaseDir, err)
	}

	markers := NewMarkerStore(p.cfg.MarkerPath())
	fetcher := NewFetcher(p.cfg.Endpoint).
		WithClient(p.client).
		WithUserAgent(p.cfg.UserAgent).
		WithLogger(logger)

	state, err := p.inspect(ctx, fetcher, markers, logger)
	if err != nil {
		return report, err
	}
	report.Marker = state.stored

	if ShouldFetch(state.remote, state.stored, state.dataExists) {
		logger.Info("downloading", "endpoint", fetcher.Endpoint(), "reason", fetchReason(state.remote, state.stored, state.dataExists))
		result, err := fetcher.Fetch(ctx, p.cfg.DataPath(), markers)
		if err != nil {
			return report, err
		}
		report.Fetched = true
		report.Marker = result.Marker
		report.Bytes = result.Bytes
	} else {
		logger.Info("last-modified unchanged, skipping download", "last_modified", state.remote.String())
	}

	logger.Info("converting to sqlite", "source", p.cfg.DataPath(), "database", p.cfg.DatabasePath(), "table", p.cfg.Table)
	stats, err := p.load(ctx, logger)
	if stats != nil {
		report.Rows = stats.Rows
		report.Batches = stats.Batches
	}
	report.Duration = time.Since(start)
	if err != nil {
		return report, err
	}

	logger.Info("done", "rows", report.Rows, "batches", report.Batches, "fetched", report.Fetched, "duration", report.Duration)
	return report, nil
}

// inspect reads the stored marker, probes the remote marker and checks the local
// file concurrently. A failed probe degrades to an absent remote marker.
func (p *Pipeline) inspect(ctx context.Context, fetcher *Fetcher, markers *MarkerStore, logger *slog.Logger) (*localState, error) {
	state := &localState{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stored, err := markers.Read()
		if err != nil {
			return err
		}
		state.stored = stored
		return nil
	})

	g.Go(func() error {
		remote, err := fetcher.Probe(gctx)
		if err != nil {
			logger.Warn("failed to get remote last-modified, assuming changed", "error", err)
			return nil
		}
		state.remote = remote
		return nil
	})

	g.Go(func() error {
		exists, err := fileExists(p.cfg.DataPath())
		if err != nil {
			return err
		}
		state.dataExists = exists
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}

// load rebuilds the table and streams the local file into it.
// The source is opened before the table is dropped.
func (p *Pipeline) load(ctx context.Context, logger *slog.Logger) (stats *LoadStats, err error) {
	rows, err := OpenRowReader(p.cfg.DataPath(), csvDelimiter)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close() // Read-only file, nothing to lose on close
	}()

	db, err := OpenStore(ctx, p.cfg.DatabasePath())
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
	}()

	loader := NewLoader(db, p.cfg.Table, p.manifest).
		WithBatchSize(p.cfg.BatchSize).
		WithLogger(logger)

	if err := loader.CreateSchema(ctx); err != nil {
		return nil, err
	}
	return loader.Load(ctx, recordSource(rows, p.manifest))
}

// recordSource pulls rows from rows and maps them onto m.
func recordSource(rows *RowReader, m model.Manifest) RecordSource {
	return func() (model.Record, error) {
		row, err := rows.Read()
		if err != nil {
			return nil, err
		}
		record, err := ToRecord(row, m)
		if err != nil {
			var mismatch *SchemaMismatchError
			if errors.As(err, &mismatch) {
				mismatch.Line = rows.Line()
			}
			return nil, err
		}
		return record, nil
	}
}
