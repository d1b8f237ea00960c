// Package urlgen drives url rewrite generation from a JSONL entity export:
// one generation run per entity type, executed concurrently.
package urlgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/catalog-urlgen/internal/config"
	"github.com/heartmarshall/catalog-urlgen/internal/domain"
	"github.com/heartmarshall/catalog-urlgen/internal/service/urlrewrite"
)

// maxConcurrentRuns bounds the entity types processed at once.
const maxConcurrentRuns = 4

// Options controls a pipeline execution.
type Options struct {
	// DryRun renders the upsert statements of every run and writes them to
	// Out as JSONL instead of executing them.
	DryRun bool
	Out    io.Writer
	// Tx, when set, wraps each run's upserts in one transaction so a failing
	// chunk rolls back the chunks before it.
	Tx TxRunner
}

// RunResult holds the outcome of one entity type run.
type RunResult struct {
	RunID             string
	URLKeyAttributeID int
	Rows              int
	Persist           urlrewrite.PersistResult
	// RolledBack is set when a transactional run failed and nothing was kept.
	RolledBack bool
	Duration   time.Duration
	Err               error
}

// Pipeline runs url rewrite generation for batches of entities.
type Pipeline struct {
	log  *slog.Logger
	svc  *urlrewrite.Service
	cfg  config.RewriteConfig
	opts Options

	mu      sync.Mutex
	results map[string]RunResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, svc *urlrewrite.Service, cfg config.RewriteConfig, opts Options) *Pipeline {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Pipeline{
		log:     log,
		svc:     svc,
		cfg:     cfg,
		opts:    opts,
		results: make(map[string]RunResult),
	}
}

// Results returns per entity type results after Run completes.
func (p *Pipeline) Results() map[string]RunResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	return maps.Clone(p.results)
}

// Run processes every batch in its own generation run. A failing run does
// not stop the others; the first error is returned once all have finished.
func (p *Pipeline) Run(ctx context.Context, batches []Batch) error {
	var g errgroup.Group
	g.SetLimit(maxConcurrentRuns)

	for _, b := range batches {
		g.Go(func() error {
			start := time.Now()
			res := p.runBatch(ctx, b)
			res.Duration = time.Since(start)
			p.record(b.EntityType, res)
			if res.Err != nil {
				return fmt.Errorf("%s: %w", b.EntityType, res.Err)
			}
			return nil
		})
	}

	err := g.Wait()
	p.log.Info("pipeline completed", slog.Int("runs", len(batches)), slog.Bool("dry_run", p.opts.DryRun))
	return err
}

func (p *Pipeline) runBatch(ctx context.Context, b Batch) RunResult {
	run, err := p.svc.NewRun(b.EntityType)
	if err != nil {
		return RunResult{Err: err}
	}
	ctx = run.Context(ctx)
	res := RunResult{RunID: run.ID.String()}

	log := p.log.With(slog.String("run_id", res.RunID), slog.String("entity_type", b.EntityType))
	log.Info("run started", slog.Int("entities", len(b.Entities)))

	if typeID, ok := p.cfg.EntityTypeID(b.EntityType); ok {
		attrID, err := run.URLKeyAttributeID(ctx, typeID)
		if err != nil {
			res.Err = err
			return res
		}
		res.URLKeyAttributeID = attrID
		log.Debug("url_key attribute resolved", slog.Int("entity_type_id", typeID), slog.Int("attribute_id", attrID))
	}

	if p.opts.DryRun {
		stmts, rendered, err := run.Render(ctx, b.Entities)
		res.Persist = rendered
		res.Rows = rendered.Received
		if err != nil {
			res.Err = err
			return res
		}
		res.Err = p.writeStatements(res.RunID, b.EntityType, stmts)
		return res
	}

	generate := func(ctx context.Context) error {
		var err error
		res.Persist, err = run.Generate(ctx, b.Entities)
		return err
	}
	if p.opts.Tx != nil {
		res.Err = p.opts.Tx.RunInTx(ctx, generate)
		if res.Err != nil {
			res.RolledBack = true
			res.Persist.Persisted = 0
			res.Persist.RowsAffected = 0
		}
	} else {
		res.Err = generate(ctx)
	}
	res.Rows = res.Persist.Received

	var pe *domain.PersistenceError
	switch {
	case errors.As(res.Err, &pe):
		log.Error("persist failed",
			slog.Int("chunk", pe.Chunk),
			slog.Int("rows", pe.Rows),
			slog.Int("persisted", res.Persist.Persisted),
			slog.Bool("rolled_back", res.RolledBack),
			slog.String("error", pe.Err.Error()),
		)
	case res.Err != nil:
		log.Error("run failed", slog.Bool("rolled_back", res.RolledBack), slog.String("error", res.Err.Error()))
	default:
		log.Info("run completed",
			slog.Int("rows", res.Rows),
			slog.Int("dropped", res.Persist.Dropped),
			slog.Int("collapsed", res.Persist.Collapsed),
			slog.Int("chunks", res.Persist.Chunks),
		)
	}
	return res
}

// dryRunStatement is the JSONL shape of one rendered upsert.
type dryRunStatement struct {
	RunID      string `json:"run_id"`
	EntityType string `json:"entity_type"`
	Dialect    string `json:"dialect"`
	Chunk      int    `json:"chunk"`
	Rows       int    `json:"rows"`
	Query      string `json:"query"`
	Args       []any  `json:"args"`
}

func (p *Pipeline) writeStatements(runID, entityType string, stmts []urlrewrite.Statement) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	enc := json.NewEncoder(p.opts.Out)
	for _, st := range stmts {
		if err := enc.Encode(dryRunStatement{
			RunID:      runID,
			EntityType: entityType,
			Dialect:    string(p.svc.Dialect()),
			Chunk:      st.Chunk,
			Rows:       st.Rows,
			Query:      st.Query,
			Args:       st.Args,
		}); err != nil {
			return fmt.Errorf("write dry-run statement: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) record(entityType string, res RunResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[entityType] = res
}
