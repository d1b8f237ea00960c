package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/catalog-urlgen/internal/app"
	"github.com/heartmarshall/catalog-urlgen/internal/app/urlgen"
	"github.com/heartmarshall/catalog-urlgen/internal/config"
	"github.com/heartmarshall/catalog-urlgen/internal/domain"
	"github.com/heartmarshall/catalog-urlgen/internal/service/urlrewrite"
)

type flags struct {
	configPath string
	input      string
	entityType string
	dryRun     bool
	atomic     bool
	migrate    bool
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "urlgen",
		Short:        "Generate catalog url rewrites from a JSONL entity export",
		Version:      app.CurrentBuild().String(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "path to YAML config file (default: CONFIG_PATH or ./config.yaml)")
	cmd.Flags().StringVar(&f.input, "input", "-", `JSONL file of entities ("-" for stdin)`)
	cmd.Flags().StringVar(&f.entityType, "entity-type", "", "only process this entity type; default for records without one")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the upsert statements as JSONL without executing them")
	cmd.Flags().BoolVar(&f.atomic, "atomic", false, "commit each entity type run in one transaction")
	cmd.Flags().BoolVar(&f.migrate, "migrate", false, "apply embedded migrations before generating")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Minute, "overall deadline")

	return cmd
}

func run(ctx context.Context, f flags, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	path := f.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return err
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting urlgen",
		slog.Any("build", app.CurrentBuild()),
		slog.String("driver", cfg.Database.Driver),
		slog.Bool("dry_run", f.dryRun),
		slog.Bool("atomic", f.atomic),
	)

	dialect, err := urlrewrite.ParseDialect(cfg.Rewrite.EffectiveDialect(cfg.Database.Driver))
	if err != nil {
		logger.Error("invalid dialect", slog.String("error", err.Error()))
		return err
	}
	if string(dialect) != cfg.Database.Driver && !f.dryRun {
		err := fmt.Errorf("dialect %s cannot run on driver %s; use --dry-run to render statements only", dialect, cfg.Database.Driver)
		logger.Error("dialect mismatch", slog.String("error", err.Error()))
		return err
	}

	batches, stats, err := readInput(f.input, f.entityType, stdin)
	if err != nil {
		logger.Error("read input", slog.String("input", f.input), slog.String("error", err.Error()))
		return err
	}
	logger.Info("input parsed",
		slog.Int("lines", stats.Lines),
		slog.Int("entities", stats.Entities),
		slog.Int("skipped", stats.Skipped),
		slog.Int("entity_types", len(batches)),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	backend, err := urlgen.OpenBackend(ctx, logger, cfg.Database, f.migrate || cfg.Rewrite.AutoMigrate)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		return err
	}
	defer backend.Close()

	svc, err := urlrewrite.NewService(logger, backend.Catalog, backend.Catalog, backend.Exec, urlrewrite.Options{
		Table:       cfg.Rewrite.Table,
		ChunkSize:   cfg.Rewrite.ChunkSize,
		Dialect:     dialect,
		URLSuffixes: cfg.Rewrite.URLSuffixes(),
	})
	if err != nil {
		logger.Error("create rewrite service", slog.String("error", err.Error()))
		return err
	}

	opts := urlgen.Options{DryRun: f.dryRun, Out: stdout}
	if f.atomic {
		opts.Tx = backend.Tx
	}
	pipeline := urlgen.NewPipeline(logger, svc, cfg.Rewrite, opts)
	if err := pipeline.Run(ctx, batches); err != nil {
		attrs := []any{slog.String("error", err.Error())}
		var pe *domain.PersistenceError
		if errors.As(err, &pe) {
			attrs = append(attrs, slog.Int("chunk", pe.Chunk))
		}
		logger.Error("urlgen failed", attrs...)
		return err
	}

	logger.Info("urlgen completed successfully")
	return nil
}

func readInput(path, entityType string, stdin io.Reader) ([]urlgen.Batch, urlgen.ReadStats, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, urlgen.ReadStats{}, err
		}
		defer f.Close()
		r = f
	}
	return urlgen.ReadEntities(r, entityType)
}
