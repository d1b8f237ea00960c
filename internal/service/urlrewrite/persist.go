package urlrewrite

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/catalog-urlgen/internal/domain"
	"github.com/heartmarshall/catalog-urlgen/pkg/ctxutil"
)

// PersistResult summarizes a Persist call.
type PersistResult struct {
	// Received is the number of rows passed in.
	Received int
	// Dropped is the number of invalid rows silently skipped.
	Dropped int
	// Collapsed is the number of valid rows superseded by a later row with
	// the same request path.
	Collapsed int
	// Persisted is the number of distinct rows written by executed chunks.
	Persisted int
	// Chunks is the number of executed upsert statements.
	Chunks int
	// RowsAffected is the sum reported by the executor; drivers count
	// updated rows differently, so it is informational only.
	RowsAffected int64
}

// Persist drops invalid rows, collapses rows sharing a request path into
// the last one, splits the rest into chunks of at most Options.ChunkSize
// rows and upserts each chunk keyed on request_path.
//
// Chunks run sequentially without a shared transaction: on failure the
// returned *domain.PersistenceError names the failing chunk, and all
// earlier chunks stay committed. Re-running the same input is safe.
// Callers needing all-or-nothing semantics wrap Persist in a transaction.
func (s *Service) Persist(ctx context.Context, rows []domain.URLRewrite) (PersistResult, error) {
	chunks, result := s.plan(rows)

	log := s.log.With(slog.String("entity_type", ctxutil.EntityTypeFromCtx(ctx)))
	if runID, ok := ctxutil.RunIDFromCtx(ctx); ok {
		log = log.With(slog.String("run_id", runID.String()))
	}

	for i, batch := range chunks {
		query, args, err := buildUpsert(s.opts.Dialect, s.opts.Table, batch)
		if err != nil {
			return result, &domain.PersistenceError{Chunk: i, Rows: len(batch), Err: err}
		}

		affected, err := s.exec.Exec(ctx, query, args...)
		if err != nil {
			return result, &domain.PersistenceError{Chunk: i, Rows: len(batch), Err: err}
		}

		result.Chunks++
		result.Persisted += len(batch)
		result.RowsAffected += affected

		log.DebugContext(ctx, "chunk upserted",
			slog.Int("chunk", i),
			slog.Int("rows", len(batch)),
			slog.Int64("affected", affected),
		)
	}

	log.InfoContext(ctx, "url rewrites persisted",
		slog.Int("received", result.Received),
		slog.Int("dropped", result.Dropped),
		slog.Int("collapsed", result.Collapsed),
		slog.Int("persisted", result.Persisted),
		slog.Int("chunks", result.Chunks),
	)
	return result, nil
}

// Statement is one rendered upsert covering a chunk of rows.
type Statement struct {
	Chunk int
	Rows  int
	Query string
	Args  []any
}

// Render plans rows the way Persist does and returns the statements Persist
// would execute. Nothing is sent to the database.
func (s *Service) Render(rows []domain.URLRewrite) ([]Statement, PersistResult, error) {
	chunks, result := s.plan(rows)

	stmts := make([]Statement, 0, len(chunks))
	for i, batch := range chunks {
		query, args, err := buildUpsert(s.opts.Dialect, s.opts.Table, batch)
		if err != nil {
			return nil, result, &domain.PersistenceError{Chunk: i, Rows: len(batch), Err: err}
		}
		stmts = append(stmts, Statement{Chunk: i, Rows: len(batch), Query: query, Args: args})
	}
	result.Chunks = len(stmts)
	return stmts, result, nil
}

func (s *Service) plan(rows []domain.URLRewrite) ([][]domain.URLRewrite, PersistResult) {
	valid := filterValid(rows)
	unique := lastByRequestPath(valid)
	return chunk(unique, s.opts.ChunkSize), PersistResult{
		Received:  len(rows),
		Dropped:   len(rows) - len(valid),
		Collapsed: len(valid) - len(unique),
	}
}

func filterValid(rows []domain.URLRewrite) []domain.URLRewrite {
	valid := make([]domain.URLRewrite, 0, len(rows))
	for _, r := range rows {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	return valid
}

// lastByRequestPath collapses rows sharing a request path into the last
// one, kept at the position of the first occurrence. The table is keyed on
// request_path alone, so only the last row could survive anyway.
func lastByRequestPath(rows []domain.URLRewrite) []domain.URLRewrite {
	pos := make(map[string]int, len(rows))
	out := make([]domain.URLRewrite, 0, len(rows))
	for _, r := range rows {
		if i, ok := pos[r.RequestPath]; ok {
			out[i] = r
			continue
		}
		pos[r.RequestPath] = len(out)
		out = append(out, r)
	}
	return out
}

// chunk partitions items into consecutive slices of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		size = ChunkSize
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		chunks = append(chunks, items[i:end:end])
	}
	return chunks
}
