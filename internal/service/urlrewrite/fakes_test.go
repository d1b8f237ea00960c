package urlrewrite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// fakeAttrs counts lookups and returns a fixed id per entity type id.
type fakeAttrs struct {
	mu    sync.Mutex
	ids   map[int]int
	err   error
	calls int
}

func (f *fakeAttrs) LookupAttributeID(_ context.Context, entityTypeID int, code string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, false, f.err
	}
	if code != "url_key" {
		return 0, false, errors.New("unexpected attribute code " + code)
	}
	id, ok := f.ids[entityTypeID]
	return id, ok, nil
}

type fakeStores struct {
	ids   []int64
	err   error
	calls int
}

func (f *fakeStores) ListStoreIDs(_ context.Context, minID int64) ([]int64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []int64
	for _, id := range f.ids {
		if id > minID {
			out = append(out, id)
		}
	}
	return out, nil
}

type execCall struct {
	query string
	args  []any
}

// fakeExec records statements and fails on the configured call index.
type fakeExec struct {
	calls  []execCall
	failAt int // 1-based; 0 never fails
	err    error
}

func (f *fakeExec) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return 0, f.err
	}
	return int64(len(args) / 9), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, attrs *fakeAttrs, stores *fakeStores, exec *fakeExec, opts Options) *Service {
	t.Helper()
	if attrs == nil {
		attrs = &fakeAttrs{}
	}
	if stores == nil {
		stores = &fakeStores{}
	}
	if exec == nil {
		exec = &fakeExec{}
	}
	svc, err := NewService(discardLogger(), attrs, stores, exec, opts)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}
