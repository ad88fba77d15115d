package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
)

var (
	_ driving.SearchContentsService = (*mockSearch)(nil)
	_ driving.FtsSynchronizer       = (*mockSync)(nil)
)

// mockSearch answers every stream with one emission and then closes it,
// or with err alone when set.
type mockSearch struct {
	mu      sync.Mutex
	results map[string]domain.SearchResult
	count   int
	err     error
	queries []string
}

func (m *mockSearch) SearchContents(_ context.Context, query string) (<-chan domain.SearchResult, <-chan error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	values := make(chan domain.SearchResult, 1)
	errs := make(chan error, 1)
	if m.err != nil {
		errs <- m.err
	} else {
		r, ok := m.results[query]
		if !ok {
			r = domain.EmptySearchResult()
		}
		values <- r
	}
	close(errs)
	close(values)
	return values, errs
}

func (m *mockSearch) GetSearchContentsCount(context.Context) (<-chan int, <-chan error) {
	values := make(chan int, 1)
	errs := make(chan error)
	values <- m.count
	close(errs)
	close(values)
	return values, errs
}

func (m *mockSearch) Search(_ context.Context, query string) (domain.SearchResult, error) {
	return m.results[query], m.err
}

func (m *mockSearch) SearchContentsCount(context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockSearch) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

type mockSync struct {
	run   *domain.SyncRun
	err   error
	calls int
}

func (m *mockSync) PopulateFtsData(ctx context.Context) error {
	_, err := m.Populate(ctx, domain.SyncTriggerManual)
	return err
}

func (m *mockSync) Populate(context.Context, domain.SyncTrigger) (*domain.SyncRun, error) {
	m.calls++
	return m.run, m.err
}

func (m *mockSync) Status(context.Context) (domain.SyncStatus, error) {
	return domain.SyncStatus{}, nil
}

func (m *mockSync) ListRuns(context.Context, int) ([]domain.SyncRun, error) {
	return nil, nil
}
