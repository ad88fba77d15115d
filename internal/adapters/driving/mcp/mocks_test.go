package mcp

import (
	"context"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchContentsService.
type mockSearchService struct {
	result    domain.SearchResult
	count     int
	err       error
	lastQuery string
}

func (m *mockSearchService) SearchContents(
	_ context.Context,
	_ string,
) (<-chan domain.SearchResult, <-chan error) {
	values := make(chan domain.SearchResult, 1)
	errs := make(chan error, 1)
	values <- m.result
	close(values)
	close(errs)
	return values, errs
}

func (m *mockSearchService) GetSearchContentsCount(_ context.Context) (<-chan int, <-chan error) {
	values := make(chan int, 1)
	errs := make(chan error, 1)
	values <- m.count
	close(values)
	close(errs)
	return values, errs
}

func (m *mockSearchService) Search(_ context.Context, query string) (domain.SearchResult, error) {
	m.lastQuery = query
	return m.result, m.err
}

func (m *mockSearchService) SearchContentsCount(_ context.Context) (int, error) {
	return m.count, m.err
}

// mockSyncService is a mock implementation of driving.FtsSynchronizer.
type mockSyncService struct {
	run *domain.SyncRun
	err error
}

func (m *mockSyncService) PopulateFtsData(ctx context.Context) error {
	_, err := m.Populate(ctx, domain.SyncTriggerManual)
	return err
}

func (m *mockSyncService) Populate(_ context.Context, _ domain.SyncTrigger) (*domain.SyncRun, error) {
	return m.run, m.err
}

func (m *mockSyncService) Status(_ context.Context) (domain.SyncStatus, error) {
	return domain.SyncStatus{LastRun: m.run}, m.err
}

func (m *mockSyncService) ListRuns(_ context.Context, _ int) ([]domain.SyncRun, error) {
	if m.run == nil {
		return nil, m.err
	}
	return []domain.SyncRun{*m.run}, m.err
}

// mockContentService is a mock implementation of driving.ContentService.
type mockContentService struct {
	news   []domain.NewsResource
	topics []domain.Topic
	err    error
}

func (m *mockContentService) Import(_ context.Context, b domain.ContentBundle) (driving.ImportStats, error) {
	return driving.ImportStats{NewsResources: len(b.NewsResources), Topics: len(b.Topics)}, m.err
}

func (m *mockContentService) Replace(ctx context.Context, b domain.ContentBundle) (driving.ImportStats, error) {
	return m.Import(ctx, b)
}

func (m *mockContentService) ListNewsResources(_ context.Context) ([]domain.NewsResource, error) {
	return m.news, m.err
}

func (m *mockContentService) ListTopics(_ context.Context) ([]domain.Topic, error) {
	return m.topics, m.err
}

func validPorts() *Ports {
	return &Ports{Search: &mockSearchService{}, Sync: &mockSyncService{}}
}
