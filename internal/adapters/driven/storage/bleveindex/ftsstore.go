// Package bleveindex implements FTS shadow stores on in-memory bleve indexes.
//
// Each store owns one index. Documents are keyed by a zero-padded
// insertion sequence so sorting hits by _id yields insertion order,
// which keeps match order identical to the SQLite backend.
package bleveindex

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/logger"
)

const (
	fieldEntityID = "entity_id"
	fieldText     = "text"
)

// Verify interface compliance.
var (
	_ driven.NewsResourceFtsStore = (*FtsStore[domain.NewsResourceFts])(nil)
	_ driven.TopicFtsStore        = (*FtsStore[domain.TopicFts])(nil)
)

// document is the indexed form of a shadow record.
type document struct {
	EntityID string `json:"entity_id"`
	Text     string `json:"text"`
}

// FtsStore is a driven.FtsStore backed by an in-memory bleve index.
type FtsStore[R domain.FtsRecord] struct {
	table   string
	feed    driven.ChangeFeed
	mapping *mapping.IndexMappingImpl

	mu    sync.RWMutex
	index bleve.Index
	seq   uint64
}

// NewFtsStore creates an empty store. The feed may be nil.
func NewFtsStore[R domain.FtsRecord](table string, feed driven.ChangeFeed) (*FtsStore[R], error) {
	m, err := newIndexMapping()
	if err != nil {
		return nil, err
	}
	idx, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("creating bleve index for %s: %w", table, err)
	}
	return &FtsStore[R]{
		table:   table,
		feed:    feed,
		mapping: m,
		index:   idx,
	}, nil
}

// NewNewsResourceFtsStore creates the news resource shadow store.
func NewNewsResourceFtsStore(feed driven.ChangeFeed) (*FtsStore[domain.NewsResourceFts], error) {
	return NewFtsStore[domain.NewsResourceFts](domain.ContentTypeNewsResources.FtsTable(), feed)
}

// NewTopicFtsStore creates the topic shadow store.
func NewTopicFtsStore(feed driven.ChangeFeed) (*FtsStore[domain.TopicFts], error) {
	return NewFtsStore[domain.TopicFts](domain.ContentTypeTopics.FtsTable(), feed)
}

// newIndexMapping stores entity ids verbatim and analyzes text with the
// shared tokenizer.
func newIndexMapping() (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()

	err := im.AddCustomAnalyzer(AnalyzerName, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": TokenizerName,
	})
	if err != nil {
		return nil, fmt.Errorf("adding analyzer: %w", err)
	}

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	idField.IncludeInAll = false

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = AnalyzerName
	textField.Store = false
	textField.IncludeTermVectors = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldEntityID, idField)
	doc.AddFieldMappingsAt(fieldText, textField)

	im.DefaultMapping = doc
	im.DefaultAnalyzer = AnalyzerName
	return im, nil
}

// Table returns the change feed name.
func (s *FtsStore[R]) Table() string {
	return s.table
}

// InsertAll appends records to the live index.
func (s *FtsStore[R]) InsertAll(ctx context.Context, records []R) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	next, err := s.indexRecords(s.index, s.seq, records)
	if err == nil {
		s.seq = next
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("inserting into %s: %w", s.table, err)
	}
	s.notify()
	return nil
}

// DeleteAllAndInsertAll builds a fresh index and swaps it in, so readers
// see either the old contents or the new ones.
func (s *FtsStore[R]) DeleteAllAndInsertAll(ctx context.Context, records []R) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fresh, err := bleve.NewMemOnly(s.mapping)
	if err != nil {
		return fmt.Errorf("replacing %s: %w", s.table, err)
	}
	next, err := s.indexRecords(fresh, 0, records)
	if err != nil {
		_ = fresh.Close()
		return fmt.Errorf("replacing %s: %w", s.table, err)
	}
	if err := ctx.Err(); err != nil {
		_ = fresh.Close()
		return err
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.seq = next
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		logger.Warn("closing replaced %s index: %v", s.table, err)
	}
	s.notify()
	return nil
}

// Count returns the number of indexed records.
func (s *FtsStore[R]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, err := s.index.DocCount()
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", s.table, err)
	}
	return int(n), nil
}

// Match returns entity ids of records containing every term as a token
// prefix, in insertion order.
func (s *FtsStore[R]) Match(ctx context.Context, q string) ([]string, error) {
	terms := domain.ParseQuery(q)
	if len(terms) == 0 {
		return []string{}, nil
	}

	prefixes := make([]query.Query, len(terms))
	for i, term := range terms {
		pq := bleve.NewPrefixQuery(term)
		pq.SetField(fieldText)
		prefixes[i] = pq
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := s.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("counting %s: %w", s.table, err)
	}
	if total == 0 {
		return []string{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(prefixes...), int(total), 0, false)
	req.Fields = []string{fieldEntityID}
	req.SortBy([]string{"_id"})

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", s.table, err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, ok := hit.Fields[fieldEntityID].(string)
		if !ok {
			return nil, fmt.Errorf("matching %s: hit %s has no entity id", s.table, hit.ID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close releases the index.
func (s *FtsStore[R]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// indexRecords batches records into idx starting at seq and returns the
// next sequence number.
func (s *FtsStore[R]) indexRecords(idx bleve.Index, seq uint64, records []R) (uint64, error) {
	if len(records) == 0 {
		return seq, nil
	}
	batch := idx.NewBatch()
	for _, rec := range records {
		doc := document{
			EntityID: rec.EntityID(),
			Text:     strings.Join(rec.SearchText(), "\n"),
		}
		if err := batch.Index(docID(seq), doc); err != nil {
			return 0, fmt.Errorf("indexing record %s: %w", rec.EntityID(), err)
		}
		seq++
	}
	if err := idx.Batch(batch); err != nil {
		return 0, fmt.Errorf("executing batch: %w", err)
	}
	return seq, nil
}

func (s *FtsStore[R]) notify() {
	if s.feed != nil {
		s.feed.Notify(s.table)
	}
}

// docID is zero padded so lexical order equals insertion order.
func docID(seq uint64) string {
	return fmt.Sprintf("%020d", seq)
}
