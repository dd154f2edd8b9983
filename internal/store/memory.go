package store

import (
	"context"
	"sync"

	"github.com/veritaslab/veritas/internal/model"
)

// MemoryStore keeps the result log in process memory. Intended for
// development and tests; history is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.Record
	nextID  int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Add appends a record and assigns the next id
func (s *MemoryStore) Add(ctx context.Context, rec *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, *rec)
	return nil
}

// List returns records newest-first with limit/offset pagination
func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || offset < 0 || offset >= len(s.records) {
		return []model.Record{}, nil
	}

	out := make([]model.Record, 0, limit)
	for i := len(s.records) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

// Get returns one record by id
func (s *MemoryStore) Get(ctx context.Context, id int64) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if s.records[i].ID == id {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

// Stats aggregates verdict counts and averages over the whole log
func (s *MemoryStore) Stats(ctx context.Context) (model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.Stats{
		Total:    len(s.records),
		Verdicts: make(map[model.Verdict]int),
	}
	if stats.Total == 0 {
		return stats, nil
	}

	var confidenceSum, timeSum float64
	for _, rec := range s.records {
		stats.Verdicts[rec.Verdict]++
		confidenceSum += rec.ConfidenceScore
		timeSum += float64(rec.ProcessingTimeMS)
	}
	stats.AverageConfidence = confidenceSum / float64(stats.Total)
	stats.AverageProcessingTimeMS = timeSum / float64(stats.Total)
	return stats, nil
}

// Clear removes all records. Ids are not reset so they stay unique for
// the process lifetime.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
