package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/ktuncer/wastewise/internal/models"
)

// MemoryAnalysisRepository keeps records in process memory. It backs
// tests and lets the server run without a database URL.
type MemoryAnalysisRepository struct {
	mu      sync.RWMutex
	records []models.AnalysisRecord
}

func NewMemoryAnalysisRepository() *MemoryAnalysisRepository {
	return &MemoryAnalysisRepository{}
}

func (r *MemoryAnalysisRepository) Create(ctx context.Context, record *models.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *MemoryAnalysisRepository) BulkCreate(ctx context.Context, records []*models.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range records {
		r.records = append(r.records, *record)
	}
	return nil
}

func (r *MemoryAnalysisRepository) ListAnalysisRecords(ctx context.Context) ([]models.AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.AnalysisRecord, len(r.records))
	copy(out, r.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryAnalysisRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *MemoryAnalysisRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
	return nil
}
