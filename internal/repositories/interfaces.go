package repositories

import (
	"context"

	"github.com/ktuncer/wastewise/internal/models"
)

// AnalysisRepository stores classified tray records and serves the
// full current set to the aggregation side. ListAnalysisRecords
// returns newest first and never paginates; filtering belongs to the
// aggregation engine.
type AnalysisRepository interface {
	Create(ctx context.Context, record *models.AnalysisRecord) error
	BulkCreate(ctx context.Context, records []*models.AnalysisRecord) error
	ListAnalysisRecords(ctx context.Context) ([]models.AnalysisRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
