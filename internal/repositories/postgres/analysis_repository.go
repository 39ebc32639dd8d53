package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ktuncer/wastewise/internal/models"
)

type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

func (r *AnalysisRepository) BulkCreate(ctx context.Context, records []*models.AnalysisRecord) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"analysis_results"},
		[]string{
			"id", "image_url", "food_category", "food_type",
			"is_waste", "photo_day", "analysis_date", "created_at",
		},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			return []interface{}{
				records[i].ID,
				records[i].ImageURL,
				records[i].FoodCategory,
				records[i].FoodType,
				records[i].IsWaste,
				nullable(records[i].PhotoDay),
				nullable(records[i].AnalysisDate),
				records[i].CreatedAt,
			}, nil
		}),
	)
	return err
}

func (r *AnalysisRepository) Create(ctx context.Context, record *models.AnalysisRecord) error {
	query := `
        INSERT INTO analysis_results (
            id, image_url, food_category, food_type, is_waste,
            photo_day, analysis_date, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8
        )
        ON CONFLICT (image_url) DO UPDATE SET
            food_category = EXCLUDED.food_category,
            food_type = EXCLUDED.food_type,
            is_waste = EXCLUDED.is_waste,
            photo_day = EXCLUDED.photo_day,
            analysis_date = EXCLUDED.analysis_date
    `

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.ImageURL,
		record.FoodCategory,
		record.FoodType,
		record.IsWaste,
		nullable(record.PhotoDay),
		nullable(record.AnalysisDate),
		record.CreatedAt,
	)
	return err
}

func (r *AnalysisRepository) ListAnalysisRecords(ctx context.Context) ([]models.AnalysisRecord, error) {
	query := `
        SELECT
            id,
            image_url,
            food_category,
            food_type,
            is_waste,
            photo_day,
            analysis_date,
            created_at
        FROM analysis_results
        ORDER BY created_at DESC
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		var record models.AnalysisRecord
		var photoDay, analysisDate *string
		err := rows.Scan(
			&record.ID,
			&record.ImageURL,
			&record.FoodCategory,
			&record.FoodType,
			&record.IsWaste,
			&photoDay,
			&analysisDate,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if photoDay != nil {
			record.PhotoDay = *photoDay
		}
		if analysisDate != nil {
			record.AnalysisDate = *analysisDate
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *AnalysisRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM analysis_results").Scan(&count)
	return count, err
}

func (r *AnalysisRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM analysis_results")
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
