package export

import (
	"context"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/ktuncer/wastewise/internal/analytics"
)

type parquetRecord struct {
	ID           string `parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	ImageURL     string `parquet:"name=image_url, type=BYTE_ARRAY, convertedtype=UTF8"`
	FoodCategory string `parquet:"name=food_category, type=BYTE_ARRAY, convertedtype=UTF8"`
	FoodType     string `parquet:"name=food_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	IsWaste      bool   `parquet:"name=is_waste, type=BOOLEAN"`
	PhotoDay     string `parquet:"name=photo_day, type=BYTE_ARRAY, convertedtype=UTF8"`
	AnalysisDate string `parquet:"name=analysis_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	CreatedAt    int64  `parquet:"name=created_at, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
}

// ToParquet writes the full current record set to a local parquet
// file, for offline analysis of the waste history.
func ToParquet(ctx context.Context, src analytics.RecordSource, path string) (int, error) {
	records, err := src.ListAnalysisRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching analysis records: %w", err)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return 0, fmt.Errorf("creating parquet file %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(parquetRecord), 2)
	if err != nil {
		return 0, fmt.Errorf("creating parquet writer: %w", err)
	}

	for _, record := range records {
		row := parquetRecord{
			ID:           record.ID,
			ImageURL:     record.ImageURL,
			FoodCategory: record.FoodCategory,
			FoodType:     record.FoodType,
			IsWaste:      record.IsWaste,
			PhotoDay:     record.PhotoDay,
			AnalysisDate: record.AnalysisDate,
			CreatedAt:    record.CreatedAt.UnixMilli(),
		}
		if err := pw.Write(row); err != nil {
			return 0, fmt.Errorf("writing parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return 0, fmt.Errorf("finalizing parquet file: %w", err)
	}
	return len(records), nil
}
