package factories

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/ktuncer/wastewise/internal/models"
)

var fake = faker.New()

// AnalysisRecordFactory builds synthetic classified records for
// seeding demo environments.
type AnalysisRecordFactory struct {
	Rng *rand.Rand
}

func NewAnalysisRecordFactory(seed int64) *AnalysisRecordFactory {
	return &AnalysisRecordFactory{Rng: rand.New(rand.NewSource(seed))}
}

// CreateAnalysisRecord picks a random category, a dish from its known
// types, and a work-week day, addressed both by weekday and date so
// every view has data.
func (f *AnalysisRecordFactory) CreateAnalysisRecord(weekOf time.Time) models.AnalysisRecord {
	category := models.Categories[f.Rng.Intn(len(models.Categories))]
	types := models.FoodTypesByCategory[category]
	foodType := types[f.Rng.Intn(len(types))]

	dayIndex := f.Rng.Intn(len(models.WorkWeek))
	date := models.MondayOf(weekOf).AddDate(0, 0, dayIndex)

	createdAt := date.Add(time.Duration(10+f.Rng.Intn(6)) * time.Hour)

	return models.AnalysisRecord{
		ID:           cuid.New(),
		ImageURL:     fake.Internet().URL(),
		FoodCategory: string(category),
		FoodType:     foodType,
		IsWaste:      f.Rng.Float64() < 0.4,
		PhotoDay:     models.WorkWeek[dayIndex].Label(),
		AnalysisDate: date.Format(models.DateLayout),
		CreatedAt:    createdAt,
	}
}

// CreateBatch builds count records spread over the work week of weekOf.
func (f *AnalysisRecordFactory) CreateBatch(count int, weekOf time.Time) []*models.AnalysisRecord {
	records := make([]*models.AnalysisRecord, count)
	for i := range records {
		record := f.CreateAnalysisRecord(weekOf)
		records[i] = &record
	}
	return records
}
