package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktuncer/wastewise/internal/models"
)

func record(category, foodType string, isWaste bool) models.AnalysisRecord {
	return models.AnalysisRecord{FoodCategory: category, FoodType: foodType, IsWaste: isWaste}
}

func TestWastePercentRoundsHalfUp(t *testing.T) {
	tests := []struct {
		waste, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{1, 2, 50},
		{1, 8, 13},  // 12.5 rounds up
		{5, 8, 63},  // 62.5 rounds up
		{1, 6, 17},  // 16.67 rounds up
		{2, 3, 67},  // 66.67 rounds up
		{3, 3, 100},
	}
	for _, testCase := range tests {
		assert.Equal(t, testCase.want, wastePercent(testCase.waste, testCase.total),
			"%d/%d", testCase.waste, testCase.total)
	}
}

func TestSummarizeEmptyRecordSet(t *testing.T) {
	bucket := Summarize(nil)
	assert.Equal(t, Bucket{}, bucket)

	for _, category := range models.Categories {
		assert.Equal(t, Bucket{}, CategorySummary(nil, category))
	}
	assert.Equal(t, MonthSplit{}, MonthView(nil, 2025, time.June))
}

func TestCategorySummaryScenario(t *testing.T) {
	records := []models.AnalysisRecord{
		record("ana-yemek", "barbunya", true),
		record("ana-yemek", "barbunya", false),
		record("ana-yemek", "kabak", false),
	}

	bucket := CategorySummary(records, models.CategoryMain)
	assert.Equal(t, 3, bucket.Total)
	assert.Equal(t, 1, bucket.WasteCount)
	assert.Equal(t, 2, bucket.NoWasteCount)
	assert.Equal(t, 33, bucket.WastePercent)
}

func TestBucketInvariants(t *testing.T) {
	records := []models.AnalysisRecord{
		record("corba", "mercimek-corbasi", true),
		record("corba", "yayla-corbasi", false),
		record("ana-yemek", "kabak", true),
		record("ana-yemek", "kabak", true),
		record("yan-yemek", "eriste", false),
		record("tatli", "sutlac", true), // unknown category
	}

	for _, category := range models.Categories {
		bucket := CategorySummary(records, category)
		assert.Equal(t, bucket.Total, bucket.WasteCount+bucket.NoWasteCount)
		assert.GreaterOrEqual(t, bucket.WastePercent, 0)
		assert.LessOrEqual(t, bucket.WastePercent, 100)
	}

	// unknown categories stay out of category-scoped buckets but count
	// in the unscoped totals
	total := 0
	for _, category := range models.Categories {
		total += CategorySummary(records, category).Total
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, 6, Summarize(records).Total)
}

func TestDayCellWeekdayMatchingIsCaseAndWhitespaceInsensitive(t *testing.T) {
	base := record("ana-yemek", "kabak", true)
	variants := []string{" pazartesi ", "Pazartesi", "PAZARTESİ"}

	var records []models.AnalysisRecord
	for _, day := range variants {
		r := base
		r.PhotoDay = day
		records = append(records, r)
	}

	cell := DayCategoryCell(records, models.WeekdayKey(models.Pazartesi), models.CategoryMain, MatchWeekday)
	assert.Equal(t, 3, cell.Total)
}

func TestDayCellFlagsHighWasteTypes(t *testing.T) {
	day := models.WeekdayKey(models.Sali)
	var records []models.AnalysisRecord
	add := func(foodType string, isWaste bool) {
		r := record("ana-yemek", foodType, isWaste)
		r.PhotoDay = "Salı"
		records = append(records, r)
	}
	add("barbunya", true)
	add("barbunya", true)
	add("barbunya", false) // 67%
	add("kabak", true)
	add("kabak", false) // 50%

	cell := DayCategoryCell(records, day, models.CategoryMain, MatchWeekday)
	require.Len(t, cell.Types, 2)
	assert.Equal(t, "barbunya", cell.Types[0].FoodType)
	assert.True(t, cell.Types[0].HighWaste)
	assert.Equal(t, "kabak", cell.Types[1].FoodType)
	assert.False(t, cell.Types[1].HighWaste)
}

func TestWeekViewMatchesBothAddressingSchemes(t *testing.T) {
	// week of Monday 2025-06-09
	ref, _ := time.Parse(models.DateLayout, "2025-06-11")

	dateKeyed := record("corba", "mercimek-corbasi", true)
	dateKeyed.AnalysisDate = "2025-06-09"

	weekdayKeyed := record("ana-yemek", "kabak", false)
	weekdayKeyed.PhotoDay = "Salı"

	outsideWeek := record("corba", "yayla-corbasi", true)
	outsideWeek.AnalysisDate = "2025-06-16"

	days := WeekView([]models.AnalysisRecord{dateKeyed, weekdayKeyed, outsideWeek}, ref, MatchAny)
	require.Len(t, days, 5)

	assert.Equal(t, "Pazartesi", days[0].Weekday)
	assert.Equal(t, "2025-06-09", days[0].Date)
	assert.Equal(t, 1, days[0].Total)
	assert.Equal(t, 1, days[0].WasteCount)

	assert.Equal(t, "Salı", days[1].Weekday)
	assert.Equal(t, 1, days[1].Total)
	assert.Equal(t, 0, days[1].WasteCount)

	for _, day := range days[2:] {
		assert.Equal(t, 0, day.Total, day.Weekday)
	}
}

func TestWeekViewNoteWeekdayKeyedRecordsRepeatEveryWeek(t *testing.T) {
	// a legacy weekday-keyed record has no calendar anchor, so it shows
	// up in whichever week is rendered
	legacy := record("corba", "tarhana-corbasi", true)
	legacy.PhotoDay = "Cuma"

	thisWeek, _ := time.Parse(models.DateLayout, "2025-06-11")
	nextWeek := thisWeek.AddDate(0, 0, 7)

	for _, ref := range []time.Time{thisWeek, nextWeek} {
		days := WeekView([]models.AnalysisRecord{legacy}, ref, MatchAny)
		assert.Equal(t, 1, days[4].Total)
	}
}

func TestWeeklyByDay(t *testing.T) {
	var records []models.AnalysisRecord
	add := func(day string, isWaste bool) {
		r := record("corba", "mercimek-corbasi", isWaste)
		r.PhotoDay = day
		records = append(records, r)
	}
	add("Pazartesi", true)
	add("pazartesi", false)
	add("Cuma", true)
	add("", true) // no day field, excluded from every bar

	counts := WeeklyByDay(records, MatchWeekday)
	require.Len(t, counts, 5)
	assert.Equal(t, WeekdayCount{Day: "Pazartesi", Waste: 1, NoWaste: 1}, counts[0])
	assert.Equal(t, WeekdayCount{Day: "Cuma", Waste: 1, NoWaste: 0}, counts[4])
	for _, count := range counts[1:4] {
		assert.Zero(t, count.Waste+count.NoWaste)
	}
}

func TestMonthViewFiltersByCreatedAt(t *testing.T) {
	june := record("corba", "mercimek-corbasi", true)
	june.CreatedAt = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	july := record("corba", "mercimek-corbasi", false)
	july.CreatedAt = time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

	juneLastYear := record("corba", "mercimek-corbasi", false)
	juneLastYear.CreatedAt = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	split := MonthView([]models.AnalysisRecord{june, july, juneLastYear}, 2025, time.June)
	assert.Equal(t, MonthSplit{Waste: 1, NoWaste: 0}, split)
}

func TestFoodTypeRatiosKeepsFirstOccurrenceOrder(t *testing.T) {
	records := []models.AnalysisRecord{
		record("yan-yemek", "spagetti", true),
		record("yan-yemek", "eriste", false),
		record("yan-yemek", "spagetti", false),
		record("yan-yemek", "bulgur-pilavi", true),
	}

	ratios := FoodTypeRatios(records, models.CategorySide)
	require.Len(t, ratios, 3)
	assert.Equal(t, "spagetti", ratios[0].FoodType)
	assert.Equal(t, "eriste", ratios[1].FoodType)
	assert.Equal(t, "bulgur-pilavi", ratios[2].FoodType)
	assert.Equal(t, 50, ratios[0].WastePercent)
	assert.Equal(t, "Erişte", ratios[1].Name)
}

type staticSource struct {
	records []models.AnalysisRecord
}

func (s staticSource) ListAnalysisRecords(ctx context.Context) ([]models.AnalysisRecord, error) {
	return s.records, nil
}

func TestEngineRecomputesFromSnapshot(t *testing.T) {
	src := &staticSource{records: []models.AnalysisRecord{record("corba", "mercimek-corbasi", true)}}
	engine := NewEngine(src)

	bucket, err := engine.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, bucket.Total)

	src.records = append(src.records, record("corba", "yayla-corbasi", false))
	bucket, err = engine.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, bucket.Total)
}
