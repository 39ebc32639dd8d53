package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktuncer/wastewise/internal/models"
)

func record(category, foodType string, isWaste bool) models.AnalysisRecord {
	return models.AnalysisRecord{FoodCategory: category, FoodType: foodType, IsWaste: isWaste}
}

func TestRecommendEmptyRecordSet(t *testing.T) {
	_, err := Recommend(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRecommendPicksLowestWasteRatio(t *testing.T) {
	records := []models.AnalysisRecord{
		record("ana-yemek", "barbunya", true),
		record("ana-yemek", "barbunya", false),
		record("ana-yemek", "kabak", false),
	}

	recommendation, err := Recommend(records)
	require.NoError(t, err)
	assert.Equal(t, "kabak", recommendation.Main.FoodType)
	assert.Equal(t, "Kabak", recommendation.Main.Name)
	assert.Equal(t, 0.0, recommendation.Main.WasteRatio)
	assert.True(t, recommendation.Main.HasData)
}

func TestRecommendTiesKeepFirstEncounteredType(t *testing.T) {
	records := []models.AnalysisRecord{
		record("corba", "yayla-corbasi", true),
		record("corba", "yayla-corbasi", false),
		record("corba", "mercimek-corbasi", true),
		record("corba", "mercimek-corbasi", false),
	}

	recommendation, err := Recommend(records)
	require.NoError(t, err)
	// both at 0.5; yayla-corbasi appears first in record order
	assert.Equal(t, "yayla-corbasi", recommendation.Soup.FoodType)
}

func TestRecommendIsDeterministic(t *testing.T) {
	records := []models.AnalysisRecord{
		record("corba", "tarhana-corbasi", true),
		record("corba", "sehriye-corbasi", true),
		record("ana-yemek", "et-sote", false),
		record("ana-yemek", "bezelye", false),
	}

	first, err := Recommend(records)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Recommend(records)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommendCategoryWithoutDataGetsSentinel(t *testing.T) {
	records := []models.AnalysisRecord{
		record("corba", "mercimek-corbasi", false),
	}

	recommendation, err := Recommend(records)
	require.NoError(t, err)
	assert.Equal(t, "mercimek-corbasi", recommendation.Soup.FoodType)
	assert.Equal(t, NoData, recommendation.Main.FoodType)
	assert.Equal(t, NoData, recommendation.Side.FoodType)
	assert.Equal(t, NoData, recommendation.Extra.FoodType)
	assert.False(t, recommendation.Main.HasData)
}

func TestRecommendUnknownSlugPassesThrough(t *testing.T) {
	records := []models.AnalysisRecord{
		record("ek-yemek", "kazandibi", false),
	}

	recommendation, err := Recommend(records)
	require.NoError(t, err)
	assert.Equal(t, "kazandibi", recommendation.Extra.FoodType)
	assert.Equal(t, "kazandibi", recommendation.Extra.Name)
}

func TestRecommendIgnoresUnknownCategories(t *testing.T) {
	records := []models.AnalysisRecord{
		record("tatli", "sutlac", false),
		record("yan-yemek", "eriste", true),
	}

	recommendation, err := Recommend(records)
	require.NoError(t, err)
	assert.Equal(t, "eriste", recommendation.Side.FoodType)
	assert.Equal(t, NoData, recommendation.Main.FoodType)
}

type staticSource struct {
	records []models.AnalysisRecord
}

func (s staticSource) ListAnalysisRecords(ctx context.Context) ([]models.AnalysisRecord, error) {
	return s.records, nil
}

func TestOptimizerPullsFreshSnapshot(t *testing.T) {
	optimizer := NewOptimizer(staticSource{records: []models.AnalysisRecord{
		record("corba", "yayla-corbasi", false),
	}})

	recommendation, err := optimizer.Recommend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yayla-corbasi", recommendation.Soup.FoodType)
}
