package menu

import (
	"context"
	"errors"
	"math"

	"github.com/ktuncer/wastewise/internal/analytics"
	"github.com/ktuncer/wastewise/internal/models"
)

// ErrInsufficientData is returned when no analysis records exist at
// all. It is a user-facing, recoverable condition.
var ErrInsufficientData = errors.New("no analysis data to build a menu from")

// NoData is the sentinel shown for a category without any records.
const NoData = "-"

// Selection is the winning dish for one category.
type Selection struct {
	FoodType   string  `json:"food_type"`
	Name       string  `json:"name"`
	WasteRatio float64 `json:"waste_ratio"`
	HasData    bool    `json:"has_data"`
}

// Recommendation is the daily menu minimizing observed waste, one
// selection per category.
type Recommendation struct {
	Soup  Selection `json:"soup"`
	Main  Selection `json:"main"`
	Side  Selection `json:"side"`
	Extra Selection `json:"extra"`
}

// Recommend picks, per category, the food type with the strictly
// lowest waste ratio. Ties keep the first type encountered in record
// order; a category without records resolves to the NoData sentinel.
func Recommend(records []models.AnalysisRecord) (Recommendation, error) {
	if len(records) == 0 {
		return Recommendation{}, ErrInsufficientData
	}
	return Recommendation{
		Soup:  bestType(records, models.CategorySoup),
		Main:  bestType(records, models.CategoryMain),
		Side:  bestType(records, models.CategorySide),
		Extra: bestType(records, models.CategoryExtra),
	}, nil
}

func bestType(records []models.AnalysisRecord, category models.Category) Selection {
	type stats struct{ waste, total int }
	byType := make(map[string]*stats)
	var order []string
	for _, r := range records {
		if r.Category() != category {
			continue
		}
		s, ok := byType[r.FoodType]
		if !ok {
			s = &stats{}
			byType[r.FoodType] = s
			order = append(order, r.FoodType)
		}
		s.total++
		if r.IsWaste {
			s.waste++
		}
	}
	if len(order) == 0 {
		return Selection{FoodType: NoData, Name: NoData}
	}

	best := ""
	minRate := math.Inf(1)
	for _, foodType := range order {
		s := byType[foodType]
		rate := math.Inf(1)
		if s.total > 0 {
			rate = float64(s.waste) / float64(s.total)
		}
		if rate < minRate {
			best = foodType
			minRate = rate
		}
	}
	return Selection{
		FoodType:   best,
		Name:       models.FoodTypeName(best),
		WasteRatio: minRate,
		HasData:    true,
	}
}

// Optimizer answers recommendation queries from a fresh snapshot of
// the record source, like the aggregation engine.
type Optimizer struct {
	src analytics.RecordSource
}

func NewOptimizer(src analytics.RecordSource) *Optimizer {
	return &Optimizer{src: src}
}

func (o *Optimizer) Recommend(ctx context.Context) (Recommendation, error) {
	records, err := o.src.ListAnalysisRecords(ctx)
	if err != nil {
		return Recommendation{}, err
	}
	return Recommend(records)
}
