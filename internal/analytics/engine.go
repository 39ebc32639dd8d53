package analytics

import (
	"context"
	"time"

	"github.com/ktuncer/wastewise/internal/models"
)

// RecordSource is the read side shared with the menu optimizer. It
// always returns the full current record set; all filtering happens
// here.
type RecordSource interface {
	ListAnalysisRecords(ctx context.Context) ([]models.AnalysisRecord, error)
}

// Bucket is one aggregate cell. WastePercent is integer, round half up.
type Bucket struct {
	Total        int `json:"total"`
	WasteCount   int `json:"waste_count"`
	NoWasteCount int `json:"no_waste_count"`
	WastePercent int `json:"waste_percent"`
}

func newBucket(total, waste int) Bucket {
	return Bucket{
		Total:        total,
		WasteCount:   waste,
		NoWasteCount: total - waste,
		WastePercent: wastePercent(waste, total),
	}
}

// wastePercent rounds half up in integer math. A zero total yields 0.
func wastePercent(waste, total int) int {
	if total == 0 {
		return 0
	}
	return (waste*200 + total) / (2 * total)
}

// HighWasteThreshold is the percentage above which a food type is
// flagged within a day cell.
const HighWasteThreshold = 60

// DayMatcher decides whether a record belongs to a day key. The two
// addressing schemes (weekday name vs calendar date) get their own
// strategies; views pick the one matching their record shape.
type DayMatcher func(rec models.AnalysisRecord, key models.DayKey) bool

// MatchWeekday compares the record's photo_day field against the key's
// work-week day, trimmed and lowercased with Turkish casing.
func MatchWeekday(rec models.AnalysisRecord, key models.DayKey) bool {
	day, ok := key.WorkWeekday()
	if !ok {
		return false
	}
	norm := models.NormalizeToken(rec.PhotoDay)
	return norm != "" && norm == models.NormalizeToken(day.Label())
}

// MatchCalendarDate compares the record's analysis_date field against
// the key's ISO date, exactly.
func MatchCalendarDate(rec models.AnalysisRecord, key models.DayKey) bool {
	if key.Kind != models.DayKindDate {
		return false
	}
	date := models.NormalizeToken(rec.AnalysisDate)
	return date != "" && date == key.Date.Format(models.DateLayout)
}

// MatchAny accepts a record under either addressing scheme, so a view
// can serve legacy weekday-keyed and current date-keyed records at once.
func MatchAny(rec models.AnalysisRecord, key models.DayKey) bool {
	return MatchWeekday(rec, key) || MatchCalendarDate(rec, key)
}

// Summarize computes the unscoped totals over the whole record set.
func Summarize(records []models.AnalysisRecord) Bucket {
	waste := 0
	for _, r := range records {
		if r.IsWaste {
			waste++
		}
	}
	return newBucket(len(records), waste)
}

// CategorySummary computes the totals for one category. Records whose
// normalized category differs, including unknown slugs, are excluded.
func CategorySummary(records []models.AnalysisRecord, category models.Category) Bucket {
	total, waste := 0, 0
	for _, r := range records {
		if r.Category() != category {
			continue
		}
		total++
		if r.IsWaste {
			waste++
		}
	}
	return newBucket(total, waste)
}

// TypeRatio is one food type's aggregate within a category, used for
// charting; order follows first occurrence in the record set.
type TypeRatio struct {
	FoodType string `json:"food_type"`
	Name     string `json:"name"`
	Bucket
}

// FoodTypeRatios groups a category's records by food type.
func FoodTypeRatios(records []models.AnalysisRecord, category models.Category) []TypeRatio {
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
	ratios := make([]TypeRatio, 0, len(order))
	for _, foodType := range order {
		s := byType[foodType]
		ratios = append(ratios, TypeRatio{
			FoodType: foodType,
			Name:     models.FoodTypeName(foodType),
			Bucket:   newBucket(s.total, s.waste),
		})
	}
	return ratios
}

// TypeCell is a food type's share of one day cell.
type TypeCell struct {
	FoodType  string `json:"food_type"`
	Name      string `json:"name"`
	HighWaste bool   `json:"high_waste"`
	Bucket
}

// DayCell is the aggregate for one day and category pair, broken down
// per food type.
type DayCell struct {
	Day      string          `json:"day"`
	Category models.Category `json:"category"`
	Types    []TypeCell      `json:"types"`
	Bucket
}

// DayCategoryCell aggregates the records matching both the day key and
// the category, grouping by food type within the cell.
func DayCategoryCell(records []models.AnalysisRecord, key models.DayKey, category models.Category, match DayMatcher) DayCell {
	var scoped []models.AnalysisRecord
	for _, r := range records {
		if r.Category() == category && match(r, key) {
			scoped = append(scoped, r)
		}
	}
	cell := DayCell{
		Day:      key.String(),
		Category: category,
		Bucket:   Summarize(scoped),
	}
	for _, ratio := range FoodTypeRatios(scoped, category) {
		cell.Types = append(cell.Types, TypeCell{
			FoodType:  ratio.FoodType,
			Name:      ratio.Name,
			HighWaste: ratio.WastePercent > HighWasteThreshold,
			Bucket:    ratio.Bucket,
		})
	}
	return cell
}

// WeekDay is one row of the week view: a work-week day with its date
// and one cell per category.
type WeekDay struct {
	Weekday string    `json:"day"`
	Date    string    `json:"date"`
	Cells   []DayCell `json:"cells"`
	Bucket
}

// WeekView builds the fixed five-day work week anchored to the Monday
// on or before ref. Each day key carries its calendar date, so the
// matcher can resolve records by weekday name or by exact date.
func WeekView(records []models.AnalysisRecord, ref time.Time, match DayMatcher) []WeekDay {
	monday := models.MondayOf(ref)
	days := make([]WeekDay, 0, len(models.WorkWeek))
	for i, weekday := range models.WorkWeek {
		key := models.DateKey(monday.AddDate(0, 0, i))
		var dayRecords []models.AnalysisRecord
		for _, r := range records {
			if match(r, key) {
				dayRecords = append(dayRecords, r)
			}
		}
		day := WeekDay{
			Weekday: weekday.Label(),
			Date:    key.Date.Format(models.DateLayout),
			Bucket:  Summarize(dayRecords),
		}
		for _, category := range models.Categories {
			day.Cells = append(day.Cells, DayCategoryCell(records, key, category, match))
		}
		days = append(days, day)
	}
	return days
}

// WeekdayCount is one bar of the weekly statistics chart.
type WeekdayCount struct {
	Day     string `json:"name"`
	Waste   int    `json:"waste"`
	NoWaste int    `json:"no_waste"`
}

// WeeklyByDay counts waste outcomes per work-week day, across all
// categories. Legacy weekday-addressed records drive this chart.
func WeeklyByDay(records []models.AnalysisRecord, match DayMatcher) []WeekdayCount {
	counts := make([]WeekdayCount, 0, len(models.WorkWeek))
	for _, weekday := range models.WorkWeek {
		key := models.WeekdayKey(weekday)
		waste, noWaste := 0, 0
		for _, r := range records {
			if !match(r, key) {
				continue
			}
			if r.IsWaste {
				waste++
			} else {
				noWaste++
			}
		}
		counts = append(counts, WeekdayCount{Day: weekday.Label(), Waste: waste, NoWaste: noWaste})
	}
	return counts
}

// MonthSplit is the month's waste / no-waste totals, category-ignored.
type MonthSplit struct {
	Waste   int `json:"waste"`
	NoWaste int `json:"no_waste"`
}

// MonthView filters by the CreatedAt timestamp's month and year, not by
// the day-addressing fields.
func MonthView(records []models.AnalysisRecord, year int, month time.Month) MonthSplit {
	var split MonthSplit
	for _, r := range records {
		if r.CreatedAt.Year() != year || r.CreatedAt.Month() != month {
			continue
		}
		if r.IsWaste {
			split.Waste++
		} else {
			split.NoWaste++
		}
	}
	return split
}

// Engine answers aggregate queries from a fresh snapshot of the record
// source on every call; nothing is cached between queries.
type Engine struct {
	src RecordSource
}

func NewEngine(src RecordSource) *Engine {
	return &Engine{src: src}
}

func (e *Engine) Summary(ctx context.Context) (Bucket, error) {
	records, err := e.src.ListAnalysisRecords(ctx)
	if err != nil {
		return Bucket{}, err
	}
	return Summarize(records), nil
}

func (e *Engine) CategorySummary(ctx context.Context, category models.Category) (Bucket, error) {
	records, err := e.src.ListAnalysisRecords(ctx)
	if err != nil {
		return Bucket{}, err
	}
	return CategorySummary(records, category), nil
}

func (e *Engine) DayCell(ctx context.Context, key models.DayKey, category models.Category, match DayMatcher) (DayCell, error) {
	records, err := e.src.ListAnalysisRecords(ctx)
	if err != nil {
		return DayCell{}, err
	}
	return DayCategoryCell(records, key, category, match), nil
}

func (e *Engine) Week(ctx context.Context, ref time.Time, match DayMatcher) ([]WeekDay, error) {
	records, err := e.src.ListAnalysisRecords(ctx)
	if err != nil {
		return nil, err
	}
	return WeekView(records, ref, match), nil
}

func (e *Engine) WeeklyByDay(ctx context.Context, match DayMatcher) ([]WeekdayCount, error) {
	records, err := e.src.ListAnalysisRecords(ctx)
	if err != nil {
		return nil, err
	}
	return WeeklyByDay(records, match), nil
}

func (e *Engine) Month(ctx context.Context, year int, month time.Month) (MonthSplit, error) {
	records, err := e.src.ListAnalysisRecords(ctx)
	if err != nil {
		return MonthSplit{}, err
	}
	return MonthView(records, year, month), nil
}

func (e *Engine) TypeRatios(ctx context.Context, category models.Category) ([]TypeRatio, error) {
	records, err := e.src.ListAnalysisRecords(ctx)
	if err != nil {
		return nil, err
	}
	return FoodTypeRatios(records, category), nil
}
