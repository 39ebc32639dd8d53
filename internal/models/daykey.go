package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar date form for analysis records.
const DateLayout = "2006-01-02"

// Weekday is a work-week day, Monday through Friday.
type Weekday int

const (
	Pazartesi Weekday = iota
	Sali
	Carsamba
	Persembe
	Cuma
)

var weekdayLabels = [...]string{"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma"}

// WorkWeek lists the five work-week days in order.
var WorkWeek = []Weekday{Pazartesi, Sali, Carsamba, Persembe, Cuma}

// Label returns the Turkish weekday name.
func (w Weekday) Label() string {
	if w < Pazartesi || w > Cuma {
		return ""
	}
	return weekdayLabels[w]
}

// DayKind discriminates the two day-addressing schemes.
type DayKind int

const (
	DayKindWeekday DayKind = iota + 1
	DayKindDate
)

// DayKey identifies the day a record belongs to, either by weekday
// name (legacy records) or by calendar date (canonical for new data).
type DayKey struct {
	Kind    DayKind
	Weekday Weekday
	Date    time.Time
}

// WeekdayKey builds a weekday-addressed day key.
func WeekdayKey(w Weekday) DayKey {
	return DayKey{Kind: DayKindWeekday, Weekday: w}
}

// DateKey builds a calendar-date-addressed day key, truncated to the day.
func DateKey(t time.Time) DayKey {
	return DayKey{
		Kind: DayKindDate,
		Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
	}
}

// ParseDayKey accepts either an ISO calendar date or a Turkish weekday
// name, case- and whitespace-insensitively.
func ParseDayKey(s string) (DayKey, error) {
	if t, err := time.Parse(DateLayout, NormalizeToken(s)); err == nil {
		return DateKey(t), nil
	}
	if w, ok := parseWeekday(s); ok {
		return WeekdayKey(w), nil
	}
	return DayKey{}, fmt.Errorf("unrecognized day value %q", s)
}

func parseWeekday(s string) (Weekday, bool) {
	norm := NormalizeToken(s)
	for _, w := range WorkWeek {
		if NormalizeToken(w.Label()) == norm {
			return w, true
		}
	}
	return 0, false
}

// WorkWeekday maps the key to a work-week day. For date keys the
// weekday is derived from the calendar; Saturday and Sunday report ok
// as false.
func (k DayKey) WorkWeekday() (Weekday, bool) {
	switch k.Kind {
	case DayKindWeekday:
		return k.Weekday, true
	case DayKindDate:
		switch k.Date.Weekday() {
		case time.Monday:
			return Pazartesi, true
		case time.Tuesday:
			return Sali, true
		case time.Wednesday:
			return Carsamba, true
		case time.Thursday:
			return Persembe, true
		case time.Friday:
			return Cuma, true
		}
	}
	return 0, false
}

// String renders the key in the form records carry: the ISO date for
// calendar keys, the weekday label otherwise.
func (k DayKey) String() string {
	switch k.Kind {
	case DayKindDate:
		return k.Date.Format(DateLayout)
	case DayKindWeekday:
		return k.Weekday.Label()
	}
	return ""
}

// MondayOf returns the Monday on or before t, anchoring the work week.
func MondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
