package models

import (
	"strings"
	"unicode"
)

// Category is the normalized slug for a food category.
type Category string

const (
	CategorySoup  Category = "corba"
	CategoryMain  Category = "ana-yemek"
	CategorySide  Category = "yan-yemek"
	CategoryExtra Category = "ek-yemek"
)

// Categories lists the fixed category vocabulary in serving order.
var Categories = []Category{CategorySoup, CategoryMain, CategorySide, CategoryExtra}

var categoryTitles = map[Category]string{
	CategorySoup:  "Çorba",
	CategoryMain:  "Ana Yemek",
	CategorySide:  "Yan Yemek",
	CategoryExtra: "Ek Yemek",
}

// Title returns the human-readable name for a category slug.
func (c Category) Title() string {
	if title, ok := categoryTitles[c]; ok {
		return title
	}
	return string(c)
}

// Valid reports whether the category is part of the fixed vocabulary.
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// NormalizeCategory maps a raw category value to its slug form.
// Unknown values normalize to a slug that fails Valid, so records
// carrying them drop out of category-scoped aggregates.
func NormalizeCategory(raw string) Category {
	return Category(NormalizeToken(raw))
}

// NormalizeToken trims whitespace and lowercases with Turkish casing
// rules, so "PAZARTESİ" and " pazartesi " compare equal.
func NormalizeToken(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(s))
}

var foodTypeNames = map[string]string{
	// soups
	"mercimek-corbasi": "Mercimek Çorbası",
	"sehriye-corbasi":  "Şehriye Çorbası",
	"tarhana-corbasi":  "Tarhana Çorbası",
	"yayla-corbasi":    "Yayla Çorbası",
	// mains
	"barbunya":      "Barbunya",
	"bezelye":       "Bezelye",
	"et-sote":       "Et Sote",
	"kabak":         "Kabak",
	"kasarli-kofte": "Kaşarlı Köfte",
	"kuru-fasulye":  "Kuru Fasulye",
	"sebzeli-tavuk": "Sebzeli Tavuk",
	// sides
	"bulgur-pilavi": "Bulgur Pilavı",
	"burgu-makarna": "Burgu Makarna",
	"eriste":        "Erişte",
	"fettucini":     "Fettucini",
	"pirinc-pilavi": "Pirinç Pilavı",
	"spagetti":      "Spagetti",
	// extras
	"havuc-salatasi": "Havuç Salatası",
	"mor-yogurt":     "Mor Yoğurt",
	"yogurt":         "Yoğurt",
}

// FoodTypeName resolves a food type slug to its display name.
// Unmapped slugs pass through unchanged.
func FoodTypeName(slug string) string {
	if name, ok := foodTypeNames[slug]; ok {
		return name
	}
	return slug
}

// FoodTypesByCategory lists the known dish slugs per category, used by
// the seed factory.
var FoodTypesByCategory = map[Category][]string{
	CategorySoup:  {"mercimek-corbasi", "sehriye-corbasi", "tarhana-corbasi", "yayla-corbasi"},
	CategoryMain:  {"barbunya", "bezelye", "et-sote", "kabak", "kasarli-kofte", "kuru-fasulye", "sebzeli-tavuk"},
	CategorySide:  {"bulgur-pilavi", "burgu-makarna", "eriste", "fettucini", "pirinc-pilavi", "spagetti"},
	CategoryExtra: {"havuc-salatasi", "mor-yogurt", "yogurt"},
}
