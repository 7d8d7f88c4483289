package domain

import (
	"strings"
)

// Category is the canonical device category.
type Category string

// Category constants.
const (
	CategoryPhone      Category = "phone"
	CategoryLaptop     Category = "laptop"
	CategoryCamera     Category = "camera"
	CategoryTablet     Category = "tablet"
	CategorySmartwatch Category = "smartwatch"
	CategoryOther      Category = "other"
)

// categorySynonyms maps normalized raw category names to canonical categories.
var categorySynonyms = map[string]Category{
	"phone":        CategoryPhone,
	"phones":       CategoryPhone,
	"mobile":       CategoryPhone,
	"mobiles":      CategoryPhone,
	"mobile phone": CategoryPhone,
	"smartphone":   CategoryPhone,
	"smartphones":  CategoryPhone,
	"iphone":       CategoryPhone,

	"laptop":    CategoryLaptop,
	"laptops":   CategoryLaptop,
	"notebook":  CategoryLaptop,
	"notebooks": CategoryLaptop,
	"macbook":   CategoryLaptop,

	"camera":             CategoryCamera,
	"cameras":            CategoryCamera,
	"dslr":               CategoryCamera,
	"dslr camera":        CategoryCamera,
	"dslr cameras":       CategoryCamera,
	"dslr lens":          CategoryCamera,
	"mirrorless":         CategoryCamera,
	"mirrorless camera":  CategoryCamera,
	"mirrorless cameras": CategoryCamera,
	"camera lens":        CategoryCamera,

	"tablet":  CategoryTablet,
	"tablets": CategoryTablet,
	"ipad":    CategoryTablet,
	"ipads":   CategoryTablet,

	"watch":        CategorySmartwatch,
	"watches":      CategorySmartwatch,
	"smartwatch":   CategorySmartwatch,
	"smartwatches": CategorySmartwatch,
	"smart watch":  CategorySmartwatch,
	"apple watch":  CategorySmartwatch,

	"other": CategoryOther,
}

// ParseCategory canonicalizes a raw category name. Unknown names map to
// CategoryOther with ok=false.
func ParseCategory(raw string) (c Category, ok bool) {
	c, ok = categorySynonyms[normalizeName(raw)]
	if !ok {
		return CategoryOther, false
	}
	return c, true
}

// CameraLike reports whether the category can carry interchangeable lenses.
func (c Category) CameraLike() bool {
	return c == CategoryCamera
}

func normalizeName(raw string) string {
	s := strings.ToLower(raw)
	s = strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// HasBrandPrefix reports whether model already starts with brand as a whole
// word, ignoring case.
func HasBrandPrefix(brand, model string) bool {
	b := strings.TrimSpace(brand)
	m := strings.TrimSpace(model)
	if b == "" || len(m) < len(b) {
		return false
	}
	if !strings.EqualFold(m[:len(b)], b) {
		return false
	}
	return len(m) == len(b) || m[len(b)] == ' ' || m[len(b)] == '-'
}

// DisplayName joins brand and model without duplicating a brand prefix the
// model name already carries.
func DisplayName(brand, model string) string {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	switch {
	case brand == "":
		return model
	case model == "":
		return brand
	case HasBrandPrefix(brand, model):
		return model
	default:
		return brand + " " + model
	}
}

// ProductKey returns the normalized (brand, model) lookup key for a product.
// The model part never carries the brand prefix.
func ProductKey(brand, model string) (brandKey, modelKey string) {
	model = strings.TrimSpace(model)
	if HasBrandPrefix(brand, model) {
		model = model[len(strings.TrimSpace(brand)):]
		model = strings.TrimLeft(model, " -")
	}
	return normalizeName(brand), normalizeName(model)
}
