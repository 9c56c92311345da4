// Package menu serves the bundled dish catalog and the home screen filters
package menu

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"golden-fork/internal/models"
)

const (
	DietaryAll    = "all"
	DietaryVeg    = "veg"
	DietaryNonVeg = "non-veg"
)

// Cuisines offered on the filter screen
var Cuisines = []string{
	"North Indian", "South Indian", "Chinese", "Italian", "Continental", "Thai", "Beverages",
}

// Options are the filter screen settings. A zero MaxPrice leaves the price
// unbounded from above.
type Options struct {
	Cuisines  []string        `json:"cuisines"`
	MinPrice  decimal.Decimal `json:"minPrice"`
	MaxPrice  decimal.Decimal `json:"maxPrice"`
	MinRating float64         `json:"minRating"`
	Dietary   string          `json:"dietary"`
	DealsOnly bool            `json:"dealsOnly"`
}

func Categories() []models.MenuCategory {
	return slices.Clone(categories)
}

// Items returns every dish, grouped by category in catalog order
func Items() []models.MenuItem {
	return slices.Clone(items)
}

// Find looks a dish up by id
func Find(id string) (models.MenuItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}

// Filter keeps the dishes in category (empty for all) whose name contains
// search and that satisfy opts
func Filter(all []models.MenuItem, category, search string, opts Options) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(search))
	dietary := strings.ToLower(opts.Dietary)

	out := make([]models.MenuItem, 0, len(all))
	for _, it := range all {
		if category != "" && it.CategoryID != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		if len(opts.Cuisines) > 0 && !slices.Contains(opts.Cuisines, it.Cuisine) {
			continue
		}
		if opts.MinRating > 0 && it.Rating < opts.MinRating {
			continue
		}
		if dietary != "" && dietary != DietaryAll && it.Dietary != dietary {
			continue
		}
		if opts.DealsOnly && !it.HasDeals {
			continue
		}
		if it.Price.LessThan(opts.MinPrice) {
			continue
		}
		if opts.MaxPrice.IsPositive() && it.Price.GreaterThan(opts.MaxPrice) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// ActiveCount is the number shown on the filter badge
func ActiveCount(opts Options, search string) int {
	n := len(opts.Cuisines)
	if opts.MinRating > 0 {
		n++
	}
	if opts.Dietary != "" && opts.Dietary != DietaryAll {
		n++
	}
	if opts.DealsOnly {
		n++
	}
	if opts.MinPrice.IsPositive() || opts.MaxPrice.IsPositive() {
		n++
	}
	if strings.TrimSpace(search) != "" {
		n++
	}
	return n
}
