package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fekuna/metalmarket-service/internal/model"
)

type Sort string

const (
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortNewest    Sort = "newest"
)

// ParseSort maps a query value onto a Sort. Empty or unknown values fall back to price_asc.
func ParseSort(s string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceDesc:
		return SortPriceDesc
	case SortNewest:
		return SortNewest
	default:
		return SortPriceAsc
	}
}

type Filter struct {
	CategoryID string
	Search     string
	View       View // nil means PublicView
}

// Resolve filters products by category subtree, search text and view, then
// orders them. The inputs are not modified and the result is never nil.
func Resolve(products []model.Product, categories []model.Category, f Filter, sort Sort) []model.Product {
	view := f.View
	if view == nil {
		view = PublicView{}
	}

	var inCategory map[string]bool
	if id := strings.TrimSpace(f.CategoryID); id != "" {
		ids := Expand(categories, id)
		inCategory = make(map[string]bool, len(ids))
		for _, c := range ids {
			inCategory[c] = true
		}
	}

	query := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if inCategory != nil && !inCategory[p.CategoryID] {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		if !view.visible(p) {
			continue
		}
		out = append(out, *p)
	}

	slices.SortFunc(out, comparator(sort))
	return out
}

func matches(p *model.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, v := range p.Specifications {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

func comparator(s Sort) func(a, b model.Product) int {
	switch s {
	case SortPriceDesc:
		return func(a, b model.Product) int {
			if c := b.Price.Cmp(a.Price); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		}
	case SortNewest:
		return func(a, b model.Product) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		}
	default:
		return func(a, b model.Product) int {
			if c := a.Price.Cmp(b.Price); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		}
	}
}
