package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type catalogItem struct {
	Name   string
	Flavor string
	Size   string
	Price  decimal.Decimal
}

var defaultCatalog = []catalogItem{
	{Name: "Ositos Clasicos", Flavor: "mixed fruit", Size: "100g", Price: decimal.RequireFromString("2.50")},
	{Name: "Ositos Clasicos XL", Flavor: "mixed fruit", Size: "500g", Price: decimal.RequireFromString("9.90")},
	{Name: "Gusanos Acidos", Flavor: "sour apple", Size: "150g", Price: decimal.RequireFromString("3.20")},
	{Name: "Aros de Durazno", Flavor: "peach", Size: "200g", Price: decimal.RequireFromString("3.75")},
	{Name: "Fresitas", Flavor: "strawberry", Size: "100g", Price: decimal.RequireFromString("2.10")},
	{Name: "Cocacolitas", Flavor: "cola", Size: "120g", Price: decimal.RequireFromString("2.40")},
	{Name: "Tiburones Azules", Flavor: "blue raspberry", Size: "150g", Price: decimal.RequireFromString("3.10")},
	{Name: "Mango Enchilado", Flavor: "chili mango", Size: "200g", Price: decimal.RequireFromString("4.25")},
	{Name: "Tamarindo Picoso", Flavor: "spicy tamarind", Size: "200g", Price: decimal.RequireFromString("4.25")},
	{Name: "Sandias", Flavor: "watermelon", Size: "100g", Price: decimal.RequireFromString("2.30")},
	{Name: "Huevos Estrellados", Flavor: "vanilla", Size: "100g", Price: decimal.RequireFromString("2.60")},
	{Name: "Frutas Veganas", Flavor: "mixed fruit", Size: "250g", Price: decimal.RequireFromString("5.50")},
}

func validateCatalog(items []catalogItem) error {
	seen := make(map[string]struct{}, len(items))
	minPrice := decimal.RequireFromString("0.01")
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return errors.New("catalog item without a name")
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate catalog item %q", name)
		}
		seen[name] = struct{}{}
		if item.Price.LessThan(minPrice) {
			return fmt.Errorf("catalog item %q: price must be at least %s", name, minPrice)
		}
	}
	return nil
}

// pending keeps the items whose name is not yet stored, so reseeding is a no-op.
func pending(items []catalogItem, existing map[string]struct{}) []catalogItem {
	out := make([]catalogItem, 0, len(items))
	for _, item := range items {
		if _, ok := existing[item.Name]; ok {
			continue
		}
		out = append(out, item)
	}
	return out
}

func names(items []catalogItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}
