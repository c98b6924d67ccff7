package quote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func baseItems() []CatalogItem {
	return []CatalogItem{
		{ID: "lab-wall", Name: "Wall painting", Kind: ItemLabor, Category: "wall", Unit: UnitSquareFeet, Rate: 1.50},
		{ID: "lab-ceiling", Name: "Ceiling painting", Kind: ItemLabor, Category: "ceiling", Unit: UnitSquareFeet, Rate: 1.75},
		{ID: "lab-trim", Name: "Trim painting", Kind: ItemLabor, Category: "trim", Unit: UnitLinearFeet, Rate: 2.00},
		{ID: "lab-door", Name: "Door painting", Kind: ItemLabor, Category: "door", Unit: UnitEach, Rate: 85, MinimumCharge: 100},
		{ID: "primer", Name: "Primer coat", Kind: ItemLabor, Category: CategoryPrimer, Unit: UnitSquareFeet, Rate: 0.40},
		{ID: "allow", Name: "Material allowance", Kind: ItemMaterial, Category: CategoryAllowance, Unit: "lot", Rate: 150},
		{ID: "paint-wall", Name: "Eggshell Interior", Kind: ItemPaint, Category: "wall", Unit: UnitGallon, Rate: 42, CoverageRate: 350},
		{ID: "paint-ceiling", Name: "Flat Ceiling White", Kind: ItemPaint, Category: "ceiling", Unit: UnitGallon, Rate: 35, CoverageRate: 400},
		{ID: "prod-premium", Name: "Premium Eggshell", Kind: ItemPaint, Category: "premium", Unit: UnitSquareFeet, Rate: 0.30},
	}
}

func testCatalog(t *testing.T, items ...CatalogItem) *Catalog {
	t.Helper()
	if len(items) == 0 {
		items = baseItems()
	}
	c, err := NewCatalog(items)
	require.NoError(t, err)
	return c
}

func without(items []CatalogItem, ids ...string) []CatalogItem {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var out []CatalogItem
	for _, it := range items {
		if !drop[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

func bedroom() Room {
	return Room{
		ID:   "r1",
		Name: "Bedroom",
		Surfaces: []Surface{
			{ID: "s1", Type: SurfaceWall, Quantity: 400, Coats: 2},
		},
	}
}

func mustConfig(t *testing.T, b *ConfigBuilder) DisplayConfig {
	t.Helper()
	cfg, err := b.Build()
	require.NoError(t, err)
	return cfg
}

func testTemplate(cfg DisplayConfig) Template {
	return Template{ID: "tpl1", OrganizationID: "org1", Name: "Standard", Config: cfg}
}

func allToggles() Toggles {
	return Toggles{ShowQuantities: true, ShowRates: true, ShowCoatCounts: true, ShowPrepTasks: true, ShowTaxLine: true}
}
