package quote

import "fmt"

// ItemKind classifies catalog items.
type ItemKind string

const (
	ItemPaint    ItemKind = "paint"
	ItemMaterial ItemKind = "material"
	ItemLabor    ItemKind = "labor"
)

// Catalog categories that are not surface types.
const (
	CategoryPrimer    = "primer"
	CategoryAllowance = "allowance"
)

// CatalogItem is a priced unit from the organization's catalog. Category is
// a surface type, CategoryPrimer or CategoryAllowance. CoverageRate is the
// number of measured units one gallon covers and only applies to paint.
type CatalogItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Kind          ItemKind `json:"kind"`
	Category      string   `json:"category"`
	Unit          string   `json:"unit"`
	Rate          float64  `json:"rate"`
	MinimumCharge float64  `json:"minimum_charge,omitempty"`
	CoverageRate  float64  `json:"coverage_rate,omitempty"`
}

type catalogKey struct {
	kind     ItemKind
	category string
}

// Catalog indexes catalog items by id and by (kind, category). When several
// items share a kind and category the first one wins.
type Catalog struct {
	items      []CatalogItem
	byID       map[string]int
	byCategory map[catalogKey]int
}

// NewCatalog validates items and builds the lookup tables.
func NewCatalog(items []CatalogItem) (*Catalog, error) {
	c := &Catalog{
		items:      make([]CatalogItem, 0, len(items)),
		byID:       make(map[string]int, len(items)),
		byCategory: make(map[catalogKey]int, len(items)),
	}
	for i, item := range items {
		field := fmt.Sprintf("catalog[%d]", i)
		if item.ID == "" {
			return nil, validationf(field, "missing id")
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, validationf(field, "duplicate catalog id %q", item.ID)
		}
		switch item.Kind {
		case ItemPaint, ItemMaterial, ItemLabor:
		default:
			return nil, validationf(field, "unknown item kind %q", item.Kind)
		}
		if item.Rate < 0 || item.MinimumCharge < 0 || item.CoverageRate < 0 {
			return nil, validationf(field, "rates must not be negative")
		}

		idx := len(c.items)
		c.items = append(c.items, item)
		c.byID[item.ID] = idx
		key := catalogKey{item.Kind, item.Category}
		if _, seen := c.byCategory[key]; !seen {
			c.byCategory[key] = idx
		}
	}
	return c, nil
}

// Items returns a copy of the catalog in input order.
func (c *Catalog) Items() []CatalogItem {
	return append([]CatalogItem(nil), c.items...)
}

// ByID looks up an item by id.
func (c *Catalog) ByID(id string) (CatalogItem, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[idx], true
}

func (c *Catalog) lookup(kind ItemKind, category string) (CatalogItem, bool) {
	idx, ok := c.byCategory[catalogKey{kind, category}]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[idx], true
}

// Labor returns the labor item priced for a surface type.
func (c *Catalog) Labor(t SurfaceType) (CatalogItem, bool) {
	return c.lookup(ItemLabor, string(t))
}

// Paint returns the paint item used for volume estimates on a surface type.
func (c *Catalog) Paint(t SurfaceType) (CatalogItem, bool) {
	return c.lookup(ItemPaint, string(t))
}

// Primer returns the labor item for priming.
func (c *Catalog) Primer() (CatalogItem, bool) {
	return c.lookup(ItemLabor, CategoryPrimer)
}

// Allowance returns the flat material allowance item.
func (c *Catalog) Allowance() (CatalogItem, bool) {
	return c.lookup(ItemMaterial, CategoryAllowance)
}
