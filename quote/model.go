// Package quote turns room measurements and an organization's priced
// catalog into an itemized quote document, under the control of a quote
// template's display configuration.
package quote

// SurfaceType identifies what kind of paintable area a Surface is.
type SurfaceType string

const (
	SurfaceWall    SurfaceType = "wall"
	SurfaceCeiling SurfaceType = "ceiling"
	SurfaceTrim    SurfaceType = "trim"
	SurfaceDoor    SurfaceType = "door"
	SurfaceWindow  SurfaceType = "window"
	SurfaceCabinet SurfaceType = "cabinet"
	SurfaceOther   SurfaceType = "other"
)

// SurfaceTypes lists every known surface type in canonical section order.
var SurfaceTypes = []SurfaceType{
	SurfaceWall,
	SurfaceCeiling,
	SurfaceTrim,
	SurfaceDoor,
	SurfaceWindow,
	SurfaceCabinet,
	SurfaceOther,
}

// Canonical units of measure.
const (
	UnitSquareFeet = "sqft"
	UnitLinearFeet = "lf"
	UnitEach       = "ea"
	UnitGallon     = "gal"
)

var surfaceInfo = map[SurfaceType]struct {
	rank  int
	unit  string
	label string
}{
	SurfaceWall:    {0, UnitSquareFeet, "Walls"},
	SurfaceCeiling: {1, UnitSquareFeet, "Ceilings"},
	SurfaceTrim:    {2, UnitLinearFeet, "Trim"},
	SurfaceDoor:    {3, UnitEach, "Doors"},
	SurfaceWindow:  {4, UnitEach, "Windows"},
	SurfaceCabinet: {5, UnitSquareFeet, "Cabinets"},
	SurfaceOther:   {6, UnitSquareFeet, "Other Surfaces"},
}

// Valid reports whether t is a known surface type.
func (t SurfaceType) Valid() bool {
	_, ok := surfaceInfo[t]
	return ok
}

// Unit returns the canonical unit the surface type is measured in.
func (t SurfaceType) Unit() string {
	return surfaceInfo[t].unit
}

// Label returns the plural display label, e.g. "Walls".
func (t SurfaceType) Label() string {
	if info, ok := surfaceInfo[t]; ok {
		return info.label
	}
	return string(t)
}

func (t SurfaceType) rank() int {
	if info, ok := surfaceInfo[t]; ok {
		return info.rank
	}
	return len(surfaceInfo)
}

// Room is a named space owning a set of surfaces. Floor and Phase are
// optional tags used by floor and phase organization.
type Room struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Floor    string    `json:"floor,omitempty"`
	Phase    string    `json:"phase,omitempty"`
	Surfaces []Surface `json:"surfaces"`
}

// Surface is a paintable area inside a room. Quantity is in the canonical
// unit of its type.
type Surface struct {
	ID       string      `json:"id"`
	Type     SurfaceType `json:"type"`
	Quantity float64     `json:"quantity"`
	Coats    int         `json:"coats"`
	Primer   bool        `json:"primer,omitempty"`
}

// LineKind tags a line item as labor, material or prep work.
type LineKind string

const (
	KindLabor    LineKind = "labor"
	KindMaterial LineKind = "material"
	KindPrep     LineKind = "prep"
)

func (k LineKind) rank() int {
	switch k {
	case KindPrep:
		return 0
	case KindLabor:
		return 1
	default:
		return 2
	}
}

// SectionTask marks a line that belongs to a whole section rather than to
// one billable unit.
const SectionTask = -1

// LineItem is one priced row of a quote. Quantity, Rate and Coats are nil
// when the template hides them; Amount is always present.
type LineItem struct {
	Description string      `json:"description"`
	Quantity    *float64    `json:"quantity,omitempty"`
	Unit        string      `json:"unit,omitempty"`
	Rate        *float64    `json:"rate,omitempty"`
	Coats       *int        `json:"coats,omitempty"`
	Amount      float64     `json:"amount"`
	Section     string      `json:"section"`
	Kind        LineKind    `json:"kind"`
	RoomID      string      `json:"room_id,omitempty"`
	SurfaceType SurfaceType `json:"surface_type,omitempty"`
	Task        int         `json:"task"`
}

// Section is a titled group of line items keyed by the organization axis.
type Section struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Lines    []LineItem `json:"lines"`
	Subtotal float64    `json:"subtotal"`
}

// Warning describes a billable unit that was left out of the document
// because it could not be priced. Section may name a section that was
// dropped for having no priced lines, so Title carries its heading.
type Warning struct {
	Section     string      `json:"section"`
	Title       string      `json:"title"`
	RoomID      string      `json:"room_id,omitempty"`
	SurfaceType SurfaceType `json:"surface_type,omitempty"`
	Kind        LineKind    `json:"kind"`
	Message     string      `json:"message"`
}

// Document is the assembled quote. It is built fresh by every Assemble call.
type Document struct {
	TemplateID   string       `json:"template_id"`
	Organization Organization `json:"organization"`
	Sections     []Section    `json:"sections"`
	Subtotal     float64      `json:"subtotal"`
	TaxRate      float64      `json:"tax_rate"`
	Tax          float64      `json:"tax"`
	Total        float64      `json:"total"`
	ShowTaxLine  bool         `json:"show_tax_line"`
	Warnings     []Warning    `json:"warnings,omitempty"`
}

// Lines returns every line item of the document in display order.
func (d Document) Lines() []LineItem {
	var out []LineItem
	for _, s := range d.Sections {
		out = append(out, s.Lines...)
	}
	return out
}

// OrgSettings carries the organization-level values the engine needs.
type OrgSettings struct {
	OrganizationID    string  `json:"organization_id"`
	TaxRate           float64 `json:"tax_rate"`
	DefaultTemplateID string  `json:"default_template_id,omitempty"`
}

// UnitKey identifies a billable unit by room and surface type.
type UnitKey struct {
	RoomID      string
	SurfaceType SurfaceType
}

// LaborEstimates holds externally estimated hours or days per billable
// unit, used by the hourly and day_rate labor models.
type LaborEstimates map[UnitKey]float64

// ProductSelection maps a surface type to the catalog id of the product
// chosen for it under the specific_product strategy.
type ProductSelection map[SurfaceType]string

// Inputs bundles the caller-supplied values that are not rooms, catalog or
// template.
type Inputs struct {
	Settings  OrgSettings
	Estimates LaborEstimates
	Products  ProductSelection
}
