package services

import "paintquote/quote"

// Option is one entry of an editor select list.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TemplateOptions lists every choice the template editor offers, plus the
// configuration a new template starts from.
type TemplateOptions struct {
	Organizations      []Option           `json:"organizations"`
	Compositions       []Option           `json:"item_compositions"`
	LaborModels        []Option           `json:"labor_pricing_models"`
	MaterialStrategies []Option           `json:"material_strategies"`
	MaterialGroupings  []Option           `json:"material_groupings"`
	Toggles            []Option           `json:"toggles"`
	SurfaceTypes       []Option           `json:"surface_types"`
	Units              []Option           `json:"units"`
	Defaults           quote.ConfigRecord `json:"defaults"`
}

var optionLabels = map[string]string{
	"room":    "By room",
	"surface": "By surface",
	"floor":   "By floor",
	"phase":   "By phase",

	"bundled":   "Labor and materials together",
	"separated": "Labor and materials separately",

	"unit_sqft": "Per unit (sq ft, linear ft, each)",
	"fixed":     "Fixed price per task",
	"hourly":    "Hourly",
	"day_rate":  "Day rate",

	"inclusive":        "Included in labor",
	"allowance":        "Flat allowance per section",
	"itemized_volume":  "Itemized by paint volume",
	"specific_product": "Specific product",

	"itemized_per_task": "Next to each task",
	"combined_section":  "One materials line per section",
	"combined_setup":    "Setup & materials section",
}

func options[T ~string](values []T) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		label, ok := optionLabels[string(v)]
		if !ok {
			label = string(v)
		}
		out[i] = Option{Value: string(v), Label: label}
	}
	return out
}

// ToggleOptions are the display toggles in editor order.
var ToggleOptions = []Option{
	{Value: "show_quantities", Label: "Show quantities"},
	{Value: "show_rates", Label: "Show rates"},
	{Value: "show_coat_counts", Label: "Show coat counts"},
	{Value: "show_prep_tasks", Label: "Show prep tasks"},
	{Value: "show_tax_line", Label: "Show tax line"},
}

// UnitOptions are the catalog units an editor offers.
var UnitOptions = []Option{
	{Value: quote.UnitSquareFeet, Label: "Square feet"},
	{Value: quote.UnitLinearFeet, Label: "Linear feet"},
	{Value: quote.UnitEach, Label: "Each"},
	{Value: quote.UnitGallon, Label: "Gallon"},
	{Value: "hr", Label: "Hour"},
	{Value: "day", Label: "Day"},
	{Value: "lot", Label: "Lot"},
}

// GetTemplateOptions returns the editor option lists.
func GetTemplateOptions() TemplateOptions {
	surfaces := make([]Option, len(quote.SurfaceTypes))
	for i, st := range quote.SurfaceTypes {
		surfaces[i] = Option{Value: string(st), Label: st.Label()}
	}

	return TemplateOptions{
		Organizations:      options(quote.Organizations),
		Compositions:       options(quote.Compositions),
		LaborModels:        options(quote.LaborModels),
		MaterialStrategies: options(quote.MaterialStrategies),
		MaterialGroupings:  options(quote.MaterialGroupings),
		Toggles:            ToggleOptions,
		SurfaceTypes:       surfaces,
		Units:              UnitOptions,
		Defaults:           quote.DefaultConfig().Record(),
	}
}
