package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Resolver prices billable units against a catalog according to a
// template's labor model and material strategy.
type Resolver struct {
	catalog *Catalog
	cfg     DisplayConfig
	in      Inputs
}

// NewResolver returns a resolver for one assembly run.
func NewResolver(catalog *Catalog, cfg DisplayConfig, in Inputs) *Resolver {
	return &Resolver{catalog: catalog, cfg: cfg, in: in}
}

// Resolve prices one billable unit. Each line is resolved independently: a
// missing labor rate does not stop the material line from being produced.
// Lines come back with every display field populated; hiding them is the
// assembler's job. Allowance material is section-level and comes from
// Allowance instead.
func (r *Resolver) Resolve(u BillableUnit) ([]LineItem, []*MissingRateError) {
	var (
		lines   []LineItem
		missing []*MissingRateError
	)
	collect := func(l LineItem, ok bool, err *MissingRateError) {
		if err != nil {
			missing = append(missing, err)
			return
		}
		if ok {
			lines = append(lines, l)
		}
	}

	if u.Primer {
		collect(r.prep(u))
	}
	collect(r.labor(u))
	collect(r.material(u))
	return lines, missing
}

func (r *Resolver) missing(u BillableUnit, kind LineKind, format string, args ...any) *MissingRateError {
	return &MissingRateError{
		RoomID:      u.RoomID,
		SurfaceType: u.SurfaceType,
		Kind:        kind,
		Reason:      fmt.Sprintf(format, args...),
	}
}

func (r *Resolver) labor(u BillableUnit) (LineItem, bool, *MissingRateError) {
	item, ok := r.catalog.Labor(u.SurfaceType)
	if !ok {
		return LineItem{}, false, r.missing(u, KindLabor, "no labor item in catalog")
	}

	line := unitLine(u, KindLabor, "Paint "+strings.ToLower(u.SurfaceType.Label()))
	rate := dec(item.Rate)
	var amount decimal.Decimal

	switch r.cfg.LaborModel() {
	case LaborUnitSqft:
		amount = u.exactCoatQuantity().Mul(rate)
		line.Coats = intPtr(u.Coats)
	case LaborFixed:
		amount = rate
	case LaborHourly, LaborDayRate:
		est, ok := r.in.Estimates[u.Key()]
		if !ok || est <= 0 {
			return LineItem{}, false, r.missing(u, KindLabor, "no %s estimate supplied", r.cfg.LaborModel())
		}
		amount = dec(est).Mul(rate)
		line.Quantity = floatPtr(est)
		line.Unit = "hr"
		if r.cfg.LaborModel() == LaborDayRate {
			line.Unit = "day"
		}
	}
	line.Rate = floatPtr(item.Rate)
	line.Amount = applyMinimum(amount, item.MinimumCharge)
	return line, true, nil
}

func (r *Resolver) material(u BillableUnit) (LineItem, bool, *MissingRateError) {
	switch r.cfg.MaterialStrategy() {
	case MaterialItemizedVolume:
		item, ok := r.catalog.Paint(u.SurfaceType)
		if !ok {
			return LineItem{}, false, r.missing(u, KindMaterial, "no paint item in catalog")
		}
		if item.CoverageRate <= 0 {
			return LineItem{}, false, r.missing(u, KindMaterial, "paint %s has no coverage rate", item.ID)
		}
		gallons := u.exactCoatQuantity().Div(dec(item.CoverageRate))
		line := unitLine(u, KindMaterial, item.Name)
		line.Quantity = floatPtr(gallons.Round(2).InexactFloat64())
		line.Unit = UnitGallon
		line.Rate = floatPtr(item.Rate)
		line.Coats = intPtr(u.Coats)
		line.Amount = applyMinimum(gallons.Mul(dec(item.Rate)), item.MinimumCharge)
		return line, true, nil

	case MaterialSpecificProduct:
		id, ok := r.in.Products[u.SurfaceType]
		if !ok || id == "" {
			return LineItem{}, false, r.missing(u, KindMaterial, "no product selected")
		}
		item, ok := r.catalog.ByID(id)
		if !ok {
			return LineItem{}, false, r.missing(u, KindMaterial, "selected product %s is not in the catalog", id)
		}
		line := unitLine(u, KindMaterial, item.Name)
		line.Rate = floatPtr(item.Rate)
		line.Amount = applyMinimum(u.exactQuantity().Mul(dec(item.Rate)), item.MinimumCharge)
		return line, true, nil
	}
	// inclusive folds materials into labor; allowance is section-level.
	return LineItem{}, false, nil
}

func (r *Resolver) prep(u BillableUnit) (LineItem, bool, *MissingRateError) {
	item, ok := r.catalog.Primer()
	if !ok {
		return LineItem{}, false, r.missing(u, KindPrep, "no primer item in catalog")
	}
	line := unitLine(u, KindPrep, "Prime "+strings.ToLower(u.SurfaceType.Label()))
	line.Rate = floatPtr(item.Rate)
	line.Amount = applyMinimum(u.exactQuantity().Mul(dec(item.Rate)), item.MinimumCharge)
	return line, true, nil
}

// Allowance returns the flat material allowance line added once per
// section under the allowance strategy.
func (r *Resolver) Allowance() (LineItem, *MissingRateError) {
	item, ok := r.catalog.Allowance()
	if !ok {
		return LineItem{}, &MissingRateError{Kind: KindMaterial, Reason: "no allowance item in catalog"}
	}
	desc := item.Name
	if desc == "" {
		desc = "Material allowance"
	}
	return LineItem{
		Description: desc,
		Amount:      cents(dec(item.Rate)),
		Kind:        KindMaterial,
		Task:        SectionTask,
	}, nil
}

func unitLine(u BillableUnit, kind LineKind, desc string) LineItem {
	return LineItem{
		Description: desc,
		Quantity:    floatPtr(u.Quantity),
		Unit:        u.Unit,
		Kind:        kind,
		RoomID:      u.RoomID,
		SurfaceType: u.SurfaceType,
		Task:        u.Task,
	}
}

func applyMinimum(amount decimal.Decimal, minimum float64) float64 {
	if minimum > 0 && amount.LessThan(dec(minimum)) {
		amount = dec(minimum)
	}
	return cents(amount)
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
