package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
)

// ── Definition structs ───────────────────────────────────────────────────

type surfaceDef struct {
	surfaceType quote.SurfaceType
	quantity    float64
	coats       int
	primer      bool
}

type roomDef struct {
	name     string
	floor    string
	phase    string
	surfaces []surfaceDef
}

type catalogDef struct {
	name          string
	kind          quote.ItemKind
	category      string
	unit          string
	rate          float64
	minimumCharge float64
	coverageRate  float64
}

var demoCatalog = []catalogDef{
	{"Wall painting", quote.ItemLabor, "wall", quote.UnitSquareFeet, 1.50, 0, 0},
	{"Ceiling painting", quote.ItemLabor, "ceiling", quote.UnitSquareFeet, 1.75, 0, 0},
	{"Trim painting", quote.ItemLabor, "trim", quote.UnitLinearFeet, 2.00, 0, 0},
	{"Door painting", quote.ItemLabor, "door", quote.UnitEach, 85, 100, 0},
	{"Window frame painting", quote.ItemLabor, "window", quote.UnitEach, 60, 0, 0},
	{"Cabinet refinishing", quote.ItemLabor, "cabinet", quote.UnitSquareFeet, 6.50, 250, 0},
	{"Primer coat", quote.ItemLabor, quote.CategoryPrimer, quote.UnitSquareFeet, 0.40, 0, 0},
	{"Material allowance", quote.ItemMaterial, quote.CategoryAllowance, "lot", 150, 0, 0},
	{"Eggshell Interior", quote.ItemPaint, "wall", quote.UnitGallon, 42, 0, 350},
	{"Flat Ceiling White", quote.ItemPaint, "ceiling", quote.UnitGallon, 35, 0, 400},
	{"Semi-Gloss Trim", quote.ItemPaint, "trim", quote.UnitGallon, 48, 0, 450},
	{"Door Enamel", quote.ItemPaint, "door", quote.UnitGallon, 55, 0, 20},
	{"Premium Scrubbable Eggshell", quote.ItemPaint, "premium", quote.UnitSquareFeet, 0.30, 0, 0},
}

var demoRooms = []roomDef{
	{
		name: "Living Room", floor: "Main", phase: "Phase 1",
		surfaces: []surfaceDef{
			{quote.SurfaceWall, 420, 2, false},
			{quote.SurfaceCeiling, 240, 1, false},
			{quote.SurfaceTrim, 86, 2, false},
		},
	},
	{
		name: "Kitchen", floor: "Main", phase: "Phase 1",
		surfaces: []surfaceDef{
			{quote.SurfaceWall, 260, 2, true},
			{quote.SurfaceCabinet, 95, 2, true},
			{quote.SurfaceDoor, 1, 2, false},
		},
	},
	{
		name: "Primary Bedroom", floor: "Upper", phase: "Phase 2",
		surfaces: []surfaceDef{
			{quote.SurfaceWall, 380, 2, false},
			{quote.SurfaceCeiling, 180, 1, false},
			{quote.SurfaceDoor, 2, 2, false},
			{quote.SurfaceWindow, 2, 1, false},
		},
	},
	{
		name: "Garage",
		surfaces: []surfaceDef{
			{quote.SurfaceWall, 600, 1, true},
		},
	},
}

// Seed populates the collections with a demo painting contractor, its
// catalog and one measured project. It is safe to call on every startup
// because it returns early if any organization records already exist.
func Seed(app core.App, taxRate float64) error {
	// ── idempotency: skip if organizations already exist ─────────────
	orgsCol, err := app.FindCollectionByNameOrId("organizations")
	if err != nil {
		return fmt.Errorf("seed: could not find organizations collection: %w", err)
	}
	existing, err := app.FindAllRecords(orgsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query organizations: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	app.Logger().Info("seed: organizations collection is empty, inserting demo data")

	// ── lookup helper collections ────────────────────────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	roomsCol, err := app.FindCollectionByNameOrId("rooms")
	if err != nil {
		return fmt.Errorf("seed: could not find rooms collection: %w", err)
	}
	surfacesCol, err := app.FindCollectionByNameOrId("surfaces")
	if err != nil {
		return fmt.Errorf("seed: could not find surfaces collection: %w", err)
	}
	catalogCol, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_items collection: %w", err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		org := core.NewRecord(orgsCol)
		org.Set("name", "Brushworks Painting Co.")
		org.Set("tax_rate", taxRate)
		if err := txApp.Save(org); err != nil {
			return fmt.Errorf("seed: save organization: %w", err)
		}

		for i, d := range demoCatalog {
			r := core.NewRecord(catalogCol)
			r.Set("organization", org.Id)
			r.Set("sort_order", i+1)
			r.Set("name", d.name)
			r.Set("kind", string(d.kind))
			r.Set("category", d.category)
			r.Set("unit", d.unit)
			r.Set("rate", d.rate)
			r.Set("minimum_charge", d.minimumCharge)
			r.Set("coverage_rate", d.coverageRate)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("seed: save catalog item %q: %w", d.name, err)
			}
		}

		project := core.NewRecord(projectsCol)
		project.Set("organization", org.Id)
		project.Set("name", "Maple Street Repaint")
		project.Set("client_name", "Dana Whitfield")
		project.Set("reference_number", "MAPLE")
		project.Set("status", "active")
		if err := txApp.Save(project); err != nil {
			return fmt.Errorf("seed: save project: %w", err)
		}

		for i, rd := range demoRooms {
			room := core.NewRecord(roomsCol)
			room.Set("project", project.Id)
			room.Set("sort_order", i+1)
			room.Set("name", rd.name)
			room.Set("floor", rd.floor)
			room.Set("phase", rd.phase)
			if err := txApp.Save(room); err != nil {
				return fmt.Errorf("seed: save room %q: %w", rd.name, err)
			}

			for j, sd := range rd.surfaces {
				s := core.NewRecord(surfacesCol)
				s.Set("room", room.Id)
				s.Set("sort_order", j+1)
				s.Set("surface_type", string(sd.surfaceType))
				s.Set("quantity", sd.quantity)
				s.Set("coats", sd.coats)
				s.Set("primer", sd.primer)
				if err := txApp.Save(s); err != nil {
					return fmt.Errorf("seed: save %s surface in %q: %w", sd.surfaceType, rd.name, err)
				}
			}
		}

		txApp.Logger().Info("seed: demo data inserted",
			"organization", org.Id,
			"project", project.Id,
			"catalog_items", len(demoCatalog),
			"rooms", len(demoRooms))
		return nil
	})
}
