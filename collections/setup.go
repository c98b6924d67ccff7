package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
)

// Setup programmatically creates/ensures the organizations, projects, rooms,
// surfaces, catalog_items, quote_templates and quotes collections exist.
func Setup(app core.App) error {
	orgs, err := ensureCollection(app, "organizations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "tax_rate", Required: false})
		c.Fields.Add(&core.TextField{Name: "default_template", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
	if err != nil {
		return err
	}

	projects, err := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "organization",
			Required:      true,
			CollectionId:  orgs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
	if err != nil {
		return err
	}

	rooms, err := ensureCollection(app, "rooms", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "floor", Required: false})
		c.Fields.Add(&core.TextField{Name: "phase", Required: false})
	})
	if err != nil {
		return err
	}

	surfaceTypes := make([]string, len(quote.SurfaceTypes))
	for i, t := range quote.SurfaceTypes {
		surfaceTypes[i] = string(t)
	}
	_, err = ensureCollection(app, "surfaces", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "room",
			Required:      true,
			CollectionId:  rooms.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "surface_type",
			Required:  true,
			Values:    surfaceTypes,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "coats", Required: false, OnlyInt: true})
		c.Fields.Add(&core.BoolField{Name: "primer"})
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, "catalog_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "organization",
			Required:      true,
			CollectionId:  orgs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "kind",
			Required:  true,
			Values:    []string{string(quote.ItemPaint), string(quote.ItemMaterial), string(quote.ItemLabor)},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "category", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "minimum_charge", Required: false})
		c.Fields.Add(&core.NumberField{Name: "coverage_rate", Required: false})
	})
	if err != nil {
		return err
	}

	templates, err := ensureCollection(app, "quote_templates", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "organization",
			Required:      true,
			CollectionId:  orgs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: quote.MaxTemplateNameLength})
		c.Fields.Add(&core.TextField{Name: "name_key", Required: true})
		c.Fields.Add(&core.JSONField{Name: "config", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_quote_templates_org_name_key", true, "organization, name_key", "")
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "template",
			Required:     false,
			CollectionId: templates.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: true})
		c.Fields.Add(&core.JSONField{Name: "document", Required: true})
		c.Fields.Add(&core.NumberField{Name: "subtotal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_quotes_project_number", true, "project, quote_number", "")
	})
	return err
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		app.Logger().Debug("collection already exists, skipping creation", "collection", name)
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	app.Logger().Info("created collection", "collection", name, "id", collection.Id)
	return collection, nil
}
