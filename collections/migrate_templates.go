package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
)

type templateDef struct {
	name  string
	build func() (quote.DisplayConfig, error)
}

// defaultTemplates are created for every organization that has none.
// The first one becomes the organization's default template.
var defaultTemplates = []templateDef{
	{
		name: "Standard",
		build: func() (quote.DisplayConfig, error) {
			return quote.DefaultConfig(), nil
		},
	},
	{
		name: "Itemized materials",
		build: func() (quote.DisplayConfig, error) {
			return quote.NewConfigBuilder().
				Composition(quote.Separated(quote.GroupItemizedPerTask)).
				Material(quote.MaterialItemizedVolume).
				Toggles(quote.Toggles{
					ShowQuantities: true,
					ShowRates:      true,
					ShowCoatCounts: true,
					ShowPrepTasks:  true,
					ShowTaxLine:    true,
				}).
				Build()
		},
	},
}

// MigrateDefaultTemplates creates the default quote templates for every
// organization that has no templates yet and points organizations without
// a default template at the first one. Safe to call on every startup.
func MigrateDefaultTemplates(app core.App) error {
	orgsCol, err := app.FindCollectionByNameOrId("organizations")
	if err != nil {
		return fmt.Errorf("migrate_templates: could not find organizations collection: %w", err)
	}

	templatesCol, err := app.FindCollectionByNameOrId("quote_templates")
	if err != nil {
		return fmt.Errorf("migrate_templates: could not find quote_templates collection: %w", err)
	}

	orgs, err := app.FindAllRecords(orgsCol)
	if err != nil {
		return fmt.Errorf("migrate_templates: could not query organizations: %w", err)
	}

	for _, org := range orgs {
		existing, _ := app.FindRecordsByFilter(
			templatesCol,
			"organization = {:orgId}",
			"name_key",
			0, 0,
			map[string]any{"orgId": org.Id},
		)

		defaultID := ""
		if len(existing) == 0 {
			for _, d := range defaultTemplates {
				cfg, err := d.build()
				if err != nil {
					return fmt.Errorf("migrate_templates: build %q: %w", d.name, err)
				}
				record := core.NewRecord(templatesCol)
				record.Set("organization", org.Id)
				record.Set("name", d.name)
				record.Set("name_key", quote.NameKey(d.name))
				record.Set("config", cfg.Record())
				if err := app.Save(record); err != nil {
					app.Logger().Error("migrate_templates: failed to create template",
						"organization", org.Id, "template", d.name, "error", err)
					continue
				}
				if defaultID == "" {
					defaultID = record.Id
				}
			}
		} else {
			defaultID = existing[0].Id
		}

		if org.GetString("default_template") != "" || defaultID == "" {
			continue
		}
		org.Set("default_template", defaultID)
		if err := app.Save(org); err != nil {
			app.Logger().Error("migrate_templates: failed to set default template",
				"organization", org.Id, "error", err)
		}
	}

	return nil
}
