package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
)

// RecordTemplateStore is a quote.TemplateStore backed by the
// quote_templates collection. The folded name is stored in name_key, which
// carries a unique (organization, name_key) index.
type RecordTemplateStore struct {
	app core.App
}

var _ quote.TemplateStore = (*RecordTemplateStore)(nil)

// NewRecordTemplateStore returns a store using app for all reads and writes.
func NewRecordTemplateStore(app core.App) *RecordTemplateStore {
	return &RecordTemplateStore{app: app}
}

func (s *RecordTemplateStore) Create(orgID, name string, cfg quote.DisplayConfig) (quote.Template, error) {
	name, err := quote.NormalizeTemplate(name, cfg)
	if err != nil {
		return quote.Template{}, err
	}

	var created quote.Template
	err = s.app.RunInTransaction(func(txApp core.App) error {
		if _, err := txApp.FindRecordById("organizations", orgID); err != nil {
			return &quote.NotFoundError{Kind: "organization", ID: orgID}
		}
		existing, err := listTemplates(txApp, orgID)
		if err != nil {
			return err
		}
		if err := quote.CheckDuplicateName(existing, orgID, name, ""); err != nil {
			return err
		}

		col, err := txApp.FindCollectionByNameOrId("quote_templates")
		if err != nil {
			return fmt.Errorf("template store: %w", err)
		}
		rec := core.NewRecord(col)
		rec.Set("organization", orgID)
		setTemplateFields(rec, name, cfg)
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("template store: save %q: %w", name, err)
		}
		created, err = templateFromRecord(rec)
		return err
	})
	return created, err
}

func (s *RecordTemplateStore) Update(orgID, id, name string, cfg quote.DisplayConfig) (quote.Template, error) {
	name, err := quote.NormalizeTemplate(name, cfg)
	if err != nil {
		return quote.Template{}, err
	}

	var updated quote.Template
	err = s.app.RunInTransaction(func(txApp core.App) error {
		rec, err := findTemplateRecord(txApp, orgID, id)
		if err != nil {
			return err
		}
		existing, err := listTemplates(txApp, orgID)
		if err != nil {
			return err
		}
		if err := quote.CheckDuplicateName(existing, orgID, name, id); err != nil {
			return err
		}

		setTemplateFields(rec, name, cfg)
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("template store: save %q: %w", name, err)
		}
		updated, err = templateFromRecord(rec)
		return err
	})
	return updated, err
}

func (s *RecordTemplateStore) List(orgID string) ([]quote.Template, error) {
	return listTemplates(s.app, orgID)
}

func (s *RecordTemplateStore) Get(orgID, id string) (quote.Template, error) {
	rec, err := findTemplateRecord(s.app, orgID, id)
	if err != nil {
		return quote.Template{}, err
	}
	return templateFromRecord(rec)
}

func setTemplateFields(rec *core.Record, name string, cfg quote.DisplayConfig) {
	rec.Set("name", name)
	rec.Set("name_key", quote.NameKey(name))
	rec.Set("config", cfg.Record())
}

func findTemplateRecord(app core.App, orgID, id string) (*core.Record, error) {
	rec, err := app.FindRecordById("quote_templates", id)
	if err != nil || rec.GetString("organization") != orgID {
		return nil, &quote.NotFoundError{Kind: "template", ID: id}
	}
	return rec, nil
}

func listTemplates(app core.App, orgID string) ([]quote.Template, error) {
	recs, err := app.FindRecordsByFilter(
		"quote_templates",
		"organization = {:orgId}",
		"name_key,id",
		0, 0,
		map[string]any{"orgId": orgID},
	)
	if err != nil {
		return nil, fmt.Errorf("template store: list: %w", err)
	}

	out := make([]quote.Template, 0, len(recs))
	for _, r := range recs {
		t, err := templateFromRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	quote.SortTemplates(out)
	return out, nil
}

// templateFromRecord decodes a quote_templates record. A stored config that
// no longer validates is reported as an error rather than silently fixed.
func templateFromRecord(r *core.Record) (quote.Template, error) {
	var cfg quote.DisplayConfig
	if err := r.UnmarshalJSONField("config", &cfg); err != nil {
		return quote.Template{}, fmt.Errorf("template %s: config: %w", r.Id, err)
	}
	return quote.Template{
		ID:             r.Id,
		OrganizationID: r.GetString("organization"),
		Name:           r.GetString("name"),
		Config:         cfg,
		Created:        r.GetDateTime("created").Time(),
		Updated:        r.GetDateTime("updated").Time(),
	}, nil
}
