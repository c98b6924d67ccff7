package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
)

// Estimate is an externally estimated labor amount (hours or days) for one
// room and surface type.
type Estimate struct {
	RoomID      string            `json:"room_id" yaml:"room_id"`
	SurfaceType quote.SurfaceType `json:"surface_type" yaml:"surface_type"`
	Amount      float64           `json:"amount" yaml:"amount"`
}

// BuildRequest selects the template and supplies the per-request inputs of
// a quote build. An empty TemplateID means the organization's default.
type BuildRequest struct {
	TemplateID string                 `json:"template_id"`
	Estimates  []Estimate             `json:"estimates"`
	Products   quote.ProductSelection `json:"products"`
}

func (r BuildRequest) inputs(settings quote.OrgSettings) quote.Inputs {
	in := quote.Inputs{Settings: settings, Products: r.Products}
	if len(r.Estimates) > 0 {
		in.Estimates = make(quote.LaborEstimates, len(r.Estimates))
		for _, e := range r.Estimates {
			in.Estimates[quote.UnitKey{RoomID: e.RoomID, SurfaceType: e.SurfaceType}] += e.Amount
		}
	}
	return in
}

// StoredQuote is a persisted quote document.
type StoredQuote struct {
	ID         string         `json:"id"`
	ProjectID  string         `json:"project_id"`
	TemplateID string         `json:"template_id,omitempty"`
	Number     string         `json:"number"`
	Document   quote.Document `json:"document"`
	Created    time.Time      `json:"created"`
}

// BuildQuote loads everything a project quote depends on and assembles it.
// Nothing is written.
func BuildQuote(app core.App, projectID string, req BuildRequest) (Project, quote.Document, error) {
	project, err := LoadProject(app, projectID)
	if err != nil {
		return Project{}, quote.Document{}, err
	}
	settings, err := LoadOrgSettings(app, project.OrganizationID)
	if err != nil {
		return Project{}, quote.Document{}, err
	}

	templateID := req.TemplateID
	if templateID == "" {
		templateID = settings.DefaultTemplateID
	}
	if templateID == "" {
		return Project{}, quote.Document{}, &quote.ValidationError{
			Field:   "template_id",
			Message: "no template selected and the organization has no default template",
		}
	}
	tmpl, err := NewRecordTemplateStore(app).Get(project.OrganizationID, templateID)
	if err != nil {
		return Project{}, quote.Document{}, err
	}

	rooms, err := LoadRooms(app, projectID)
	if err != nil {
		return Project{}, quote.Document{}, err
	}
	catalog, err := LoadCatalog(app, project.OrganizationID)
	if err != nil {
		return Project{}, quote.Document{}, err
	}

	doc, err := quote.Assemble(rooms, catalog, tmpl, req.inputs(settings))
	if err != nil {
		return Project{}, quote.Document{}, err
	}
	return project, doc, nil
}

// CreateQuote builds a quote for the project and stores it under the next
// quote number. Numbering and saving share one transaction.
func CreateQuote(app core.App, projectID string, req BuildRequest, now time.Time) (StoredQuote, error) {
	_, doc, err := BuildQuote(app, projectID, req)
	if err != nil {
		return StoredQuote{}, err
	}

	var stored StoredQuote
	err = app.RunInTransaction(func(txApp core.App) error {
		number, err := GenerateQuoteNumber(txApp, projectID, now)
		if err != nil {
			return err
		}
		rec, err := SaveQuote(txApp, projectID, doc.TemplateID, number, doc)
		if err != nil {
			return err
		}
		stored = storedQuoteFromRecord(rec, doc)
		return nil
	})
	if err != nil {
		return StoredQuote{}, err
	}

	app.Logger().Info("quote created",
		"project", projectID,
		"quote", stored.ID,
		"number", stored.Number,
		"total", doc.Total,
		"warnings", len(doc.Warnings))
	return stored, nil
}

// SaveQuote persists a document with its totals.
func SaveQuote(app core.App, projectID, templateID, number string, doc quote.Document) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return nil, fmt.Errorf("save quote: %w", err)
	}

	rec := core.NewRecord(col)
	rec.Set("project", projectID)
	rec.Set("template", templateID)
	rec.Set("quote_number", number)
	rec.Set("document", doc)
	rec.Set("subtotal", doc.Subtotal)
	rec.Set("tax", doc.Tax)
	rec.Set("total", doc.Total)
	if err := app.Save(rec); err != nil {
		return nil, fmt.Errorf("save quote %s: %w", number, err)
	}
	return rec, nil
}

// LoadQuote reads a stored quote of the project.
func LoadQuote(app core.App, projectID, id string) (StoredQuote, error) {
	rec, err := app.FindRecordById("quotes", id)
	if err != nil || rec.GetString("project") != projectID {
		return StoredQuote{}, &quote.NotFoundError{Kind: "quote", ID: id}
	}

	var doc quote.Document
	if err := rec.UnmarshalJSONField("document", &doc); err != nil {
		return StoredQuote{}, fmt.Errorf("quote %s: document: %w", id, err)
	}
	return storedQuoteFromRecord(rec, doc), nil
}

func storedQuoteFromRecord(rec *core.Record, doc quote.Document) StoredQuote {
	return StoredQuote{
		ID:         rec.Id,
		ProjectID:  rec.GetString("project"),
		TemplateID: rec.GetString("template"),
		Number:     rec.GetString("quote_number"),
		Document:   doc,
		Created:    rec.GetDateTime("created").Time(),
	}
}
