package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
)

// Project is the slice of a project record that quoting needs.
type Project struct {
	ID              string
	OrganizationID  string
	Name            string
	ClientName      string
	ReferenceNumber string
}

// LoadProject fetches a project record.
func LoadProject(app core.App, projectID string) (Project, error) {
	rec, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return Project{}, &quote.NotFoundError{Kind: "project", ID: projectID}
	}
	return Project{
		ID:              rec.Id,
		OrganizationID:  rec.GetString("organization"),
		Name:            rec.GetString("name"),
		ClientName:      rec.GetString("client_name"),
		ReferenceNumber: rec.GetString("reference_number"),
	}, nil
}

// LoadOrgSettings reads the organization-level values the engine needs.
func LoadOrgSettings(app core.App, orgID string) (quote.OrgSettings, error) {
	rec, err := app.FindRecordById("organizations", orgID)
	if err != nil {
		return quote.OrgSettings{}, &quote.NotFoundError{Kind: "organization", ID: orgID}
	}
	return quote.OrgSettings{
		OrganizationID:    rec.Id,
		TaxRate:           rec.GetFloat("tax_rate"),
		DefaultTemplateID: rec.GetString("default_template"),
	}, nil
}

// LoadRooms returns the project's rooms with their surfaces, both in
// sort_order. Room and surface ids are the record ids.
func LoadRooms(app core.App, projectID string) ([]quote.Room, error) {
	roomRecs, err := app.FindRecordsByFilter(
		"rooms",
		"project = {:projectId}",
		"sort_order,created",
		0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}

	rooms := make([]quote.Room, 0, len(roomRecs))
	for _, rr := range roomRecs {
		surfaceRecs, err := app.FindRecordsByFilter(
			"surfaces",
			"room = {:roomId}",
			"sort_order,created",
			0, 0,
			map[string]any{"roomId": rr.Id},
		)
		if err != nil {
			return nil, fmt.Errorf("load surfaces for room %s: %w", rr.Id, err)
		}

		room := quote.Room{
			ID:       rr.Id,
			Name:     rr.GetString("name"),
			Floor:    rr.GetString("floor"),
			Phase:    rr.GetString("phase"),
			Surfaces: make([]quote.Surface, 0, len(surfaceRecs)),
		}
		for _, sr := range surfaceRecs {
			room.Surfaces = append(room.Surfaces, quote.Surface{
				ID:       sr.Id,
				Type:     quote.SurfaceType(sr.GetString("surface_type")),
				Quantity: sr.GetFloat("quantity"),
				Coats:    sr.GetInt("coats"),
				Primer:   sr.GetBool("primer"),
			})
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// LoadCatalog builds the organization's catalog index in sort_order, so
// the first item of a kind and category is the one the engine prices with.
func LoadCatalog(app core.App, orgID string) (*quote.Catalog, error) {
	recs, err := app.FindRecordsByFilter(
		"catalog_items",
		"organization = {:orgId}",
		"sort_order,created",
		0, 0,
		map[string]any{"orgId": orgID},
	)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	items := make([]quote.CatalogItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, quote.CatalogItem{
			ID:            r.Id,
			Name:          r.GetString("name"),
			Kind:          quote.ItemKind(r.GetString("kind")),
			Category:      r.GetString("category"),
			Unit:          r.GetString("unit"),
			Rate:          r.GetFloat("rate"),
			MinimumCharge: r.GetFloat("minimum_charge"),
			CoverageRate:  r.GetFloat("coverage_rate"),
		})
	}

	return quote.NewCatalog(items)
}
