// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintquote/collections"
	"paintquote/quote"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	t.Cleanup(func() { app.ResetBootstrapState() })

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

func saveRecord(t *testing.T, app core.App, collection string, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}

	record := core.NewRecord(col)
	for k, v := range fields {
		record.Set(k, v)
	}
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s record: %v", collection, err)
	}
	return record
}

// CreateTestOrganization creates an organization record and returns it.
func CreateTestOrganization(t *testing.T, app core.App, name string, taxRate float64) *core.Record {
	t.Helper()
	return saveRecord(t, app, "organizations", map[string]any{
		"name":     name,
		"tax_rate": taxRate,
	})
}

// CreateTestProject creates a project record owned by orgID and returns it.
func CreateTestProject(t *testing.T, app core.App, orgID, name, referenceNumber string) *core.Record {
	t.Helper()
	return saveRecord(t, app, "projects", map[string]any{
		"organization":     orgID,
		"name":             name,
		"reference_number": referenceNumber,
		"status":           "active",
	})
}

// CreateTestRoom creates a room record linked to a project.
func CreateTestRoom(t *testing.T, app core.App, projectID string, sortOrder int, name, floor, phase string) *core.Record {
	t.Helper()
	return saveRecord(t, app, "rooms", map[string]any{
		"project":    projectID,
		"sort_order": sortOrder,
		"name":       name,
		"floor":      floor,
		"phase":      phase,
	})
}

// CreateTestSurface creates a surface record linked to a room.
func CreateTestSurface(t *testing.T, app core.App, roomID string, surfaceType quote.SurfaceType, quantity float64, coats int, primer bool) *core.Record {
	t.Helper()
	return saveRecord(t, app, "surfaces", map[string]any{
		"room":         roomID,
		"surface_type": string(surfaceType),
		"quantity":     quantity,
		"coats":        coats,
		"primer":       primer,
	})
}

// CreateTestCatalogItem creates a catalog item owned by orgID. The item's ID
// is ignored; the record id is assigned by PocketBase.
func CreateTestCatalogItem(t *testing.T, app core.App, orgID string, sortOrder int, item quote.CatalogItem) *core.Record {
	t.Helper()
	return saveRecord(t, app, "catalog_items", map[string]any{
		"organization":   orgID,
		"sort_order":     sortOrder,
		"name":           item.Name,
		"kind":           string(item.Kind),
		"category":       item.Category,
		"unit":           item.Unit,
		"rate":           item.Rate,
		"minimum_charge": item.MinimumCharge,
		"coverage_rate":  item.CoverageRate,
	})
}

// CreateTestTemplate creates a quote template record owned by orgID.
func CreateTestTemplate(t *testing.T, app core.App, orgID, name string, cfg quote.DisplayConfig) *core.Record {
	t.Helper()
	return saveRecord(t, app, "quote_templates", map[string]any{
		"organization": orgID,
		"name":         name,
		"name_key":     quote.NameKey(name),
		"config":       cfg.Record(),
	})
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
