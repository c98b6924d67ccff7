package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
	"paintquote/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newJSONRequest builds a request with a JSON body and the given path values.
func newJSONRequest(method, target, body string, pathValues map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// serve runs handler against req and returns the recorder.
func serve(t *testing.T, app *pocketbase.PocketBase, handler func(*core.RequestEvent) error, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
}

type quoteProject struct {
	org      *core.Record
	project  *core.Record
	standard *core.Record
}

// seedQuoteProject creates an organization with a wall labor rate, a
// project with one 400 sqft bedroom and a default "Standard" template.
func seedQuoteProject(t *testing.T, app *pocketbase.PocketBase) quoteProject {
	t.Helper()

	org := testhelpers.CreateTestOrganization(t, app, "Acme Painting", 0.0825)
	testhelpers.CreateTestCatalogItem(t, app, org.Id, 1, quote.CatalogItem{
		Name: "Wall painting", Kind: quote.ItemLabor, Category: "wall", Unit: quote.UnitSquareFeet, Rate: 1.50,
	})
	project := testhelpers.CreateTestProject(t, app, org.Id, "Maple Street", "MAPLE")
	room := testhelpers.CreateTestRoom(t, app, project.Id, 1, "Bedroom", "", "")
	testhelpers.CreateTestSurface(t, app, room.Id, quote.SurfaceWall, 400, 2, false)

	standard := testhelpers.CreateTestTemplate(t, app, org.Id, "Standard", quote.DefaultConfig())
	org.Set("default_template", standard.Id)
	if err := app.Save(org); err != nil {
		t.Fatalf("failed to set default template: %v", err)
	}
	return quoteProject{org: org, project: project, standard: standard}
}
