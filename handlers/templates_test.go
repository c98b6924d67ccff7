package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintquote/quote"
	"paintquote/testhelpers"
)

func TestHandleTemplateCreate_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	org := testhelpers.CreateTestOrganization(t, app, "Acme", 0)

	body := `{"name":"  Itemized ","config":{"organization":"surface","item_composition":"separated","labor_pricing_model":"unit_sqft","material_strategy":"itemized_volume","show_rates":true}}`
	req := newJSONRequest(http.MethodPost, "/api/orgs/"+org.Id+"/templates", body, map[string]string{"orgId": org.Id})
	rec := serve(t, app, HandleTemplateCreate(app), req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created quote.Template
	decodeJSON(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Itemized", created.Name)
	assert.Equal(t, quote.OrganizeBySurface, created.Config.Organization())
	assert.Equal(t, quote.GroupItemizedPerTask, created.Config.MaterialGrouping())
	assert.True(t, created.Config.Toggles().ShowRates)
}

func TestHandleTemplateCreate_Errors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	org := testhelpers.CreateTestOrganization(t, app, "Acme", 0)
	existing := testhelpers.CreateTestTemplate(t, app, org.Id, "Standard", quote.DefaultConfig())

	tests := []struct {
		name       string
		orgID      string
		body       string
		wantStatus int
		wantField  string
	}{
		{"duplicate name", org.Id, `{"name":"STANDARD","config":{}}`, http.StatusConflict, "name"},
		{"missing config", org.Id, `{"name":"New"}`, http.StatusBadRequest, "config"},
		{"empty name", org.Id, `{"name":"   ","config":{}}`, http.StatusBadRequest, "name"},
		{"invalid config", org.Id, `{"name":"New","config":{"organization":"building"}}`, http.StatusBadRequest, ""},
		{"grouping on bundled", org.Id, `{"name":"New","config":{"item_composition":"bundled","material_grouping":"combined_section"}}`, http.StatusBadRequest, "material_grouping"},
		{"malformed json", org.Id, `{"name":`, http.StatusBadRequest, "body"},
		{"unknown organization", "missing", `{"name":"New","config":{}}`, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(http.MethodPost, "/api/orgs/"+tt.orgID+"/templates", tt.body, map[string]string{"orgId": tt.orgID})
			rec := serve(t, app, HandleTemplateCreate(app), req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			var body errorBody
			decodeJSON(t, rec, &body)
			assert.NotEmpty(t, body.Error)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, body.Field)
			}
			if tt.wantStatus == http.StatusConflict {
				assert.Equal(t, existing.Id, body.ExistingID)
			}
		})
	}
}

func TestHandleTemplateUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	org := testhelpers.CreateTestOrganization(t, app, "Acme", 0)
	standard := testhelpers.CreateTestTemplate(t, app, org.Id, "Standard", quote.DefaultConfig())
	testhelpers.CreateTestTemplate(t, app, org.Id, "Premium", quote.DefaultConfig())

	t.Run("renames in place", func(t *testing.T) {
		body := `{"name":"Standard by floor","config":{"organization":"floor"}}`
		req := newJSONRequest(http.MethodPut, "/", body, map[string]string{"orgId": org.Id, "id": standard.Id})
		rec := serve(t, app, HandleTemplateUpdate(app), req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated quote.Template
		decodeJSON(t, rec, &updated)
		assert.Equal(t, standard.Id, updated.ID)
		assert.Equal(t, "Standard by floor", updated.Name)
		assert.Equal(t, quote.OrganizeByFloor, updated.Config.Organization())
	})

	t.Run("duplicate of another template", func(t *testing.T) {
		req := newJSONRequest(http.MethodPut, "/", `{"name":"premium","config":{}}`, map[string]string{"orgId": org.Id, "id": standard.Id})
		rec := serve(t, app, HandleTemplateUpdate(app), req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown template", func(t *testing.T) {
		req := newJSONRequest(http.MethodPut, "/", `{"name":"X","config":{}}`, map[string]string{"orgId": org.Id, "id": "missing"})
		rec := serve(t, app, HandleTemplateUpdate(app), req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleTemplateList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	org := testhelpers.CreateTestOrganization(t, app, "Acme", 0)
	zeta := testhelpers.CreateTestTemplate(t, app, org.Id, "zeta", quote.DefaultConfig())
	testhelpers.CreateTestTemplate(t, app, org.Id, "Alpha", quote.DefaultConfig())
	org.Set("default_template", zeta.Id)
	require.NoError(t, app.Save(org))

	req := newJSONRequest(http.MethodGet, "/", "", map[string]string{"orgId": org.Id})
	rec := serve(t, app, HandleTemplateList(app), req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp templateListResponse
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Templates, 2)
	assert.Equal(t, "Alpha", resp.Templates[0].Name)
	assert.Equal(t, "zeta", resp.Templates[1].Name)
	assert.Equal(t, zeta.Id, resp.DefaultTemplateID)

	req = newJSONRequest(http.MethodGet, "/", "", map[string]string{"orgId": "missing"})
	rec = serve(t, app, HandleTemplateList(app), req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTemplateOptions(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := serve(t, app, HandleTemplateOptions(app), newJSONRequest(http.MethodGet, "/api/template-options", "", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var opts map[string]any
	decodeJSON(t, rec, &opts)
	for _, key := range []string{"organizations", "item_compositions", "labor_pricing_models", "material_strategies", "material_groupings", "toggles", "defaults"} {
		assert.Contains(t, opts, key)
	}
}
