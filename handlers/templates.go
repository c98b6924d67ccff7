package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
	"paintquote/services"
)

// templateRequest is the body of template create and update calls.
type templateRequest struct {
	Name   string              `json:"name"`
	Config *quote.ConfigRecord `json:"config"`
}

func (r templateRequest) parse() (string, quote.DisplayConfig, error) {
	if r.Config == nil {
		return "", quote.DisplayConfig{}, &quote.ValidationError{Field: "config", Message: "is required"}
	}
	cfg, err := quote.ParseConfig(*r.Config)
	if err != nil {
		return "", quote.DisplayConfig{}, err
	}
	return r.Name, cfg, nil
}

func bindTemplateRequest(e *core.RequestEvent) (string, quote.DisplayConfig, error) {
	var req templateRequest
	if err := e.BindBody(&req); err != nil {
		return "", quote.DisplayConfig{}, &quote.ValidationError{Field: "body", Message: "invalid request body", Err: err}
	}
	return req.parse()
}

type templateListResponse struct {
	Templates         []quote.Template `json:"templates"`
	DefaultTemplateID string           `json:"default_template_id,omitempty"`
}

// HandleTemplateList returns a handler that lists an organization's quote
// templates ordered by name.
func HandleTemplateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orgID := e.Request.PathValue("orgId")
		settings, err := services.LoadOrgSettings(app, orgID)
		if err != nil {
			return respondError(app, e, "template list", err)
		}

		templates, err := services.NewRecordTemplateStore(app).List(orgID)
		if err != nil {
			return respondError(app, e, "template list", err)
		}
		return e.JSON(http.StatusOK, templateListResponse{
			Templates:         templates,
			DefaultTemplateID: settings.DefaultTemplateID,
		})
	}
}

// HandleTemplateCreate returns a handler that creates a quote template.
func HandleTemplateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orgID := e.Request.PathValue("orgId")
		name, cfg, err := bindTemplateRequest(e)
		if err != nil {
			return respondError(app, e, "template create", err)
		}

		created, err := services.NewRecordTemplateStore(app).Create(orgID, name, cfg)
		if err != nil {
			return respondError(app, e, "template create", err)
		}
		app.Logger().Info("template created", "organization", orgID, "template", created.ID, "name", created.Name)
		return e.JSON(http.StatusCreated, created)
	}
}

// HandleTemplateUpdate returns a handler that renames or reconfigures a
// quote template. The id never changes.
func HandleTemplateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orgID := e.Request.PathValue("orgId")
		id := e.Request.PathValue("id")
		name, cfg, err := bindTemplateRequest(e)
		if err != nil {
			return respondError(app, e, "template update", err)
		}

		updated, err := services.NewRecordTemplateStore(app).Update(orgID, id, name, cfg)
		if err != nil {
			return respondError(app, e, "template update", err)
		}
		app.Logger().Info("template updated", "organization", orgID, "template", id)
		return e.JSON(http.StatusOK, updated)
	}
}

// HandleTemplateOptions returns a handler serving the editor option lists.
func HandleTemplateOptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.GetTemplateOptions())
	}
}
