package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
	"paintquote/services"
)

// HandleQuoteCreate returns a handler that builds a quote for the project
// and stores it under the next quote number.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requestProject(app, e)
		if err != nil {
			return respondError(app, e, "quote create", err)
		}

		var req services.BuildRequest
		if err := e.BindBody(&req); err != nil {
			return respondError(app, e, "quote create",
				&quote.ValidationError{Field: "body", Message: "invalid request body", Err: err})
		}

		stored, err := services.CreateQuote(app, project.ID, req, time.Now())
		if err != nil {
			return respondError(app, e, "quote create", err)
		}
		return e.JSON(http.StatusCreated, stored)
	}
}

// HandleQuoteView returns a handler serving a stored quote document.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := requestProject(app, e)
		if err != nil {
			return respondError(app, e, "quote view", err)
		}

		stored, err := services.LoadQuote(app, project.ID, e.Request.PathValue("id"))
		if err != nil {
			return respondError(app, e, "quote view", err)
		}
		return e.JSON(http.StatusOK, stored)
	}
}
