package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintquote/quote"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	ExistingID string `json:"existing_id,omitempty"`
}

// errorStatus maps the quote error taxonomy onto HTTP statuses. Anything
// unrecognized is an internal error and its message is not exposed.
func errorStatus(err error) (int, errorBody) {
	var (
		ve  *quote.ValidationError
		nf  *quote.NotFoundError
		dup *quote.DuplicateNameError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorBody{Error: ve.Error(), Field: ve.Field}
	case errors.As(err, &nf):
		return http.StatusNotFound, errorBody{Error: nf.Error()}
	case errors.As(err, &dup):
		return http.StatusConflict, errorBody{Error: dup.Error(), Field: "name", ExistingID: dup.ExistingID}
	default:
		return http.StatusInternalServerError, errorBody{Error: "internal error"}
	}
}

// respondError logs err under op and writes the mapped JSON error.
func respondError(app *pocketbase.PocketBase, e *core.RequestEvent, op string, err error) error {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		app.Logger().Error(op+" failed", "error", err, "path", e.Request.URL.Path)
	} else {
		app.Logger().Debug(op+" rejected", "status", status, "error", err)
	}
	return e.JSON(status, body)
}
