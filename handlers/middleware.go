package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintquote/services"
)

type contextKey string

const ProjectKey contextKey = "project"

// GetProject extracts the project loaded by ProjectMiddleware.
func GetProject(r *http.Request) (services.Project, bool) {
	p, ok := r.Context().Value(ProjectKey).(services.Project)
	return p, ok
}

// ProjectMiddleware loads the project named by the {projectId} path value
// and stores it in the request context. Unknown projects end the request
// with a 404.
func ProjectMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := services.LoadProject(app, e.Request.PathValue("projectId"))
		if err != nil {
			return respondError(app, e, "project lookup", err)
		}

		ctx := context.WithValue(e.Request.Context(), ProjectKey, project)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// requestProject returns the project from the context, loading it when the
// middleware did not run.
func requestProject(app *pocketbase.PocketBase, e *core.RequestEvent) (services.Project, error) {
	if p, ok := GetProject(e.Request); ok {
		return p, nil
	}
	return services.LoadProject(app, e.Request.PathValue("projectId"))
}
