package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintquote/services"
	"paintquote/testhelpers"
)

var testNow = time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces to hyphens", "My Quote File", "My-Quote-File"},
		{"slashes to hyphens", "path/to/file", "path-to-file"},
		{"backslashes", "path\\to\\file", "path-to-file"},
		{"colons", "file:name", "file-name"},
		{"quotes removed", `say "hi"`, "say-hi"},
		{"mixed", "A / B \\ C : D", "A---B---C---D"},
		{"no special chars", "simple", "simple"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// storedQuoteRequest creates a quote and returns a request addressing it.
func storedQuoteRequest(t *testing.T, app *pocketbase.PocketBase) *http.Request {
	t.Helper()
	fx := seedQuoteProject(t, app)
	created, err := services.CreateQuote(app, fx.project.Id, services.BuildRequest{}, testNow)
	require.NoError(t, err)
	return newJSONRequest(http.MethodGet, "/", "", map[string]string{"projectId": fx.project.Id, "id": created.ID})
}

func TestHandleQuoteExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := serve(t, app, HandleQuoteExportExcel(app), storedQuoteRequest(t, app))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Quote_QT-MAPLE-26-001.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())
}

func TestHandleQuoteExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := serve(t, app, HandleQuoteExportPDF(app), storedQuoteRequest(t, app))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestHandleQuotePreview(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := serve(t, app, HandleQuotePreview(app), storedQuoteRequest(t, app))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<h1>Maple Street</h1>",
		"Quote QT-MAPLE-26-001",
		`<td class="description">Bedroom</td>`,
		`<td class="description">Paint walls</td>`,
		"<th>Tax (8.25%)</th>",
		`<td class="num">$1,299.00</td>`,
	)
}

func TestExportHandlers_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	fx := seedQuoteProject(t, app)

	for name, h := range map[string]func(*pocketbase.PocketBase) func(*core.RequestEvent) error{
		"excel":   HandleQuoteExportExcel,
		"pdf":     HandleQuoteExportPDF,
		"preview": HandleQuotePreview,
	} {
		t.Run(name, func(t *testing.T) {
			req := newJSONRequest(http.MethodGet, "/", "", map[string]string{"projectId": fx.project.Id, "id": "missing"})
			rec := serve(t, app, h(app), req)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}
