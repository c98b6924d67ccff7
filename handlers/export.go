package handlers

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintquote/services"
	"paintquote/templates"
)

// buildExportData loads the stored quote named by the request path and
// flattens it for rendering.
func buildExportData(app *pocketbase.PocketBase, e *core.RequestEvent) (services.ExportData, error) {
	project, err := requestProject(app, e)
	if err != nil {
		return services.ExportData{}, err
	}
	stored, err := services.LoadQuote(app, project.ID, e.Request.PathValue("id"))
	if err != nil {
		return services.ExportData{}, err
	}
	return services.BuildExportData(project, stored), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

func exportFilename(data services.ExportData, ext string) string {
	name := data.QuoteNumber
	if name == "" {
		name = data.Title
	}
	return fmt.Sprintf("Quote_%s.%s", sanitizeFilename(name), ext)
}

// HandleQuoteExportExcel returns a handler that generates and downloads an Excel file for a quote.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildExportData(app, e)
		if err != nil {
			return respondError(app, e, "export excel", err)
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			return respondError(app, e, "export excel", err)
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF returns a handler that generates and downloads a PDF file for a quote.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildExportData(app, e)
		if err != nil {
			return respondError(app, e, "export pdf", err)
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			return respondError(app, e, "export pdf", err)
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleQuotePreview returns a handler that renders a quote as an HTML page.
func HandleQuotePreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildExportData(app, e)
		if err != nil {
			return respondError(app, e, "quote preview", err)
		}

		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.QuotePreview(data).Render(e.Request.Context(), e.Response)
	}
}
