// Package templates renders HTML views with templ components.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"paintquote/services"
)

// htmlWriter writes escaped markup and keeps the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// element writes <tag class="class">content</tag> with escaped content.
func (h *htmlWriter) element(tag, class, content string) {
	h.raw("<" + tag)
	if class != "" {
		h.raw(` class="` + templ.EscapeString(class) + `"`)
	}
	h.raw(">")
	h.text(content)
	h.raw("</" + tag + ">")
}

// QuotePreview renders a printable HTML page of a quote. Columns hidden by
// the template are absent, and the tax line appears only when enabled.
func QuotePreview(data services.ExportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		optional := data.Columns.TableHeaders()

		h.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>")
		h.text(data.QuoteNumber + " · " + data.Title)
		h.raw("</title>")
		h.raw(previewStyle)
		h.raw("</head><body><main class=\"quote\">")

		h.raw("<header>")
		h.element("h1", "", data.Title)
		h.element("p", "quote-number", "Quote "+data.QuoteNumber)
		if data.ClientName != "" {
			h.element("p", "client", "Prepared for "+data.ClientName)
		}
		if data.CreatedDate != "" {
			h.element("p", "date", data.CreatedDate)
		}
		h.raw("</header>")

		h.raw("<table><thead><tr>")
		h.element("th", "index", "#")
		h.element("th", "description", "Description")
		for _, col := range optional {
			h.element("th", "num", col.Title)
		}
		h.element("th", "num", "Amount")
		h.raw("</tr></thead><tbody>")

		for _, r := range data.Rows {
			if r.Level == 0 {
				h.raw(`<tr class="section">`)
				h.element("td", "index", r.Index)
				h.element("td", "description", r.Description)
				for range optional {
					h.raw("<td></td>")
				}
				h.element("td", "num", services.FormatCurrency(r.Amount))
				h.raw("</tr>")
				continue
			}
			h.raw(`<tr class="line">`)
			h.element("td", "index", r.Index)
			h.element("td", "description", r.Description)
			for _, col := range optional {
				h.element("td", "num", col.Value(r))
			}
			h.element("td", "num", services.FormatCurrency(r.Amount))
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")

		h.raw(`<table class="summary"><tbody>`)
		for _, s := range data.SummaryLines() {
			h.raw("<tr>")
			h.element("th", "", s[0])
			h.element("td", "num", s[1])
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")

		if data.AmountInWords != "" {
			h.element("p", "amount-words", data.AmountInWords)
		}
		h.raw("</main></body></html>")

		if h.err != nil {
			return h.err
		}
		return ctx.Err()
	})
}

const previewStyle = `<style>
body { font-family: system-ui, sans-serif; color: #212529; margin: 2rem; }
.quote { max-width: 960px; margin: 0 auto; }
header p { margin: 0.25rem 0; color: #555; }
table { width: 100%; border-collapse: collapse; margin-top: 1.5rem; }
th, td { padding: 0.4rem 0.6rem; border-bottom: 1px solid #dee2e6; text-align: left; }
thead th { background: #212529; color: #fff; }
tr.section td { background: #f0f0f0; font-weight: 600; }
tr.line td.description { padding-left: 1.5rem; }
.num { text-align: right; white-space: nowrap; }
.summary { width: auto; margin-left: auto; }
.summary th { text-align: right; }
.amount-words { font-style: italic; text-align: right; }
</style>`
