package services

import (
	"fmt"
	"time"

	"paintquote/quote"
)

// ExportColumns records which optional columns a quote shows. A column is
// present when at least one line carries a value for it.
type ExportColumns struct {
	Quantity bool
	Coats    bool
	Rate     bool
}

// ExportRow represents a single row in the quote export (section or line).
type ExportRow struct {
	Level       int    // 0 = section heading, 1 = line item
	Index       string // "1", "1.1" etc
	Description string
	Qty         string
	Unit        string
	Coats       string
	Rate        string
	Amount      float64
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title       string
	ClientName  string
	QuoteNumber string
	CreatedDate string
	Columns     ExportColumns
	Rows        []ExportRow
	Subtotal    float64
	TaxLabel    string
	Tax         float64
	Total       float64
	ShowTaxLine bool

	AmountInWords string
}

// BuildExportData flattens a stored quote into export rows. Fields hidden
// by the template are nil on the lines and never appear.
func BuildExportData(project Project, q StoredQuote) ExportData {
	doc := q.Document
	data := ExportData{
		Title:       project.Name,
		ClientName:  project.ClientName,
		QuoteNumber: q.Number,
		CreatedDate: formatDate(q.Created),
		Columns:     exportColumns(doc),
		Subtotal:    doc.Subtotal,
		TaxLabel:    fmt.Sprintf("Tax (%s)", FormatPercent(doc.TaxRate)),
		Tax:         doc.Tax,
		Total:       doc.Total,
		ShowTaxLine: doc.ShowTaxLine,

		AmountInWords: AmountToWords(doc.Total),
	}

	for i, s := range doc.Sections {
		sectionIdx := fmt.Sprintf("%d", i+1)
		data.Rows = append(data.Rows, ExportRow{
			Level:       0,
			Index:       sectionIdx,
			Description: s.Title,
			Amount:      s.Subtotal,
		})
		for j, l := range s.Lines {
			row := ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%s.%d", sectionIdx, j+1),
				Description: l.Description,
				Amount:      l.Amount,
			}
			if l.Quantity != nil {
				row.Qty = FormatQuantity(*l.Quantity)
				row.Unit = l.Unit
			}
			if l.Coats != nil {
				row.Coats = fmt.Sprintf("%d", *l.Coats)
			}
			if l.Rate != nil {
				row.Rate = FormatCurrency(*l.Rate)
			}
			data.Rows = append(data.Rows, row)
		}
	}
	return data
}

func exportColumns(doc quote.Document) ExportColumns {
	var c ExportColumns
	for _, l := range doc.Lines() {
		c.Quantity = c.Quantity || l.Quantity != nil
		c.Coats = c.Coats || l.Coats != nil
		c.Rate = c.Rate || l.Rate != nil
	}
	return c
}

// ExportHeader is one visible column of the line table.
type ExportHeader struct {
	Title string
	Value func(ExportRow) string
}

// TableHeaders lists the optional columns shown between Description and
// Amount, in display order.
func (c ExportColumns) TableHeaders() []ExportHeader {
	var h []ExportHeader
	if c.Quantity {
		h = append(h,
			ExportHeader{"Qty", func(r ExportRow) string { return r.Qty }},
			ExportHeader{"Unit", func(r ExportRow) string { return r.Unit }},
		)
	}
	if c.Coats {
		h = append(h, ExportHeader{"Coats", func(r ExportRow) string { return r.Coats }})
	}
	if c.Rate {
		h = append(h, ExportHeader{"Rate", func(r ExportRow) string { return r.Rate }})
	}
	return h
}

// SummaryLines returns the label/amount pairs printed under the table.
// Without a tax line only the total is shown.
func (d ExportData) SummaryLines() [][2]string {
	if !d.ShowTaxLine {
		return [][2]string{{"Total", FormatCurrency(d.Total)}}
	}
	return [][2]string{
		{"Subtotal", FormatCurrency(d.Subtotal)},
		{d.TaxLabel, FormatCurrency(d.Tax)},
		{"Total", FormatCurrency(d.Total)},
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
