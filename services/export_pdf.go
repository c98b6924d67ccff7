package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// pdfColumn is one column of the line table on the 12-unit maroto grid.
type pdfColumn struct {
	title string
	size  int
	align align.Type
	value func(ExportRow) string
}

// pdfColumns lays out the visible columns. Description takes whatever width
// the optional columns leave.
func pdfColumns(c ExportColumns) []pdfColumn {
	var optional []pdfColumn
	used := 1 + 2 // index + amount
	for _, h := range c.TableHeaders() {
		size := 1
		if h.Title == "Rate" {
			size = 2
		}
		used += size
		optional = append(optional, pdfColumn{title: h.Title, size: size, align: align.Right, value: h.Value})
	}

	cols := []pdfColumn{
		{title: "#", size: 1, align: align.Center, value: func(r ExportRow) string { return r.Index }},
		{title: "Description", size: 12 - used, align: align.Left, value: func(r ExportRow) string {
			if r.Level == 1 {
				return "  " + r.Description
			}
			return r.Description
		}},
	}
	cols = append(cols, optional...)
	return append(cols, pdfColumn{title: "Amount", size: 2, align: align.Right, value: func(r ExportRow) string {
		return FormatCurrency(r.Amount)
	}})
}

// GeneratePDF creates a PDF document from quote export data using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	cols := pdfColumns(data.Columns)

	addHeader(m, data)
	addTableHeader(m, cols)
	for _, r := range data.Rows {
		addTableRow(m, cols, r)
	}
	addSummary(m, data)
	addAmountInWords(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, quote number, client and date to the PDF.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	grey := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(
				text.New(fmt.Sprintf("Quote: %s", data.QuoteNumber), props.Text{Size: 9, Align: align.Left, Color: grey}),
			),
			col.New(4).Add(
				text.New(data.ClientName, props.Text{Size: 9, Align: align.Center, Color: grey}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{Size: 9, Align: align.Right, Color: grey}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the line table.
func addTableHeader(m core.Maroto, cols []pdfColumn) {
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}

	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(
			text.New(c.title, props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: c.align,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			}),
		).WithStyle(&headerCell))
	}
	m.AddRows(r)
}

// addTableRow adds a section heading or line row. Section headings are bold
// on a grey background and carry only the section subtotal.
func addTableRow(m core.Maroto, cols []pdfColumn, r ExportRow) {
	var cellStyle *props.Cell
	size := 7.0
	style := fontstyle.Normal
	if r.Level == 0 {
		size = 8
		style = fontstyle.Bold
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	}

	out := row.New(7)
	for i, c := range cols {
		value := c.value(r)
		if r.Level == 0 && i > 1 && i < len(cols)-1 {
			value = ""
		}
		column := col.New(c.size).Add(text.New(value, props.Text{Size: size, Style: style, Align: c.align}))
		if cellStyle != nil {
			column = column.WithStyle(cellStyle)
		}
		out.Add(column)
	}
	m.AddRows(out)
}

// addSummary adds the subtotal, tax and total rows at the bottom of the PDF.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	summaryText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	for _, s := range data.SummaryLines() {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(s[0], summaryText)).WithStyle(summaryCell),
				col.New(4).Add(text.New(s[1], summaryText)).WithStyle(summaryCell),
			),
		)
	}
}

// addAmountInWords spells out the quote total below the summary.
func addAmountInWords(m core.Maroto, data ExportData) {
	if data.AmountInWords == "" {
		return
	}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Amount in words: "+data.AmountInWords, props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Left,
					Top:   2,
				}),
			),
		),
	)
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
