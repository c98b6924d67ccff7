package services

import (
	"testing"
)

func TestGeneratePDF_Quote(t *testing.T) {
	result, err := GeneratePDF(BuildExportData(sampleProject, sampleStoredQuote()))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_HiddenColumns(t *testing.T) {
	result, err := GeneratePDF(BuildExportData(sampleProject, hideFields(sampleStoredQuote())))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestGeneratePDF_EmptyQuote(t *testing.T) {
	result, err := GeneratePDF(ExportData{Title: "Empty", CreatedDate: "2026-01-15"})
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestPDFColumns_FillGrid(t *testing.T) {
	tests := []struct {
		name    string
		cols    ExportColumns
		wantLen int
	}{
		{"amount only", ExportColumns{}, 3},
		{"quantity and unit", ExportColumns{Quantity: true}, 5},
		{"all", ExportColumns{Quantity: true, Coats: true, Rate: true}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := pdfColumns(tt.cols)
			if len(cols) != tt.wantLen {
				t.Fatalf("len(pdfColumns) = %d, want %d", len(cols), tt.wantLen)
			}
			sum := 0
			for _, c := range cols {
				if c.size < 1 {
					t.Errorf("column %q has size %d", c.title, c.size)
				}
				sum += c.size
			}
			if sum != 12 {
				t.Errorf("column sizes sum to %d, want 12", sum)
			}
			if cols[1].title != "Description" || cols[len(cols)-1].title != "Amount" {
				t.Errorf("unexpected column order: %q ... %q", cols[1].title, cols[len(cols)-1].title)
			}
		})
	}
}

func TestPDFColumns_IndentsLines(t *testing.T) {
	desc := pdfColumns(ExportColumns{})[1]
	if got := desc.value(ExportRow{Level: 1, Description: "Walls"}); got != "  Walls" {
		t.Errorf("line description = %q, want indented", got)
	}
	if got := desc.value(ExportRow{Level: 0, Description: "Bedroom"}); got != "Bedroom" {
		t.Errorf("section description = %q", got)
	}
}
