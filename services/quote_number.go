package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// FiscalYearStart is the first month of the fiscal year used in quote
// numbers.
var FiscalYearStart = time.January

// GetFiscalYear returns the fiscal year label for a date. A fiscal year that
// starts in January is labelled by its two-digit year ("26"); any other start
// month spans two calendar years ("25-26").
func GetFiscalYear(t time.Time, start time.Month) string {
	if start <= time.January {
		return fmt.Sprintf("%02d", t.Year()%100)
	}

	startYear := t.Year()
	if t.Month() < start {
		startYear--
	}
	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

func quoteNumberPrefix(projectRef, fiscalYear string) string {
	return fmt.Sprintf("QT-%s-%s-", projectRef, fiscalYear)
}

// formatQuoteNumber constructs the quote number string from components.
func formatQuoteNumber(projectRef, fiscalYear string, sequence int) string {
	return fmt.Sprintf("%s%03d", quoteNumberPrefix(projectRef, fiscalYear), sequence)
}

// GenerateQuoteNumber creates the next quote number for a project.
// Format: QT-{project_ref}-{fiscal_year}-{sequence}
//   - project_ref: project's reference_number (falls back to project ID if empty)
//   - fiscal_year: see GetFiscalYear
//   - sequence: 3-digit zero-padded, per project per fiscal year
func GenerateQuoteNumber(app core.App, projectID string, now time.Time) (string, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return "", fmt.Errorf("project not found: %w", err)
	}

	projectRef := project.GetString("reference_number")
	if projectRef == "" {
		projectRef = projectID
	}

	fiscalYear := GetFiscalYear(now, FiscalYearStart)
	prefix := quoteNumberPrefix(projectRef, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		"quotes",
		"project = {:projectId} && quote_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"projectId": projectID,
			"prefix":    prefix + "%",
		},
	)
	if err != nil {
		existing = nil
	}

	return formatQuoteNumber(projectRef, fiscalYear, len(existing)+1), nil
}
