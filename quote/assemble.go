package quote

import "math"

// Assemble builds a quote document from measurements, a catalog and a
// template. It is a pure function of its arguments.
//
// A billable unit that cannot be priced is left out and reported in
// Document.Warnings; every other failure is returned as an error and no
// document is produced.
func Assemble(rooms []Room, catalog *Catalog, tmpl Template, in Inputs) (Document, error) {
	cfg := tmpl.Config
	if cfg.IsZero() {
		return Document{}, validationf("template", "template %q has no configuration", tmpl.ID)
	}
	if catalog == nil {
		return Document{}, validationf("catalog", "catalog is required")
	}
	if err := validateSettings(in.Settings, tmpl); err != nil {
		return Document{}, err
	}

	units, err := Aggregate(rooms)
	if err != nil {
		return Document{}, err
	}

	keyer := newSectionKeyer(rooms, cfg.Organization())
	resolver := NewResolver(catalog, cfg, in)

	var (
		lines    []LineItem
		warnings []Warning
	)
	warn := func(section string, m *MissingRateError) {
		warnings = append(warnings, Warning{
			Section:     section,
			Title:       keyer.title(section),
			RoomID:      m.RoomID,
			SurfaceType: m.SurfaceType,
			Kind:        m.Kind,
			Message:     m.Error(),
		})
	}

	var sectionKeys []string
	seenSection := make(map[string]bool)
	for _, u := range units {
		key := keyer.keyFor(u.RoomID, u.SurfaceType)
		if !seenSection[key] {
			seenSection[key] = true
			sectionKeys = append(sectionKeys, key)
		}

		priced, missing := resolver.Resolve(u)
		lines = append(lines, priced...)
		for _, m := range missing {
			warn(key, m)
		}
	}

	if cfg.MaterialStrategy() == MaterialAllowance {
		allowance, missing := resolver.Allowance()
		for _, key := range sectionKeys {
			if missing != nil {
				warn(key, missing)
				continue
			}
			line := allowance
			line.Section = key
			lines = append(lines, line)
		}
	}

	sections := Group(lines, rooms, cfg)
	applyToggles(sections, cfg.Toggles())

	var all []LineItem
	for _, s := range sections {
		all = append(all, s.Lines...)
	}
	subtotal := sumAmounts(all).Round(2)
	tax := subtotal.Mul(dec(in.Settings.TaxRate)).Round(2)

	return Document{
		TemplateID:   tmpl.ID,
		Organization: cfg.Organization(),
		Sections:     sections,
		Subtotal:     subtotal.InexactFloat64(),
		TaxRate:      in.Settings.TaxRate,
		Tax:          tax.InexactFloat64(),
		Total:        subtotal.Add(tax).InexactFloat64(),
		ShowTaxLine:  cfg.Toggles().ShowTaxLine,
		Warnings:     warnings,
	}, nil
}

func validateSettings(s OrgSettings, tmpl Template) error {
	if math.IsNaN(s.TaxRate) || s.TaxRate < 0 || s.TaxRate >= 1 {
		return validationf("tax_rate", "must be in [0, 1), got %v", s.TaxRate)
	}
	if s.OrganizationID != "" && tmpl.OrganizationID != "" && s.OrganizationID != tmpl.OrganizationID {
		return validationf("template", "template %s belongs to organization %s", tmpl.ID, tmpl.OrganizationID)
	}
	return nil
}

// applyToggles clears the display fields a template hides. Amounts are
// never touched.
func applyToggles(sections []Section, t Toggles) {
	for i := range sections {
		for j := range sections[i].Lines {
			l := &sections[i].Lines[j]
			if !t.ShowQuantities {
				l.Quantity = nil
				l.Unit = ""
			}
			if !t.ShowRates {
				l.Rate = nil
			}
			if !t.ShowCoatCounts {
				l.Coats = nil
			}
		}
	}
}
