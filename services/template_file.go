package services

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"paintquote/quote"
)

// TemplateFile is the YAML document holding portable quote templates.
// Ids and owners are not part of the file; templates are matched by name.
type TemplateFile struct {
	Templates []TemplateEntry `yaml:"templates"`
}

// TemplateEntry is one template in a TemplateFile.
type TemplateEntry struct {
	Name   string              `yaml:"name"`
	Config quote.DisplayConfig `yaml:"config"`
}

// ImportResult counts what ImportTemplates changed.
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ReadTemplateFile decodes and validates a template file. Unknown keys,
// invalid configurations and names repeated within the file are errors.
func ReadTemplateFile(r io.Reader) ([]TemplateEntry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f TemplateFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode template file: %w", err)
	}

	seen := make(map[string]int, len(f.Templates))
	for i, e := range f.Templates {
		name, err := quote.NormalizeTemplate(e.Name, e.Config)
		if err != nil {
			return nil, fmt.Errorf("templates[%d]: %w", i, err)
		}
		key := quote.NameKey(name)
		if j, dup := seen[key]; dup {
			return nil, &quote.ValidationError{
				Field:   fmt.Sprintf("templates[%d].name", i),
				Message: fmt.Sprintf("%q repeats templates[%d]", name, j),
			}
		}
		seen[key] = i
		f.Templates[i].Name = name
	}
	return f.Templates, nil
}

// WriteTemplateFile encodes templates as a template file.
func WriteTemplateFile(w io.Writer, templates []quote.Template) error {
	f := TemplateFile{Templates: make([]TemplateEntry, len(templates))}
	for i, t := range templates {
		f.Templates[i] = TemplateEntry{Name: t.Name, Config: t.Config}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode template file: %w", err)
	}
	return enc.Close()
}

// ImportTemplates upserts entries into an organization's templates. An
// entry whose folded name matches an existing template updates it in place.
func ImportTemplates(store quote.TemplateStore, orgID string, entries []TemplateEntry) (ImportResult, error) {
	existing, err := store.List(orgID)
	if err != nil {
		return ImportResult{}, err
	}
	byKey := make(map[string]string, len(existing))
	for _, t := range existing {
		byKey[quote.NameKey(t.Name)] = t.ID
	}

	var res ImportResult
	for _, e := range entries {
		if id, ok := byKey[quote.NameKey(e.Name)]; ok {
			if _, err := store.Update(orgID, id, e.Name, e.Config); err != nil {
				return res, fmt.Errorf("update template %q: %w", e.Name, err)
			}
			res.Updated++
			continue
		}
		created, err := store.Create(orgID, e.Name, e.Config)
		if err != nil {
			return res, fmt.Errorf("create template %q: %w", e.Name, err)
		}
		byKey[quote.NameKey(created.Name)] = created.ID
		res.Created++
	}
	return res, nil
}

// ImportTemplateFile reads path and imports it into the organization.
func ImportTemplateFile(store quote.TemplateStore, orgID, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open template file: %w", err)
	}
	defer f.Close()

	entries, err := ReadTemplateFile(f)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return ImportTemplates(store, orgID, entries)
}

// ExportTemplateFile writes the organization's templates to path.
func ExportTemplateFile(store quote.TemplateStore, orgID, path string) (int, error) {
	templates, err := store.List(orgID)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create template file: %w", err)
	}
	if err := WriteTemplateFile(f, templates); err != nil {
		f.Close()
		return 0, err
	}
	return len(templates), f.Close()
}
