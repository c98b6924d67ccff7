package quote

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/cases"
)

// MaxTemplateNameLength bounds template names, in runes.
const MaxTemplateNameLength = 100

// Template is a named, reusable display configuration owned by an
// organization.
type Template struct {
	ID             string        `json:"id" yaml:"id,omitempty"`
	OrganizationID string        `json:"organization_id" yaml:"-"`
	Name           string        `json:"name" yaml:"name"`
	Config         DisplayConfig `json:"config" yaml:"config"`
	Created        time.Time     `json:"created" yaml:"-"`
	Updated        time.Time     `json:"updated" yaml:"-"`
}

// TemplateStore holds an organization's quote templates. Names are unique
// per organization after trimming and case folding. Concurrent edits of
// one template resolve last-write-wins.
type TemplateStore interface {
	Create(orgID, name string, cfg DisplayConfig) (Template, error)
	Update(orgID, id, name string, cfg DisplayConfig) (Template, error)
	List(orgID string) ([]Template, error)
	Get(orgID, id string) (Template, error)
}

// NameKey folds a template name for uniqueness comparisons.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NormalizeTemplate trims the name and checks both name and config.
func NormalizeTemplate(name string, cfg DisplayConfig) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationf("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > MaxTemplateNameLength {
		return "", validationf("name", "must be at most %d characters", MaxTemplateNameLength)
	}
	if cfg.IsZero() {
		return "", validationf("config", "is required")
	}
	return name, nil
}

// CheckDuplicateName returns a DuplicateNameError when a template other than
// exceptID already uses name.
func CheckDuplicateName(existing []Template, orgID, name, exceptID string) error {
	key := NameKey(name)
	for _, t := range existing {
		if t.ID != exceptID && NameKey(t.Name) == key {
			return &DuplicateNameError{OrganizationID: orgID, Name: name, ExistingID: t.ID}
		}
	}
	return nil
}

// SortTemplates orders templates by folded name, then id.
func SortTemplates(ts []Template) {
	slices.SortFunc(ts, func(a, b Template) int {
		if c := cmp.Compare(NameKey(a.Name), NameKey(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// MemoryTemplateStore is an in-process TemplateStore.
type MemoryTemplateStore struct {
	mu    sync.RWMutex
	byOrg map[string]map[string]Template
	now   func() time.Time
}

// NewMemoryTemplateStore returns an empty store.
func NewMemoryTemplateStore() *MemoryTemplateStore {
	return &MemoryTemplateStore{
		byOrg: make(map[string]map[string]Template),
		now:   time.Now,
	}
}

func (s *MemoryTemplateStore) orgTemplates(orgID string) []Template {
	out := make([]Template, 0, len(s.byOrg[orgID]))
	for _, t := range s.byOrg[orgID] {
		out = append(out, t)
	}
	SortTemplates(out)
	return out
}

func (s *MemoryTemplateStore) Create(orgID, name string, cfg DisplayConfig) (Template, error) {
	name, err := NormalizeTemplate(name, cfg)
	if err != nil {
		return Template{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := CheckDuplicateName(s.orgTemplates(orgID), orgID, name, ""); err != nil {
		return Template{}, err
	}
	id, err := gonanoid.New(15)
	if err != nil {
		return Template{}, err
	}
	now := s.now().UTC()
	t := Template{
		ID:             id,
		OrganizationID: orgID,
		Name:           name,
		Config:         cfg,
		Created:        now,
		Updated:        now,
	}
	if s.byOrg[orgID] == nil {
		s.byOrg[orgID] = make(map[string]Template)
	}
	s.byOrg[orgID][id] = t
	return t, nil
}

func (s *MemoryTemplateStore) Update(orgID, id, name string, cfg DisplayConfig) (Template, error) {
	name, err := NormalizeTemplate(name, cfg)
	if err != nil {
		return Template{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byOrg[orgID][id]
	if !ok {
		return Template{}, &NotFoundError{Kind: "template", ID: id}
	}
	if err := CheckDuplicateName(s.orgTemplates(orgID), orgID, name, id); err != nil {
		return Template{}, err
	}
	t.Name = name
	t.Config = cfg
	t.Updated = s.now().UTC()
	s.byOrg[orgID][id] = t
	return t, nil
}

func (s *MemoryTemplateStore) List(orgID string) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orgTemplates(orgID), nil
}

func (s *MemoryTemplateStore) Get(orgID, id string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byOrg[orgID][id]
	if !ok {
		return Template{}, &NotFoundError{Kind: "template", ID: id}
	}
	return t, nil
}
