package quote

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Organization selects the grouping key for sections.
type Organization string

const (
	OrganizeByRoom    Organization = "room"
	OrganizeBySurface Organization = "surface"
	OrganizeByFloor   Organization = "floor"
	OrganizeByPhase   Organization = "phase"
)

// LaborModel selects how labor cost is computed.
type LaborModel string

const (
	LaborUnitSqft LaborModel = "unit_sqft"
	LaborFixed    LaborModel = "fixed"
	LaborHourly   LaborModel = "hourly"
	LaborDayRate  LaborModel = "day_rate"
)

// MaterialStrategy selects how material cost is computed and disclosed.
type MaterialStrategy string

const (
	MaterialInclusive       MaterialStrategy = "inclusive"
	MaterialAllowance       MaterialStrategy = "allowance"
	MaterialItemizedVolume  MaterialStrategy = "itemized_volume"
	MaterialSpecificProduct MaterialStrategy = "specific_product"
)

// MaterialGrouping selects where material lines land when they are kept
// separate from labor.
type MaterialGrouping string

const (
	GroupItemizedPerTask MaterialGrouping = "itemized_per_task"
	GroupCombinedSection MaterialGrouping = "combined_section"
	GroupCombinedSetup   MaterialGrouping = "combined_setup"
)

const (
	compositionBundled   = "bundled"
	compositionSeparated = "separated"
)

// Option lists, in the order an editor should offer them.
var (
	Organizations      = []Organization{OrganizeByRoom, OrganizeBySurface, OrganizeByFloor, OrganizeByPhase}
	LaborModels        = []LaborModel{LaborUnitSqft, LaborFixed, LaborHourly, LaborDayRate}
	MaterialStrategies = []MaterialStrategy{MaterialInclusive, MaterialAllowance, MaterialItemizedVolume, MaterialSpecificProduct}
	MaterialGroupings  = []MaterialGrouping{GroupItemizedPerTask, GroupCombinedSection, GroupCombinedSetup}
	Compositions       = []string{compositionBundled, compositionSeparated}
)

func (o Organization) valid() bool {
	switch o {
	case OrganizeByRoom, OrganizeBySurface, OrganizeByFloor, OrganizeByPhase:
		return true
	}
	return false
}

func (m LaborModel) valid() bool {
	switch m {
	case LaborUnitSqft, LaborFixed, LaborHourly, LaborDayRate:
		return true
	}
	return false
}

func (s MaterialStrategy) valid() bool {
	switch s {
	case MaterialInclusive, MaterialAllowance, MaterialItemizedVolume, MaterialSpecificProduct:
		return true
	}
	return false
}

func (g MaterialGrouping) valid() bool {
	switch g {
	case GroupItemizedPerTask, GroupCombinedSection, GroupCombinedSetup:
		return true
	}
	return false
}

// Toggles gate the presence of columns and lines. They never change amounts.
type Toggles struct {
	ShowQuantities bool `json:"show_quantities" yaml:"show_quantities"`
	ShowRates      bool `json:"show_rates" yaml:"show_rates"`
	ShowCoatCounts bool `json:"show_coat_counts" yaml:"show_coat_counts"`
	ShowPrepTasks  bool `json:"show_prep_tasks" yaml:"show_prep_tasks"`
	ShowTaxLine    bool `json:"show_tax_line" yaml:"show_tax_line"`
}

// Composition is either bundled, or separated with a material grouping.
// The grouping only exists on the separated variant.
type Composition struct {
	separated bool
	grouping  MaterialGrouping
}

// Bundled collapses labor and material into one line per task.
func Bundled() Composition {
	return Composition{}
}

// Separated keeps labor and material lines distinct. An empty grouping
// means itemized_per_task once a non-inclusive strategy is chosen.
func Separated(g MaterialGrouping) Composition {
	return Composition{separated: true, grouping: g}
}

func (c Composition) IsBundled() bool            { return !c.separated }
func (c Composition) Grouping() MaterialGrouping { return c.grouping }

func (c Composition) String() string {
	if c.separated {
		return compositionSeparated
	}
	return compositionBundled
}

// DisplayConfig is a validated template configuration. Build one with
// ConfigBuilder or ParseConfig; the zero value is not usable.
type DisplayConfig struct {
	organization Organization
	composition  Composition
	labor        LaborModel
	material     MaterialStrategy
	toggles      Toggles
}

func (c DisplayConfig) Organization() Organization         { return c.organization }
func (c DisplayConfig) Composition() Composition           { return c.composition }
func (c DisplayConfig) LaborModel() LaborModel             { return c.labor }
func (c DisplayConfig) MaterialStrategy() MaterialStrategy { return c.material }
func (c DisplayConfig) Toggles() Toggles                   { return c.toggles }

// MaterialGrouping returns the active grouping, or "" when bundled or
// inclusive.
func (c DisplayConfig) MaterialGrouping() MaterialGrouping { return c.composition.grouping }

// IsZero reports whether c was never built.
func (c DisplayConfig) IsZero() bool {
	return c.organization == ""
}

// DefaultConfig is the configuration new templates start with.
func DefaultConfig() DisplayConfig {
	return DisplayConfig{
		organization: OrganizeByRoom,
		composition:  Bundled(),
		labor:        LaborUnitSqft,
		material:     MaterialInclusive,
		toggles: Toggles{
			ShowQuantities: true,
			ShowCoatCounts: true,
			ShowPrepTasks:  true,
			ShowTaxLine:    true,
		},
	}
}

// ConfigBuilder assembles a DisplayConfig one axis at a time and checks the
// cross-axis constraints in Build. A grouping that Build filled in, rather
// than one passed to Composition, is dropped when the strategy becomes
// inclusive.
type ConfigBuilder struct {
	cfg           DisplayConfig
	explicitGroup bool
}

// NewConfigBuilder starts from DefaultConfig.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: DefaultConfig()}
}

// Builder returns a builder seeded with c, for editing an existing config.
func (c DisplayConfig) Builder() *ConfigBuilder {
	if c.IsZero() {
		return NewConfigBuilder()
	}
	return &ConfigBuilder{cfg: c}
}

func (b *ConfigBuilder) Organization(o Organization) *ConfigBuilder {
	b.cfg.organization = o
	return b
}

func (b *ConfigBuilder) Composition(c Composition) *ConfigBuilder {
	b.cfg.composition = c
	b.explicitGroup = c.grouping != ""
	return b
}

func (b *ConfigBuilder) Labor(m LaborModel) *ConfigBuilder {
	b.cfg.labor = m
	return b
}

func (b *ConfigBuilder) Material(s MaterialStrategy) *ConfigBuilder {
	b.cfg.material = s
	return b
}

func (b *ConfigBuilder) Toggles(t Toggles) *ConfigBuilder {
	b.cfg.toggles = t
	return b
}

// Build validates every axis and returns the normalized config.
func (b *ConfigBuilder) Build() (DisplayConfig, error) {
	cfg := b.cfg
	if !cfg.organization.valid() {
		return DisplayConfig{}, validationf("organization", "unknown organization %q", cfg.organization)
	}
	if !cfg.labor.valid() {
		return DisplayConfig{}, validationf("labor_pricing_model", "unknown labor pricing model %q", cfg.labor)
	}
	if !cfg.material.valid() {
		return DisplayConfig{}, validationf("material_strategy", "unknown material strategy %q", cfg.material)
	}

	comp := cfg.composition
	if comp.separated {
		switch {
		case cfg.material == MaterialInclusive && comp.grouping != "" && !b.explicitGroup:
			comp.grouping = ""
		case cfg.material == MaterialInclusive && comp.grouping != "":
			return DisplayConfig{}, validationf("material_grouping",
				"cannot be set when material strategy is %s", MaterialInclusive)
		case cfg.material != MaterialInclusive && comp.grouping == "":
			comp.grouping = GroupItemizedPerTask
		case comp.grouping != "" && !comp.grouping.valid():
			return DisplayConfig{}, validationf("material_grouping", "unknown material grouping %q", comp.grouping)
		}
	}
	cfg.composition = comp
	return cfg, nil
}

// ConfigRecord is the flat wire form of a DisplayConfig.
type ConfigRecord struct {
	Organization      string `json:"organization" yaml:"organization"`
	ItemComposition   string `json:"item_composition" yaml:"item_composition"`
	LaborPricingModel string `json:"labor_pricing_model" yaml:"labor_pricing_model"`
	MaterialStrategy  string `json:"material_strategy" yaml:"material_strategy"`
	MaterialGrouping  string `json:"material_grouping,omitempty" yaml:"material_grouping,omitempty"`
	Toggles           `yaml:",inline"`
}

// Record flattens c for storage.
func (c DisplayConfig) Record() ConfigRecord {
	return ConfigRecord{
		Organization:      string(c.organization),
		ItemComposition:   c.composition.String(),
		LaborPricingModel: string(c.labor),
		MaterialStrategy:  string(c.material),
		MaterialGrouping:  string(c.composition.grouping),
		Toggles:           c.toggles,
	}
}

// ParseConfig validates a flat record through ConfigBuilder. Empty axes take
// their default value.
func ParseConfig(r ConfigRecord) (DisplayConfig, error) {
	b := NewConfigBuilder().Toggles(r.Toggles)
	if r.Organization != "" {
		b.Organization(Organization(r.Organization))
	}
	if r.LaborPricingModel != "" {
		b.Labor(LaborModel(r.LaborPricingModel))
	}
	if r.MaterialStrategy != "" {
		b.Material(MaterialStrategy(r.MaterialStrategy))
	}

	switch r.ItemComposition {
	case "", compositionBundled:
		if r.MaterialGrouping != "" {
			return DisplayConfig{}, validationf("material_grouping", "cannot be set when items are bundled")
		}
		b.Composition(Bundled())
	case compositionSeparated:
		b.Composition(Separated(MaterialGrouping(r.MaterialGrouping)))
	default:
		return DisplayConfig{}, validationf("item_composition", "unknown item composition %q", r.ItemComposition)
	}
	return b.Build()
}

func (c DisplayConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Record())
}

func (c *DisplayConfig) UnmarshalJSON(data []byte) error {
	var r ConfigRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	parsed, err := ParseConfig(r)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c DisplayConfig) MarshalYAML() (any, error) {
	return c.Record(), nil
}

func (c *DisplayConfig) UnmarshalYAML(node *yaml.Node) error {
	var r ConfigRecord
	if err := node.Decode(&r); err != nil {
		return err
	}
	parsed, err := ParseConfig(r)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
