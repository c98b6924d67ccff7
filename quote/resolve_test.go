package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wallUnit() BillableUnit {
	return BillableUnit{
		RoomID:       "r1",
		SurfaceType:  SurfaceWall,
		Quantity:     400,
		Unit:         UnitSquareFeet,
		Coats:        2,
		CoatQuantity: 800,
	}
}

func TestNewCatalog_Validation(t *testing.T) {
	tests := []struct {
		name  string
		items []CatalogItem
	}{
		{"missing id", []CatalogItem{{Kind: ItemLabor}}},
		{"duplicate id", []CatalogItem{{ID: "a", Kind: ItemLabor}, {ID: "a", Kind: ItemPaint}}},
		{"unknown kind", []CatalogItem{{ID: "a", Kind: "service"}}},
		{"negative rate", []CatalogItem{{ID: "a", Kind: ItemLabor, Rate: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.items)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCatalog_FirstItemPerCategoryWins(t *testing.T) {
	c := testCatalog(t,
		CatalogItem{ID: "a", Kind: ItemLabor, Category: "wall", Rate: 1},
		CatalogItem{ID: "b", Kind: ItemLabor, Category: "wall", Rate: 2},
	)
	item, ok := c.Labor(SurfaceWall)
	require.True(t, ok)
	assert.Equal(t, "a", item.ID)

	_, ok = c.Labor(SurfaceDoor)
	assert.False(t, ok)
	assert.Len(t, c.Items(), 2)
}

func TestResolve_LaborModels(t *testing.T) {
	items := baseItems()
	items[0].Rate = 55 // wall labor reused as the hourly / daily rate

	tests := []struct {
		name      string
		model     LaborModel
		catalog   []CatalogItem
		estimates LaborEstimates
		amount    float64
		unit      string
		qty       float64
	}{
		{"unit_sqft", LaborUnitSqft, baseItems(), nil, 1200, UnitSquareFeet, 400},
		{"fixed", LaborFixed, baseItems(), nil, 1.50, UnitSquareFeet, 400},
		{"hourly", LaborHourly, items, LaborEstimates{{RoomID: "r1", SurfaceType: SurfaceWall}: 10}, 550, "hr", 10},
		{"day_rate", LaborDayRate, items, LaborEstimates{{RoomID: "r1", SurfaceType: SurfaceWall}: 1.5}, 82.5, "day", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustConfig(t, NewConfigBuilder().Labor(tt.model))
			r := NewResolver(testCatalog(t, tt.catalog...), cfg, Inputs{Estimates: tt.estimates})

			lines, missing := r.Resolve(wallUnit())
			require.Empty(t, missing)
			require.Len(t, lines, 1)

			l := lines[0]
			assert.Equal(t, KindLabor, l.Kind)
			assert.InDelta(t, tt.amount, l.Amount, 0.001)
			assert.Equal(t, tt.unit, l.Unit)
			require.NotNil(t, l.Quantity)
			assert.InDelta(t, tt.qty, *l.Quantity, 1e-9)
			assert.Equal(t, "Paint walls", l.Description)
		})
	}
}

func TestResolve_HourlyWithoutEstimate(t *testing.T) {
	cfg := mustConfig(t, NewConfigBuilder().Labor(LaborHourly))
	r := NewResolver(testCatalog(t), cfg, Inputs{})

	lines, missing := r.Resolve(wallUnit())
	assert.Empty(t, lines)
	require.Len(t, missing, 1)
	assert.Equal(t, KindLabor, missing[0].Kind)
	assert.Contains(t, missing[0].Error(), "hourly estimate")
}

func TestResolve_MinimumCharge(t *testing.T) {
	cfg := DefaultConfig()
	r := NewResolver(testCatalog(t), cfg, Inputs{})
	door := BillableUnit{RoomID: "r1", SurfaceType: SurfaceDoor, Quantity: 1, Unit: UnitEach, Coats: 1, CoatQuantity: 1}

	lines, missing := r.Resolve(door)
	require.Empty(t, missing)
	require.Len(t, lines, 1)
	assert.Equal(t, 100.0, lines[0].Amount)
}

func TestResolve_MaterialStrategies(t *testing.T) {
	t.Run("inclusive has no material line", func(t *testing.T) {
		r := NewResolver(testCatalog(t), DefaultConfig(), Inputs{})
		lines, _ := r.Resolve(wallUnit())
		require.Len(t, lines, 1)
		assert.Equal(t, KindLabor, lines[0].Kind)
	})

	t.Run("allowance is section level", func(t *testing.T) {
		cfg := mustConfig(t, NewConfigBuilder().Composition(Separated("")).Material(MaterialAllowance))
		r := NewResolver(testCatalog(t), cfg, Inputs{})
		lines, _ := r.Resolve(wallUnit())
		require.Len(t, lines, 1)

		allowance, missing := r.Allowance()
		require.Nil(t, missing)
		assert.Equal(t, 150.0, allowance.Amount)
		assert.Equal(t, SectionTask, allowance.Task)
		assert.Nil(t, allowance.Quantity)
	})

	t.Run("itemized volume", func(t *testing.T) {
		cfg := mustConfig(t, NewConfigBuilder().Composition(Separated("")).Material(MaterialItemizedVolume))
		r := NewResolver(testCatalog(t), cfg, Inputs{})
		lines, missing := r.Resolve(wallUnit())
		require.Empty(t, missing)
		require.Len(t, lines, 2)

		m := lines[1]
		assert.Equal(t, KindMaterial, m.Kind)
		assert.Equal(t, "Eggshell Interior", m.Description)
		assert.Equal(t, UnitGallon, m.Unit)
		require.NotNil(t, m.Quantity)
		assert.InDelta(t, 2.29, *m.Quantity, 1e-9)
		assert.Equal(t, 96.0, m.Amount)
	})

	t.Run("specific product", func(t *testing.T) {
		cfg := mustConfig(t, NewConfigBuilder().Composition(Separated("")).Material(MaterialSpecificProduct))
		r := NewResolver(testCatalog(t), cfg, Inputs{Products: ProductSelection{SurfaceWall: "prod-premium"}})
		lines, missing := r.Resolve(wallUnit())
		require.Empty(t, missing)
		require.Len(t, lines, 2)
		assert.Equal(t, "Premium Eggshell", lines[1].Description)
		assert.InDelta(t, 120, lines[1].Amount, 0.001)
	})

	t.Run("specific product not selected", func(t *testing.T) {
		cfg := mustConfig(t, NewConfigBuilder().Composition(Separated("")).Material(MaterialSpecificProduct))
		r := NewResolver(testCatalog(t), cfg, Inputs{Products: ProductSelection{SurfaceWall: "nope"}})
		lines, missing := r.Resolve(wallUnit())
		require.Len(t, lines, 1, "labor still resolves")
		require.Len(t, missing, 1)
		assert.Equal(t, KindMaterial, missing[0].Kind)
	})

	t.Run("volume without coverage", func(t *testing.T) {
		items := baseItems()
		items[6].CoverageRate = 0
		cfg := mustConfig(t, NewConfigBuilder().Composition(Separated("")).Material(MaterialItemizedVolume))
		r := NewResolver(testCatalog(t, items...), cfg, Inputs{})
		_, missing := r.Resolve(wallUnit())
		require.Len(t, missing, 1)
		assert.Contains(t, missing[0].Reason, "coverage")
	})
}

func TestResolve_Primer(t *testing.T) {
	u := wallUnit()
	u.Primer = true

	r := NewResolver(testCatalog(t), DefaultConfig(), Inputs{})
	lines, missing := r.Resolve(u)
	require.Empty(t, missing)
	require.Len(t, lines, 2)
	assert.Equal(t, KindPrep, lines[0].Kind)
	assert.Equal(t, "Prime walls", lines[0].Description)
	assert.InDelta(t, 160, lines[0].Amount, 0.001)

	noPrimer := NewResolver(testCatalog(t, without(baseItems(), "primer")...), DefaultConfig(), Inputs{})
	lines, missing = noPrimer.Resolve(u)
	require.Len(t, lines, 1)
	require.Len(t, missing, 1)
	assert.Equal(t, KindPrep, missing[0].Kind)
}

func TestResolve_RoundsOnlyAtLineBoundary(t *testing.T) {
	items := []CatalogItem{{ID: "l", Kind: ItemLabor, Category: "wall", Rate: 0.333}}
	r := NewResolver(testCatalog(t, items...), DefaultConfig(), Inputs{})
	u := BillableUnit{RoomID: "r1", SurfaceType: SurfaceWall, Quantity: 3.3, Coats: 3, CoatQuantity: 9.9}

	lines, _ := r.Resolve(u)
	require.Len(t, lines, 1)
	// 9.9 × 0.333 = 3.2967
	assert.Equal(t, 3.30, lines[0].Amount)
}
