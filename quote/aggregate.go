package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BillableUnit is a (room, surface type) quantity ready for pricing.
// CoatQuantity is the sum of quantity × coats over the contributing
// surfaces; Coats is the highest coat count among them. Task is the unit's
// position in the aggregated list and drives line ordering. The float
// quantities are for display; Aggregate also keeps their exact sums, which
// pricing uses.
type BillableUnit struct {
	RoomID       string      `json:"room_id"`
	SurfaceType  SurfaceType `json:"surface_type"`
	Quantity     float64     `json:"quantity"`
	Unit         string      `json:"unit"`
	Coats        int         `json:"coats"`
	CoatQuantity float64     `json:"coat_quantity"`
	Primer       bool        `json:"primer"`
	Task         int         `json:"task"`

	quantity     decimal.Decimal
	coatQuantity decimal.Decimal
}

// exactQuantity returns the exact quantity sum, or Quantity for units built
// outside Aggregate.
func (u BillableUnit) exactQuantity() decimal.Decimal {
	if u.quantity.IsZero() {
		return dec(u.Quantity)
	}
	return u.quantity
}

func (u BillableUnit) exactCoatQuantity() decimal.Decimal {
	if u.coatQuantity.IsZero() {
		return dec(u.CoatQuantity)
	}
	return u.coatQuantity
}

// Key returns the unit's (room, surface type) key.
func (u BillableUnit) Key() UnitKey {
	return UnitKey{RoomID: u.RoomID, SurfaceType: u.SurfaceType}
}

// Aggregate sums surfaces into one billable unit per (room, surface type).
// Rooms keep their input order and surface types their first-seen order
// within a room. Surfaces that are not measured yet (quantity <= 0) are
// dropped.
func Aggregate(rooms []Room) ([]BillableUnit, error) {
	var units []BillableUnit
	seenRooms := make(map[string]bool, len(rooms))

	for ri, room := range rooms {
		if room.ID == "" {
			return nil, validationf(fmt.Sprintf("rooms[%d]", ri), "missing room id")
		}
		if seenRooms[room.ID] {
			return nil, validationf(fmt.Sprintf("rooms[%d]", ri), "duplicate room id %q", room.ID)
		}
		seenRooms[room.ID] = true

		byType := make(map[SurfaceType]int)
		for si, s := range room.Surfaces {
			if !s.Type.Valid() {
				field := s.ID
				if field == "" {
					field = fmt.Sprintf("rooms[%d].surfaces[%d]", ri, si)
				}
				return nil, validationf(field, "unknown surface type %q", s.Type)
			}
			if s.Quantity <= 0 {
				continue
			}
			coats := s.Coats
			if coats < 1 {
				coats = 1
			}

			idx, ok := byType[s.Type]
			if !ok {
				idx = len(units)
				byType[s.Type] = idx
				units = append(units, BillableUnit{
					RoomID:      room.ID,
					SurfaceType: s.Type,
					Unit:        s.Type.Unit(),
					Task:        idx,
				})
			}
			u := &units[idx]
			q := dec(s.Quantity)
			u.quantity = u.quantity.Add(q)
			u.coatQuantity = u.coatQuantity.Add(q.Mul(decimal.NewFromInt(int64(coats))))
			u.Quantity = u.quantity.InexactFloat64()
			u.CoatQuantity = u.coatQuantity.InexactFloat64()
			if coats > u.Coats {
				u.Coats = coats
			}
			u.Primer = u.Primer || s.Primer
		}
	}
	return units, nil
}
