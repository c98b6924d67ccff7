package quote

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// Reserved section keys.
const (
	UnassignedSection = "_unassigned"
	SetupSection      = "_setup"
)

// sectionKeyer maps line items to section keys and orders the keys for one
// organization axis.
type sectionKeyer struct {
	org      Organization
	rooms    map[string]int
	roomList []Room
	tagRank  map[string]int
}

func newSectionKeyer(rooms []Room, org Organization) *sectionKeyer {
	k := &sectionKeyer{
		org:      org,
		rooms:    make(map[string]int, len(rooms)),
		roomList: rooms,
		tagRank:  make(map[string]int),
	}
	for i, r := range rooms {
		k.rooms[r.ID] = i
		if tag := k.roomTag(r); tag != "" {
			if _, seen := k.tagRank[tag]; !seen {
				k.tagRank[tag] = len(k.tagRank)
			}
		}
	}
	return k
}

func (k *sectionKeyer) roomTag(r Room) string {
	switch k.org {
	case OrganizeByFloor:
		return r.Floor
	case OrganizeByPhase:
		return r.Phase
	}
	return ""
}

func (k *sectionKeyer) room(id string) (Room, bool) {
	idx, ok := k.rooms[id]
	if !ok {
		return Room{}, false
	}
	return k.roomList[idx], true
}

// keyFor returns the section key for a billable unit's room and type.
func (k *sectionKeyer) keyFor(roomID string, t SurfaceType) string {
	switch k.org {
	case OrganizeBySurface:
		return string(t)
	case OrganizeByFloor, OrganizeByPhase:
		room, _ := k.room(roomID)
		if tag := k.roomTag(room); tag != "" {
			return tag
		}
		return UnassignedSection
	}
	return roomID
}

func (k *sectionKeyer) title(key string) string {
	switch key {
	case SetupSection:
		return "Setup & Materials"
	case UnassignedSection:
		return "Unassigned"
	}
	switch k.org {
	case OrganizeByRoom:
		if room, ok := k.room(key); ok && room.Name != "" {
			return room.Name
		}
	case OrganizeBySurface:
		return SurfaceType(key).Label()
	}
	return key
}

func (k *sectionKeyer) rank(key string) int {
	switch key {
	case SetupSection:
		return -1
	case UnassignedSection:
		return len(k.roomList) + len(k.tagRank) + len(SurfaceTypes)
	}
	switch k.org {
	case OrganizeByRoom:
		return k.rooms[key]
	case OrganizeBySurface:
		return SurfaceType(key).rank()
	}
	return k.tagRank[key]
}

// Group arranges priced lines into ordered sections. Lines without a
// Section key are keyed from their room and surface type; section-level
// lines (allowances) must arrive with Section already set. The result
// depends only on the inputs, never on map iteration order.
func Group(lines []LineItem, rooms []Room, cfg DisplayConfig) []Section {
	k := newSectionKeyer(rooms, cfg.Organization())

	buckets := make(map[string][]LineItem)
	var keys []string
	for _, l := range lines {
		if l.Section == "" {
			l.Section = k.keyFor(l.RoomID, l.SurfaceType)
		}
		if cfg.Organization() != OrganizeByRoom && l.RoomID != "" {
			if room, ok := k.room(l.RoomID); ok && room.Name != "" {
				l.Description = room.Name + ": " + l.Description
			}
		}
		if _, ok := buckets[l.Section]; !ok {
			keys = append(keys, l.Section)
		}
		buckets[l.Section] = append(buckets[l.Section], l)
	}
	slices.SortStableFunc(keys, func(a, b string) int {
		return cmp.Compare(k.rank(a), k.rank(b))
	})

	var setup []LineItem
	sections := make([]Section, 0, len(keys)+1)
	for _, key := range keys {
		sl := buckets[key]
		slices.SortStableFunc(sl, compareLines)

		if !cfg.Toggles().ShowPrepTasks {
			sl = foldPrep(sl)
		}

		comp := cfg.Composition()
		if comp.IsBundled() {
			sl = bundle(sl)
		} else {
			switch comp.Grouping() {
			case GroupCombinedSection:
				sl = combineMaterials(sl, key, "Materials")
			case GroupCombinedSetup:
				var materials []LineItem
				sl, materials = splitMaterials(sl)
				setup = append(setup, materials...)
			}
		}

		if len(sl) == 0 {
			continue
		}
		sections = append(sections, newSection(key, k.title(key), sl))
	}

	if len(setup) > 0 {
		combined := combineMaterials(setup, SetupSection, "Paint & materials")
		sections = append([]Section{newSection(SetupSection, k.title(SetupSection), combined)}, sections...)
	}
	return sections
}

func newSection(key, title string, lines []LineItem) Section {
	return Section{
		Key:      key,
		Title:    title,
		Lines:    lines,
		Subtotal: cents(sumAmounts(lines)),
	}
}

// compareLines orders by task, then prep, labor, material. Section-level
// lines sort after every task.
func compareLines(a, b LineItem) int {
	ta, tb := a.Task, b.Task
	if ta == SectionTask {
		ta = math.MaxInt
	}
	if tb == SectionTask {
		tb = math.MaxInt
	}
	if c := cmp.Compare(ta, tb); c != 0 {
		return c
	}
	return cmp.Compare(a.Kind.rank(), b.Kind.rank())
}

// foldPrep merges hidden prep lines into the labor line of the same task so
// the amount stays in the document. A prep line with no labor partner is
// kept as is.
func foldPrep(lines []LineItem) []LineItem {
	laborAt := make(map[int]int)
	for i, l := range lines {
		if l.Kind == KindLabor && l.Task != SectionTask {
			laborAt[l.Task] = i
		}
	}
	out := make([]LineItem, 0, len(lines))
	var pending []LineItem
	for i, l := range lines {
		if l.Kind == KindPrep {
			if _, ok := laborAt[l.Task]; ok {
				pending = append(pending, l)
				continue
			}
		}
		if l.Kind == KindLabor && laborAt[l.Task] == i {
			for _, p := range pending {
				if p.Task == l.Task {
					l.Amount = cents(dec(l.Amount).Add(dec(p.Amount)))
				}
			}
		}
		out = append(out, l)
	}
	return out
}

// bundle merges each task's material line into its labor line.
func bundle(lines []LineItem) []LineItem {
	materialFor := make(map[int]LineItem)
	hasLabor := make(map[int]bool)
	for _, l := range lines {
		if l.Task == SectionTask {
			continue
		}
		switch l.Kind {
		case KindMaterial:
			materialFor[l.Task] = l
		case KindLabor:
			hasLabor[l.Task] = true
		}
	}

	out := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		if l.Task == SectionTask {
			out = append(out, l)
			continue
		}
		switch l.Kind {
		case KindMaterial:
			if hasLabor[l.Task] {
				continue
			}
		case KindLabor:
			if m, ok := materialFor[l.Task]; ok {
				l.Amount = cents(dec(l.Amount).Add(dec(m.Amount)))
				l.Description = l.Description + "; " + m.Description
				l.Rate = bundledRate(l)
			}
		}
		out = append(out, l)
	}
	return out
}

// bundledRate is the effective rate of a merged line, so that quantity x
// coats x rate reproduces the amount when coats are carried.
func bundledRate(l LineItem) *float64 {
	if l.Quantity == nil || *l.Quantity <= 0 {
		return l.Rate
	}
	per := dec(*l.Quantity)
	if l.Coats != nil && *l.Coats > 1 {
		per = per.Mul(decimal.NewFromInt(int64(*l.Coats)))
	}
	return floatPtr(dec(l.Amount).Div(per).Round(4).InexactFloat64())
}

func splitMaterials(lines []LineItem) (rest, materials []LineItem) {
	for _, l := range lines {
		if l.Kind == KindMaterial {
			materials = append(materials, l)
		} else {
			rest = append(rest, l)
		}
	}
	return rest, materials
}

// combineMaterials replaces material lines with one trailing combined line.
func combineMaterials(lines []LineItem, key, desc string) []LineItem {
	rest, materials := splitMaterials(lines)
	if len(materials) == 0 {
		return rest
	}
	return append(rest, LineItem{
		Description: desc,
		Amount:      cents(sumAmounts(materials)),
		Section:     key,
		Kind:        KindMaterial,
		Task:        SectionTask,
	})
}
