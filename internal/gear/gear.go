// Package gear describes equipment slots and stat prefixes, and loads them from the
// bundled catalog.
package gear

import (
	"strings"

	"gear-optimizer/internal/stats"
)

// Quality is the rarity tier of an item.
type Quality uint8

const (
	Exotic Quality = iota
	Ascended

	NumQualities
)

var qualityNames = [NumQualities]string{"exotic", "ascended"}

func (q Quality) String() string {
	if q < NumQualities {
		return qualityNames[q]
	}
	return "quality(?)"
}

func ParseQuality(s string) (Quality, bool) {
	for i, n := range qualityNames {
		if strings.EqualFold(n, s) {
			return Quality(i), true
		}
	}
	return 0, false
}

// PerQuality holds one value per Quality.
type PerQuality [NumQualities]float64

// Slot is an equippable item position.
type Slot uint8

const (
	Weapon1H Slot = iota
	Weapon2H
	Helm
	Shoulders
	Coat
	Gloves
	Leggings
	Boots
	Amulet
	Ring1
	Ring2
	Accessory1
	Accessory2
	Backpack

	NumSlots
)

var slotNames = [NumSlots]string{
	"weapon_1h", "weapon_2h", "helm", "shoulders", "coat", "gloves", "leggings", "boots",
	"amulet", "ring1", "ring2", "accessory1", "accessory2", "backpack",
}

func (s Slot) String() string {
	if s < NumSlots {
		return slotNames[s]
	}
	return "slot(?)"
}

func ParseSlot(name string) (Slot, bool) {
	for i, n := range slotNames {
		if strings.EqualFold(n, name) {
			return Slot(i), true
		}
	}
	return 0, false
}

// IsTrinket reports whether the slot holds jewelry.
func (s Slot) IsTrinket() bool {
	return s >= Amulet && s <= Backpack
}

// SlotInfo is the prefix-independent stat budget of a slot.
type SlotInfo struct {
	// Points is multiplied by each stat's factor for the chosen prefix.
	Points PerQuality
	// AddBase adds the formula's base term. Set for trinkets, which have no gem slot.
	AddBase bool
}

// StatFormula gives one stat of a prefix as Factor*points, plus Base on trinkets.
type StatFormula struct {
	Factor float64
	Base   PerQuality
}

// Prefix is a named stat distribution applied to a whole item.
type Prefix struct {
	Name     string
	Formulas [stats.NumStats]StatFormula
}

// CoarseStats returns the stats of points worth of this prefix, ignoring slot bases.
func (p *Prefix) CoarseStats(points float64) stats.Stats {
	var s stats.Stats
	for i, f := range p.Formulas {
		s[i] = f.Factor * points
	}
	return s
}

// Stats returns the unrounded stats of an item of prefix p and quality q in this slot.
func (si *SlotInfo) Stats(p *Prefix, q Quality) stats.Stats {
	var s stats.Stats
	for i, f := range p.Formulas {
		s[i] = f.Factor * si.Points[q]
		if si.AddBase {
			s[i] += f.Base[q]
		}
	}
	return s
}

// SlotQuality is one entry of the equipment list being optimized.
type SlotQuality struct {
	Slot    Slot
	Quality Quality
}

func (sq SlotQuality) String() string {
	return sq.Slot.String() + ":" + sq.Quality.String()
}

// ParseSlotQuality parses "slot:quality", e.g. "ring1:ascended".
func ParseSlotQuality(s string) (SlotQuality, bool) {
	name, q, ok := strings.Cut(s, ":")
	if !ok {
		return SlotQuality{}, false
	}
	slot, ok := ParseSlot(strings.TrimSpace(name))
	if !ok {
		return SlotQuality{}, false
	}
	quality, ok := ParseQuality(strings.TrimSpace(q))
	if !ok {
		return SlotQuality{}, false
	}
	return SlotQuality{Slot: slot, Quality: quality}, true
}

// StandardSlots is a two one-handed weapon loadout with every slot at quality q.
func StandardSlots(q Quality) []SlotQuality {
	order := []Slot{
		Weapon1H, Weapon1H, Helm, Shoulders, Coat, Gloves, Leggings, Boots,
		Amulet, Ring1, Ring2, Accessory1, Accessory2, Backpack,
	}
	out := make([]SlotQuality, len(order))
	for i, s := range order {
		out[i] = SlotQuality{Slot: s, Quality: q}
	}
	return out
}
