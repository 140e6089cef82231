package effect

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// Utility selects a utility consumable (oil, stone, crystal). The zero value is none.
type Utility uint16

const (
	NoUtility Utility = iota
	UtilityToxicFocusingCrystal
	UtilitySuperiorSharpeningStone
	UtilityBountifulMaintenanceOil

	NumUtilities
)

type share struct {
	src stats.Stat
	pct float64
}

// convert adds pct percent of each source stat to dst.
func convert(dst stats.Stat, shares ...share) Effect {
	return Distribute(func(s *stats.Stats, _ *stats.Modifiers) {
		var add float64
		for _, sh := range shares {
			add += s[sh.src] * sh.pct / 100
		}
		s[dst] += add
	})
}

var utilities = []entry{
	NoUtility: {name: "None"},
	UtilityToxicFocusingCrystal: {name: "Toxic Focusing Crystal", stat: true,
		effect: convert(stats.ConditionDamage, share{stats.Power, 3}, share{stats.Precision, 6})},
	UtilitySuperiorSharpeningStone: {name: "Superior Sharpening Stone", stat: true,
		effect: convert(stats.Power, share{stats.Precision, 3}, share{stats.Ferocity, 6})},
	UtilityBountifulMaintenanceOil: {name: "Bountiful Maintenance Oil", stat: true,
		effect: convert(stats.HealingPower, share{stats.Precision, 6}, share{stats.Concentration, 8})},
}

func (u Utility) String() string { return nameOf(utilities, int(u)) }

// ParseUtility looks up a utility item by name, case-insensitively.
func ParseUtility(name string) (Utility, bool) {
	i, ok := lookup(utilities, name)
	return Utility(i), ok
}

func (u Utility) effect() Effect { return effectOf(utilities, int(u)) }

func (u Utility) AddPermanent(s *stats.Stats, m *stats.Modifiers) { u.effect().AddPermanent(s, m) }
func (u Utility) Distribute(s *stats.Stats, m *stats.Modifiers) { u.effect().Distribute(s, m) }
func (u Utility) AddTemporary(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
	u.effect().AddTemporary(s, m, c)
}
func (u Utility) CombatProcs(events *combat.Second, c *combat.Second) {
	u.effect().CombatProcs(events, c)
}

func (u *Utility) NumFields() int { return 1 }
func (u *Utility) NumFieldValues(int) uint16 { return uint16(NumUtilities) }
func (u *Utility) GetField(int) uint16 { return uint16(*u) }
func (u *Utility) SetField(_ int, x uint16) { *u = Utility(x) }
