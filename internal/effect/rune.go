package effect

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// Rune selects a superior rune set. The zero value is no rune.
type Rune uint16

const (
	NoRune Rune = iota
	RuneElementalist
	RuneKrait
	RuneBaelfire
	RuneMonk
	RuneFireworks
	RunePack
	RuneBrawler
	RuneCentaur
	RuneAristocracy
	RuneTormenting
	RuneForgeman

	NumRunes
)

var runes = []entry{
	NoRune: {name: "None"},
	RuneElementalist: {name: "Elementalist", stat: true, effect: Permanent(func(s *stats.Stats, m *stats.Modifiers) {
		s[stats.Power] += 175
		s[stats.ConditionDamage] += 225
		m.ConditionDuration.AddAll(10)
	})},
	RuneKrait: {name: "Krait", stat: true, effect: Permanent(func(s *stats.Stats, m *stats.Modifiers) {
		s[stats.ConditionDamage] += 175
		m.ConditionDuration[stats.Bleed] += 50
	})},
	RuneBaelfire: {name: "Baelfire", stat: true, effect: Permanent(func(s *stats.Stats, m *stats.Modifiers) {
		s[stats.ConditionDamage] += 175
		m.ConditionDuration[stats.Burn] += 50
	})},
	RuneMonk: {name: "Monk", stat: true, effect: Permanent(func(s *stats.Stats, m *stats.Modifiers) {
		s[stats.HealingPower] += 175
		m.BoonDuration.AddAll(10)
	})},
	// Procs once per 20 seconds in combat.
	RuneFireworks: {name: "Fireworks", effect: every(20, gains(
		boon(stats.Might, 6*6), boon(stats.Fury, 6), boon(stats.Vigor, 6),
	))},
	// Procs once per 30 seconds in combat.
	RunePack: {name: "Pack", effect: every(30, gains(
		boon(stats.Might, 5*8), boon(stats.Fury, 8), boon(stats.Swiftness, 8),
	))},
	RuneBrawler: {name: "Brawler", effect: onHeal(10, boon(stats.Might, 5*10))},
	RuneCentaur: {name: "Centaur", effect: onHeal(10, boon(stats.Swiftness, 10))},
	RuneAristocracy: {name: "Aristocracy", effect: onTrigger(func(e *combat.Second) float64 {
		return e.Condition[stats.Weakness].Count
	}, 1, boon(stats.Might, 5*4))},
	RuneTormenting: {name: "Tormenting", effect: onTrigger(func(e *combat.Second) float64 {
		return e.Condition[stats.Torment].Count
	}, 5, boon(stats.Regeneration, 3))},
	// Procs when struck below 75% health; cooldown 20 seconds, so roughly every 25.
	RuneForgeman: {name: "Forgeman", effect: every(25, func(c *combat.Second, freq float64) {
		c.Aura = c.Aura.Add(combat.Single(4).Scale(freq))
	})},
}

func (r Rune) String() string { return nameOf(runes, int(r)) }

// HasStats reports whether the rune carries a stat bonus rather than only a proc.
func (r Rune) HasStats() bool { return int(r) < len(runes) && runes[r].stat }

// ParseRune looks up a rune by name, case-insensitively.
func ParseRune(name string) (Rune, bool) {
	i, ok := lookup(runes, name)
	return Rune(i), ok
}

func (r Rune) effect() Effect { return effectOf(runes, int(r)) }

func (r Rune) AddPermanent(s *stats.Stats, m *stats.Modifiers) { r.effect().AddPermanent(s, m) }
func (r Rune) Distribute(s *stats.Stats, m *stats.Modifiers) { r.effect().Distribute(s, m) }
func (r Rune) AddTemporary(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
	r.effect().AddTemporary(s, m, c)
}
func (r Rune) CombatProcs(events *combat.Second, c *combat.Second) {
	r.effect().CombatProcs(events, c)
}

func (r *Rune) NumFields() int { return 1 }
func (r *Rune) NumFieldValues(int) uint16 { return uint16(NumRunes) }
func (r *Rune) GetField(int) uint16 { return uint16(*r) }
func (r *Rune) SetField(_ int, x uint16) { *r = Rune(x) }
