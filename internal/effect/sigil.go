package effect

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// Sigil selects a superior weapon sigil. The zero value is no sigil.
type Sigil uint16

const (
	NoSigil Sigil = iota
	SigilAgony
	SigilSmoldering
	SigilBlight
	SigilBlood
	SigilEarth
	SigilStrength
	SigilTorment
	SigilAgility
	SigilBattle
	SigilDoom
	SigilLeeching
	SigilRenewal
	SigilFrailty
	SigilIncapacitation
	SigilParalyzation
	SigilTransference

	NumSigils
)

func flat(strike, heal float64) func(*combat.Second, float64) {
	return func(c *combat.Second, freq float64) {
		c.StrikeFlat = c.StrikeFlat.Add(combat.Single(strike).Scale(freq))
		c.HealFlat = c.HealFlat.Add(combat.Single(heal).Scale(freq))
	}
}

func scaledHeal(coef float64) func(*combat.Second, float64) {
	return func(c *combat.Second, freq float64) {
		c.Heal = c.Heal.Add(combat.Single(coef).Scale(freq))
	}
}

var sigils = []entry{
	NoSigil: {name: "None"},
	SigilAgony: {name: "Agony", stat: true, effect: Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		m.ConditionDuration[stats.Bleed] += 20
	})},
	SigilSmoldering: {name: "Smoldering", stat: true, effect: Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		m.ConditionDuration[stats.Burn] += 20
	})},

	// on crit
	SigilBlight:   {name: "Blight", effect: onCrit(8, condition(stats.Poison, 2*4))},
	SigilBlood:    {name: "Blood", effect: onCrit(5, gains(flat(451, 453), scaledHeal(0.1)))},
	SigilEarth:    {name: "Earth", effect: onCrit(2, condition(stats.Bleed, 6))},
	SigilStrength: {name: "Strength", effect: onCrit(1, boon(stats.Might, 10))},
	SigilTorment:  {name: "Torment", effect: onCrit(5, condition(stats.Torment, 2*5))},

	// on weapon or attunement swap
	SigilAgility:  {name: "Agility", effect: onSwap(9, gains(boon(stats.Swiftness, 5), boon(stats.Quickness, 1)))},
	SigilBattle:   {name: "Battle", effect: onSwap(9, boon(stats.Might, 5*12))},
	SigilDoom:     {name: "Doom", effect: onSwap(9, condition(stats.Poison, 3*8))},
	SigilLeeching: {name: "Leeching", effect: onSwap(9, flat(975, 975))},
	SigilRenewal:  {name: "Renewal", effect: onSwap(9, gains(flat(0, 345), scaledHeal(0.4)))},

	// on flanking hit
	SigilFrailty:        {name: "Frailty", effect: onFlank(2, condition(stats.Vulnerability, 2*8))},
	SigilIncapacitation: {name: "Incapacitation", effect: onFlank(5, condition(stats.Cripple, 2))},

	// stun duration and outgoing healing are not modelled
	SigilParalyzation: {name: "Paralyzation"},
	SigilTransference: {name: "Transference"},
}

func (g Sigil) String() string { return nameOf(sigils, int(g)) }

// HasStats reports whether the sigil carries a stat bonus rather than only a proc.
func (g Sigil) HasStats() bool { return int(g) < len(sigils) && sigils[g].stat }

// ParseSigil looks up a sigil by name, case-insensitively.
func ParseSigil(name string) (Sigil, bool) {
	i, ok := lookup(sigils, name)
	return Sigil(i), ok
}

func (g Sigil) effect() Effect { return effectOf(sigils, int(g)) }

func (g Sigil) AddPermanent(s *stats.Stats, m *stats.Modifiers) { g.effect().AddPermanent(s, m) }
func (g Sigil) Distribute(s *stats.Stats, m *stats.Modifiers) { g.effect().Distribute(s, m) }
func (g Sigil) AddTemporary(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
	g.effect().AddTemporary(s, m, c)
}
func (g Sigil) CombatProcs(events *combat.Second, c *combat.Second) {
	g.effect().CombatProcs(events, c)
}

func (g *Sigil) NumFields() int { return 1 }
func (g *Sigil) NumFieldValues(int) uint16 { return uint16(NumSigils) }
func (g *Sigil) GetField(int) uint16 { return uint16(*g) }
func (g *Sigil) SetField(_ int, x uint16) { *g = Sigil(x) }
