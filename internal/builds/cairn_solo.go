package builds

import (
	"gear-optimizer/internal/character"
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/effect"
	"gear-optimizer/internal/stats"
)

// Solo Cairn weaver builds. All three share the Loadout config and its restrictions.

// calibrationPasses lets proc-generated boons and conditions settle when fitting the base
// combat summary.
const calibrationPasses = 4

func soloRuneValid(r effect.Rune) bool {
	switch r {
	case effect.NoRune, effect.RuneFireworks, effect.RunePack, effect.RuneBrawler, effect.RuneCentaur,
		effect.RuneAristocracy, effect.RuneTormenting, effect.RuneForgeman:
		return true
	}
	return r.HasStats()
}

func soloSigilValid(g effect.Sigil) bool {
	switch g {
	case effect.NoSigil,
		effect.SigilBlight, effect.SigilBlood, effect.SigilEarth, effect.SigilStrength, effect.SigilTorment,
		effect.SigilAgility, effect.SigilBattle, effect.SigilDoom, effect.SigilLeeching, effect.SigilRenewal,
		effect.SigilFrailty, effect.SigilIncapacitation:
		return true
	}
	return g.HasStats()
}

func soloLoadoutValid(l *Loadout) bool {
	if l.Sigil1 == l.Sigil2 && l.Sigil1 != effect.NoSigil {
		return false
	}
	return soloRuneValid(l.Rune) && soloSigilValid(l.Sigil1) && soloSigilValid(l.Sigil2)
}

type soloValid struct{}

func (soloValid) IsConfigValid(l *Loadout) bool { return soloLoadoutValid(l) }

// ── Arcane ──────────────────────────────────────────────────────────

// CairnSoloArcane is projected from a DPS sample; rune and sigil procs are converted to
// points at fixed intervals.
type CairnSoloArcane struct {
	soloValid
	dps character.DpsModel
}

const (
	arcaneRotation = 4.5 * 8
	// Six dual attacks per rotation.
	arcaneDualInterval = arcaneRotation / 6
	arcaneHealInterval = 20
)

var arcaneBaseline = character.Baseline[Loadout]{
	Gear: stats.Stats{
		stats.Power:           824,
		stats.Precision:       793,
		stats.ConditionDamage: 1173,
		stats.Expertise:       444,
		stats.HealingPower:    189,
		stats.Concentration:   189,
	},
	Config: Loadout{
		Rune:    effect.RuneElementalist,
		Sigil1:  effect.SigilSmoldering,
		Sigil2:  effect.SigilBattle,
		Food:    effect.FoodRedLentilSaobosa,
		Utility: effect.UtilityToxicFocusingCrystal,
	},
	DPS: 6708,
	ConditionPercent: stats.PerCondition{
		stats.Burn:  68.9,
		stats.Bleed: 10.3,
	},
}

func NewCairnSoloArcane() *CairnSoloArcane {
	a := &CairnSoloArcane{dps: character.ZeroDpsModel()}
	a.dps = character.NewDpsModel[Loadout](a, &arcaneBaseline)
	return a
}

// runePoints converts rune procs to boon points.
func runePoints(r effect.Rune, healInterval, dualInterval float64) effect.Effect {
	return effect.Permanent(func(_ *stats.Stats, m *stats.Modifiers) {
		b := &m.BoonPoints
		switch r {
		case effect.RuneFireworks:
			b[stats.Might] += 6 * 6.0 / 20
			b[stats.Fury] += 6.0 / 20
			b[stats.Vigor] += 6.0 / 20
		case effect.RunePack:
			b[stats.Might] += 5 * 8.0 / 30
			b[stats.Fury] += 8.0 / 30
			b[stats.Swiftness] += 8.0 / 30
		case effect.RuneBrawler:
			b[stats.Might] += 5 * 10 / healInterval
		case effect.RuneCentaur:
			b[stats.Swiftness] += 10 / healInterval
		case effect.RuneAristocracy:
			b[stats.Might] += 5 * 4 / dualInterval
		}
	})
}

// sigilPoints converts sigil procs to condition and boon points. Intervals are the
// internal cooldown plus half a second of trigger latency.
func sigilPoints(g effect.Sigil) effect.Effect {
	return effect.Permanent(func(_ *stats.Stats, m *stats.Modifiers) {
		switch g {
		case effect.SigilBlight:
			m.ConditionPoints[stats.Poison] += 2 * 4 / 8.5
		case effect.SigilEarth:
			m.ConditionPoints[stats.Bleed] += 6 / 2.5
		case effect.SigilStrength:
			m.BoonPoints[stats.Might] += 10.0 / 2
		case effect.SigilTorment:
			m.ConditionPoints[stats.Torment] += 2 * 5 / 5.5
		case effect.SigilAgility:
			m.BoonPoints[stats.Swiftness] += 5.0 / 10
			m.BoonPoints[stats.Quickness] += 1.0 / 10
		case effect.SigilBattle:
			m.BoonPoints[stats.Might] += 5 * 12.0 / 10
		case effect.SigilDoom:
			m.ConditionPoints[stats.Poison] += 3 * 8.0 / 10
		}
	})
}

var (
	elementalEnchantment = effect.Permanent(func(s *stats.Stats, _ *stats.Modifiers) {
		s[stats.Concentration] += 180
	})
	superiorElementsFixed = effect.Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		m.CritChance += 15
	})
)

func (a *CairnSoloArcane) CalcStats(g *stats.Stats, l *Loadout) (stats.Stats, stats.Modifiers, combat.Second) {
	e := effect.Chain(
		l.Effect(),
		empoweringFlame(4.0/8),
		burningPrecision,
		burningRage,
		pyromancersTraining,
		persistingFlames(9),
		elementalEnchantment,
		superiorElementsFixed,
		weaversProwess,
		elementalPolyphony,
		wovenFire,
		runePoints(l.Rune, arcaneHealInterval, arcaneDualInterval),
		sigilPoints(l.Sigil1),
		sigilPoints(l.Sigil2),
		effect.FixedMight(a.dps.BoonPoints[stats.Might]),
		effect.FixedFury(a.dps.BoonPoints[stats.Fury]),
	)
	return effect.Apply(e, stats.BaseStats.Add(*g), stats.Modifiers{}, combat.Second{})
}

func (a *CairnSoloArcane) Evaluate(_ *Loadout, s *stats.Stats, m *stats.Modifiers, _ *combat.Second) float64 {
	return -a.dps.CalcDps(s, m)
}

func (a *CairnSoloArcane) DPS(s *stats.Stats, m *stats.Modifiers, _ *combat.Second) float64 {
	return a.dps.CalcDps(s, m)
}

// ── Air and Earth ───────────────────────────────────────────────────

// Both rotations take three attunement swaps and cast one dual attack.
const soloRotation = 4.5 * 3

// soloCombat is a weaver whose damage comes from a calibrated combat summary.
type soloCombat struct {
	soloValid
	base   combat.Second
	traits effect.Effect
	margin float64
}

func (w *soloCombat) CalcStats(g *stats.Stats, l *Loadout) (stats.Stats, stats.Modifiers, combat.Second) {
	e := effect.Chain(
		l.Effect(),
		empoweringFlame(2.0/3),
		burningPrecision,
		burningPrecisionProc,
		sunspot(soloRotation),
		burningRage,
		pyromancersTraining,
		persistingFlames(9),
		w.traits,
		superiorElements,
		elementalRefreshment,
		weaversProwess,
		elementalPolyphony,
		wovenStride,
		wovenFire,
		weaverRotation(soloRotation),
		effect.Might,
		effect.Fury,
	)
	return effect.Apply(e, stats.BaseStats.Add(*g), stats.Modifiers{}, w.base)
}

func (w *soloCombat) Evaluate(_ *Loadout, s *stats.Stats, m *stats.Modifiers, c *combat.Second) float64 {
	return soloObjective(s, m, c, w.margin)
}

func (w *soloCombat) DPS(s *stats.Stats, m *stats.Modifiers, c *combat.Second) float64 {
	return c.DPS(s, m)
}

func (w *soloCombat) calibrate(b *character.Baseline[Loadout]) {
	for range calibrationPasses {
		w.base = b.UpdateBaseCombat(w, w.base)
	}
}

// CairnSoloAir is the air weaver with Glyph of Elemental Harmony.
type CairnSoloAir struct{ soloCombat }

var airBaseline = character.Baseline[Loadout]{
	Gear: stats.Stats{
		stats.Power:           606,
		stats.Precision:       452,
		stats.Toughness:       416,
		stats.HealingPower:    579,
		stats.ConditionDamage: 1158,
		stats.Expertise:       179,
	},
	Config: Loadout{
		Rune:    effect.RuneBaelfire,
		Sigil1:  effect.SigilBattle,
		Sigil2:  effect.SigilTorment,
		Food:    effect.FoodRedLentilSaobosa,
		Utility: effect.UtilityToxicFocusingCrystal,
	},
	DPS: 10586,
	ConditionPercent: stats.PerCondition{
		stats.Burn:    66.8,
		stats.Bleed:   8.3,
		stats.Torment: 6.1,
	},
	BoonUptime: stats.PerBoon{
		stats.Might:        950,
		stats.Fury:         91,
		stats.Swiftness:    112,
		stats.Vigor:        36,
		stats.Regeneration: 55,
	},
}

var airTraits = effect.Chain(
	// Zephyr's Speed
	effect.Permanent(func(_ *stats.Stats, m *stats.Modifiers) {
		m.CritChance += 5
	}),
	// Zephyr's Boon
	effect.Procs(func(evt, c *combat.Second) {
		gain(&c.Boon[stats.Fury], 5, evt.Aura.Count)
		gain(&c.Boon[stats.Swiftness], 5, evt.Aura.Count)
	}),
	// Aeromancer's Training
	effect.Permanent(func(s *stats.Stats, _ *stats.Modifiers) {
		s[stats.Ferocity] += 150
	}),
	// Glyph of Elemental Harmony, 16s with Inscription, usually cast in fire.
	effect.Procs(func(_, c *combat.Second) {
		const freq = 1.0 / 16
		c.CastHealing += freq
		gain(&c.HealFlat, 6494, freq)
		gain(&c.Heal, 1.2, freq)
		gain(&c.Boon[stats.Might], 3*20+10, freq)
	}),
)

func NewCairnSoloAir() *CairnSoloAir {
	a := &CairnSoloAir{soloCombat{
		base: combat.Second{
			Strike:   combat.NewEvent(1006.0/378, 0),
			Flanking: 0.23,
			Cast:     1.2,
		},
		traits: airTraits,
		margin: 50,
	}}
	a.calibrate(&airBaseline)
	return a
}

// CairnSoloEarth is the earth weaver with Signet of Restoration.
type CairnSoloEarth struct{ soloCombat }

var earthBaseline = character.Baseline[Loadout]{
	Gear: stats.Stats{
		stats.Power:           860,
		stats.Precision:       612,
		stats.Toughness:       365,
		stats.Vitality:        331,
		stats.Ferocity:        331,
		stats.HealingPower:    378,
		stats.ConditionDamage: 894,
		stats.Concentration:   331,
		stats.Expertise:       612,
	},
	Config: Loadout{
		Rune:    effect.RunePack,
		Sigil1:  effect.SigilAgility,
		Sigil2:  effect.SigilStrength,
		Food:    effect.FoodFireMeatChili,
		Utility: effect.UtilityToxicFocusingCrystal,
	},
	DPS: 10094,
	ConditionPercent: stats.PerCondition{
		stats.Burn:  68.4,
		stats.Bleed: 9.8,
	},
	BoonUptime: stats.PerBoon{
		stats.Might:        1309,
		stats.Fury:         40,
		stats.Swiftness:    113,
		stats.Vigor:        50,
		stats.Regeneration: 47,
	},
}

var earthTraits = effect.Chain(
	// Stone Flesh
	effect.Distribute(func(_ *stats.Stats, m *stats.Modifiers) {
		m.IncomingStrikeDamageReduction += 7
	}),
	// Earth's Embrace
	effect.Procs(func(_, c *combat.Second) {
		gain(&c.HealFlat, 1302, 1/soloRotation)
		gain(&c.Heal, 0.75, 1/soloRotation)
	}),
	// Strength of Stone
	effect.Distribute(func(s *stats.Stats, _ *stats.Modifiers) {
		s[stats.ConditionDamage] += s[stats.Toughness] * 0.10
	}),
	effect.Procs(func(evt, c *combat.Second) {
		gain(&c.Condition[stats.Bleed], 3*10, effect.ProcFrequency(3, evt.Condition[stats.Immobilize].Count))
	}),
	// Signet of Fire, passive
	effect.Temporary(func(s *stats.Stats, _ *stats.Modifiers, _ *combat.Second) {
		s[stats.Precision] += 180
	}),
	// Signet of Restoration: the active every 20s, the passive on every cast.
	effect.Procs(func(evt, c *combat.Second) {
		const freq = 1.0 / 20
		c.CastHealing += freq
		gain(&c.HealFlat, 3275, freq)
		gain(&c.Heal, 0.5, freq)
		gain(&c.HealFlat, 202, evt.Cast)
		gain(&c.Heal, 0.1, evt.Cast)
	}),
)

func NewCairnSoloEarth() *CairnSoloEarth {
	e := &CairnSoloEarth{soloCombat{
		base: combat.Second{
			Strike:   combat.NewEvent(1093.0/398, 0),
			Flanking: 0.223,
			Cast:     1.2,
		},
		traits: earthTraits,
		margin: 100,
	}}
	e.calibrate(&earthBaseline)
	return e
}
