package builds

import (
	"gear-optimizer/internal/character"
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/effect"
	"gear-optimizer/internal/stats"
	"gear-optimizer/internal/vary"
)

// VirtConfig is a condition mirage loadout. The second sigil is always Earth.
type VirtConfig struct {
	Rune    effect.Rune
	Sigil   effect.Sigil
	Food    effect.Food
	Utility effect.Utility
}

func (v *VirtConfig) tuple() vary.Tuple {
	return vary.Tuple{&v.Rune, &v.Sigil, &v.Food, &v.Utility}
}

func (v *VirtConfig) NumFields() int { return v.tuple().NumFields() }
func (v *VirtConfig) NumFieldValues(i int) uint16 { return v.tuple().NumFieldValues(i) }
func (v *VirtConfig) GetField(i int) uint16 { return v.tuple().GetField(i) }
func (v *VirtConfig) SetField(i int, x uint16) { v.tuple().SetField(i, x) }

func (v *VirtConfig) Fields() []Field {
	return []Field{
		{Name: "rune", Value: v.Rune.String()},
		{Name: "sigil1", Value: v.Sigil.String()},
		{Name: "sigil2", Value: effect.SigilEarth.String()},
		{Name: "food", Value: v.Food.String()},
		{Name: "utility", Value: v.Utility.String()},
	}
}

func (v *VirtConfig) loadout() Loadout {
	return Loadout{Rune: v.Rune, Sigil1: v.Sigil, Sigil2: effect.SigilEarth, Food: v.Food, Utility: v.Utility}
}

// CondiVirt must keep 100% crit chance for its shatters.
type CondiVirt struct {
	character.AlwaysValid[VirtConfig]
	dps character.DpsModel
}

var virtBaseline = character.Baseline[VirtConfig]{
	Gear: stats.Stats{
		stats.Power:           986,
		stats.Precision:       981,
		stats.ConditionDamage: 1012,
		stats.Expertise:       255,
	},
	Config: VirtConfig{
		Rune:    effect.RuneKrait,
		Sigil:   effect.SigilAgony,
		Food:    effect.FoodFancyPotatoAndLeekSoup,
		Utility: effect.UtilityToxicFocusingCrystal,
	},
	DPS: 30063,
	ConditionPercent: stats.PerCondition{
		stats.Bleed:   59.9,
		stats.Torment: 10.3,
		stats.Confuse: 1.3,
		stats.Poison:  0.2,
	},
}

var virtTraits = effect.Chain(
	effect.FixedMight(25),
	// Fury and Quiet Intensity
	effect.Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		m.CritChance += 25 + 15
	}),
	// Superiority Complex, against disabled foes
	effect.Temporary(func(_ *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		m.CritDamage += 15 + 10
	}),
	// Compounding Power (1 stack)
	effect.Temporary(func(s *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		m.StrikeDamage += 2
		s[stats.ConditionDamage] += 30
	}),
	// Quiet Intensity
	effect.Distribute(func(s *stats.Stats, _ *stats.Modifiers) {
		s[stats.Ferocity] += s[stats.Vitality] * 0.10
	}),
	// Bloodsong
	effect.Permanent(func(_ *stats.Stats, m *stats.Modifiers) {
		m.ConditionDamage[stats.Bleed] += 25
	}),
	// Signet of Domination passive and Signet of Midnight
	effect.Temporary(func(s *stats.Stats, _ *stats.Modifiers, _ *combat.Second) {
		s[stats.ConditionDamage] += 180
		s[stats.Expertise] += 180
	}),
)

func NewCondiVirt() *CondiVirt {
	v := &CondiVirt{dps: character.ZeroDpsModel()}
	v.dps = character.NewDpsModel[VirtConfig](v, &virtBaseline)
	return v
}

func (v *CondiVirt) CalcStats(g *stats.Stats, cfg *VirtConfig) (stats.Stats, stats.Modifiers, combat.Second) {
	l := cfg.loadout()
	return effect.Apply(effect.Chain(l.Effect(), virtTraits), stats.BaseStats.Add(*g), stats.Modifiers{}, combat.Second{})
}

func (v *CondiVirt) Evaluate(_ *VirtConfig, s *stats.Stats, m *stats.Modifiers, _ *combat.Second) float64 {
	if crit := s.CritChance(m); crit < 100 {
		return 1000 + 100 - crit
	}
	return -v.dps.CalcDps(s, m)
}

func (v *CondiVirt) DPS(s *stats.Stats, m *stats.Modifiers, _ *combat.Second) float64 {
	return v.dps.CalcDps(s, m)
}
