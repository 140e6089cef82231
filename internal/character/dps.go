package character

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// Baseline is one observed sample of a build's performance, e.g. from a combat log.
type Baseline[C any] struct {
	// Gear is the stats shown on the gear tab, excluding runes, food and boons.
	Gear   stats.Stats
	Config C
	DPS    float64
	// ConditionPercent is the share of DPS dealt by each condition. Strike makes up the rest.
	ConditionPercent stats.PerCondition
	// BoonUptime is average stacks times 100, so 950 means 9.5 stacks of might on average.
	BoonUptime stats.PerBoon
}

// DpsModel converts stats into DPS using points derived from a Baseline. Points measure
// damage-generating capacity per unit of each damage type's coefficient, so they carry over
// to any other stats.
type DpsModel struct {
	StrikePoints    float64
	ConditionPoints stats.PerCondition
	BoonPoints      stats.PerBoon
}

// ZeroDpsModel evaluates to zero everywhere. Builds use it before calibration.
func ZeroDpsModel() DpsModel {
	return DpsModel{}
}

// NewDpsModel calibrates against b, evaluated through m. Points supplied by gear procs
// (Modifiers.ConditionPoints and BoonPoints) are excluded so they are not counted twice.
func NewDpsModel[C any](m Model[C], b *Baseline[C]) DpsModel {
	s, mods, _ := m.CalcStats(&b.Gear, &b.Config)

	var d DpsModel
	strikePct := 100 - b.ConditionPercent.Sum()
	d.StrikePoints = safeDiv(b.DPS*strikePct/100, s.StrikeFactor(&mods))
	// Types absent from the sample keep zero points, so procs still count for them.
	for c := range stats.NumConditions {
		if b.ConditionPercent[c] <= 0 {
			continue
		}
		dps := b.DPS * b.ConditionPercent[c] / 100
		d.ConditionPoints[c] = safeDiv(dps, s.ConditionFactor(&mods, c)) - mods.ConditionPoints[c]
	}
	for bn := range stats.NumBoons {
		if b.BoonUptime[bn] <= 0 {
			continue
		}
		stacks := b.BoonUptime[bn] / 100
		d.BoonPoints[bn] = safeDiv(stacks, s.BoonDuration(&mods, bn)/100) - mods.BoonPoints[bn]
	}
	return d
}

// CalcDps projects the calibrated performance onto s and m.
func (d *DpsModel) CalcDps(s *stats.Stats, m *stats.Modifiers) float64 {
	dps := d.StrikePoints * s.StrikeFactor(m)
	for c := range stats.NumConditions {
		points := d.ConditionPoints[c] + m.ConditionPoints[c]
		if points != 0 {
			dps += points * s.ConditionFactor(m, c)
		}
	}
	return dps
}

// UpdateBaseCombat returns a copy of base whose strike, condition and boon strengths make
// the combat summary at the baseline reproduce the observed DPS split and boon uptimes.
// Events m already produces through procs are subtracted. m must currently compute from
// base; call repeatedly, feeding the result back into the model, to let procs settle.
func (b *Baseline[C]) UpdateBaseCombat(m Model[C], base combat.Second) combat.Second {
	s, mods, c := m.CalcStats(&b.Gear, &b.Config)
	out := base

	strikeDPS := b.DPS * (100 - b.ConditionPercent.Sum()) / 100
	flat := c.StrikeFlat.Strength * (1 + mods.StrikeDamage/100)
	need := safeDiv(strikeDPS-flat, s.StrikeFactor(&mods))
	out.Strike.Strength = max(0, base.Strike.Strength+need-c.Strike.Strength)

	for cond := range stats.NumConditions {
		if b.ConditionPercent[cond] <= 0 {
			continue
		}
		dps := b.DPS * b.ConditionPercent[cond] / 100
		need := safeDiv(dps, s.ConditionFactor(&mods, cond))
		out.Condition[cond].Strength = max(0, base.Condition[cond].Strength+need-c.Condition[cond].Strength)
	}

	for bn := range stats.NumBoons {
		if b.BoonUptime[bn] <= 0 {
			continue
		}
		need := safeDiv(b.BoonUptime[bn]/100, s.BoonDuration(&mods, bn)/100)
		out.Boon[bn].Strength = max(0, base.Boon[bn].Strength+need-c.Boon[bn].Strength)
	}
	return out
}

// safeDiv returns 0 instead of a non-finite quotient.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
