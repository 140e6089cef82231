// Package effect models runes, sigils, traits, consumables and boons as composable
// contributions to a character's stats and combat behavior.
package effect

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// Effect influences stats, modifiers and combat events. Stages run in this order:
//   - AddPermanent: flat bonuses from runes and traits.
//   - Distribute: "add X% of stat1 to stat2" conversions.
//   - AddTemporary: buffs whose strength depends on the combat summary, such as might.
//   - CombatProcs: given the observed events, add the events produced by procs to c.
//
// Implementations must not keep state between calls.
type Effect interface {
	AddPermanent(s *stats.Stats, m *stats.Modifiers)
	Distribute(s *stats.Stats, m *stats.Modifiers)
	AddTemporary(s *stats.Stats, m *stats.Modifiers, c *combat.Second)
	CombatProcs(events *combat.Second, c *combat.Second)
}

// Base implements every stage as a no-op. Embed it to override only some stages.
type Base struct{}

func (Base) AddPermanent(*stats.Stats, *stats.Modifiers) {}
func (Base) Distribute(*stats.Stats, *stats.Modifiers) {}
func (Base) AddTemporary(*stats.Stats, *stats.Modifiers, *combat.Second) {}
func (Base) CombatProcs(*combat.Second, *combat.Second) {}

// NoEffect changes nothing.
var NoEffect Effect = Base{}

// ── Stage adapters ──────────────────────────────────────────────────

// Permanent runs f in the AddPermanent stage.
type Permanent func(s *stats.Stats, m *stats.Modifiers)

func (f Permanent) AddPermanent(s *stats.Stats, m *stats.Modifiers) { f(s, m) }
func (Permanent) Distribute(*stats.Stats, *stats.Modifiers) {}
func (Permanent) AddTemporary(*stats.Stats, *stats.Modifiers, *combat.Second) {}
func (Permanent) CombatProcs(*combat.Second, *combat.Second) {}

// Distribute runs f in the Distribute stage.
type Distribute func(s *stats.Stats, m *stats.Modifiers)

func (Distribute) AddPermanent(*stats.Stats, *stats.Modifiers) {}
func (f Distribute) Distribute(s *stats.Stats, m *stats.Modifiers) { f(s, m) }
func (Distribute) AddTemporary(*stats.Stats, *stats.Modifiers, *combat.Second) {}
func (Distribute) CombatProcs(*combat.Second, *combat.Second) {}

// Temporary runs f in the AddTemporary stage.
type Temporary func(s *stats.Stats, m *stats.Modifiers, c *combat.Second)

func (Temporary) AddPermanent(*stats.Stats, *stats.Modifiers) {}
func (Temporary) Distribute(*stats.Stats, *stats.Modifiers) {}
func (f Temporary) AddTemporary(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
	f(s, m, c)
}
func (Temporary) CombatProcs(*combat.Second, *combat.Second) {}

// Procs runs f in the CombatProcs stage.
type Procs func(events *combat.Second, c *combat.Second)

func (Procs) AddPermanent(*stats.Stats, *stats.Modifiers) {}
func (Procs) Distribute(*stats.Stats, *stats.Modifiers) {}
func (Procs) AddTemporary(*stats.Stats, *stats.Modifiers, *combat.Second) {}
func (f Procs) CombatProcs(events *combat.Second, c *combat.Second) { f(events, c) }

// ── Composition ─────────────────────────────────────────────────────

type then struct {
	first, second Effect
}

// Then runs a before b in every stage. Later effects see the output of earlier ones.
func Then(a, b Effect) Effect {
	return then{a, b}
}

func (t then) AddPermanent(s *stats.Stats, m *stats.Modifiers) {
	t.first.AddPermanent(s, m)
	t.second.AddPermanent(s, m)
}

func (t then) Distribute(s *stats.Stats, m *stats.Modifiers) {
	t.first.Distribute(s, m)
	t.second.Distribute(s, m)
}

func (t then) AddTemporary(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
	t.first.AddTemporary(s, m, c)
	t.second.AddTemporary(s, m, c)
}

func (t then) CombatProcs(events *combat.Second, c *combat.Second) {
	t.first.CombatProcs(events, c)
	t.second.CombatProcs(events, c)
}

// Chain folds es right-associatively with Then. An empty chain is NoEffect.
func Chain(es ...Effect) Effect {
	if len(es) == 0 {
		return NoEffect
	}
	acc := es[len(es)-1]
	for i := len(es) - 2; i >= 0; i-- {
		acc = Then(es[i], acc)
	}
	return acc
}

// ── Evaluation ──────────────────────────────────────────────────────

// convergeIterations bounds the stats/procs feedback loop. Proc chains seen in practice
// (torment on crit, regeneration on torment) are only a couple of steps long.
const convergeIterations = 5

// Apply runs e on top of the base values and returns the final stats, modifiers and combat
// summary. Temporary effects and procs feed back into each other (fury on crit raises the
// crit chance that triggers it), so each iteration computes stats from the previous
// iteration's combat and procs from the previous iteration's events. The loop does not
// check for convergence.
func Apply(e Effect, baseStats stats.Stats, baseMods stats.Modifiers, baseCombat combat.Second) (stats.Stats, stats.Modifiers, combat.Second) {
	e.AddPermanent(&baseStats, &baseMods)
	e.Distribute(&baseStats, &baseMods)

	s, m, c := baseStats, baseMods, baseCombat
	for range convergeIterations {
		s, m = baseStats, baseMods
		e.AddTemporary(&s, &m, &c)
		c.UpdateCrit(s.CritChance(&m))

		prev := c
		c = baseCombat
		e.CombatProcs(&prev, &c)
	}

	c.UpdateCrit(s.CritChance(&m))
	return s, m, c
}

// ProcFrequency is how many times per second a passive with internal cooldown icd fires
// when its trigger happens trigger times per second.
func ProcFrequency(icd, trigger float64) float64 {
	if trigger <= 0 {
		return 0
	}
	interval := 1 / trigger
	if interval > icd {
		return trigger
	}
	// Off cooldown halfway between two triggers on average.
	return 1 / (icd + interval*0.5)
}
