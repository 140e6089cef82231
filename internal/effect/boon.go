package effect

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// Might grants 30 power and 30 condition damage per stack, with stacks taken from the
// combat summary.
var Might Effect = Temporary(func(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
	stacks := c.BoonUptime(s, m, stats.Might)
	s[stats.Power] += stacks * 30
	s[stats.ConditionDamage] += stacks * 30
})

// Fury grants 25% crit chance scaled by uptime from the combat summary.
var Fury Effect = Temporary(func(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
	m.CritChance += c.BoonUptime(s, m, stats.Fury) * 25
})

// FixedMight applies might from a number of boon points (stack-seconds of base duration
// per second) plus any gear-supplied Modifiers.BoonPoints, ignoring the combat summary.
func FixedMight(points float64) Effect {
	return Temporary(func(s *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		stacks := fixedUptime(s, m, stats.Might, points)
		s[stats.Power] += stacks * 30
		s[stats.ConditionDamage] += stacks * 30
	})
}

// FixedFury is the points-based counterpart of Fury.
func FixedFury(points float64) Effect {
	return Temporary(func(s *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		m.CritChance += fixedUptime(s, m, stats.Fury, points) * 25
	})
}

func fixedUptime(s *stats.Stats, m *stats.Modifiers, b stats.Boon, points float64) float64 {
	points += m.BoonPoints[b]
	return clampStacks(points*s.BoonDuration(m, b)/100, b.MaxStacks())
}

func clampStacks(x, limit float64) float64 {
	return max(0, min(x, limit))
}
