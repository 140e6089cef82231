// Package character defines the contract a build must satisfy to be optimized, and the
// DPS calibration that projects an observed performance onto hypothetical gear.
package character

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// Model describes a build. C is its configuration type: the discrete choices (runes,
// sigils, consumables) the optimizer may vary.
//
// Evaluate returns a value to minimize. Constraint violations (too little sustain, too
// little DPS, missing boon uptime) should be encoded as large penalties proportional to the
// shortfall rather than rejected, so the search can move back toward feasibility. The fine
// optimizer additionally requires Evaluate to be non-increasing in every stat.
type Model[C any] interface {
	// CalcStats must be pure and deterministic. gear excludes BaseStats.
	CalcStats(gear *stats.Stats, cfg *C) (stats.Stats, stats.Modifiers, combat.Second)
	// IsConfigValid filters the search space. It is never treated as an error.
	IsConfigValid(cfg *C) bool
	Evaluate(cfg *C, s *stats.Stats, m *stats.Modifiers, c *combat.Second) float64
}

// AlwaysValid provides an IsConfigValid that accepts every configuration.
type AlwaysValid[C any] struct{}

func (AlwaysValid[C]) IsConfigValid(*C) bool { return true }

// Evaluate computes the objective for gear and cfg.
func Evaluate[C any](m Model[C], gear *stats.Stats, cfg *C) float64 {
	s, mods, c := m.CalcStats(gear, cfg)
	return m.Evaluate(cfg, &s, &mods, &c)
}
