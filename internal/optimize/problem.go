// Package optimize searches for gear and configuration that minimize a character's
// objective. The coarse stage works on continuous prefix weights; the fine stage assigns a
// concrete prefix to every slot.
package optimize

import (
	"cmp"
	"log/slog"
	"slices"

	"gear-optimizer/internal/character"
	"gear-optimizer/internal/gear"
	"gear-optimizer/internal/stats"
)

// Problem binds a character to the equipment it may wear.
type Problem[C any] struct {
	Model   character.Model[C]
	Catalog *gear.Catalog
	Slots   []gear.SlotQuality

	maxWeight float64
}

func NewProblem[C any](m character.Model[C], cat *gear.Catalog, slots []gear.SlotQuality) *Problem[C] {
	return &Problem[C]{
		Model:     m,
		Catalog:   cat,
		Slots:     slots,
		maxWeight: cat.MaxWeight(slots),
	}
}

// MaxWeight is the total prefix weight the slots can hold.
func (p *Problem[C]) MaxWeight() float64 {
	return p.maxWeight
}

// GearStats materializes prefix weights into unrounded gear stats.
func (p *Problem[C]) GearStats(w PrefixWeights) stats.Stats {
	var s stats.Stats
	for i, x := range w {
		if x != 0 {
			s = s.Add(p.Catalog.Prefixes[i].CoarseStats(x))
		}
	}
	return s
}

// Evaluate is the shared evaluation primitive of the coarse stage.
func (p *Problem[C]) Evaluate(w PrefixWeights, cfg *C) float64 {
	s := p.GearStats(w)
	return character.Evaluate(p.Model, &s, cfg)
}

// ── Prefix weights ──────────────────────────────────────────────────

// PrefixWeights holds one weight per catalog prefix. A slot of weight x filled with prefix i
// contributes x to entry i.
type PrefixWeights []float64

func (w PrefixWeights) Sum() float64 {
	var acc float64
	for _, x := range w {
		acc += x
	}
	return acc
}

func (w PrefixWeights) Clone() PrefixWeights {
	return slices.Clone(w)
}

// Ranked returns the indexes of the positive weights, largest first.
func (w PrefixWeights) Ranked() []int {
	var idx []int
	for i, x := range w {
		if x > 0 {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(w[b], w[a])
	})
	return idx
}

// Winners returns the prefixes holding at least frac of the total weight, in catalog order.
// These are the candidates worth handing to the fine stage.
func (w PrefixWeights) Winners(frac float64) []int {
	total := w.Sum()
	var idx []int
	for i, x := range w {
		if x > 0 && x >= frac*total {
			idx = append(idx, i)
		}
	}
	return idx
}

// DecreaseLinear subtracts the same amount from every positive entry, clamping at zero, so
// that the sum drops by exactly amount. The relative order of entries is preserved. If
// amount exceeds the sum, every entry becomes zero.
func DecreaseLinear(w PrefixWeights, amount float64) {
	if amount <= 0 {
		return
	}
	var sorted []float64
	for _, x := range w {
		if x > 0 {
			sorted = append(sorted, x)
		}
	}
	slices.Sort(sorted)

	level := 0.0
	remaining := amount
	done := false
	for i, x := range sorted {
		active := float64(len(sorted) - i)
		step := (x - level) * active
		if step >= remaining {
			level += remaining / active
			done = true
			break
		}
		remaining -= step
		level = x
	}
	if !done {
		clear(w)
		return
	}
	for i, x := range w {
		w[i] = max(0, x-level)
	}
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
