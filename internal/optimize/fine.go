package optimize

import (
	"cmp"
	"log/slog"
	"math"
	"slices"

	"gear-optimizer/internal/character"
	"gear-optimizer/internal/gear"
	"gear-optimizer/internal/stats"
)

// InfusionStat is the amount one infusion adds to a single stat.
const InfusionStat = 5

// FineOptions tunes the fine stage.
type FineOptions struct {
	// Infusions is the number of infusions to distribute over stats.
	Infusions int
	// Margin is the half-width of the target band, as a fraction of the maximum weight.
	Margin float64
	// DisableSymmetryBreaking enumerates every permutation of interchangeable slots.
	DisableSymmetryBreaking bool
	Logger                  *slog.Logger
}

func DefaultFineOptions() FineOptions {
	return FineOptions{Margin: 0.10}
}

// FineResult is the best assignment found by Fine.
type FineResult struct {
	// Prefixes holds a catalog prefix index for each slot, in the order of Problem.Slots.
	Prefixes  []int
	Infusions [stats.NumStats]int
	Metric    float64
	// Tried counts objective evaluations, including pruning bounds.
	Tried int
	// Found is false when no assignment lands inside the target band.
	Found bool
}

type fineSlot struct {
	orig   int
	sq     gear.SlotQuality
	weight float64
}

type fineSearch[C any] struct {
	p        *Problem[C]
	cfg      *C
	prefixes []int
	slots    []fineSlot
	// itemStats[i][j] is the rounded stats of candidate j in sorted slot i.
	itemStats [][]stats.Stats
	// remainingStats[i] bounds the stats slots i.. and all infusions can add.
	remainingStats []stats.Stats
	// remainingWeight[i] is the total weight of slots i..
	remainingWeight []float64
	// band[j] is the allowed (lo, hi) total weight of candidate j. Nil means unconstrained.
	band      [][2]float64
	infusions int
	symmetry  bool
	log       *slog.Logger

	cur       []int
	curWeight []float64
	curInf    [stats.NumStats]int

	best  FineResult
	tried int
}

// Fine assigns one of the candidate prefixes to every slot, plus infusions, minimizing the
// objective with cfg held fixed. The search is exhaustive up to pruning, so the result is
// optimal over the candidates.
//
// Pruning evaluates the objective at an optimistic stat total, which is only sound if
// Evaluate never increases when any stat increases. Objectives that penalize excess stats
// can make Fine return a suboptimal assignment.
//
// If target is non-nil, only assignments whose per-prefix weight totals land within
// opts.Margin*MaxWeight of target are accepted.
func Fine[C any](p *Problem[C], cfg *C, prefixIdxs []int, target PrefixWeights, opts FineOptions) FineResult {
	f := &fineSearch[C]{
		p:         p,
		cfg:       cfg,
		prefixes:  prefixIdxs,
		infusions: max(0, opts.Infusions),
		symmetry:  !opts.DisableSymmetryBreaking,
		log:       loggerOrDiscard(opts.Logger),
		best:      FineResult{Metric: math.Inf(1)},
	}
	f.setup()
	if target != nil {
		margin := opts.Margin * p.MaxWeight()
		f.band = make([][2]float64, len(prefixIdxs))
		for j, idx := range prefixIdxs {
			f.band[j] = [2]float64{max(0, target[idx]-margin), target[idx] + margin}
		}
	}

	f.log.Info("[fine] start", "slots", len(f.slots), "candidates", len(prefixIdxs),
		"infusions", f.infusions, "banded", target != nil)
	if len(prefixIdxs) > 0 {
		f.goSlots(0, stats.Stats{})
	}

	res := f.best
	res.Tried = f.tried
	if res.Found {
		out := make([]int, len(f.slots))
		for i, sl := range f.slots {
			out[sl.orig] = prefixIdxs[res.Prefixes[i]]
		}
		res.Prefixes = out
	}
	f.log.Info("[fine] done", "metric", res.Metric, "tried", res.Tried, "found", res.Found)
	return res
}

func (f *fineSearch[C]) setup() {
	cat := f.p.Catalog
	f.slots = make([]fineSlot, len(f.p.Slots))
	for i, sq := range f.p.Slots {
		f.slots[i] = fineSlot{orig: i, sq: sq, weight: cat.SlotWeight(sq)}
	}
	// Biggest slots first; interchangeable slots end up adjacent.
	slices.SortStableFunc(f.slots, func(a, b fineSlot) int {
		if c := cmp.Compare(b.weight, a.weight); c != 0 {
			return c
		}
		if c := cmp.Compare(a.sq.Slot, b.sq.Slot); c != 0 {
			return c
		}
		return cmp.Compare(a.sq.Quality, b.sq.Quality)
	})

	n := len(f.slots)
	f.itemStats = make([][]stats.Stats, n)
	f.remainingStats = make([]stats.Stats, n+1)
	f.remainingWeight = make([]float64, n+1)
	f.remainingStats[n] = stats.Uniform(float64(InfusionStat * f.infusions))
	for i := n - 1; i >= 0; i-- {
		sl := f.slots[i]
		f.itemStats[i] = make([]stats.Stats, len(f.prefixes))
		var top stats.Stats
		for j, idx := range f.prefixes {
			s := cat.ItemStats(sl.sq, idx).Round()
			f.itemStats[i][j] = s
			top = top.Max(s)
		}
		f.remainingStats[i] = f.remainingStats[i+1].Add(top)
		f.remainingWeight[i] = f.remainingWeight[i+1] + sl.weight
	}

	f.cur = make([]int, n)
	f.curWeight = make([]float64, len(f.prefixes))
}

func (f *fineSearch[C]) evaluate(g *stats.Stats) float64 {
	f.tried++
	return character.Evaluate(f.p.Model, g, f.cfg)
}

// interchangeable reports whether sorted slots i-1 and i give identical stats for every
// prefix.
func (f *fineSearch[C]) interchangeable(i int) bool {
	a, b := f.slots[i-1], f.slots[i]
	return a.weight == b.weight &&
		a.sq.Quality == b.sq.Quality &&
		f.p.Catalog.Slots[a.sq.Slot] == f.p.Catalog.Slots[b.sq.Slot]
}

func (f *fineSearch[C]) inBand(i int) bool {
	if f.band == nil {
		return true
	}
	rest := f.remainingWeight[i]
	for j, w := range f.curWeight {
		if w > f.band[j][1] || w+rest < f.band[j][0] {
			return false
		}
	}
	return true
}

func (f *fineSearch[C]) goSlots(i int, g stats.Stats) {
	if !f.inBand(i) {
		return
	}
	if i == len(f.slots) {
		f.goInfusions(0, f.infusions, g)
		return
	}

	bound := g.Add(f.remainingStats[i])
	if f.evaluate(&bound) > f.best.Metric {
		return
	}

	sl := f.slots[i]
	first := 0
	if f.symmetry && i > 0 && f.interchangeable(i) {
		first = f.cur[i-1]
	}
	for j := first; j < len(f.prefixes); j++ {
		f.cur[i] = j
		f.curWeight[j] += sl.weight
		f.goSlots(i+1, g.Add(f.itemStats[i][j]))
		f.curWeight[j] -= sl.weight
	}
}

func (f *fineSearch[C]) goInfusions(idx, left int, g stats.Stats) {
	if idx == int(stats.NumStats) || left == 0 {
		m := f.evaluate(&g)
		if m < f.best.Metric {
			f.best = FineResult{
				Prefixes:  slices.Clone(f.cur),
				Infusions: f.curInf,
				Metric:    m,
				Found:     true,
			}
			f.log.Debug("[fine] improved", "metric", m, "tried", f.tried)
		}
		return
	}

	bound := g
	for st := idx; st < int(stats.NumStats); st++ {
		bound[st] += float64(InfusionStat * left)
	}
	if f.evaluate(&bound) > f.best.Metric {
		return
	}

	for n := 0; n <= left; n++ {
		f.curInf[idx] = n
		next := g
		next[idx] += float64(InfusionStat * n)
		f.goInfusions(idx+1, left-n, next)
	}
	f.curInf[idx] = 0
}
