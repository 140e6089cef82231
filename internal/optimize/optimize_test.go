package optimize

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gear-optimizer/internal/character"
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/gear"
	"gear-optimizer/internal/stats"
	"gear-optimizer/internal/vary"
)

// Every slot has the same budget and no base term, so item stats are exact integers.
const testCatalog = `{
	"reference_prefix": "Mighty",
	"slots": {
		"weapon_1h": {"points": {"exotic": 10, "ascended": 20}},
		"weapon_2h": {"points": {"exotic": 20, "ascended": 40}},
		"helm": {"points": {"exotic": 10, "ascended": 20}},
		"shoulders": {"points": {"exotic": 10, "ascended": 20}},
		"coat": {"points": {"exotic": 10, "ascended": 20}},
		"gloves": {"points": {"exotic": 10, "ascended": 20}},
		"leggings": {"points": {"exotic": 10, "ascended": 20}},
		"boots": {"points": {"exotic": 10, "ascended": 20}},
		"amulet": {"points": {"exotic": 10, "ascended": 20}},
		"ring1": {"points": {"exotic": 10, "ascended": 20}},
		"ring2": {"points": {"exotic": 10, "ascended": 20}},
		"accessory1": {"points": {"exotic": 10, "ascended": 20}},
		"accessory2": {"points": {"exotic": 10, "ascended": 20}},
		"backpack": {"points": {"exotic": 10, "ascended": 20}}
	},
	"prefixes": [
		{"name": "Mighty", "attributes": [{"attribute": "Power", "factor": 1}]},
		{"name": "Precise", "attributes": [{"attribute": "Precision", "factor": 1}]},
		{"name": "Vital", "attributes": [{"attribute": "Vitality", "factor": 1}]},
		{"name": "Mixed", "attributes": [{"attribute": "Power", "factor": 0.5}, {"attribute": "Precision", "factor": 0.5}]}
	]
}`

const (
	mighty = iota
	precise
	vital
	mixed
)

// testConfig has one field: a boost to power and precision of 5 per step. Step 2 is invalid.
type testConfig struct{ vary.Index }

func newTestConfig() testConfig {
	return testConfig{vary.Index{N: 3}}
}

// productModel maximizes power times precision, which never gets worse with more stats.
type productModel struct{}

func (productModel) CalcStats(g *stats.Stats, cfg *testConfig) (stats.Stats, stats.Modifiers, combat.Second) {
	s := stats.BaseStats.Add(*g)
	boost := 5 * float64(cfg.Value)
	s[stats.Power] += boost
	s[stats.Precision] += boost
	return s, stats.Modifiers{}, combat.Second{}
}

func (productModel) IsConfigValid(cfg *testConfig) bool { return cfg.Value != 2 }

func (productModel) Evaluate(_ *testConfig, s *stats.Stats, _ *stats.Modifiers, _ *combat.Second) float64 {
	return -s[stats.Power] * s[stats.Precision]
}

func ascended(slots ...gear.Slot) []gear.SlotQuality {
	out := make([]gear.SlotQuality, len(slots))
	for i, s := range slots {
		out[i] = gear.SlotQuality{Slot: s, Quality: gear.Ascended}
	}
	return out
}

func newTestProblem(t *testing.T, slots ...gear.Slot) *Problem[testConfig] {
	t.Helper()
	cat, err := gear.ParseCatalog(testCatalog)
	require.NoError(t, err)
	return NewProblem[testConfig](productModel{}, cat, ascended(slots...))
}

func testCoarseOptions() CoarseOptions {
	opts := DefaultCoarseOptions()
	opts.Steps = 20
	opts.Limit = 4
	return opts
}

func allPrefixes() []int { return []int{mighty, precise, vital, mixed} }

// balanced is the objective when power and precision each receive half of total.
func balanced(total, boost float64) float64 {
	x := stats.BaseStats[stats.Power] + boost + total/2
	return -x * x
}

// ── Prefix weights ──────────────────────────────────────────────────

func TestDecreaseLinear(t *testing.T) {
	tests := []struct {
		name   string
		w      PrefixWeights
		amount float64
		want   PrefixWeights
	}{
		{name: "equal share", w: PrefixWeights{10, 5, 0, 1}, amount: 3, want: PrefixWeights{9, 4, 0, 0}},
		{name: "clamps smallest", w: PrefixWeights{10, 5, 0, 1}, amount: 5, want: PrefixWeights{8, 3, 0, 0}},
		{name: "everything", w: PrefixWeights{10, 5}, amount: 100, want: PrefixWeights{0, 0}},
		{name: "nothing", w: PrefixWeights{3, 2}, amount: 0, want: PrefixWeights{3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			DecreaseLinear(tt.w, tt.amount)
			assert.InDeltaSlice(t, tt.want, tt.w, 1e-9)
		})
	}
}

func TestDecreaseLinearProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for range 500 {
		w := make(PrefixWeights, 1+rng.IntN(8))
		for i := range w {
			if rng.IntN(3) > 0 {
				w[i] = rng.Float64() * 100
			}
		}
		before := w.Sum()
		order := w.Clone()
		amount := rng.Float64() * 150

		DecreaseLinear(w, amount)

		assert.InDelta(t, before-min(amount, before), w.Sum(), 1e-6)
		for i := range w {
			assert.GreaterOrEqual(t, w[i], 0.0)
			for j := range w {
				if order[i] > order[j] {
					assert.GreaterOrEqual(t, w[i], w[j])
				}
			}
		}
	}
}

func TestPrefixWeightsRankedAndWinners(t *testing.T) {
	w := PrefixWeights{1, 0, 30, 9}
	assert.Equal(t, []int{2, 3, 0}, w.Ranked())
	assert.Equal(t, []int{2, 3}, w.Winners(0.2))
}

// ── Coarse ──────────────────────────────────────────────────────────

func TestProblemGearStats(t *testing.T) {
	p := newTestProblem(t, gear.Helm, gear.Coat)
	assert.InDelta(t, 40, p.MaxWeight(), 1e-12)

	g := p.GearStats(PrefixWeights{10, 0, 0, 30})
	assert.InDelta(t, 25, g[stats.Power], 1e-12)
	assert.InDelta(t, 15, g[stats.Precision], 1e-12)
}

func TestCoarseVariants(t *testing.T) {
	p := newTestProblem(t, gear.Helm, gear.Coat, gear.Ring1, gear.Ring2)
	want := balanced(p.MaxWeight(), 5)

	variants := map[string]func(*Problem[testConfig], testConfig, CoarseOptions) CoarseResult[testConfig]{
		"paired": Coarse[testConfig],
		"single": CoarseSingle[testConfig],
		"random": CoarseRandomized[testConfig],
		"basin":  CoarseBasinHopping[testConfig],
		"anneal": CoarseAnnealing[testConfig],
	}
	for name, run := range variants {
		t.Run(name, func(t *testing.T) {
			res := run(p, newTestConfig(), testCoarseOptions())
			assert.True(t, productModel{}.IsConfigValid(&res.Config))
			assert.LessOrEqual(t, res.Weights.Sum(), p.MaxWeight()+1e-6)
			assert.GreaterOrEqual(t, res.Metric, want-1e-6)
			assert.Equal(t, uint16(1), res.Config.Value)
			assert.Positive(t, res.Evaluations)
		})
	}
}

func TestCoarseSingleFindsOptimum(t *testing.T) {
	p := newTestProblem(t, gear.Helm, gear.Coat, gear.Ring1, gear.Ring2)
	res := CoarseSingle[testConfig](p, newTestConfig(), testCoarseOptions())
	assert.InDelta(t, balanced(p.MaxWeight(), 5), res.Metric, 1e-6)
}

func TestCoarseSeedDeterminism(t *testing.T) {
	p := newTestProblem(t, gear.Helm, gear.Coat, gear.Ring1)
	opts := testCoarseOptions()
	opts.Seed = 42

	a := CoarseRandomized[testConfig](p, newTestConfig(), opts)
	b := CoarseRandomized[testConfig](p, newTestConfig(), opts)
	assert.Equal(t, a, b)

	c := CoarseAnnealing[testConfig](p, newTestConfig(), opts)
	d := CoarseAnnealing[testConfig](p, newTestConfig(), opts)
	assert.Equal(t, c, d)
}

// flatModel scores every point the same, so no move is ever an improvement.
type flatModel struct{ productModel }

func (flatModel) Evaluate(*testConfig, *stats.Stats, *stats.Modifiers, *combat.Second) float64 {
	return 0
}

func TestLocalStopsWithoutImprovement(t *testing.T) {
	cat, err := gear.ParseCatalog(testCatalog)
	require.NoError(t, err)
	p := NewProblem[testConfig](flatModel{}, cat, ascended(gear.Helm, gear.Coat))
	w := PrefixWeights{p.MaxWeight(), 0, 0, 0}

	run := func(exhaust bool) int {
		opts := testCoarseOptions()
		opts.ExhaustRounds = exhaust
		s := newCoarse[testConfig](p, opts)
		_, _, m := s.local(w, newTestConfig())
		assert.Zero(t, m)
		return s.evals
	}

	stopped := run(false)
	exhausted := run(true)
	// one evaluation of the start point, then whole rounds
	assert.Equal(t, testCoarseOptions().Rounds*(stopped-1), exhausted-1)
	assert.Less(t, stopped, exhausted)
}

// ── Fine ────────────────────────────────────────────────────────────

func TestFineSingleSlotSinglePrefix(t *testing.T) {
	p := newTestProblem(t, gear.Amulet)
	cfg := newTestConfig()

	res := Fine(p, &cfg, []int{precise}, nil, DefaultFineOptions())
	require.True(t, res.Found)
	assert.Equal(t, []int{precise}, res.Prefixes)

	g := p.Catalog.ItemStats(p.Slots[0], precise).Round()
	assert.Equal(t, character.Evaluate[testConfig](productModel{}, &g, &cfg), res.Metric)
}

func TestFineNotWorseThanCoarse(t *testing.T) {
	p := newTestProblem(t, gear.Helm, gear.Coat, gear.Ring1, gear.Ring2, gear.Backpack)
	coarse := CoarseSingle[testConfig](p, newTestConfig(), testCoarseOptions())

	res := Fine(p, &coarse.Config, allPrefixes(), nil, DefaultFineOptions())
	require.True(t, res.Found)
	assert.LessOrEqual(t, res.Metric, coarse.Metric+1e-9)
	assert.Len(t, res.Prefixes, len(p.Slots))
}

func TestFineSymmetryBreakingKeepsOptimum(t *testing.T) {
	p := newTestProblem(t, gear.Ring1, gear.Ring2, gear.Accessory1, gear.Accessory2, gear.Weapon2H)
	cfg := newTestConfig()

	with := Fine(p, &cfg, allPrefixes(), nil, DefaultFineOptions())
	opts := DefaultFineOptions()
	opts.DisableSymmetryBreaking = true
	without := Fine(p, &cfg, allPrefixes(), nil, opts)

	require.True(t, with.Found)
	require.True(t, without.Found)
	assert.Equal(t, without.Metric, with.Metric)
}

func TestFineTargetBand(t *testing.T) {
	p := newTestProblem(t, gear.Helm, gear.Coat, gear.Ring1, gear.Ring2)
	cfg := newTestConfig()

	target := PrefixWeights{p.MaxWeight(), 0, 0, 0}
	res := Fine(p, &cfg, allPrefixes(), target, DefaultFineOptions())
	require.True(t, res.Found)
	assert.Equal(t, []int{mighty, mighty, mighty, mighty}, res.Prefixes)

	impossible := PrefixWeights{0, 0, 0, 0}
	res = Fine(p, &cfg, allPrefixes(), impossible, DefaultFineOptions())
	assert.False(t, res.Found)
	assert.Nil(t, res.Prefixes)
}

func TestFineInfusions(t *testing.T) {
	p := newTestProblem(t, gear.Helm, gear.Coat)
	cfg := newTestConfig()
	opts := DefaultFineOptions()
	opts.Infusions = 2

	res := Fine(p, &cfg, allPrefixes(), nil, opts)
	require.True(t, res.Found)

	total := 0
	for _, n := range res.Infusions {
		total += n
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, balanced(p.MaxWeight()+2*InfusionStat, 0), res.Metric)
}
