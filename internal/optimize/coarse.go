package optimize

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"gear-optimizer/internal/vary"
)

// CoarseOptions tunes the coarse stage.
type CoarseOptions struct {
	// Rounds of local search. Round i moves at most Decay^i of the budget at once.
	Rounds int
	Decay  float64
	// Steps is the number of move sizes tried per prefix and round.
	Steps int
	// ExhaustRounds keeps shrinking the move size after a round finds no improvement.
	// By default local search stops at the first such round.
	ExhaustRounds bool
	// Seed drives every randomized variant. The same seed reproduces the same run.
	Seed uint64
	// Limit caps the restarts, hops or annealing iterations of the randomized variants.
	// Zero selects a per-variant default.
	Limit int
	// Temperature is the initial annealing temperature relative to the starting metric.
	Temperature float64
	Cooling     float64
	// Perturbations is the number of random moves made before each basin hop.
	Perturbations int
	Logger        *slog.Logger
}

func DefaultCoarseOptions() CoarseOptions {
	return CoarseOptions{
		Rounds:        10,
		Decay:         0.85,
		Steps:         100,
		Seed:          1,
		Temperature:   0.05,
		Cooling:       0.995,
		Perturbations: 3,
	}
}

// CoarseResult is the best point found by a coarse search.
type CoarseResult[C any] struct {
	Weights     PrefixWeights
	Config      C
	Metric      float64
	Evaluations int
}

// coarse holds the state shared by all coarse variants. C must be a value type: copies of
// a configuration are mutated independently.
type coarse[C any, PC interface {
	*C
	vary.Vary
}] struct {
	p     *Problem[C]
	opts  CoarseOptions
	log   *slog.Logger
	rng   *rand.Rand
	evals int

	best CoarseResult[C]
}

func newCoarse[C any, PC interface {
	*C
	vary.Vary
}](p *Problem[C], opts CoarseOptions) *coarse[C, PC] {
	if opts.Rounds <= 0 {
		opts.Rounds = 10
	}
	if opts.Steps <= 0 {
		opts.Steps = 100
	}
	if opts.Decay <= 0 || opts.Decay >= 1 {
		opts.Decay = 0.85
	}
	return &coarse[C, PC]{
		p:    p,
		opts: opts,
		log:  loggerOrDiscard(opts.Logger),
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		best: CoarseResult[C]{Metric: math.Inf(1)},
	}
}

func (s *coarse[C, PC]) eval(w PrefixWeights, cfg *C) float64 {
	s.evals++
	return s.p.Evaluate(w, cfg)
}

func (s *coarse[C, PC]) numPrefixes() int {
	return len(s.p.Catalog.Prefixes)
}

func (s *coarse[C, PC]) offer(w PrefixWeights, cfg C, m float64) bool {
	if m < s.best.Metric {
		s.best.Weights = w.Clone()
		s.best.Config = cfg
		s.best.Metric = m
		return true
	}
	return false
}

func (s *coarse[C, PC]) result(phase string) CoarseResult[C] {
	s.best.Evaluations = s.evals
	s.log.Info("["+phase+"] done", "metric", s.best.Metric, "evaluations", s.evals)
	return s.best
}

// ── Local search ────────────────────────────────────────────────────

// local greedily improves (w, cfg). Each round evaluates the whole neighborhood at the
// current move scale and takes the best strict improvement. A round without one ends the
// search unless ExhaustRounds is set.
func (s *coarse[C, PC]) local(w PrefixWeights, cfg C) (PrefixWeights, C, float64) {
	w = w.Clone()
	m := s.eval(w, &cfg)
	maxW := s.p.MaxWeight()
	cand := make(PrefixWeights, len(w))

	for round := range s.opts.Rounds {
		scale := math.Pow(s.opts.Decay, float64(round))
		bestW, bestCfg, bestM := w, cfg, m
		var move string

		for j := range w {
			for k := 1; k <= s.opts.Steps; k++ {
				c := scale * float64(k) / float64(s.opts.Steps)

				for i, x := range w {
					cand[i] = x * (1 - c)
				}
				cand[j] += maxW * c
				if nm := s.eval(cand, &cfg); nm < bestM {
					bestW, bestCfg, bestM = cand.Clone(), cfg, nm
					move = "scale"
				}

				copy(cand, w)
				DecreaseLinear(cand, maxW*c)
				cand[j] += maxW * c
				if nm := s.eval(cand, &cfg); nm < bestM {
					bestW, bestCfg, bestM = cand.Clone(), cfg, nm
					move = "linear"
				}
			}
		}

		fields := PC(&cfg)
		for f := range fields.NumFields() {
			cur := fields.GetField(f)
			for v := range fields.NumFieldValues(f) {
				if v == cur {
					continue
				}
				next := cfg
				PC(&next).SetField(f, v)
				if !s.p.Model.IsConfigValid(&next) {
					continue
				}
				if nm := s.eval(w, &next); nm < bestM {
					bestW, bestCfg, bestM = w, next, nm
					move = "config"
				}
			}
		}

		if move != "" {
			s.log.Debug("[local] improved", "round", round, "from", m, "to", bestM, "move", move)
		} else if !s.opts.ExhaustRounds {
			s.log.Debug("[local] stuck", "round", round, "metric", m)
			break
		}
		w, cfg, m = bestW, bestCfg, bestM
	}
	return w, cfg, m
}

// bestSeed puts the whole budget on each prefix in turn, combined with every single-field
// change of start, and returns the best such point.
func (s *coarse[C, PC]) bestSeed(start C) (PrefixWeights, C, float64) {
	n := s.numPrefixes()
	maxW := s.p.MaxWeight()
	var (
		bestW   PrefixWeights
		bestCfg = start
		bestM   = math.Inf(1)
	)
	for i := range n {
		w := make(PrefixWeights, n)
		w[i] = maxW
		if m := s.eval(w, &start); m < bestM {
			bestW, bestCfg, bestM = w, start, m
		}
		fields := PC(&start)
		for f := range fields.NumFields() {
			for v := range fields.NumFieldValues(f) {
				next := start
				PC(&next).SetField(f, v)
				if !s.p.Model.IsConfigValid(&next) {
					continue
				}
				if m := s.eval(w, &next); m < bestM {
					bestW, bestCfg, bestM = w, next, m
				}
			}
		}
	}
	return bestW, bestCfg, bestM
}

// ── Entry points ────────────────────────────────────────────────────

// Coarse runs a local search from every 2/3 + 1/3 split of the budget between two
// prefixes and returns the best result.
func Coarse[C any, PC interface {
	*C
	vary.Vary
}](p *Problem[C], start C, opts CoarseOptions) CoarseResult[C] {
	s := newCoarse[C, PC](p, opts)
	n := s.numPrefixes()
	maxW := p.MaxWeight()
	s.log.Info("[coarse] paired seeding", "prefixes", n, "max_weight", maxW)

	for i := range n {
		for j := range n {
			w := make(PrefixWeights, n)
			w[i] += maxW * 2 / 3
			w[j] += maxW / 3
			rw, rc, m := s.local(w, start)
			if s.offer(rw, rc, m) {
				s.log.Debug("[coarse] new best", "major", p.Catalog.Prefixes[i].Name,
					"minor", p.Catalog.Prefixes[j].Name, "metric", m)
			}
		}
	}
	return s.result("coarse")
}

// CoarseSingle runs one local search from the best single-prefix seed.
func CoarseSingle[C any, PC interface {
	*C
	vary.Vary
}](p *Problem[C], start C, opts CoarseOptions) CoarseResult[C] {
	s := newCoarse[C, PC](p, opts)
	w, cfg, m := s.bestSeed(start)
	s.log.Info("[single] seed", "metric", m)
	s.offer(s.local(w, cfg))
	return s.result("single")
}
