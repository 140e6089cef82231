package optimize

import (
	"math"

	"gear-optimizer/internal/vary"
)

const (
	defaultRestarts   = 20
	defaultHops       = 20
	defaultAnnealIter = 5000

	// configMoveOdds is the chance, out of 4, that a random move changes the configuration
	// rather than the weights.
	configMoveOdds = 1
	maxMoveFrac    = 0.5
	annealMoveFrac = 0.25
)

func limitOr(limit, def int) int {
	if limit > 0 {
		return limit
	}
	return def
}

// randomWeights spreads the budget over up to three random prefixes.
func (s *coarse[C, PC]) randomWeights() PrefixWeights {
	n := s.numPrefixes()
	w := make(PrefixWeights, n)
	k := 1 + s.rng.IntN(min(3, n))
	var total float64
	for _, i := range s.rng.Perm(n)[:k] {
		w[i] = s.rng.ExpFloat64()
		total += w[i]
	}
	scale := s.p.MaxWeight() / total
	for i := range w {
		w[i] *= scale
	}
	return w
}

// randomConfig draws every field uniformly, retrying a few times if the result is invalid.
func (s *coarse[C, PC]) randomConfig(start C) C {
	for range 10 {
		cfg := start
		fields := PC(&cfg)
		for f := range fields.NumFields() {
			if n := int(fields.NumFieldValues(f)); n > 0 {
				fields.SetField(f, uint16(s.rng.IntN(n)))
			}
		}
		if s.p.Model.IsConfigValid(&cfg) {
			return cfg
		}
	}
	return start
}

// randomMove changes one configuration field or shifts up to frac of the budget onto a
// random prefix.
func (s *coarse[C, PC]) randomMove(w PrefixWeights, cfg C, frac float64) (PrefixWeights, C) {
	w = w.Clone()
	fields := PC(&cfg)
	if fields.NumFields() > 0 && s.rng.IntN(4) < configMoveOdds {
		f := s.rng.IntN(fields.NumFields())
		next := cfg
		if n := int(fields.NumFieldValues(f)); n > 0 {
			PC(&next).SetField(f, uint16(s.rng.IntN(n)))
		}
		if s.p.Model.IsConfigValid(&next) {
			return w, next
		}
		return w, cfg
	}

	j := s.rng.IntN(len(w))
	c := s.rng.Float64() * frac
	amount := s.p.MaxWeight() * c
	if s.rng.IntN(2) == 0 {
		for i := range w {
			w[i] *= 1 - c
		}
	} else {
		DecreaseLinear(w, amount)
	}
	w[j] += amount
	return w, cfg
}

// CoarseRandomized runs a local search from Limit random starting points.
func CoarseRandomized[C any, PC interface {
	*C
	vary.Vary
}](p *Problem[C], start C, opts CoarseOptions) CoarseResult[C] {
	s := newCoarse[C, PC](p, opts)
	restarts := limitOr(opts.Limit, defaultRestarts)
	s.log.Info("[random] multistart", "restarts", restarts, "seed", opts.Seed)

	for i := range restarts {
		w, cfg, m := s.local(s.randomWeights(), s.randomConfig(start))
		if s.offer(w, cfg, m) {
			s.log.Debug("[random] new best", "restart", i, "metric", m)
		}
	}
	return s.result("random")
}

// CoarseBasinHopping polishes the best single-prefix seed, then repeatedly perturbs the
// best point found so far and searches again from there.
func CoarseBasinHopping[C any, PC interface {
	*C
	vary.Vary
}](p *Problem[C], start C, opts CoarseOptions) CoarseResult[C] {
	s := newCoarse[C, PC](p, opts)
	hops := limitOr(opts.Limit, defaultHops)
	moves := max(1, s.opts.Perturbations)

	w, cfg, _ := s.bestSeed(start)
	s.offer(s.local(w, cfg))
	s.log.Info("[basin] start", "hops", hops, "metric", s.best.Metric)

	for hop := range hops {
		w, cfg := s.best.Weights, s.best.Config
		for range moves {
			w, cfg = s.randomMove(w, cfg, maxMoveFrac)
		}
		w, cfg, m := s.local(w, cfg)
		if s.offer(w, cfg, m) {
			s.log.Debug("[basin] new best", "hop", hop, "metric", m)
		}
	}
	return s.result("basin")
}

// CoarseAnnealing walks randomly from the best single-prefix seed, accepting worse points
// with the Metropolis probability at a geometrically cooling temperature. The best point
// visited is polished with a local search.
func CoarseAnnealing[C any, PC interface {
	*C
	vary.Vary
}](p *Problem[C], start C, opts CoarseOptions) CoarseResult[C] {
	s := newCoarse[C, PC](p, opts)
	iters := limitOr(opts.Limit, defaultAnnealIter)
	cooling := s.opts.Cooling
	if cooling <= 0 || cooling >= 1 {
		cooling = 0.995
	}

	w, cfg, m := s.bestSeed(start)
	s.offer(w, cfg, m)
	temp := s.opts.Temperature * max(1, math.Abs(m))
	s.log.Info("[anneal] start", "iterations", iters, "temperature", temp, "metric", m)

	for it := range iters {
		nw, ncfg := s.randomMove(w, cfg, annealMoveFrac)
		nm := s.eval(nw, &ncfg)
		delta := nm - m
		if delta < 0 || (temp > 0 && s.rng.Float64() < math.Exp(-delta/temp)) {
			w, cfg, m = nw, ncfg, nm
			if s.offer(w, cfg, m) {
				s.log.Debug("[anneal] new best", "iteration", it, "metric", m, "temperature", temp)
			}
		}
		temp *= cooling
	}

	s.offer(s.local(s.best.Weights, s.best.Config))
	return s.result("anneal")
}
