// Package builds holds the calibrated character archetypes and runs the optimizer on them.
package builds

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"gear-optimizer/internal/character"
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/gear"
	"gear-optimizer/internal/optimize"
	"gear-optimizer/internal/stats"
	"gear-optimizer/internal/vary"
)

// Mode selects the coarse search strategy.
type Mode string

const (
	ModePaired Mode = "coarse"
	ModeSingle Mode = "single"
	ModeRandom Mode = "random"
	ModeBasin  Mode = "basin"
	ModeAnneal Mode = "anneal"
)

var modes = []Mode{ModePaired, ModeSingle, ModeRandom, ModeBasin, ModeAnneal}

func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", errors.Errorf("unknown mode %q", s)
}

// Request describes one optimizer run.
type Request struct {
	Mode    Mode
	Catalog *gear.Catalog
	Slots   []gear.SlotQuality
	Coarse  optimize.CoarseOptions
	Fine    optimize.FineOptions
	// SkipFine reports the coarse weights without assigning prefixes to slots.
	SkipFine bool
	// MinShare is the share of the coarse weight a prefix needs to be a fine candidate.
	MinShare float64
	Logger   *slog.Logger
}

type PrefixWeight struct {
	Prefix string  `json:"prefix"`
	Weight float64 `json:"weight"`
}

type SlotChoice struct {
	Slot   string `json:"slot"`
	Prefix string `json:"prefix"`
}

type StatValue struct {
	Stat  string  `json:"stat"`
	Value float64 `json:"value"`
}

// Result is the final build of a run.
type Result struct {
	Build       string         `json:"build"`
	Mode        Mode           `json:"mode"`
	Weights     []PrefixWeight `json:"weights"`
	Config      []Field        `json:"config"`
	Slots       []SlotChoice   `json:"slots,omitempty"`
	Infusions   []StatValue    `json:"infusions,omitempty"`
	GearStats   []StatValue    `json:"gear_stats"`
	TotalStats  []StatValue    `json:"total_stats"`
	Metric      float64        `json:"metric"`
	DPS         float64        `json:"dps"`
	HPS         float64        `json:"hps"`
	Might       float64        `json:"might"`
	Swiftness   float64        `json:"swiftness"`
	Evaluations int            `json:"evaluations"`
	Tried       int            `json:"tried"`
}

// Build is a registered archetype with its configuration type hidden.
type Build interface {
	Name() string
	Summary() string
	Run(req Request) (*Result, error)
}

// Config is the constraint on a build's configuration type.
type Config[C any] interface {
	*C
	vary.Vary
	Fields() []Field
}

// dpsReporter is implemented by models that can say how much damage they deal, as opposed
// to what they optimize.
type dpsReporter interface {
	DPS(s *stats.Stats, m *stats.Modifiers, c *combat.Second) float64
}

type build[C any, PC Config[C]] struct {
	name    string
	summary string
	model   func() character.Model[C]
	start   C
}

// newBuild registers a model constructor. Calibration runs on first use.
func newBuild[C any, PC Config[C]](name, summary string, start C, newModel func() character.Model[C]) Build {
	return &build[C, PC]{
		name:    name,
		summary: summary,
		model:   sync.OnceValue(newModel),
		start:   start,
	}
}

func (b *build[C, PC]) Name() string { return b.name }
func (b *build[C, PC]) Summary() string { return b.summary }

func (b *build[C, PC]) Run(req Request) (*Result, error) {
	if req.Catalog == nil {
		return nil, errors.New("no catalog")
	}
	if len(req.Slots) == 0 {
		return nil, errors.New("no gear slots")
	}
	log := req.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("build", b.name)

	m := b.model()
	p := optimize.NewProblem(m, req.Catalog, req.Slots)

	opts := req.Coarse
	opts.Logger = log
	var cr optimize.CoarseResult[C]
	switch req.Mode {
	case ModePaired:
		cr = optimize.Coarse[C, PC](p, b.start, opts)
	case ModeSingle:
		cr = optimize.CoarseSingle[C, PC](p, b.start, opts)
	case ModeRandom:
		cr = optimize.CoarseRandomized[C, PC](p, b.start, opts)
	case ModeBasin:
		cr = optimize.CoarseBasinHopping[C, PC](p, b.start, opts)
	case ModeAnneal:
		cr = optimize.CoarseAnnealing[C, PC](p, b.start, opts)
	default:
		return nil, errors.Errorf("unknown mode %q", req.Mode)
	}

	cfg := cr.Config
	res := &Result{
		Build:       b.name,
		Mode:        req.Mode,
		Config:      PC(&cfg).Fields(),
		Evaluations: cr.Evaluations,
	}
	for _, i := range cr.Weights.Ranked() {
		res.Weights = append(res.Weights, PrefixWeight{Prefix: req.Catalog.Prefixes[i].Name, Weight: cr.Weights[i]})
	}

	g := p.GearStats(cr.Weights)
	if !req.SkipFine {
		fo := req.Fine
		fo.Logger = log
		cands := cr.Weights.Winners(req.MinShare)
		fr := optimize.Fine(p, &cfg, cands, cr.Weights, fo)
		if !fr.Found {
			log.Warn("[fine] nothing within the target band, searching without it")
			fr = optimize.Fine(p, &cfg, cands, nil, fo)
		}
		if fr.Found {
			g = req.Catalog.GearStats(req.Slots, fr.Prefixes)
			for i, sq := range req.Slots {
				res.Slots = append(res.Slots, SlotChoice{Slot: sq.Slot.String(), Prefix: req.Catalog.Prefixes[fr.Prefixes[i]].Name})
			}
			for st, n := range fr.Infusions {
				if n == 0 {
					continue
				}
				res.Infusions = append(res.Infusions, StatValue{Stat: stats.Stat(st).String(), Value: float64(n)})
				g[st] += float64(optimize.InfusionStat * n)
			}
		}
		res.Tried = fr.Tried
	}

	s, mods, c := m.CalcStats(&g, &cfg)
	res.GearStats = statValues(g.Round())
	res.TotalStats = statValues(s.Round())
	res.Metric = m.Evaluate(&cfg, &s, &mods, &c)
	if d, ok := m.(dpsReporter); ok {
		res.DPS = d.DPS(&s, &mods, &c)
	}
	res.HPS = c.HealPerSecond(&s, &mods)
	res.Might = c.BoonUptimeRaw(&s, &mods, stats.Might)
	res.Swiftness = c.BoonUptimeRaw(&s, &mods, stats.Swiftness)
	return res, nil
}

func statValues(s stats.Stats) []StatValue {
	out := make([]StatValue, 0, len(s))
	for st, v := range s {
		out = append(out, StatValue{Stat: stats.Stat(st).String(), Value: v})
	}
	return out
}
