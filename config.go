package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"gear-optimizer/internal/builds"
	"gear-optimizer/internal/gear"
	"gear-optimizer/internal/optimize"
)

// envPrefix namespaces every environment override, e.g. GEAROPT_SEARCH_SEED.
const envPrefix = "GEAROPT_"

// RunConfig is everything a run needs besides the build itself. Values are layered:
// defaults, then the YAML file, then .env and the environment, then command-line flags.
type RunConfig struct {
	Build string `yaml:"build" env:"BUILD"`
	Mode  string `yaml:"mode" env:"MODE"`
	// Catalog is a path to a catalog JSON file. Empty uses the bundled one.
	Catalog string `yaml:"catalog" env:"CATALOG"`
	// Quality applies to the standard slot list when Slots is empty.
	Quality string `yaml:"quality" env:"QUALITY"`
	// Slots lists "slot:quality" entries, e.g. "ring1:ascended".
	Slots    []string `yaml:"slots" env:"SLOTS" envSeparator:","`
	LogLevel string   `yaml:"log_level" env:"LOG_LEVEL"`

	Search SearchConfig `yaml:"search" envPrefix:"SEARCH_"`
}

// SearchConfig tunes both optimizer stages. Adjust these to trade speed for quality.
type SearchConfig struct {
	// Rounds of coarse local search, each moving Decay times less than the previous.
	Rounds int     `yaml:"rounds" env:"ROUNDS"`
	Decay  float64 `yaml:"decay" env:"DECAY"`
	// Steps is the number of move sizes tried per prefix and round.
	Steps int    `yaml:"steps" env:"STEPS"`
	Seed  uint64 `yaml:"seed" env:"SEED"`
	// ExhaustRounds runs every coarse round even after one finds no improvement.
	ExhaustRounds bool `yaml:"exhaust_rounds" env:"EXHAUST_ROUNDS"`
	// Limit caps restarts, hops or annealing iterations. Zero picks the mode's default.
	Limit         int     `yaml:"limit" env:"LIMIT"`
	Temperature   float64 `yaml:"temperature" env:"TEMPERATURE"`
	Cooling       float64 `yaml:"cooling" env:"COOLING"`
	Perturbations int     `yaml:"perturbations" env:"PERTURBATIONS"`

	SkipFine  bool `yaml:"skip_fine" env:"SKIP_FINE"`
	Infusions int  `yaml:"infusions" env:"INFUSIONS"`
	// Margin is the half-width of the fine stage's band around the coarse weights.
	Margin float64 `yaml:"margin" env:"MARGIN"`
	// MinShare drops prefixes below this share of the coarse weight from the fine stage.
	MinShare                float64 `yaml:"min_share" env:"MIN_SHARE"`
	DisableSymmetryBreaking bool    `yaml:"disable_symmetry_breaking" env:"DISABLE_SYMMETRY_BREAKING"`
}

// DefaultRunConfig returns the settings used when nothing overrides them.
func DefaultRunConfig() RunConfig {
	co := optimize.DefaultCoarseOptions()
	fo := optimize.DefaultFineOptions()
	return RunConfig{
		Build:    "condi-virt",
		Mode:     string(builds.ModePaired),
		Quality:  gear.Ascended.String(),
		LogLevel: "info",
		Search: SearchConfig{
			Rounds:        co.Rounds,
			Decay:         co.Decay,
			Steps:         co.Steps,
			Seed:          co.Seed,
			Temperature:   co.Temperature,
			Cooling:       co.Cooling,
			Perturbations: co.Perturbations,
			Margin:        fo.Margin,
			MinShare:      0.02,
		},
	}
}

// LoadRunConfig reads path (a missing file yields defaults), then applies .env and
// GEAROPT_ environment overrides.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, errors.Wrapf(err, "reading config %s", path)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.Wrapf(err, "parsing config %s", path)
			}
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return cfg, errors.Wrap(err, "loading .env")
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, errors.Wrap(err, "parsing environment")
	}
	return cfg, nil
}

func (c *RunConfig) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// SlotList resolves the configured slots.
func (c *RunConfig) SlotList() ([]gear.SlotQuality, error) {
	if len(c.Slots) == 0 {
		q, ok := gear.ParseQuality(c.Quality)
		if !ok {
			return nil, errors.Errorf("unknown quality %q", c.Quality)
		}
		return gear.StandardSlots(q), nil
	}
	out := make([]gear.SlotQuality, 0, len(c.Slots))
	for _, s := range c.Slots {
		sq, ok := gear.ParseSlotQuality(s)
		if !ok {
			return nil, errors.Errorf("bad slot %q, want slot:quality", strings.TrimSpace(s))
		}
		out = append(out, sq)
	}
	return out, nil
}

func (c *RunConfig) loadCatalog() (*gear.Catalog, error) {
	if c.Catalog == "" {
		return gear.DefaultCatalog()
	}
	return gear.LoadCatalog(c.Catalog)
}

// Request turns the configuration into an optimizer request. Errors here are startup
// failures: a bad mode, slot or catalog.
func (c *RunConfig) Request(log *slog.Logger) (builds.Request, error) {
	mode, err := builds.ParseMode(c.Mode)
	if err != nil {
		return builds.Request{}, err
	}
	slots, err := c.SlotList()
	if err != nil {
		return builds.Request{}, err
	}
	cat, err := c.loadCatalog()
	if err != nil {
		return builds.Request{}, errors.WithStack(err)
	}

	s := &c.Search
	return builds.Request{
		Mode:    mode,
		Catalog: cat,
		Slots:   slots,
		Coarse: optimize.CoarseOptions{
			Rounds:        s.Rounds,
			Decay:         s.Decay,
			Steps:         s.Steps,
			ExhaustRounds: s.ExhaustRounds,
			Seed:          s.Seed,
			Limit:         s.Limit,
			Temperature:   s.Temperature,
			Cooling:       s.Cooling,
			Perturbations: s.Perturbations,
		},
		Fine: optimize.FineOptions{
			Infusions:               s.Infusions,
			Margin:                  s.Margin,
			DisableSymmetryBreaking: s.DisableSymmetryBreaking,
		},
		SkipFine: s.SkipFine,
		MinShare: s.MinShare,
		Logger:   log,
	}, nil
}
