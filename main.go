//go:build !lambda

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"gear-optimizer/internal/builds"
)

const usage = `Usage: gear-optimizer [flags] [build]

Positional arguments:
  build   Registered build name (see -list); overrides the config file

Flags:
`

func main() {
	configPath := flag.String("config", "gearopt.yaml", "YAML run config (missing file uses defaults)")
	mode := flag.String("mode", "", "Coarse search: coarse, single, random, basin or anneal")
	fine := flag.Bool("fine", true, "Assign a prefix to every slot after the coarse search")
	limit := flag.Int("limit", 0, "Restarts, hops or annealing iterations (0 = mode default)")
	seed := flag.Uint64("seed", 0, "Random seed for the randomized modes")
	infusions := flag.Int("infusions", -1, "Number of +5 infusions to place")
	jsonOut := flag.Bool("json", false, "Output results as JSON")
	xlsxPath := flag.String("xlsx", "", "Also write the results to this .xlsx file")
	all := flag.Bool("all", false, "Optimize every registered build")
	list := flag.Bool("list", false, "List registered builds and exit")
	verbose := flag.Bool("verbose", false, "Log search progress to stderr")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, b := range builds.All() {
			fmt.Printf("%-20s %s\n", b.Name(), b.Summary())
		}
		return
	}

	cfg, err := LoadRunConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	// Flags only override what was given explicitly.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "fine":
			cfg.Search.SkipFine = !*fine
		case "limit":
			cfg.Search.Limit = *limit
		case "seed":
			cfg.Search.Seed = *seed
		case "infusions":
			cfg.Search.Infusions = *infusions
		case "verbose":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if flag.NArg() > 0 {
		cfg.Build = flag.Arg(0)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(log)

	req, err := cfg.Request(log)
	if err != nil {
		fatal(err)
	}

	var selected []builds.Build
	if *all {
		selected = builds.All()
	} else {
		b, err := builds.Lookup(cfg.Build)
		if err != nil {
			fatal(errors.Wrapf(err, "known builds: %s", strings.Join(builds.Names(), ", ")))
		}
		selected = []builds.Build{b}
	}

	log.Info("[start]", "builds", len(selected), "mode", req.Mode, "slots", len(req.Slots))
	out, err := runBuilds(context.Background(), selected, req)
	if err != nil {
		fatal(err)
	}

	if *jsonOut {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fatal(err)
		}
	} else {
		for _, r := range out.Runs {
			fmt.Println(FormatResult(r.Result))
		}
		if len(out.Runs) > 1 {
			printTable(os.Stdout, out)
		}
	}

	if *xlsxPath != "" {
		if err := ExportXLSX(*xlsxPath, out); err != nil {
			fatal(err)
		}
		log.Info("[export]", "path", *xlsxPath)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
