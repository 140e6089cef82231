package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"gear-optimizer/internal/builds"
)

// BuildRun is one finished optimization with its timing.
type BuildRun struct {
	Result *builds.Result `json:"result"`
	TimeMs int64          `json:"timeMs"`
}

// BenchOutput is the JSON form of a run over one or more builds.
type BenchOutput struct {
	Date    string     `json:"date"`
	Runs    []BuildRun `json:"runs"`
	TotalMs int64      `json:"totalMs"`
}

func runBuild(b builds.Build, req builds.Request) (BuildRun, error) {
	start := time.Now()
	res, err := b.Run(req)
	if err != nil {
		return BuildRun{}, err
	}
	return BuildRun{Result: res, TimeMs: time.Since(start).Milliseconds()}, nil
}

// runBuilds optimizes every build concurrently. Each search is single-threaded and
// shares nothing with the others but the read-only catalog. Results keep the order of
// list.
func runBuilds(ctx context.Context, list []builds.Build, req builds.Request) (BenchOutput, error) {
	start := time.Now()
	out := BenchOutput{
		Date: start.UTC().Format(time.RFC3339),
		Runs: make([]BuildRun, len(list)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, b := range list {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := runBuild(b, req)
			if err != nil {
				return err
			}
			out.Runs[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	out.TotalMs = time.Since(start).Milliseconds()
	return out, nil
}
