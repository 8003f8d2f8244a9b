package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/rapidscorer"
	"github.com/hupe1980/rapidscorer/forest"
	isimd "github.com/hupe1980/rapidscorer/internal/simd"
	"github.com/hupe1980/rapidscorer/scorer"
	"github.com/hupe1980/rapidscorer/scorer/simd"
)

// preset is one benchmark configuration: a scorer build plus the
// document axis.
type preset struct {
	name              string
	threads           int
	parallelDocuments bool
	build             func(*forest.Forest) (scorer.Scorer, error)
}

// runBench runs every preset over the document set, verifies against the
// expected scores when configured, and prints a timing table.
func runBench(ctx context.Context, cfg Config) error {
	f, docs, expected, err := loadArtifacts(ctx, cfg.Model)
	if err != nil {
		return err
	}
	if expected == nil {
		slog.Warn("no expected score list configured, results are timed but unverified")
	}

	var limiter *rate.Limiter
	if cfg.Bench.QPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Bench.QPS), 1)
	}

	presets := benchPresets(cfg.Bench)
	fmt.Printf("%-40s %12s %14s %10s\n", "preset", "duration", "docs/s", "status")
	for _, p := range presets {
		if err := runPreset(ctx, p, f, docs, expected, cfg.Bench, limiter); err != nil {
			return err
		}
	}
	return nil
}

func runPreset(ctx context.Context, p preset, f *forest.Forest, docs [][]float64, expected []float64, cfg BenchConfig, limiter *rate.Limiter) error {
	sc, err := p.build(f)
	if err != nil {
		slog.Warn("preset skipped", "preset", p.name, "reason", err)
		fmt.Printf("%-40s %12s %14s %10s\n", p.name, "-", "-", "skipped")
		return nil
	}

	opts := []rapidscorer.Option{rapidscorer.WithThreads(p.threads)}
	if p.parallelDocuments {
		opts = append(opts, rapidscorer.WithParallelDocuments())
	}
	ex := rapidscorer.NewExecutor(sc, opts...)

	reps := cfg.Repetitions
	if reps < 1 {
		reps = 1
	}

	var scores []float64
	start := time.Now()
	for rep := 0; rep < reps; rep++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}
		scores, err = ex.ScoreAll(docs)
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.name, err)
		}
	}
	elapsed := time.Since(start)

	status := "ok"
	if expected != nil {
		if mismatches := countMismatches(scores, expected, cfg.Tolerance); mismatches > 0 {
			status = fmt.Sprintf("%d mismatches", mismatches)
		}
	}
	docsPerSec := float64(len(docs)*reps) / elapsed.Seconds()
	fmt.Printf("%-40s %12s %14.0f %10s\n", p.name, elapsed.Round(time.Millisecond), docsPerSec, status)
	return nil
}

// benchPresets builds the benchmark matrix: every scalar variant at every
// block width serially, Merged across the parallel axes, and the SIMD
// variants the host supports.
func benchPresets(cfg BenchConfig) []preset {
	var presets []preset

	for _, width := range []int{8, 16, 32, 64} {
		presets = append(presets,
			preset{
				name:    fmt.Sprintf("merged/%d/serial", width),
				threads: 1,
				build: func(f *forest.Forest) (scorer.Scorer, error) {
					return rapidscorer.Merged(f).BlockWidth(width).Build()
				},
			},
			preset{
				name:    fmt.Sprintf("linearized/%d/serial", width),
				threads: 1,
				build: func(f *forest.Forest) (scorer.Scorer, error) {
					return rapidscorer.Linearized(f).BlockWidth(width).Build()
				},
			},
			preset{
				name:    fmt.Sprintf("eqnodes/%d/serial", width),
				threads: 1,
				build: func(f *forest.Forest) (scorer.Scorer, error) {
					return rapidscorer.EqNodes(f).BlockWidth(width).Build()
				},
			},
		)
	}

	for _, threads := range cfg.ThreadCounts {
		presets = append(presets,
			preset{
				name:    fmt.Sprintf("merged/64/parallel-features/%d", threads),
				threads: threads,
				build: func(f *forest.Forest) (scorer.Scorer, error) {
					return rapidscorer.Merged(f).Threads(threads).ParallelFeatures().Build()
				},
			},
			preset{
				name:              fmt.Sprintf("merged/64/parallel-documents/%d", threads),
				threads:           threads,
				parallelDocuments: true,
				build: func(f *forest.Forest) (scorer.Scorer, error) {
					return rapidscorer.Merged(f).Threads(threads).Build()
				},
			},
			preset{
				name:    fmt.Sprintf("merged/64/parallel-forest/%d", threads),
				threads: threads,
				build: func(f *forest.Forest) (scorer.Scorer, error) {
					return rapidscorer.Merged(f).Threads(threads).ParallelForest().Build()
				},
			},
		)
	}

	for _, v := range simd.Variants {
		if !isimd.Supported(v.VectorBits) {
			continue
		}
		presets = append(presets, preset{
			name:    fmt.Sprintf("simd/%s/serial", v),
			threads: 1,
			build: func(f *forest.Forest) (scorer.Scorer, error) {
				return rapidscorer.SIMD(f, v).Build()
			},
		})
	}

	return presets
}
