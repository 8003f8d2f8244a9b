package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"
)

// runScore scores the configured document set and writes one score per
// line to stdout, in input order. When an expected score list is
// configured, mismatches beyond the bench tolerance are reported.
func runScore(ctx context.Context, cfg Config) error {
	f, docs, expected, err := loadArtifacts(ctx, cfg.Model)
	if err != nil {
		return err
	}

	sc, err := buildScorer(cfg.Scorer, f)
	if err != nil {
		return err
	}
	ex := newExecutor(cfg.Scorer, sc)

	start := time.Now()
	scores, err := ex.ScoreAll(docs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	slog.Info("scoring finished",
		"documents", len(docs),
		"duration", elapsed,
		"docs_per_sec", float64(len(docs))/elapsed.Seconds(),
	)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, s := range scores {
		fmt.Fprintf(w, "%.10g\n", s)
	}

	if expected != nil {
		mismatches := countMismatches(scores, expected, cfg.Bench.Tolerance)
		if mismatches > 0 {
			return fmt.Errorf("%d of %d scores deviate from the expected list by more than %g",
				mismatches, len(scores), cfg.Bench.Tolerance)
		}
		slog.Info("scores verified", "documents", len(scores), "tolerance", cfg.Bench.Tolerance)
	}
	return nil
}

func countMismatches(got, want []float64, tolerance float64) int {
	n := len(got)
	if len(want) < n {
		n = len(want)
	}
	mismatches := 0
	for i := 0; i < n; i++ {
		if math.Abs(got[i]-want[i]) > tolerance {
			mismatches++
		}
	}
	return mismatches
}
