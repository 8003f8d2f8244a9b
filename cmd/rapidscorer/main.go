// Command rapidscorer scores document files against a gradient-boosted
// tree model, benchmarks the scorer variants, or serves scoring over
// HTTP.
//
// Usage:
//
//	rapidscorer score -config config.yaml
//	rapidscorer bench -config config.yaml
//	rapidscorer serve -config config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/rapidscorer"
	"github.com/hupe1980/rapidscorer/blobstore"
	blobminio "github.com/hupe1980/rapidscorer/blobstore/minio"
	blobs3 "github.com/hupe1980/rapidscorer/blobstore/s3"
	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/ingest"
	"github.com/hupe1980/rapidscorer/scorer"
	"github.com/hupe1980/rapidscorer/scorer/simd"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: rapidscorer <score|bench|serve> [-config path]")
		os.Exit(2)
	}
	cmd := os.Args[1]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file")
	fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Logging)

	ctx := context.Background()
	var run func(context.Context, Config) error
	switch cmd {
	case "score":
		run = runScore
	case "bench":
		run = runBench
	case "serve":
		run = runServe
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(2)
	}

	if err := run(ctx, cfg); err != nil {
		slog.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func setupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadArtifacts loads the forest, documents, and optional expected
// scores from the configured store.
func loadArtifacts(ctx context.Context, cfg ModelConfig) (*forest.Forest, [][]float64, []float64, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	f, err := ingest.ModelFromStore(ctx, store, cfg.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading model %s: %w", cfg.Path, err)
	}
	slog.Info("model loaded", "trees", f.NumTrees(), "total_leaves", f.TotalLeaves(), "features", f.NumFeatures())

	docs, err := ingest.DocumentsFromStore(ctx, store, cfg.Documents, cfg.MaxDocuments)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading documents %s: %w", cfg.Documents, err)
	}
	slog.Info("documents loaded", "count", len(docs))

	var expected []float64
	if cfg.Scores != "" {
		rc, err := store.Open(ctx, cfg.Scores)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading scores %s: %w", cfg.Scores, err)
		}
		expected, err = ingest.Scores(rc, cfg.MaxDocuments)
		rc.Close()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading scores %s: %w", cfg.Scores, err)
		}
	}

	return f, docs, expected, nil
}

// newStore builds the artifact source the model config names.
func newStore(ctx context.Context, cfg ModelConfig) (blobstore.BlobStore, error) {
	switch strings.ToLower(cfg.Store) {
	case "", "file", "local":
		return blobstore.NewLocalStore("."), nil
	case "s3":
		return blobs3.NewStoreFromDefaultConfig(ctx, cfg.Bucket, cfg.Prefix)
	case "minio":
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return blobminio.NewStore(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store %q (want file, s3 or minio)", cfg.Store)
	}
}

// buildScorer constructs the configured scorer variant over the forest.
func buildScorer(cfg ScorerConfig, f *forest.Forest) (scorer.Scorer, error) {
	switch strings.ToLower(cfg.Variant) {
	case "merged":
		b := rapidscorer.Merged(f).BlockWidth(cfg.BlockWidth).Threads(cfg.Threads)
		if cfg.ParallelFeatures {
			b = b.ParallelFeatures()
		}
		if cfg.ParallelForest {
			b = b.ParallelForest()
		}
		return b.Build()
	case "linearized":
		b := rapidscorer.Linearized(f).BlockWidth(cfg.BlockWidth).Threads(cfg.Threads)
		if cfg.ParallelForest {
			b = b.ParallelForest()
		}
		return b.Build()
	case "eqnodes":
		b := rapidscorer.EqNodes(f).BlockWidth(cfg.BlockWidth).Threads(cfg.Threads)
		if cfg.ParallelForest {
			b = b.ParallelForest()
		}
		return b.Build()
	case "simd":
		v, ok := simd.ParseVariant(cfg.SIMD)
		if !ok {
			return nil, fmt.Errorf("unknown SIMD configuration %q", cfg.SIMD)
		}
		b := rapidscorer.SIMD(f, v).Threads(cfg.Threads)
		if cfg.ParallelForest {
			b = b.ParallelForest()
		}
		return b.Build()
	default:
		return nil, fmt.Errorf("unknown scorer variant %q", cfg.Variant)
	}
}

// newExecutor wraps a scorer with the configured document axis.
func newExecutor(cfg ScorerConfig, sc scorer.Scorer) *rapidscorer.Executor {
	opts := []rapidscorer.Option{rapidscorer.WithThreads(cfg.Threads)}
	if cfg.ParallelDocuments {
		opts = append(opts, rapidscorer.WithParallelDocuments())
	}
	return rapidscorer.NewExecutor(sc, opts...)
}
