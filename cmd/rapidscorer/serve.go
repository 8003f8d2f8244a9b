package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/rapidscorer"
)

type scoreRequest struct {
	Documents [][]float64 `json:"documents"`
}

type scoreResponse struct {
	Scores []float64 `json:"scores"`
}

// runServe exposes scoring over HTTP, with Prometheus metrics on a
// separate port.
func runServe(ctx context.Context, cfg Config) error {
	f, _, _, err := loadArtifacts(ctx, cfg.Model)
	if err != nil {
		return err
	}

	metrics := newPromCollector()

	buildStart := time.Now()
	sc, err := buildScorer(cfg.Scorer, f)
	metrics.RecordBuild(cfg.Scorer.Variant, time.Since(buildStart), err)
	if err != nil {
		return err
	}
	ex := rapidscorer.NewExecutor(sc,
		rapidscorer.WithThreads(cfg.Scorer.Threads),
		rapidscorer.WithParallelDocuments(),
		rapidscorer.WithMetricsCollector(metrics),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/score", func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		scores, err := ex.ScoreAll(req.Documents)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, rapidscorer.ErrShortDocument) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scoreResponse{Scores: scores})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Serve.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Serve.MetricsPort),
		Handler:      metricsMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("metrics server listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("scoring server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return metricsServer.Shutdown(shutdownCtx)
}
