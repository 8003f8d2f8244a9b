package rapidscorer

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/rapidscorer/scorer"
)

// Executor drives a scorer over document batches. It owns the
// document-parallel axis: groups of BatchSize documents are dispatched
// across workers in contiguous ranges, each worker writing a disjoint
// slice of the output, so results come back in input order without
// locking.
type Executor struct {
	sc      scorer.Scorer
	opts    options
	logger  *Logger
	metrics MetricsCollector
}

// NewExecutor creates an Executor over the given scorer.
func NewExecutor(sc scorer.Scorer, optFns ...Option) *Executor {
	opts := options{
		threads: 1,
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.threads < 1 {
		opts.threads = 1
	}
	if opts.metrics == nil {
		opts.metrics = NoopMetricsCollector{}
	}
	e := &Executor{sc: sc, opts: opts, metrics: opts.metrics}
	if opts.logger != nil {
		e.logger = opts.logger
	} else {
		e.logger = NoopLogger()
	}
	return e
}

// Scorer returns the wrapped scorer.
func (e *Executor) Scorer() scorer.Scorer { return e.sc }

// ScoreOne scores a single document.
func (e *Executor) ScoreOne(doc []float64) (float64, error) {
	scores, err := e.ScoreAll([][]float64{doc})
	if err != nil {
		return 0, err
	}
	return scores[0], nil
}

// ScoreAll scores every document and returns one weight per document, in
// input order. A short final group is padded by repeating its last
// document; the padding lanes are discarded. The first per-document
// error aborts the run.
func (e *Executor) ScoreAll(docs [][]float64) ([]float64, error) {
	start := time.Now()
	scores, err := e.scoreAll(docs)
	err = translateError(err)
	e.metrics.RecordScoreBatch(len(docs), time.Since(start), err)
	e.logger.LogScoreBatch(context.Background(), len(docs), time.Since(start), err)
	return scores, err
}

func (e *Executor) scoreAll(docs [][]float64) ([]float64, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	k := e.sc.BatchSize()
	numGroups := (len(docs) + k - 1) / k
	out := make([]float64, len(docs))

	if !e.opts.parallelDocuments || e.opts.threads <= 1 || numGroups == 1 {
		if err := e.scoreGroups(docs, out, 0, numGroups); err != nil {
			return nil, err
		}
		return out, nil
	}

	workers := e.opts.threads
	if workers > numGroups {
		workers = numGroups
	}
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo, hi := scorer.Chunk(numGroups, workers, w)
		g.Go(func() error {
			return e.scoreGroups(docs, out, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// scoreGroups scores the document groups [lo, hi), writing results into
// the matching output range.
func (e *Executor) scoreGroups(docs [][]float64, out []float64, lo, hi int) error {
	k := e.sc.BatchSize()

	var padded [][]float64
	for g := lo; g < hi; g++ {
		first := g * k
		end := first + k
		group := docs[first:min(end, len(docs))]
		if len(group) < k {
			if padded == nil {
				padded = make([][]float64, 0, k)
			}
			padded = append(padded[:0], group...)
			for len(padded) < k {
				padded = append(padded, group[len(group)-1])
			}
			group = padded
		}

		scores, err := e.sc.Score(group)
		if err != nil {
			return err
		}
		copy(out[first:min(end, len(out))], scores)
	}
	return nil
}
