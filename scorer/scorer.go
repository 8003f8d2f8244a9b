// Package scorer defines the contract shared by the four rapidscorer
// variants: the configuration of the parallel axes and the Scorer
// interface the executor drives.
package scorer

import (
	"errors"
	"fmt"
)

// Config selects the thread count and the parallelism axes of a scorer.
// The axes are orthogonal: features (the loop inside one score call),
// documents (the batch loop, handled by the executor), and forest (the
// final leaf-weight reduction).
type Config struct {
	// NumberOfThreads sizes every parallel region. Must be >= 1.
	NumberOfThreads int
	// ParallelFeatures parallelizes the feature loop of a single score
	// call. Supported by the Merged scorer only.
	ParallelFeatures bool
	// ParallelDocuments marks the document axis. Scorers do not read it;
	// document-parallel batches are run by the executor's own option.
	ParallelDocuments bool
	// ParallelForest parallelizes the leaf-weight reduction over trees.
	ParallelForest bool
}

// Serial returns the single-threaded configuration.
func Serial() Config {
	return Config{NumberOfThreads: 1}
}

// ParallelFeature returns a configuration with the feature axis enabled.
func ParallelFeature(threads int) Config {
	return Config{NumberOfThreads: threads, ParallelFeatures: true}
}

// ParallelDocuments returns a configuration with the document axis enabled.
func ParallelDocuments(threads int) Config {
	return Config{NumberOfThreads: threads, ParallelDocuments: true}
}

// ParallelForest returns a configuration with the forest axis enabled.
func ParallelForest(threads int) Config {
	return Config{NumberOfThreads: threads, ParallelForest: true}
}

// ErrZeroThreads is returned when NumberOfThreads is not positive.
var ErrZeroThreads = errors.New("number_of_threads must be >= 1")

// ErrUnsupportedAxis indicates a parallelism flag the chosen scorer does
// not implement.
type ErrUnsupportedAxis struct {
	Scorer string
	Axis   string
}

func (e *ErrUnsupportedAxis) Error() string {
	return fmt.Sprintf("%s scorer does not support %s parallelism", e.Scorer, e.Axis)
}

// ErrBatchSize indicates a Score call with the wrong group size.
type ErrBatchSize struct {
	Want int
	Got  int
}

func (e *ErrBatchSize) Error() string {
	return fmt.Sprintf("score group must hold exactly %d documents, got %d", e.Want, e.Got)
}

// Validate checks the axis-independent parts of the configuration.
func (c Config) Validate() error {
	if c.NumberOfThreads < 1 {
		return ErrZeroThreads
	}
	return nil
}

// Scorer scores fixed-size groups of documents against a forest. Scorers
// are immutable after construction and safe for concurrent Score calls.
type Scorer interface {
	// BatchSize returns the number of documents consumed per Score call:
	// 1 for the scalar scorers, the SIMD lane count for the SIMD scorer.
	BatchSize() int

	// Score scores a group of exactly BatchSize documents and returns one
	// weight per document, in group order.
	Score(docs [][]float64) ([]float64, error)
}
