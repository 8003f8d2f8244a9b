// Package rapidscorer provides variant-specific fluent builder APIs for
// constructing scorers over a finalized forest.
// Builders are immutable - each method returns a new builder with the
// updated configuration.
package rapidscorer

import (
	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/scorer"
	"github.com/hupe1980/rapidscorer/scorer/eqnodes"
	"github.com/hupe1980/rapidscorer/scorer/linearized"
	"github.com/hupe1980/rapidscorer/scorer/merged"
	"github.com/hupe1980/rapidscorer/scorer/simd"
)

// =============================================================================
// Merged Builder (Immutable)
// =============================================================================

// Merged creates a builder for the Merged scorer: epitomes grouped by
// (feature, threshold), one entry per unique split. The only variant
// supporting feature-parallel scoring.
//
// Example:
//
//	sc, err := rapidscorer.Merged(f).
//	    BlockWidth(64).
//	    Threads(8).
//	    ParallelFeatures().
//	    Build()
func Merged(f *forest.Forest) MergedBuilder {
	return MergedBuilder{f: f, width: 64, cfg: scorer.Serial()}
}

// MergedBuilder is an immutable fluent builder for Merged scorers.
type MergedBuilder struct {
	f     *forest.Forest
	width int
	cfg   scorer.Config
}

// BlockWidth sets the scalar block width in bits (8, 16, 32 or 64).
// Default: 64.
func (b MergedBuilder) BlockWidth(w int) MergedBuilder {
	b.width = w
	return b
}

// Threads sets the worker count for every enabled parallel axis.
func (b MergedBuilder) Threads(n int) MergedBuilder {
	b.cfg.NumberOfThreads = n
	return b
}

// ParallelFeatures parallelizes the feature loop of each score call.
func (b MergedBuilder) ParallelFeatures() MergedBuilder {
	b.cfg.ParallelFeatures = true
	return b
}

// ParallelForest parallelizes the leaf-weight reduction over trees.
func (b MergedBuilder) ParallelForest() MergedBuilder {
	b.cfg.ParallelForest = true
	return b
}

// Build creates the Merged scorer.
func (b MergedBuilder) Build() (scorer.Scorer, error) {
	sc, err := buildScalar(b.width, b.cfg, b.f, newMerged)
	return sc, translateError(err)
}

// MustBuild creates the scorer, panicking on error.
func (b MergedBuilder) MustBuild() scorer.Scorer {
	sc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return sc
}

// =============================================================================
// Linearized Builder (Immutable)
// =============================================================================

// Linearized creates a builder for the Linearized scorer: all nodes
// flattened into parallel arrays with a per-feature offset table.
func Linearized(f *forest.Forest) LinearizedBuilder {
	return LinearizedBuilder{f: f, width: 64, cfg: scorer.Serial()}
}

// LinearizedBuilder is an immutable fluent builder for Linearized scorers.
type LinearizedBuilder struct {
	f     *forest.Forest
	width int
	cfg   scorer.Config
}

// BlockWidth sets the scalar block width in bits (8, 16, 32 or 64).
// Default: 64.
func (b LinearizedBuilder) BlockWidth(w int) LinearizedBuilder {
	b.width = w
	return b
}

// Threads sets the worker count for every enabled parallel axis.
func (b LinearizedBuilder) Threads(n int) LinearizedBuilder {
	b.cfg.NumberOfThreads = n
	return b
}

// ParallelForest parallelizes the leaf-weight reduction over trees.
func (b LinearizedBuilder) ParallelForest() LinearizedBuilder {
	b.cfg.ParallelForest = true
	return b
}

// Build creates the Linearized scorer.
func (b LinearizedBuilder) Build() (scorer.Scorer, error) {
	sc, err := buildScalar(b.width, b.cfg, b.f, newLinearized)
	return sc, translateError(err)
}

// MustBuild creates the scorer, panicking on error.
func (b LinearizedBuilder) MustBuild() scorer.Scorer {
	sc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return sc
}

// =============================================================================
// EqNodes Builder (Immutable)
// =============================================================================

// EqNodes creates a builder for the EqNodes scorer: unique splits
// deduplicated with every (tree, epitome) pair sharing them.
func EqNodes(f *forest.Forest) EqNodesBuilder {
	return EqNodesBuilder{f: f, width: 64, cfg: scorer.Serial()}
}

// EqNodesBuilder is an immutable fluent builder for EqNodes scorers.
type EqNodesBuilder struct {
	f     *forest.Forest
	width int
	cfg   scorer.Config
}

// BlockWidth sets the scalar block width in bits (8, 16, 32 or 64).
// Default: 64.
func (b EqNodesBuilder) BlockWidth(w int) EqNodesBuilder {
	b.width = w
	return b
}

// Threads sets the worker count for every enabled parallel axis.
func (b EqNodesBuilder) Threads(n int) EqNodesBuilder {
	b.cfg.NumberOfThreads = n
	return b
}

// ParallelForest parallelizes the leaf-weight reduction over trees.
func (b EqNodesBuilder) ParallelForest() EqNodesBuilder {
	b.cfg.ParallelForest = true
	return b
}

// Build creates the EqNodes scorer.
func (b EqNodesBuilder) Build() (scorer.Scorer, error) {
	sc, err := buildScalar(b.width, b.cfg, b.f, newEqNodes)
	return sc, translateError(err)
}

// MustBuild creates the scorer, panicking on error.
func (b EqNodesBuilder) MustBuild() scorer.Scorer {
	sc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return sc
}

// =============================================================================
// SIMD Builder (Immutable)
// =============================================================================

// SIMD creates a builder for the SIMD scorer with the given vector
// configuration. Build fails on hosts whose CPU cannot execute the
// vector width.
//
// Example:
//
//	sc, err := rapidscorer.SIMD(f, simd.SIMD256X32).
//	    Threads(4).
//	    ParallelForest().
//	    Build()
func SIMD(f *forest.Forest, v simd.Variant) SIMDBuilder {
	return SIMDBuilder{f: f, variant: v, cfg: scorer.Serial()}
}

// SIMDBuilder is an immutable fluent builder for SIMD scorers.
type SIMDBuilder struct {
	f       *forest.Forest
	variant simd.Variant
	cfg     scorer.Config
}

// Threads sets the worker count for every enabled parallel axis.
func (b SIMDBuilder) Threads(n int) SIMDBuilder {
	b.cfg.NumberOfThreads = n
	return b
}

// ParallelForest parallelizes the leaf-weight reduction over trees.
func (b SIMDBuilder) ParallelForest() SIMDBuilder {
	b.cfg.ParallelForest = true
	return b
}

// Build creates the SIMD scorer.
func (b SIMDBuilder) Build() (scorer.Scorer, error) {
	sc, err := simd.NewVariant(b.cfg, b.f, b.variant)
	return sc, translateError(err)
}

// MustBuild creates the scorer, panicking on error.
func (b SIMDBuilder) MustBuild() scorer.Scorer {
	sc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return sc
}

// =============================================================================
// Block width dispatch
// =============================================================================

// ctor builds one scalar scorer for a fixed block type.
type ctor func(scorer.Config, *forest.Forest) (scorer.Scorer, error)

// scalarCtors holds the four monomorphic constructors of one variant.
type scalarCtors struct {
	w8, w16, w32, w64 ctor
}

// buildScalar monomorphizes a scalar scorer on the configured block width.
func buildScalar(width int, cfg scorer.Config, f *forest.Forest, c scalarCtors) (scorer.Scorer, error) {
	switch width {
	case 8:
		return c.w8(cfg, f)
	case 16:
		return c.w16(cfg, f)
	case 32:
		return c.w32(cfg, f)
	case 64:
		return c.w64(cfg, f)
	default:
		return nil, &ErrUnsupportedBlockWidth{Width: width}
	}
}

// asCtor adapts a generic constructor to the interface-returning shape.
func asCtor[S scorer.Scorer](newFn func(scorer.Config, *forest.Forest) (S, error)) ctor {
	return func(cfg scorer.Config, f *forest.Forest) (scorer.Scorer, error) {
		s, err := newFn(cfg, f)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

var (
	newMerged = scalarCtors{
		w8:  asCtor(merged.New[uint8]),
		w16: asCtor(merged.New[uint16]),
		w32: asCtor(merged.New[uint32]),
		w64: asCtor(merged.New[uint64]),
	}
	newLinearized = scalarCtors{
		w8:  asCtor(linearized.New[uint8]),
		w16: asCtor(linearized.New[uint16]),
		w32: asCtor(linearized.New[uint32]),
		w64: asCtor(linearized.New[uint64]),
	}
	newEqNodes = scalarCtors{
		w8:  asCtor(eqnodes.New[uint8]),
		w16: asCtor(eqnodes.New[uint16]),
		w32: asCtor(eqnodes.New[uint32]),
		w64: asCtor(eqnodes.New[uint64]),
	}
)
