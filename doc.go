// Package rapidscorer scores feature vectors against pre-trained
// gradient-boosted decision tree ensembles using the RapidScorer family
// of algorithms.
//
// Instead of traversing each tree node by node, every internal node's
// exit condition is precompiled into a compact leaf bitset (an epitome).
// Scoring a document collapses, per feature, the epitomes of all nodes
// whose split the document violates; the first set bit surviving in each
// tree's accumulator is the reached leaf, and the leaf weights sum to the
// document score.
//
// # Quick Start
//
//	f, _ := ingest.ModelFromFile("model.json")
//
//	sc, _ := rapidscorer.Merged(f).
//	    BlockWidth(64).
//	    Threads(8).
//	    ParallelFeatures().
//	    Build()
//
//	ex := rapidscorer.NewExecutor(sc, rapidscorer.WithThreads(8), rapidscorer.WithParallelDocuments())
//	scores, _ := ex.ScoreAll(documents)
//
// # Scorer Variants
//
// Four layouts trade memory locality against grouping:
//
//   - Merged — epitomes grouped by (feature, threshold) per feature;
//     the only variant supporting feature-parallel scoring.
//   - Linearized — all nodes flattened into parallel arrays; densest.
//   - EqNodes — unique splits deduplicated with their (tree, epitome)
//     pairs.
//   - SIMD — scores K documents per call, one vector lane each
//     (SIMD128X8 … SIMD512X64); rejected at build time on hosts without
//     the vector width.
//
// All variants return identical scores and are safe for concurrent use
// after construction.
package rapidscorer
