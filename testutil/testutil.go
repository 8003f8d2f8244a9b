package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/rapidscorer/forest"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// Tree generates a random tree: every internal node splits on a random
// feature in [0, numFeatures) with a threshold in [0, 1); subtrees stop
// at maxDepth or earlier with probability 1/3. Leaf weights are in
// [-1, 1).
func (r *RNG) Tree(maxDepth, numFeatures int) *forest.Tree {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := forest.NewTreeBuilder()
	var build func(depth int) forest.NodeID
	build = func(depth int) forest.NodeID {
		if depth >= maxDepth || (depth > 1 && r.rand.Intn(3) == 0) {
			return b.Leaf(r.rand.Float64()*2 - 1)
		}
		left := build(depth + 1)
		right := build(depth + 1)
		return b.Internal(uint32(r.rand.Intn(numFeatures)), r.rand.Float64(), left, right)
	}

	left := build(1)
	right := build(1)
	root := b.Internal(uint32(r.rand.Intn(numFeatures)), r.rand.Float64(), left, right)
	t, err := b.Build(root)
	if err != nil {
		panic(err)
	}
	return t
}

// Forest generates a random forest of numTrees trees.
func (r *RNG) Forest(numTrees, maxDepth, numFeatures int) *forest.Forest {
	trees := make([]*forest.Tree, numTrees)
	for i := range trees {
		trees[i] = r.Tree(maxDepth, numFeatures)
	}
	f, err := forest.New(trees...)
	if err != nil {
		panic(err)
	}
	return f
}

// Documents generates n random documents with numFeatures values in
// [0, 1).
func (r *RNG) Documents(n, numFeatures int) [][]float64 {
	docs := make([][]float64, n)
	for i := range docs {
		docs[i] = make([]float64, numFeatures)
		r.FillUniform(docs[i])
	}
	return docs
}

// ReferenceScores computes the naive traversal score for every document.
func ReferenceScores(f *forest.Forest, docs [][]float64) []float64 {
	scores := make([]float64, len(docs))
	for i, doc := range docs {
		s, err := f.Score(doc)
		if err != nil {
			panic(err)
		}
		scores[i] = s
	}
	return scores
}
