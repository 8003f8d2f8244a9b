package forest

import (
	"errors"
	"fmt"
)

// ErrEmptyForest is returned when a forest is created without trees.
var ErrEmptyForest = errors.New("forest must contain at least one tree")

// ErrShortDocument indicates a document vector that does not cover every
// feature the forest splits on.
type ErrShortDocument struct {
	Need int
	Got  int
}

func (e *ErrShortDocument) Error() string {
	return fmt.Sprintf("document too short: forest needs %d features, got %d", e.Need, e.Got)
}

// Forest is an ordered, immutable collection of trees. A document's score
// is the sum of the leaf weights it reaches, in tree order.
type Forest struct {
	trees       []*Tree
	totalLeaves int
	numFeatures int
}

// New assembles a forest from finalized trees. The slice order fixes the
// tree indices and the score reduction order.
func New(trees ...*Tree) (*Forest, error) {
	if len(trees) == 0 {
		return nil, ErrEmptyForest
	}
	f := &Forest{trees: trees}
	for _, t := range trees {
		f.totalLeaves += t.LeafCount()
		if n := int(t.maxFeature) + 1; n > f.numFeatures {
			f.numFeatures = n
		}
	}
	return f, nil
}

// NumTrees returns the number of trees.
func (f *Forest) NumTrees() int { return len(f.trees) }

// Tree returns the tree at the given index.
func (f *Forest) Tree(i int) *Tree { return f.trees[i] }

// TotalLeaves returns the leaf count summed over all trees.
func (f *Forest) TotalLeaves() int { return f.totalLeaves }

// NumFeatures returns the smallest document length that covers every
// split feature, i.e. the maximum feature index plus one.
func (f *Forest) NumFeatures() int { return f.numFeatures }

// CheckDocument verifies that a document vector covers every feature the
// forest splits on.
func (f *Forest) CheckDocument(features []float64) error {
	if len(features) < f.numFeatures {
		return &ErrShortDocument{Need: f.numFeatures, Got: len(features)}
	}
	return nil
}

// Score traverses every tree for the document and sums the reached leaf
// weights in tree order. This is the reference the mask-based scorers are
// validated against.
func (f *Forest) Score(features []float64) (float64, error) {
	if err := f.CheckDocument(features); err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range f.trees {
		sum += t.Score(features)
	}
	return sum, nil
}
