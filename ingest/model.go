package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/rapidscorer/blobstore"
	"github.com/hupe1980/rapidscorer/forest"
)

// ErrMalformedModel is the umbrella for model files the engine cannot
// accept. The detailed reason is wrapped.
var ErrMalformedModel = errors.New("malformed model")

// jsonNode mirrors one node of the LightGBM dump. Leaves carry only
// leaf_value; internal nodes carry the split plus both children.
type jsonNode struct {
	SplitFeature *uint32   `json:"split_feature"`
	Threshold    *float64  `json:"threshold"`
	DecisionType string    `json:"decision_type"`
	DefaultLeft  *bool     `json:"default_left"`
	LeftChild    *jsonNode `json:"left_child"`
	RightChild   *jsonNode `json:"right_child"`
	LeafValue    *float64  `json:"leaf_value"`
}

type jsonTree struct {
	TreeStructure *jsonNode `json:"tree_structure"`
}

type jsonModel struct {
	TreeInfo []jsonTree `json:"tree_info"`
}

// Model parses a LightGBM-style JSON model dump into a finalized forest.
// Compressed streams are decompressed transparently.
func Model(r io.Reader) (*forest.Forest, error) {
	plain, err := decompress(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedModel, err)
	}

	var model jsonModel
	dec := json.NewDecoder(plain)
	if err := dec.Decode(&model); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedModel, err)
	}
	if len(model.TreeInfo) == 0 {
		return nil, fmt.Errorf("%w: no trees in tree_info", ErrMalformedModel)
	}

	trees := make([]*forest.Tree, 0, len(model.TreeInfo))
	for i, jt := range model.TreeInfo {
		if jt.TreeStructure == nil {
			return nil, fmt.Errorf("%w: tree %d has no tree_structure", ErrMalformedModel, i)
		}
		b := forest.NewTreeBuilder()
		root, err := buildNode(b, jt.TreeStructure)
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %w", ErrMalformedModel, i, err)
		}
		t, err := b.Build(root)
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %w", ErrMalformedModel, i, err)
		}
		trees = append(trees, t)
	}

	return forest.New(trees...)
}

// buildNode recursively lowers one JSON node into the tree arena.
func buildNode(b *forest.TreeBuilder, n *jsonNode) (forest.NodeID, error) {
	if n.SplitFeature == nil {
		// Leaf.
		if n.LeafValue == nil {
			return forest.InvalidNode, errors.New("leaf without leaf_value")
		}
		return b.Leaf(*n.LeafValue), nil
	}

	if n.Threshold == nil {
		return forest.InvalidNode, errors.New("internal node without threshold")
	}
	if n.DecisionType != "<=" {
		return forest.InvalidNode, fmt.Errorf("unsupported decision_type %q (want \"<=\")", n.DecisionType)
	}
	if n.DefaultLeft == nil || !*n.DefaultLeft {
		return forest.InvalidNode, errors.New("unsupported default direction (want default_left=true)")
	}
	if n.LeftChild == nil || n.RightChild == nil {
		return forest.InvalidNode, errors.New("internal node missing a child")
	}

	left, err := buildNode(b, n.LeftChild)
	if err != nil {
		return forest.InvalidNode, err
	}
	right, err := buildNode(b, n.RightChild)
	if err != nil {
		return forest.InvalidNode, err
	}
	return b.Internal(*n.SplitFeature, *n.Threshold, left, right), nil
}

// ModelFromFile parses a model from a local file.
func ModelFromFile(path string) (*forest.Forest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Model(f)
}

// ModelFromStore parses a model from a blob store.
func ModelFromStore(ctx context.Context, store blobstore.BlobStore, name string) (*forest.Forest, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Model(rc)
}
