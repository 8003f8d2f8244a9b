package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/rapidscorer/blobstore"
)

// ErrMalformedDocument is the umbrella for document lines the engine
// cannot accept.
var ErrMalformedDocument = errors.New("malformed document")

// Documents parses ranking-format document lines: a label, a qid token,
// then contiguous 1-based "id:value" feature pairs, which become dense
// 0-based vectors. If max > 0, parsing stops after max documents.
// Compressed streams are decompressed transparently.
func Documents(r io.Reader, max int) ([][]float64, error) {
	plain, err := decompress(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	var docs [][]float64
	sc := bufio.NewScanner(plain)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<24)
	for sc.Scan() && (max <= 0 || len(docs) < max) {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		doc, err := parseDocumentLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedDocument, len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// parseDocumentLine strips the label and qid tokens and collects the
// feature values, requiring the 1-based ids to be contiguous.
func parseDocumentLine(line string) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, errors.New("missing label or qid field")
	}

	var features []float64
	for _, tok := range fields[2:] {
		id, value, ok := strings.Cut(tok, ":")
		if !ok {
			continue
		}
		featureID, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", featureID, err)
		}
		if featureID != len(features)+1 {
			return nil, fmt.Errorf("feature ids must be contiguous and 1-based, got %d at position %d", featureID, len(features)+1)
		}
		features = append(features, v)
	}
	return features, nil
}

// Scores parses a score list, one float per line. If max > 0, parsing
// stops after max scores.
func Scores(r io.Reader, max int) ([]float64, error) {
	plain, err := decompress(r)
	if err != nil {
		return nil, err
	}

	var scores []float64
	sc := bufio.NewScanner(plain)
	for sc.Scan() && (max <= 0 || len(scores) < max) {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(scores)+1, err)
		}
		scores = append(scores, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

// DocumentsFromFile parses documents from a local file.
func DocumentsFromFile(path string, max int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Documents(f, max)
}

// ScoresFromFile parses scores from a local file.
func ScoresFromFile(path string, max int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Scores(f, max)
}

// DocumentsFromStore parses documents from a blob store.
func DocumentsFromStore(ctx context.Context, store blobstore.BlobStore, name string, max int) ([][]float64, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Documents(rc, max)
}
