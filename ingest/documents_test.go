package ingest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rapidscorer/blobstore"
	"github.com/hupe1980/rapidscorer/ingest"
)

func TestDocuments(t *testing.T) {
	input := "2 qid:10 1:0.25 2:0.5 3:0.75\n" +
		"0 qid:10 1:1 2:2 3:3\n" +
		"\n" +
		"1 qid:11 1:-0.5 2:0 3:1e3\n"

	docs, err := ingest.Documents(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, docs[0])
	assert.Equal(t, []float64{1, 2, 3}, docs[1])
	assert.Equal(t, []float64{-0.5, 0, 1000}, docs[2])
}

func TestDocumentsMax(t *testing.T) {
	input := "0 qid:1 1:1\n0 qid:1 1:2\n0 qid:1 1:3\n"
	docs, err := ingest.Documents(strings.NewReader(input), 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDocumentsRejectsFeatureGap(t *testing.T) {
	_, err := ingest.Documents(strings.NewReader("0 qid:1 1:0.5 3:0.5\n"), 0)
	assert.ErrorIs(t, err, ingest.ErrMalformedDocument)
}

func TestDocumentsRejectsZeroBasedIDs(t *testing.T) {
	_, err := ingest.Documents(strings.NewReader("0 qid:1 0:0.5 1:0.5\n"), 0)
	assert.ErrorIs(t, err, ingest.ErrMalformedDocument)
}

func TestDocumentsMissingQID(t *testing.T) {
	_, err := ingest.Documents(strings.NewReader("0\n"), 0)
	assert.ErrorIs(t, err, ingest.ErrMalformedDocument)
}

func TestScores(t *testing.T) {
	scores, err := ingest.Scores(strings.NewReader("1.5\n-2.25\n\n3\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.25, 3}, scores)
}

func TestScoresMax(t *testing.T) {
	scores, err := ingest.Scores(strings.NewReader("1\n2\n3\n"), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, scores)
}

func TestScoresRejectsGarbage(t *testing.T) {
	_, err := ingest.Scores(strings.NewReader("1.5\nnot-a-number\n"), 0)
	assert.Error(t, err)
}

func TestDocumentsFromStore(t *testing.T) {
	store := blobstore.NewMemoryStore()
	store.Put("docs.txt", []byte("0 qid:1 1:0.5\n"))

	docs, err := ingest.DocumentsFromStore(context.Background(), store, "docs.txt", 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []float64{0.5}, docs[0])
}

func TestModelFromStoreMissing(t *testing.T) {
	store := blobstore.NewMemoryStore()
	_, err := ingest.ModelFromStore(context.Background(), store, "missing.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
