package blobstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rapidscorer/blobstore"
)

func TestMemoryStore(t *testing.T) {
	store := blobstore.NewMemoryStore()
	store.Put("model.json", []byte("payload"))

	data, err := blobstore.ReadAll(context.Background(), store, "model.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := blobstore.NewMemoryStore()
	_, err := store.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	store := blobstore.NewMemoryStore()
	payload := []byte("original")
	store.Put("blob", payload)
	payload[0] = 'X'

	data, err := blobstore.ReadAll(context.Background(), store, "blob")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), data)
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs.txt"), []byte("lines"), 0o644))

	store := blobstore.NewLocalStore(dir)
	data, err := blobstore.ReadAll(context.Background(), store, "docs.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("lines"), data)
}

func TestLocalStoreNotFound(t *testing.T) {
	store := blobstore.NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
