package blobstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"), "/uploads/", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func TestLocalStore_PutAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, url, err := store.Put(ctx, "Lecture 1.PDF", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.Equal(t, "/uploads/"+key, url)

	data, err := os.ReadFile(filepath.Join(store.Dir(), key))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(store.Dir(), key))
	assert.True(t, os.IsNotExist(err))

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStore_DeleteRejectsPaths(t *testing.T) {
	store := newTestStore(t)

	for _, key := range []string{"", "../secret", "a/b.txt", ".."} {
		assert.Error(t, store.Delete(context.Background(), key), "key %q", key)
	}
}

func TestLocalStore_PutHonorsCanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := store.Put(ctx, "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
