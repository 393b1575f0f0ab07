package memory_test

import (
	"context"
	"testing"

	"github.com/mdcampos/wants-api/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()
	key := "wants/abc123.png"
	data := []byte("first payload")

	t.Run("Upload", func(t *testing.T) {
		url, err := backend.Upload(ctx, key, data, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "memory://"+key, url)
		assert.Equal(t, 1, backend.Len())
	})

	t.Run("Object", func(t *testing.T) {
		stored, mimeType, ok := backend.Object(key)
		require.True(t, ok)
		assert.Equal(t, data, stored)
		assert.Equal(t, "image/png", mimeType)

		_, _, ok = backend.Object("missing")
		assert.False(t, ok)
	})

	t.Run("Overwrite", func(t *testing.T) {
		second := []byte("second payload")
		url, err := backend.Upload(ctx, key, second, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "memory://"+key, url)
		assert.Equal(t, 1, backend.Len(), "same key must overwrite, not accumulate")

		stored, _, ok := backend.Object(key)
		require.True(t, ok)
		assert.Equal(t, second, stored)
	})

	t.Run("StoredBytesAreIsolated", func(t *testing.T) {
		payload := []byte("mutable payload")
		_, err := backend.Upload(ctx, "other", payload, "application/octet-stream")
		require.NoError(t, err)

		payload[0] = 'X'
		stored, _, ok := backend.Object("other")
		require.True(t, ok)
		assert.Equal(t, []byte("mutable payload"), stored)
	})
}
