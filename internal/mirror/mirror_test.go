package mirror

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "products-store")
	require.NoError(t, err)
	assert.False(t, ok, "absent key reads as empty, not an error")

	require.NoError(t, s.Set(ctx, "products-store", []byte(`[{"id":1}]`)))

	data, ok, err := s.Get(ctx, "products-store")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(data))

	require.NoError(t, s.Delete(ctx, "products-store"))
	_, ok, err = s.Get(ctx, "products-store")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	original := []byte(`[1,2,3]`)
	require.NoError(t, s.Set(ctx, "k", original))
	original[1] = 'x'

	data, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(data))

	data[0] = 'y'
	again, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(again))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	_, ok, err := s.Get(ctx, "orders-store")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "orders-store", []byte(`[{"id":1}]`)))
	// Overwrite replaces in place.
	require.NoError(t, s.Set(ctx, "orders-store", []byte(`[{"id":1},{"id":2}]`)))

	data, ok, err := s.Get(ctx, "orders-store")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(data))

	require.NoError(t, s.Delete(ctx, "orders-store"))
	_, ok, err = s.Get(ctx, "orders-store")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "categories-store", []byte(`[{"id":3}]`)))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	data, ok, err := reopened.Get(ctx, "categories-store")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":3}]`, string(data))
}
