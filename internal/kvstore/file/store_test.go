package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "products", []byte(`[{"id":"p1"}]`)))

	data, err := s.Load(ctx, "products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(data))
}

func TestStore_LoadMissingKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "settings")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "wishlist", []byte(`["a"]`)))
	require.NoError(t, s.Save(ctx, "wishlist", []byte(`["b"]`)))

	data, err := s.Load(ctx, "wishlist")
	require.NoError(t, err)
	assert.JSONEq(t, `["b"]`, string(data))
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "current-session", []byte(`{}`)))
	require.NoError(t, s.Remove(ctx, "current-session"))
	require.NoError(t, s.Remove(ctx, "current-session"))

	_, err := s.Load(ctx, "current-session")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_RejectsInvalidKey(t *testing.T) {
	s := newTestStore(t)

	err := s.Save(context.Background(), "../escape", []byte(`{}`))
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "orders", []byte(`[]`)))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "pages", []byte(`[{"id":"pg1"}]`)))

	second, err := New(dir)
	require.NoError(t, err)

	data, err := second.Load(ctx, "pages")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"pg1"}]`, string(data))
}

func TestStore_Ping(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	assert.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, s.Ping(context.Background()))
}
