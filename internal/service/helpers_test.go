package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	"github.com/mousesolnat/saleplugin-sub000/internal/kvstore"
	kvfile "github.com/mousesolnat/saleplugin-sub000/internal/kvstore/file"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) kvstore.Store {
	t.Helper()
	store, err := kvfile.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func newTestRepos(t *testing.T) (*repository.Repositories, kvstore.Store) {
	t.Helper()
	store := newTestStore(t)
	return repository.New(context.Background(), store, testLogger()), store
}

func newTestReposOver(t *testing.T, store kvstore.Store) (*repository.Repositories, kvstore.Store) {
	t.Helper()
	return repository.New(context.Background(), store, testLogger()), store
}

func newTestBus() *event.Bus {
	return event.NewBus(testLogger())
}

func testProduct(id, name, category string, price float64) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		Slug:      "slug-" + id,
		Price:     price,
		Category:  category,
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}
