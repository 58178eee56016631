package service

import (
	"context"
	"testing"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService_ToggleRoundTrip(t *testing.T) {
	repos, _ := newTestRepos(t)
	svc := NewWishlistService(repos.Wishlist)
	ctx := context.Background()
	p := testProduct("p1", "SEO Toolkit", "Plugins", 49.99)

	added := svc.Toggle(ctx, p)
	assert.True(t, added)
	assert.True(t, svc.Contains("p1"))

	added = svc.Toggle(ctx, p)
	assert.False(t, added)
	assert.False(t, svc.Contains("p1"))
	assert.Empty(t, svc.Items())
}

func TestWishlistService_TogglePreservesOrder(t *testing.T) {
	repos, _ := newTestRepos(t)
	svc := NewWishlistService(repos.Wishlist)
	ctx := context.Background()

	svc.Toggle(ctx, testProduct("p1", "A", "Plugins", 1))
	svc.Toggle(ctx, testProduct("p2", "B", "Plugins", 2))
	svc.Toggle(ctx, testProduct("p3", "C", "Plugins", 3))

	// Removing the middle entry keeps the remaining order.
	svc.Toggle(ctx, testProduct("p2", "B", "Plugins", 2))

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "p3", items[1].ID)
}

func TestHistoryService_MoveToFrontAndEvict(t *testing.T) {
	repos, _ := newTestRepos(t)
	svc := NewHistoryService(repos.History, newTestBus())
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		svc.Record(ctx, testProduct(id, "P "+id, "Plugins", 1))
	}

	items := svc.Items()
	require.Len(t, items, HistoryLimit)
	assert.Equal(t, "p4", items[0].ID)

	// Re-viewing an existing product moves it to the front without growing
	// the list.
	svc.Record(ctx, testProduct("p2", "P p2", "Plugins", 1))
	items = svc.Items()
	require.Len(t, items, HistoryLimit)
	assert.Equal(t, []string{"p2", "p4", "p3", "p1"}, historyIDs(items))

	// A fifth distinct product evicts the oldest.
	svc.Record(ctx, testProduct("p5", "P p5", "Plugins", 1))
	items = svc.Items()
	require.Len(t, items, HistoryLimit)
	assert.Equal(t, []string{"p5", "p2", "p4", "p3"}, historyIDs(items))
}

func TestHistoryService_PersistsAcrossReload(t *testing.T) {
	repos, store := newTestRepos(t)
	svc := NewHistoryService(repos.History, newTestBus())
	ctx := context.Background()

	svc.Record(ctx, testProduct("p1", "SEO Toolkit", "Plugins", 49.99))

	reloaded, _ := newTestReposOver(t, store)
	items := NewHistoryService(reloaded.History, newTestBus()).Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func historyIDs(items []domain.Product) []string {
	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return ids
}
