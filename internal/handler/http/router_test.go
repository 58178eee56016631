package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mousesolnat/saleplugin-sub000/internal/assistant"
	"github.com/mousesolnat/saleplugin-sub000/internal/auth"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	kvfile "github.com/mousesolnat/saleplugin-sub000/internal/kvstore/file"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	"github.com/mousesolnat/saleplugin-sub000/internal/seo"
	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	"github.com/mousesolnat/saleplugin-sub000/internal/view"
	"github.com/mousesolnat/saleplugin-sub000/pkg/health"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httpclient"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httputil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := kvfile.New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	repos := repository.New(ctx, store, logger)
	bus := event.NewBus(logger)

	catalog := service.NewCatalogService(repos.Products)
	cart := service.NewCartService(bus)
	wishlist := service.NewWishlistService(repos.Wishlist)
	history := service.NewHistoryService(repos.History, bus)
	session := service.NewSessionService(ctx, repos.Customers, store, bus, logger)
	checkout := service.NewCheckoutService(repos.Orders, repos.Coupons, cart)
	tickets := service.NewTicketService(repos.Tickets)

	jwt := auth.NewJWTManager("test-secret", time.Hour)
	admin := service.NewAdminService(repos, jwt, bus, session, logger)

	router := view.NewRouter(catalog, history, repos.Pages, bus)
	synchronizer := seo.NewSynchronizer(repos.Settings, bus)

	cb := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("assistant-handler-test"),
		logger,
	)
	// No API key: the assistant degrades to its canned reply.
	assistantClient := assistant.New(assistant.Config{BaseURL: "http://127.0.0.1:0", Timeout: time.Second}, cb, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("store", store.Ping)

	handler := NewRouter(Handlers{
		Storefront: NewStorefrontHandler(catalog, history, repos.Pages, repos.BlogPosts, repos.Settings, logger),
		Cart:       NewCartHandler(cart, wishlist, catalog, logger),
		Session:    NewSessionHandler(session, checkout, tickets, logger),
		Checkout:   NewCheckoutHandler(checkout, tickets, logger),
		Navigation: NewNavigationHandler(router, synchronizer, assistantClient, catalog, logger),
		Admin:      NewAdminHandler(admin, repos, logger),
		Health:     healthHandler,
		AdminGate:  AdminAuth(admin, logger),
	}, nil, logger)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, token string) (*http.Response, httputil.Response) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var envelope httputil.Response
	if resp.Header.Get("Content-Type") == "application/json" {
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
	}
	return resp, envelope
}

func unlockAdmin(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/admin/unlock", map[string]string{"password": "admin"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]any)
	return data["token"].(string)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_ListProductsServesSeedCatalog(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/v1/products", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope.Data.(map[string]any)
	products := data["products"].([]any)
	assert.Len(t, products, len(repository.SeedProducts()))
	facets := data["facets"].([]any)
	first := facets[0].(map[string]any)
	assert.Equal(t, "All", first["name"])
}

func TestRouter_GetProductByIDAndSlug(t *testing.T) {
	srv := newTestServer(t)
	seedID := repository.SeedProducts()[0].ID
	seedSlug := repository.SeedProducts()[0].Slug

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/"+seedID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/"+seedSlug, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/ghost", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestRouter_CartFlow(t *testing.T) {
	srv := newTestServer(t)
	seedID := repository.SeedProducts()[0].ID

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", map[string]string{"product_id": seedID}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/v1/cart/items/"+seedID, map[string]int{"delta": 2}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/v1/cart", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, float64(3), data["item_count"])

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/cart/items/"+seedID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", map[string]string{"product_id": "ghost"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_AuthAndProfile(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", map[string]string{
		"name": "Dana", "email": "dana@example.com", "password": "hunter22",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	customer := envelope.Data.(map[string]any)
	assert.NotEmpty(t, customer["id"])
	assert.Nil(t, customer["password_hash"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/profile", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", map[string]string{
		"email": "dana@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_CheckoutFlow(t *testing.T) {
	srv := newTestServer(t)
	seedID := repository.SeedProducts()[0].ID

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout", map[string]string{
		"name": "Dana", "email": "dana@example.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "empty cart")

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", map[string]string{"product_id": seedID}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout", map[string]string{
		"name": "Dana", "email": "dana@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := envelope.Data.(map[string]any)
	assert.Equal(t, "completed", order["status"])

	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/v1/cart", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, float64(0), data["item_count"])
}

func TestRouter_NavigateUpdatesHead(t *testing.T) {
	srv := newTestServer(t)
	seed := repository.SeedProducts()[0]

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/navigate", map[string]string{
		"name": "product", "id": seed.ID,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]any)
	head := data["head"].(map[string]any)
	assert.Contains(t, head["title"], seed.Name)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/navigate", map[string]string{
		"name": "product", "id": "ghost",
	}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_AssistantFallsBackWithoutKey(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/assistant", map[string]string{"message": "help me pick"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, assistant.FallbackReply, data["reply"])
}

func TestRouter_AdminGate(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/orders", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/admin/unlock", map[string]string{"password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := unlockAdmin(t, srv)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/orders", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_AdminProductLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := unlockAdmin(t, srv)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/v1/admin/products", map[string]any{
		"name": "New Plugin", "price": 12.5, "category": "Plugins",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := envelope.Data.(map[string]any)
	id := created["id"].(string)
	assert.Equal(t, "new-plugin", created["slug"])

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/v1/admin/products/"+id, map[string]any{
		"name": "New Plugin Pro", "price": 15.0, "category": "Plugins",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The storefront sees the change immediately.
	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	product := envelope.Data.(map[string]any)
	assert.Equal(t, "New Plugin Pro", product["name"])

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/admin/products/"+id, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_AdminOrdersExport(t *testing.T) {
	srv := newTestServer(t)
	token := unlockAdmin(t, srv)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/admin/orders/export", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Order ID, Customer, Email, Date, Status, Total, Items")
}

func TestRouter_SettingsHidesAdminPassword(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/v1/settings", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings := envelope.Data.(map[string]any)
	pw, ok := settings["admin_password"]
	if ok {
		assert.Empty(t, pw)
	}
}

func TestRouter_RejectsNonJSONBody(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/auth/login", bytes.NewReader([]byte("email=dana")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}
