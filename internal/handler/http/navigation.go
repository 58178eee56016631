package http

import (
	"log/slog"
	"net/http"

	"github.com/mousesolnat/saleplugin-sub000/internal/assistant"
	"github.com/mousesolnat/saleplugin-sub000/internal/seo"
	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	"github.com/mousesolnat/saleplugin-sub000/internal/view"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httputil"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// NavigationHandler drives the view state machine, exposes the derived
// document head, and fronts the AI assistant.
type NavigationHandler struct {
	router    *view.Router
	seo       *seo.Synchronizer
	assistant *assistant.Client
	catalog   *service.CatalogService
	logger    *slog.Logger
}

// NewNavigationHandler creates a navigation handler.
func NewNavigationHandler(router *view.Router, seo *seo.Synchronizer, assistant *assistant.Client, catalog *service.CatalogService, logger *slog.Logger) *NavigationHandler {
	return &NavigationHandler{router: router, seo: seo, assistant: assistant, catalog: catalog, logger: logger}
}

// AssistantRequest is the JSON body for an assistant question.
type AssistantRequest struct {
	Message string `json:"message" validate:"required"`
}

// Navigate handles POST /api/v1/navigate
func (h *NavigationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var target view.Target
	if err := validator.DecodeAndValidate(r, &target); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	v, err := h.router.Navigate(r.Context(), target)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"view": v,
		"head": h.seo.Head(),
	}})
}

// CurrentView handles GET /api/v1/view
func (h *NavigationHandler) CurrentView(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"view": h.router.Current(),
		"head": h.seo.Head(),
	}})
}

// Head handles GET /api/v1/seo/head
func (h *NavigationHandler) Head(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.seo.Head()})
}

// Ask handles POST /api/v1/assistant
func (h *NavigationHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	products := h.catalog.Query(service.CatalogQuery{PerPage: 100}).Data
	reply, err := h.assistant.Recommend(r.Context(), req.Message, products)
	if err != nil {
		// A superseded reply is dropped silently; the newer request answers.
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"reply": reply}})
}
