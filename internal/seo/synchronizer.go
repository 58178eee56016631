// Package seo keeps the rendered document head in sync with the current
// view and the store settings. It never polls: it recomputes on the bus
// events that can change the head.
package seo

import (
	"context"
	"sync"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	"github.com/mousesolnat/saleplugin-sub000/internal/view"
)

// Head is the snapshot of document head state for the current view.
type Head struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	FaviconURL         string `json:"favicon_url,omitempty"`
	GoogleVerification string `json:"google_verification,omitempty"`
	BingVerification   string `json:"bing_verification,omitempty"`
	AnalyticsID        string `json:"analytics_id,omitempty"`
}

// Synchronizer derives the head from the current view and settings.
// Title precedence: per-view settings override, then the entity's own SEO
// fields (falling back to "{name} | {store}"), then the global default.
type Synchronizer struct {
	mu       sync.RWMutex
	head     Head
	current  view.View
	settings *repository.Singleton[domain.StoreSettings]

	// The analytics snippet is injected once per process. A later change
	// to the analytics id must not inject a second tag.
	analyticsID string
	injected    bool
}

// NewSynchronizer creates a synchronizer and subscribes it to view and
// settings changes.
func NewSynchronizer(settings *repository.Singleton[domain.StoreSettings], bus *event.Bus) *Synchronizer {
	s := &Synchronizer{
		current:  view.View{Name: view.Home},
		settings: settings,
	}
	s.recompute()

	bus.Subscribe(event.TopicViewChanged, func(_ context.Context, payload any) {
		v, ok := payload.(view.View)
		if !ok {
			return
		}
		s.mu.Lock()
		s.current = v
		s.mu.Unlock()
		s.recompute()
	})
	bus.Subscribe(event.TopicSettingsUpdated, func(context.Context, any) {
		s.recompute()
	})

	return s
}

// Head returns the current head snapshot.
func (s *Synchronizer) Head() Head {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.head
}

func (s *Synchronizer) recompute() {
	settings := s.settings.Get()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.injected && settings.AnalyticsID != "" {
		s.analyticsID = settings.AnalyticsID
		s.injected = true
	}

	head := Head{
		Title:              settings.SEOTitle,
		Description:        settings.SEODescription,
		FaviconURL:         settings.FaviconURL,
		GoogleVerification: settings.GoogleVerification,
		BingVerification:   settings.BingVerification,
		AnalyticsID:        s.analyticsID,
	}

	switch s.current.Name {
	case view.Shop:
		if settings.ShopSEOTitle != "" {
			head.Title = settings.ShopSEOTitle
		}
		if settings.ShopSEODescription != "" {
			head.Description = settings.ShopSEODescription
		}
	case view.Contact:
		if settings.ContactSEOTitle != "" {
			head.Title = settings.ContactSEOTitle
		}
		if settings.ContactSEODesc != "" {
			head.Description = settings.ContactSEODesc
		}
	case view.Product:
		if p := s.current.Product; p != nil {
			head.Title = p.Name + " | " + settings.StoreName
			if p.SEOTitle != "" {
				head.Title = p.SEOTitle
			}
			if p.SEODescription != "" {
				head.Description = p.SEODescription
			} else if p.Description != "" {
				head.Description = p.Description
			}
		}
	case view.Page:
		if p := s.current.Page; p != nil {
			head.Title = p.Title + " | " + settings.StoreName
		}
	}

	s.head = head
}
