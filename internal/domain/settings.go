package domain

import "encoding/json"

// StoreSettings is the single mutable configuration record for the
// storefront. Exactly one instance exists; writes replace the whole object.
//
// Loading merges a persisted payload over the compiled-in defaults so that
// fields introduced after the payload was written are backfilled while every
// persisted field is preserved.
type StoreSettings struct {
	// Identity
	StoreName    string `json:"store_name"`
	StoreURL     string `json:"store_url"`
	SupportEmail string `json:"support_email"`
	ContactPhone string `json:"contact_phone,omitempty"`

	// Global SEO plus optional per-view overrides.
	SEOTitle           string `json:"seo_title"`
	SEODescription     string `json:"seo_description"`
	ShopSEOTitle       string `json:"shop_seo_title,omitempty"`
	ShopSEODescription string `json:"shop_seo_description,omitempty"`
	ContactSEOTitle    string `json:"contact_seo_title,omitempty"`
	ContactSEODesc     string `json:"contact_seo_description,omitempty"`
	FaviconURL         string `json:"favicon_url,omitempty"`

	// Search engine verification and analytics integration.
	GoogleVerification string `json:"google_verification,omitempty"`
	BingVerification   string `json:"bing_verification,omitempty"`
	AnalyticsID        string `json:"analytics_id,omitempty"`

	// Social links keyed by network name.
	SocialLinks map[string]string `json:"social_links,omitempty"`

	// Theming
	PrimaryColor string `json:"primary_color"`
	HeroTitle    string `json:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle"`

	// Category presentation
	PopularCategories []string          `json:"popular_categories"`
	CategoryIcons     map[string]string `json:"category_icons,omitempty"`

	// Currency rates relative to the base currency.
	CurrencyRates map[string]float64 `json:"currency_rates"`

	// Back-office gate. Independent of the customer session.
	AdminPassword string `json:"admin_password"`
}

// Clone returns a deep copy. Mutating the copy's slices and maps never
// touches the original, so a clone can be edited while other goroutines
// still read the stored value.
func (s StoreSettings) Clone() StoreSettings {
	out := s
	if s.SocialLinks != nil {
		out.SocialLinks = make(map[string]string, len(s.SocialLinks))
		for k, v := range s.SocialLinks {
			out.SocialLinks[k] = v
		}
	}
	if s.PopularCategories != nil {
		out.PopularCategories = append([]string(nil), s.PopularCategories...)
	}
	if s.CategoryIcons != nil {
		out.CategoryIcons = make(map[string]string, len(s.CategoryIcons))
		for k, v := range s.CategoryIcons {
			out.CategoryIcons[k] = v
		}
	}
	if s.CurrencyRates != nil {
		out.CurrencyRates = make(map[string]float64, len(s.CurrencyRates))
		for k, v := range s.CurrencyRates {
			out.CurrencyRates[k] = v
		}
	}
	return out
}

// DefaultSettings returns the compiled-in settings used when no persisted
// payload exists, and as the merge base when one does.
func DefaultSettings() StoreSettings {
	return StoreSettings{
		StoreName:      "LicenseHub",
		StoreURL:       "https://licensehub.example.com",
		SupportEmail:   "support@licensehub.example.com",
		SEOTitle:       "LicenseHub - Premium Digital Licenses",
		SEODescription: "Plugins, themes and toolkits with instant license delivery.",
		PrimaryColor:   "#4f46e5",
		HeroTitle:      "Premium digital licenses, delivered instantly",
		HeroSubtitle:   "Plugins, themes and toolkits from independent makers.",
		PopularCategories: []string{
			"Plugins", "Themes", "E-Books",
		},
		CategoryIcons: map[string]string{
			"Plugins": "puzzle",
			"Themes":  "palette",
			"E-Books": "book",
		},
		CurrencyRates: map[string]float64{
			"USD": 1,
			"EUR": 0.92,
			"GBP": 0.79,
		},
		AdminPassword: "admin",
	}
}

// DecodeSettings unmarshals a persisted settings payload over the defaults.
// Unknown persisted fields are ignored; fields absent from the payload keep
// their default values.
func DecodeSettings(data []byte) (StoreSettings, error) {
	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return StoreSettings{}, err
	}
	return s, nil
}
