package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettings_MergesOverDefaults(t *testing.T) {
	// Payload written before shop_seo_title existed: the new field must fall
	// back to the default while every persisted field is preserved.
	payload := []byte(`{"store_name":"My Shop","admin_password":"s3cret","primary_color":"#000000"}`)

	s, err := DecodeSettings(payload)
	require.NoError(t, err)

	assert.Equal(t, "My Shop", s.StoreName)
	assert.Equal(t, "s3cret", s.AdminPassword)
	assert.Equal(t, "#000000", s.PrimaryColor)

	defaults := DefaultSettings()
	assert.Equal(t, defaults.SEOTitle, s.SEOTitle)
	assert.Equal(t, defaults.ShopSEOTitle, s.ShopSEOTitle)
	assert.Equal(t, defaults.PopularCategories, s.PopularCategories)
	assert.Equal(t, defaults.CurrencyRates, s.CurrencyRates)
}

func TestDecodeSettings_MalformedPayload(t *testing.T) {
	_, err := DecodeSettings([]byte(`{not json`))
	assert.Error(t, err)
}

func TestDecodeSettings_OverridesLists(t *testing.T) {
	payload := []byte(`{"popular_categories":["Tools"]}`)

	s, err := DecodeSettings(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tools"}, s.PopularCategories)
}

func TestDefaultSettings_AdminPassword(t *testing.T) {
	assert.Equal(t, "admin", DefaultSettings().AdminPassword)
}

func TestStoreSettings_CloneIsIndependent(t *testing.T) {
	original := DefaultSettings()
	original.SocialLinks = map[string]string{"x": "https://x.example.com/licensehub"}

	clone := original.Clone()
	clone.PopularCategories[0] = "Tools"
	clone.CategoryIcons["Tools"] = "wrench"
	delete(clone.CategoryIcons, "Plugins")
	clone.CurrencyRates["JPY"] = 150
	clone.SocialLinks["x"] = "https://x.example.com/other"

	assert.Equal(t, "Plugins", original.PopularCategories[0])
	assert.Contains(t, original.CategoryIcons, "Plugins")
	assert.NotContains(t, original.CategoryIcons, "Tools")
	assert.NotContains(t, original.CurrencyRates, "JPY")
	assert.Equal(t, "https://x.example.com/licensehub", original.SocialLinks["x"])
}
