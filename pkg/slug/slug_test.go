package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Privacy Policy", "privacy-policy"},
		{"extra whitespace", "  Terms   of  Service  ", "terms-of-service"},
		{"punctuation", "SEO Toolkit! (Pro)", "seo-toolkit-pro"},
		{"accented characters", "Éditeur Crème", "editeur-creme"},
		{"numbers preserved", "License Pack 2024", "license-pack-2024"},
		{"already slugged", "cookie-policy", "cookie-policy"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input))
		})
	}
}
