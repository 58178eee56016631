package repository

import (
	"time"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
)

var seedTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

// SeedProducts returns the catalog used on first run, before the back office
// has created anything.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "prod-seed-001",
			Name:        "SEO Toolkit Pro",
			Slug:        "seo-toolkit-pro",
			Price:       49.99,
			Category:    "Plugins",
			Description: "Keyword research, on-page audits and rank tracking in one plugin.",
			Image:       "https://cdn.licensehub.example.com/img/seo-toolkit-pro.png",
			DemoURL:     "https://demo.licensehub.example.com/seo-toolkit",
			Reviews: []domain.Review{
				{
					ID:           "rev-seed-001",
					CustomerName: "Dana R.",
					Rating:       5,
					Comment:      "Cut our audit time in half.",
					Status:       domain.ReviewStatusApproved,
					CreatedAt:    seedTime,
				},
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:          "prod-seed-002",
			Name:        "Form Builder Plus",
			Slug:        "form-builder-plus",
			Price:       29.99,
			Category:    "Plugins",
			Description: "Drag-and-drop forms with spam protection and webhooks.",
			Image:       "https://cdn.licensehub.example.com/img/form-builder-plus.png",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "prod-seed-003",
			Name:        "Cache Accelerator",
			Slug:        "cache-accelerator",
			Price:       39.0,
			Category:    "Plugins",
			Description: "Page caching, asset minification and lazy loading presets.",
			Image:       "https://cdn.licensehub.example.com/img/cache-accelerator.png",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "prod-seed-004",
			Name:        "Aurora Storefront Theme",
			Slug:        "aurora-storefront-theme",
			Price:       59.0,
			Category:    "Themes",
			Description: "A conversion-focused theme with dark mode and RTL support.",
			Image:       "https://cdn.licensehub.example.com/img/aurora-theme.png",
			DemoURL:     "https://demo.licensehub.example.com/aurora",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "prod-seed-005",
			Name:        "Minimal Portfolio Theme",
			Slug:        "minimal-portfolio-theme",
			Price:       24.5,
			Category:    "Themes",
			Description: "Typography-first portfolio layouts for freelancers.",
			Image:       "https://cdn.licensehub.example.com/img/minimal-portfolio.png",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "prod-seed-006",
			Name:        "The Indie Maker Handbook",
			Slug:        "the-indie-maker-handbook",
			Price:       19.0,
			Category:    "E-Books",
			Description: "Launching and pricing digital products, from idea to first sale.",
			Image:       "https://cdn.licensehub.example.com/img/indie-maker-handbook.png",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "prod-seed-007",
			Name:        "Email Marketing Playbook",
			Slug:        "email-marketing-playbook",
			Price:       15.0,
			Category:    "E-Books",
			Description: "Sequences, segmentation and deliverability for small stores.",
			Image:       "https://cdn.licensehub.example.com/img/email-playbook.png",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "prod-seed-008",
			Name:        "Icon Forge License",
			Slug:        "icon-forge-license",
			Price:       9.99,
			Category:    "Design Assets",
			Description: "4,000 vector icons with a commercial license.",
			Image:       "https://cdn.licensehub.example.com/img/icon-forge.png",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
	}
}

// SeedPages returns the four legal pages created on first run.
func SeedPages() []domain.Page {
	return []domain.Page{
		{
			ID:      "page-seed-privacy",
			Title:   "Privacy Policy",
			Slug:    "privacy-policy",
			Content: "We collect only the information needed to deliver your licenses and provide support.",
		},
		{
			ID:      "page-seed-terms",
			Title:   "Terms of Service",
			Slug:    "terms-of-service",
			Content: "Licenses are granted per the terms listed on each product page. Resale is prohibited.",
		},
		{
			ID:      "page-seed-dmca",
			Title:   "DMCA Policy",
			Slug:    "dmca-policy",
			Content: "To file an infringement notice, contact our support address with the disputed URLs.",
		},
		{
			ID:      "page-seed-cookies",
			Title:   "Cookie Policy",
			Slug:    "cookie-policy",
			Content: "We use a session cookie to keep you signed in and an analytics cookie when enabled.",
		},
	}
}

// SeedBlogPosts returns the initial blog content.
func SeedBlogPosts() []domain.BlogPost {
	return []domain.BlogPost{
		{
			ID:          "blog-seed-001",
			Title:       "Choosing the Right License for Your Project",
			Slug:        "choosing-the-right-license",
			Excerpt:     "Single-site, multi-site or lifetime: what actually matters.",
			Content:     "Most buyers over-purchase. Start from the number of production domains...",
			Author:      "LicenseHub Team",
			PublishedAt: seedTime,
		},
		{
			ID:          "blog-seed-002",
			Title:       "Five Plugins Every New Store Needs",
			Slug:        "five-plugins-every-new-store-needs",
			Excerpt:     "Caching, forms, SEO and two you probably forgot.",
			Content:     "Performance first: a caching layer pays for itself on day one...",
			Author:      "LicenseHub Team",
			PublishedAt: seedTime.AddDate(0, 0, 7),
		},
		{
			ID:          "blog-seed-003",
			Title:       "How We Review Marketplace Submissions",
			Slug:        "how-we-review-marketplace-submissions",
			Excerpt:     "Code quality, support history and licensing hygiene.",
			Content:     "Every submission is installed on a clean environment and profiled...",
			Author:      "LicenseHub Team",
			PublishedAt: seedTime.AddDate(0, 0, 14),
		},
	}
}
