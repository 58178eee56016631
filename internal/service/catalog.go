package service

import (
	"context"
	"strings"
	"time"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
	"github.com/mousesolnat/saleplugin-sub000/pkg/pagination"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// AllCategories is the pseudo-category matching every product.
const AllCategories = "All"

// CatalogQuery describes one page of the shop listing.
type CatalogQuery struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}

// CategoryFacet is a category name with the number of products in it.
type CategoryFacet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CatalogPage is the result of a catalog query: one page of products plus
// the category facets for the full catalog.
type CatalogPage struct {
	pagination.Result[domain.Product]
	Facets   []CategoryFacet `json:"facets"`
	Category string          `json:"category"`
	Search   string          `json:"search"`
}

// CatalogService answers storefront listing and lookup queries.
type CatalogService struct {
	products *repository.Collection[domain.Product]
}

// NewCatalogService creates a catalog service over the product collection.
func NewCatalogService(products *repository.Collection[domain.Product]) *CatalogService {
	return &CatalogService{products: products}
}

// Query filters the catalog by category and search term and returns the
// requested page. Category filtering runs before the search filter. An
// out-of-range page is clamped into the valid range rather than rejected.
func (s *CatalogService) Query(q CatalogQuery) CatalogPage {
	if q.Category == "" {
		q.Category = AllCategories
	}
	if q.PerPage < 1 {
		q.PerPage = pagination.DefaultParams().PerPage
	}

	all := s.products.All()

	filtered := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if q.Category != AllCategories && p.Category != q.Category {
			continue
		}
		if !matchesSearch(p, q.Search) {
			continue
		}
		filtered = append(filtered, p)
	}

	totalPages := (len(filtered) + q.PerPage - 1) / q.PerPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * q.PerPage
	end := start + q.PerPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return CatalogPage{
		Result:   pagination.NewResult(filtered[start:end], len(filtered), pagination.Params{Page: page, PerPage: q.PerPage}),
		Facets:   s.facets(all),
		Category: q.Category,
		Search:   q.Search,
	}
}

// GetProduct returns a single product by ID.
func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	p, ok := s.products.Get(id)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return p, nil
}

// GetBySlug returns a single product by its URL slug.
func (s *CatalogService) GetBySlug(slug string) (domain.Product, error) {
	for _, p := range s.products.All() {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, apperrors.NotFound("product", slug)
}

// ReviewInput is a customer-submitted product review.
type ReviewInput struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment" validate:"required"`
}

// SubmitReview attaches a pending review to a product. It stays hidden from
// the storefront until an admin approves it.
func (s *CatalogService) SubmitReview(ctx context.Context, productID string, in ReviewInput) (domain.Review, error) {
	if err := validator.Validate(in); err != nil {
		return domain.Review{}, err
	}

	p, ok := s.products.Get(productID)
	if !ok {
		return domain.Review{}, apperrors.NotFound("product", productID)
	}

	review := domain.Review{
		ID:           domain.NewID("rev"),
		CustomerName: in.CustomerName,
		Rating:       in.Rating,
		Comment:      in.Comment,
		Status:       domain.ReviewStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	p.Reviews = append(p.Reviews, review)
	s.products.Update(ctx, p)
	return review, nil
}

// facets builds the category list in first-seen order, preceded by the
// "All" pseudo-category. Counts cover the full catalog, not the current
// filter, so the sidebar stays stable while searching.
func (s *CatalogService) facets(all []domain.Product) []CategoryFacet {
	facets := []CategoryFacet{{Name: AllCategories, Count: len(all)}}
	index := map[string]int{}
	for _, p := range all {
		if p.Category == "" {
			continue
		}
		if i, ok := index[p.Category]; ok {
			facets[i].Count++
			continue
		}
		facets = append(facets, CategoryFacet{Name: p.Category, Count: 1})
		index[p.Category] = len(facets) - 1
	}
	return facets
}

func matchesSearch(p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}
