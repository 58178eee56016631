package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mousesolnat/saleplugin-sub000/internal/auth"
	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
	"github.com/mousesolnat/saleplugin-sub000/pkg/logger"
	"github.com/mousesolnat/saleplugin-sub000/pkg/slug"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name           string  `json:"name" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	Category       string  `json:"category" validate:"required"`
	Description    string  `json:"description"`
	Image          string  `json:"image"`
	SEOTitle       string  `json:"seo_title"`
	SEODescription string  `json:"seo_description"`
	DemoURL        string  `json:"demo_url"`
}

// PageInput carries the writable fields of a static page.
type PageInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// BlogPostInput carries the writable fields of a blog post.
type BlogPostInput struct {
	Title   string `json:"title" validate:"required"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"`
}

// CouponInput carries the writable fields of a coupon.
type CouponInput struct {
	Code      string     `json:"code" validate:"required"`
	Type      string     `json:"type" validate:"required,oneof=percentage fixed"`
	Value     float64    `json:"value" validate:"gt=0"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// TicketUpdateInput carries an admin's reply and status change for a ticket.
type TicketUpdateInput struct {
	Reply  string `json:"reply"`
	Status string `json:"status" validate:"required,oneof=open in-progress closed"`
}

// AdminService implements the back-office: content and commerce CRUD, review
// moderation, order lifecycle, settings, and the password gate. All writes
// go through the shared repositories, so storefront reads observe them
// immediately.
type AdminService struct {
	repos   *repository.Repositories
	jwt     *auth.JWTManager
	bus     *event.Bus
	session *SessionService
	logger  *slog.Logger
}

// NewAdminService creates an admin service over the shared repositories.
func NewAdminService(repos *repository.Repositories, jwt *auth.JWTManager, bus *event.Bus, session *SessionService, log *slog.Logger) *AdminService {
	return &AdminService{repos: repos, jwt: jwt, bus: bus, session: session, logger: log}
}

// Unlock checks the admin password from the store settings and returns a
// signed session token.
func (s *AdminService) Unlock(ctx context.Context, password string) (string, error) {
	settings := s.repos.Settings.Get()
	if password == "" || password != settings.AdminPassword {
		logger.FromContext(ctx).WarnContext(ctx, "admin unlock rejected")
		return "", apperrors.Unauthorized("invalid admin password")
	}

	token, err := s.jwt.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	logger.FromContext(ctx).InfoContext(ctx, "admin unlocked")
	return token, nil
}

// ValidateToken checks an admin session token.
func (s *AdminService) ValidateToken(token string) error {
	if _, err := s.jwt.ValidateToken(token); err != nil {
		return apperrors.Unauthorized("invalid admin session")
	}
	return nil
}

// --- Products ---

// CreateProduct validates the input and adds a product with a generated id
// and URL slug.
func (s *AdminService) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	if err := validator.Validate(in); err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	p := domain.Product{
		ID:             domain.NewID("prod"),
		Name:           in.Name,
		Slug:           slug.Generate(in.Name),
		Price:          domain.Round2(in.Price),
		Category:       in.Category,
		Description:    in.Description,
		Image:          in.Image,
		SEOTitle:       in.SEOTitle,
		SEODescription: in.SEODescription,
		DemoURL:        in.DemoURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repos.Products.Add(ctx, p); err != nil {
		return domain.Product{}, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "product created", slog.String("product_id", p.ID))
	return p, nil
}

// UpdateProduct overwrites a product's writable fields, regenerating the
// slug from the new name and preserving reviews and creation time.
func (s *AdminService) UpdateProduct(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	if err := validator.Validate(in); err != nil {
		return domain.Product{}, err
	}

	p, ok := s.repos.Products.Get(id)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}

	p.Name = in.Name
	p.Slug = slug.Generate(in.Name)
	p.Price = domain.Round2(in.Price)
	p.Category = in.Category
	p.Description = in.Description
	p.Image = in.Image
	p.SEOTitle = in.SEOTitle
	p.SEODescription = in.SEODescription
	p.DemoURL = in.DemoURL
	p.UpdatedAt = time.Now().UTC()

	s.repos.Products.Update(ctx, p)
	return p, nil
}

// DeleteProduct removes a product from the catalog. Wishlist, history, and
// order lines referencing it keep their snapshots untouched.
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if !s.repos.Products.Delete(ctx, id) {
		return apperrors.NotFound("product", id)
	}
	logger.FromContext(ctx).InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

// --- Reviews ---

// SetReviewStatus moderates a single review to approved or rejected.
func (s *AdminService) SetReviewStatus(ctx context.Context, productID, reviewID, status string) (domain.Product, error) {
	if status != domain.ReviewStatusApproved && status != domain.ReviewStatusRejected {
		return domain.Product{}, apperrors.InvalidInput(fmt.Sprintf("invalid review status: %q", status))
	}

	p, ok := s.repos.Products.Get(productID)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", productID)
	}

	for i := range p.Reviews {
		if p.Reviews[i].ID == reviewID {
			p.Reviews[i].Status = status
			s.repos.Products.Update(ctx, p)
			return p, nil
		}
	}
	return domain.Product{}, apperrors.NotFound("review", reviewID)
}

// DeleteReview removes a review from its owning product.
func (s *AdminService) DeleteReview(ctx context.Context, productID, reviewID string) (domain.Product, error) {
	p, ok := s.repos.Products.Get(productID)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", productID)
	}

	for i := range p.Reviews {
		if p.Reviews[i].ID == reviewID {
			p.Reviews = append(p.Reviews[:i], p.Reviews[i+1:]...)
			s.repos.Products.Update(ctx, p)
			return p, nil
		}
	}
	return domain.Product{}, apperrors.NotFound("review", reviewID)
}

// --- Pages and blog ---

// CreatePage adds a static page with a slug generated from its title.
func (s *AdminService) CreatePage(ctx context.Context, in PageInput) (domain.Page, error) {
	if err := validator.Validate(in); err != nil {
		return domain.Page{}, err
	}
	page := domain.Page{
		ID:      domain.NewID("page"),
		Title:   in.Title,
		Slug:    slug.Generate(in.Title),
		Content: in.Content,
	}
	if err := s.repos.Pages.Add(ctx, page); err != nil {
		return domain.Page{}, err
	}
	return page, nil
}

// UpdatePage overwrites a page's title and content, regenerating its slug.
func (s *AdminService) UpdatePage(ctx context.Context, id string, in PageInput) (domain.Page, error) {
	if err := validator.Validate(in); err != nil {
		return domain.Page{}, err
	}
	page, ok := s.repos.Pages.Get(id)
	if !ok {
		return domain.Page{}, apperrors.NotFound("page", id)
	}
	page.Title = in.Title
	page.Slug = slug.Generate(in.Title)
	page.Content = in.Content
	s.repos.Pages.Update(ctx, page)
	return page, nil
}

// DeletePage removes a static page.
func (s *AdminService) DeletePage(ctx context.Context, id string) error {
	if !s.repos.Pages.Delete(ctx, id) {
		return apperrors.NotFound("page", id)
	}
	return nil
}

// CreateBlogPost adds a blog post dated now.
func (s *AdminService) CreateBlogPost(ctx context.Context, in BlogPostInput) (domain.BlogPost, error) {
	if err := validator.Validate(in); err != nil {
		return domain.BlogPost{}, err
	}
	post := domain.BlogPost{
		ID:          domain.NewID("post"),
		Title:       in.Title,
		Slug:        slug.Generate(in.Title),
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Author:      in.Author,
		PublishedAt: time.Now().UTC(),
	}
	if err := s.repos.BlogPosts.Add(ctx, post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

// UpdateBlogPost overwrites a post's writable fields, keeping the original
// publication date.
func (s *AdminService) UpdateBlogPost(ctx context.Context, id string, in BlogPostInput) (domain.BlogPost, error) {
	if err := validator.Validate(in); err != nil {
		return domain.BlogPost{}, err
	}
	post, ok := s.repos.BlogPosts.Get(id)
	if !ok {
		return domain.BlogPost{}, apperrors.NotFound("blog post", id)
	}
	post.Title = in.Title
	post.Slug = slug.Generate(in.Title)
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	post.Author = in.Author
	s.repos.BlogPosts.Update(ctx, post)
	return post, nil
}

// DeleteBlogPost removes a blog post.
func (s *AdminService) DeleteBlogPost(ctx context.Context, id string) error {
	if !s.repos.BlogPosts.Delete(ctx, id) {
		return apperrors.NotFound("blog post", id)
	}
	return nil
}

// --- Coupons ---

// CreateCoupon adds a coupon. Codes are stored uppercase and must be unique.
func (s *AdminService) CreateCoupon(ctx context.Context, in CouponInput) (domain.Coupon, error) {
	if err := validator.Validate(in); err != nil {
		return domain.Coupon{}, err
	}
	if in.Type == domain.CouponTypePercentage && in.Value > 100 {
		return domain.Coupon{}, apperrors.InvalidInput("percentage value cannot exceed 100")
	}

	code := strings.ToUpper(strings.TrimSpace(in.Code))
	for _, c := range s.repos.Coupons.All() {
		if c.Code == code {
			return domain.Coupon{}, apperrors.AlreadyExists("coupon", "code", code)
		}
	}

	coupon := domain.Coupon{
		ID:        domain.NewID("coup"),
		Code:      code,
		Type:      in.Type,
		Value:     in.Value,
		Active:    in.Active,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repos.Coupons.Add(ctx, coupon); err != nil {
		return domain.Coupon{}, err
	}
	return coupon, nil
}

// DeleteCoupon removes a coupon. Orders that already used it keep their
// recorded discount.
func (s *AdminService) DeleteCoupon(ctx context.Context, id string) error {
	if !s.repos.Coupons.Delete(ctx, id) {
		return apperrors.NotFound("coupon", id)
	}
	return nil
}

// --- Customers ---

// DeleteCustomer removes an account. Orders and tickets reference customers
// by email and are intentionally left in place. If the deleted account is
// currently logged in, the session ends with it.
func (s *AdminService) DeleteCustomer(ctx context.Context, id string) error {
	if !s.repos.Customers.Delete(ctx, id) {
		return apperrors.NotFound("customer", id)
	}
	s.session.Drop(ctx, id)
	logger.FromContext(ctx).InfoContext(ctx, "customer deleted", slog.String("customer_id", id))
	return nil
}

// --- Orders ---

// SetOrderStatus moves an order through its lifecycle, rejecting
// transitions the state machine does not allow.
func (s *AdminService) SetOrderStatus(ctx context.Context, id, status string) (domain.Order, error) {
	order, ok := s.repos.Orders.Get(id)
	if !ok {
		return domain.Order{}, apperrors.NotFound("order", id)
	}
	if !order.CanTransitionTo(status) {
		return domain.Order{}, apperrors.Conflict(fmt.Sprintf("cannot transition order from %s to %s", order.Status, status))
	}

	order.Status = status
	s.repos.Orders.Update(ctx, order)
	logger.FromContext(ctx).InfoContext(ctx, "order status changed",
		slog.String("order_id", id),
		slog.String("status", status),
	)
	return order, nil
}

// ExportOrdersCSV renders all orders as CSV with a fixed header. Customer
// names are quoted; totals use two decimals.
func (s *AdminService) ExportOrdersCSV() string {
	var b strings.Builder
	b.WriteString("Order ID, Customer, Email, Date, Status, Total, Items\n")
	for _, o := range s.repos.Orders.All() {
		fmt.Fprintf(&b, "%s, %q, %s, %s, %s, %.2f, %d\n",
			o.ID,
			o.CustomerName,
			o.Email,
			o.Date.Format("2006-01-02"),
			o.Status,
			o.Total,
			o.ItemCount(),
		)
	}
	return b.String()
}

// --- Tickets ---

// UpdateTicket records an admin reply and/or status change.
func (s *AdminService) UpdateTicket(ctx context.Context, id string, in TicketUpdateInput) (domain.SupportTicket, error) {
	if err := validator.Validate(in); err != nil {
		return domain.SupportTicket{}, err
	}
	ticket, ok := s.repos.Tickets.Get(id)
	if !ok {
		return domain.SupportTicket{}, apperrors.NotFound("ticket", id)
	}

	if in.Reply != "" {
		ticket.Reply = in.Reply
	}
	ticket.Status = in.Status
	ticket.UpdatedAt = time.Now().UTC()
	s.repos.Tickets.Update(ctx, ticket)
	return ticket, nil
}

// --- Settings ---

// UpdateSettings replaces the store settings wholesale and notifies
// subscribers, so the rendered head tags follow immediately.
func (s *AdminService) UpdateSettings(ctx context.Context, settings domain.StoreSettings) domain.StoreSettings {
	// An empty admin password would lock the back-office open; keep the
	// previous one instead.
	if settings.AdminPassword == "" {
		settings.AdminPassword = s.repos.Settings.Get().AdminPassword
	}

	s.repos.Settings.Replace(ctx, settings)
	s.bus.Publish(ctx, event.TopicSettingsUpdated, settings)
	logger.FromContext(ctx).InfoContext(ctx, "settings updated")
	return settings
}

// RenameCategory renames a category across every product that carries it
// and through the settings' popular-category list and icon map.
func (s *AdminService) RenameCategory(ctx context.Context, from, to string) error {
	if from == "" || to == "" {
		return apperrors.InvalidInput("both category names are required")
	}
	if from == to {
		return nil
	}

	products := s.repos.Products.All()
	changed := false
	for i := range products {
		if products[i].Category == from {
			products[i].Category = to
			products[i].UpdatedAt = time.Now().UTC()
			changed = true
		}
	}
	if changed {
		s.repos.Products.Replace(ctx, products)
	}

	// Clone before editing: the stored value's slices and maps are shared
	// with concurrent readers until Replace swaps it out.
	settings := s.repos.Settings.Get().Clone()
	settingsChanged := false
	for i, c := range settings.PopularCategories {
		if c == from {
			settings.PopularCategories[i] = to
			settingsChanged = true
		}
	}
	if icon, ok := settings.CategoryIcons[from]; ok {
		delete(settings.CategoryIcons, from)
		settings.CategoryIcons[to] = icon
		settingsChanged = true
	}
	if settingsChanged {
		s.repos.Settings.Replace(ctx, settings)
		s.bus.Publish(ctx, event.TopicSettingsUpdated, settings)
	}

	logger.FromContext(ctx).InfoContext(ctx, "category renamed",
		slog.String("from", from),
		slog.String("to", to),
	)
	return nil
}
