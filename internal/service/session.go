package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	"github.com/mousesolnat/saleplugin-sub000/internal/kvstore"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
	"github.com/mousesolnat/saleplugin-sub000/pkg/logger"
)

type sessionMarker struct {
	CustomerID string `json:"customer_id"`
}

// SessionService manages customer registration, login, and the persisted
// current-session marker. The marker survives restarts; the logged-in
// customer is restored from it on startup.
type SessionService struct {
	mu        sync.RWMutex
	current   *domain.Customer
	customers *repository.Collection[domain.Customer]
	store     kvstore.Store
	bus       *event.Bus
	logger    *slog.Logger
}

// NewSessionService creates the session service and restores any persisted
// session marker. A marker pointing at a deleted customer is discarded.
func NewSessionService(ctx context.Context, customers *repository.Collection[domain.Customer], store kvstore.Store, bus *event.Bus, log *slog.Logger) *SessionService {
	s := &SessionService{
		customers: customers,
		store:     store,
		bus:       bus,
		logger:    log,
	}

	data, err := store.Load(ctx, repository.KeySession)
	if err != nil {
		return s
	}
	var marker sessionMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		log.WarnContext(ctx, "discarding malformed session marker", slog.String("error", err.Error()))
		return s
	}
	if c, ok := customers.Get(marker.CustomerID); ok {
		s.current = &c
		log.InfoContext(ctx, "session restored", slog.String("customer_id", c.ID))
	}
	return s
}

// Register creates a new customer account and logs it in.
func (s *SessionService) Register(ctx context.Context, name, email, password string) (domain.Customer, error) {
	if name == "" || email == "" || password == "" {
		return domain.Customer{}, apperrors.InvalidInput("name, email, and password are required")
	}
	for _, c := range s.customers.All() {
		if c.Email == email {
			return domain.Customer{}, apperrors.AlreadyExists("customer", "email", email)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("hash password: %w", err)
	}

	customer := domain.Customer{
		ID:           domain.NewID("cust"),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		JoinDate:     time.Now().UTC(),
	}
	if err := s.customers.Add(ctx, customer); err != nil {
		return domain.Customer{}, fmt.Errorf("add customer: %w", err)
	}

	s.setCurrent(ctx, customer)
	logger.FromContext(ctx).InfoContext(ctx, "customer registered", slog.String("customer_id", customer.ID))
	return customer.Public(), nil
}

// Login authenticates by exact email match and bcrypt password comparison.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Customer, error) {
	for _, c := range s.customers.All() {
		if c.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
			return domain.Customer{}, apperrors.Unauthorized("invalid email or password")
		}
		s.setCurrent(ctx, c)
		logger.FromContext(ctx).InfoContext(ctx, "customer logged in", slog.String("customer_id", c.ID))
		return c.Public(), nil
	}
	return domain.Customer{}, apperrors.Unauthorized("invalid email or password")
}

// Logout clears the current session and removes the persisted marker.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Remove(ctx, repository.KeySession); err != nil {
		s.logger.WarnContext(ctx, "remove session marker failed", slog.String("error", err.Error()))
	}
	s.bus.Publish(ctx, event.TopicSessionLoggedOut, nil)
}

// Current returns the logged-in customer, if any.
func (s *SessionService) Current() (domain.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Customer{}, false
	}
	return s.current.Public(), true
}

// Drop logs out the current session if it belongs to the given customer.
// Used when an account is deleted out from under an active session.
func (s *SessionService) Drop(ctx context.Context, customerID string) {
	s.mu.Lock()
	if s.current == nil || s.current.ID != customerID {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Remove(ctx, repository.KeySession); err != nil {
		s.logger.WarnContext(ctx, "remove session marker failed", slog.String("error", err.Error()))
	}
	s.bus.Publish(ctx, event.TopicSessionLoggedOut, nil)
}

func (s *SessionService) setCurrent(ctx context.Context, c domain.Customer) {
	s.mu.Lock()
	s.current = &c
	s.mu.Unlock()

	data, err := json.Marshal(sessionMarker{CustomerID: c.ID})
	if err == nil {
		err = s.store.Save(ctx, repository.KeySession, data)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "save session marker failed", slog.String("error", err.Error()))
	}
	s.bus.Publish(ctx, event.TopicSessionLoggedIn, c.Public())
}
