package service

import (
	"context"
	"fmt"
	"strings"

	"drinkmeter/events"
	"drinkmeter/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
	caches     *CacheSet
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, caches *CacheSet) UserService {
	return &userService{
		uowFactory: uowFactory,
		caches:     caches,
	}
}

// GetOrCreateUser retrieves an existing user or registers a new one
func (s *userService) GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	// User exists, return it
	if user != nil {
		s.caches.putUser(user)
		return user, nil
	}

	user, err = uow.UserRepository().Create(ctx, userID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:   userID,
		Username: username,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.caches.putUser(user)
	return user, nil
}

// GetUser returns a user snapshot, or nil when the user is unknown
func (s *userService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	if user, ok := s.caches.getUser(userID); ok {
		return user, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user != nil {
		s.caches.putUser(user)
	}
	return user, nil
}

// GetUserByUsername resolves a username to a user snapshot, or nil when
// unknown. A single leading @ is stripped before the lookup.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	clean := strings.TrimPrefix(username, "@")

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, clean)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}
