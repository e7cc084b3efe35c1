package service

import (
	"context"
	"fmt"

	"drinkmeter/models"
)

// MaxVodkaRemovedPerCall caps how many liters a single RemoveVodka call
// may take away.
const MaxVodkaRemovedPerCall = 10

// adminService implements the AdminService interface
type adminService struct {
	uowFactory UnitOfWorkFactory
	caches     *CacheSet
}

// NewAdminService creates a new admin service
func NewAdminService(uowFactory UnitOfWorkFactory, caches *CacheSet) AdminService {
	return &adminService{
		uowFactory: uowFactory,
		caches:     caches,
	}
}

// AddVodka adds liters to a user's accumulator, no clamp
func (s *adminService) AddVodka(ctx context.Context, userID int64, liters int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	if err := uow.UserRepository().AddVodka(ctx, userID, float64(liters)); err != nil {
		return nil, fmt.Errorf("failed to add vodka: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.caches.invalidateUser(userID)

	user.VodkaLiters += float64(liters)
	return user, nil
}

// RemoveVodka removes liters from a user's accumulator. The amount is
// clamped to MaxVodkaRemovedPerCall and the result floored at zero.
func (s *adminService) RemoveVodka(ctx context.Context, userID int64, liters int64) (*models.User, error) {
	if liters > MaxVodkaRemovedPerCall {
		liters = MaxVodkaRemovedPerCall
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
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	remaining := user.VodkaLiters - float64(liters)
	if remaining < 0 {
		remaining = 0
	}

	if err := uow.UserRepository().SetVodka(ctx, userID, remaining); err != nil {
		return nil, fmt.Errorf("failed to set vodka: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.caches.invalidateUser(userID)

	user.VodkaLiters = remaining
	return user, nil
}

// AddLevels shifts a user's level by delta with no clamping and no
// re-derivation from the drink total
func (s *adminService) AddLevels(ctx context.Context, userID int64, delta int) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	if err := uow.UserRepository().AddLevels(ctx, userID, delta); err != nil {
		return nil, fmt.Errorf("failed to add levels: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.caches.invalidateUser(userID)

	user.Level += delta
	return user, nil
}
