package service

import (
	"context"
	"fmt"

	"drinkmeter/models"
)

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

// TopByTotal returns the all-time leaderboard
func (s *statsService) TopByTotal(ctx context.Context, limit int) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().TopByTotal(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get all-time top: %w", err)
	}

	return users, nil
}

// TopByToday returns today's leaderboard
func (s *statsService) TopByToday(ctx context.Context, limit int) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().TopByToday(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get today top: %w", err)
	}

	return users, nil
}
