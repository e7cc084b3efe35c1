package service

import (
	"context"
	"fmt"

	"drinkmeter/events"
	"drinkmeter/models"
)

// groupService implements the GroupService interface
type groupService struct {
	uowFactory UnitOfWorkFactory
	caches     *CacheSet
}

// NewGroupService creates a new group service
func NewGroupService(uowFactory UnitOfWorkFactory, caches *CacheSet) GroupService {
	return &groupService{
		uowFactory: uowFactory,
		caches:     caches,
	}
}

// EnsureGroup registers a group if it is unknown
func (s *groupService) EnsureGroup(ctx context.Context, groupID int64, name string) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	group, err := uow.GroupRepository().GetByID(ctx, groupID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing group: %w", err)
	}

	if group != nil {
		s.caches.putGroup(group)
		return false, nil
	}

	group, err = uow.GroupRepository().Create(ctx, groupID, name)
	if err != nil {
		return false, fmt.Errorf("failed to create group: %w", err)
	}

	uow.EventBus().Publish(events.GroupCreatedEvent{
		GroupID:   groupID,
		GroupName: name,
	})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.caches.putGroup(group)
	return true, nil
}

// EnsureMembership registers a (group, user) membership idempotently
func (s *groupService) EnsureMembership(ctx context.Context, groupID, userID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.GroupRepository().EnsureMember(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to ensure membership: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GroupTop returns the group's leaderboard
func (s *groupService) GroupTop(ctx context.Context, groupID int64, limit int) ([]*models.GroupTopEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.GroupRepository().Top(ctx, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get group top: %w", err)
	}

	return entries, nil
}

// GroupInfo returns a group snapshot, or nil when the group is unknown
func (s *groupService) GroupInfo(ctx context.Context, groupID int64) (*models.Group, error) {
	if group, ok := s.caches.getGroup(groupID); ok {
		return group, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	group, err := uow.GroupRepository().GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if group != nil {
		s.caches.putGroup(group)
	}
	return group, nil
}
