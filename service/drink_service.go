package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"drinkmeter/config"
	"drinkmeter/events"
	"drinkmeter/models"
)

// drinkService implements the DrinkService interface
type drinkService struct {
	uowFactory UnitOfWorkFactory
	caches     *CacheSet
	cfg        *config.Config
}

// NewDrinkService creates a new drink service
func NewDrinkService(uowFactory UnitOfWorkFactory, caches *CacheSet, cfg *config.Config) DrinkService {
	return &drinkService{
		uowFactory: uowFactory,
		caches:     caches,
		cfg:        cfg,
	}
}

// CheckCooldown reports whether the user may drink now. The answer comes
// straight from storage, never from the snapshot cache.
func (s *drinkService) CheckCooldown(ctx context.Context, userID int64) (bool, int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil || user.LastDrinkTime == nil {
		return true, 0, nil
	}

	window := time.Duration(s.cfg.CooldownSeconds) * time.Second
	elapsed := time.Since(*user.LastDrinkTime)
	if elapsed >= window {
		return true, 0, nil
	}

	// Whole minutes remaining, truncated toward zero.
	minutesLeft := int((window - elapsed).Seconds()) / 60
	return false, minutesLeft, nil
}

// TakeDrink records one drink. Counter increments, the random pour, the
// level re-derivation and (when groupID is set) both group counters all
// commit in a single transaction.
func (s *drinkService) TakeDrink(ctx context.Context, userID int64, groupID *int64) (*models.DrinkResult, error) {
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
		// Unknown drinker: nothing to update, nothing poured.
		return &models.DrinkResult{}, nil
	}

	now := time.Now().UTC()

	// Reset the daily counter on the first drink of a new calendar day.
	todayDrinks := user.TodayDrinks
	if user.LastDrinkDate != nil && !sameCalendarDay(*user.LastDrinkDate, now) {
		todayDrinks = 0
	}

	poured := rand.Int63n(s.cfg.MaxPourLiters + 1)

	totalDrinks := user.TotalDrinks + 1
	todayDrinks++
	vodkaLiters := user.VodkaLiters + float64(poured)

	if err := uow.UserRepository().UpdateDrinkCounters(ctx, userID, totalDrinks, todayDrinks, vodkaLiters, now); err != nil {
		return nil, fmt.Errorf("failed to update drink counters: %w", err)
	}

	level := LevelForDrinks(totalDrinks)
	if level != user.Level {
		if err := uow.UserRepository().UpdateLevel(ctx, userID, level); err != nil {
			return nil, fmt.Errorf("failed to update level: %w", err)
		}
		uow.EventBus().Publish(events.LevelChangedEvent{
			UserID:   userID,
			Username: user.Username,
			OldLevel: user.Level,
			NewLevel: level,
		})
	}

	if groupID != nil {
		if err := uow.GroupRepository().AddGroupDrink(ctx, *groupID); err != nil {
			return nil, fmt.Errorf("failed to add group drink: %w", err)
		}
		if err := uow.GroupRepository().AddMemberDrink(ctx, *groupID, userID); err != nil {
			return nil, fmt.Errorf("failed to add member drink: %w", err)
		}
	}

	uow.EventBus().Publish(events.DrinkTakenEvent{
		UserID:       userID,
		GroupID:      groupID,
		TotalDrinks:  totalDrinks,
		TodayDrinks:  todayDrinks,
		PouredLiters: poured,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.caches.invalidateUser(userID)
	if groupID != nil {
		s.caches.invalidateGroup(*groupID)
	}

	return &models.DrinkResult{
		PouredLiters: poured,
		TotalDrinks:  totalDrinks,
		TodayDrinks:  todayDrinks,
		VodkaLiters:  vodkaLiters,
		Level:        level,
	}, nil
}

// UpdateLevel re-derives a user's level from their lifetime total
func (s *drinkService) UpdateLevel(ctx context.Context, userID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil
	}

	level := LevelForDrinks(user.TotalDrinks)
	if level == user.Level {
		return nil
	}

	if err := uow.UserRepository().UpdateLevel(ctx, userID, level); err != nil {
		return fmt.Errorf("failed to update level: %w", err)
	}

	uow.EventBus().Publish(events.LevelChangedEvent{
		UserID:   userID,
		Username: user.Username,
		OldLevel: user.Level,
		NewLevel: level,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.caches.invalidateUser(userID)
	return nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
