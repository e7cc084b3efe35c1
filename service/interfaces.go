package service

import (
	"context"
	"time"

	"drinkmeter/events"
	"drinkmeter/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by their chat ID
	GetByID(ctx context.Context, userID int64) (*models.User, error)

	// GetByUsername retrieves a user by their username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create creates a new user with zeroed counters
	Create(ctx context.Context, userID int64, username string) (*models.User, error)

	// UpdateDrinkCounters persists the counters and timestamps of one recorded drink
	UpdateDrinkCounters(ctx context.Context, userID int64, totalDrinks, todayDrinks int, vodkaLiters float64, drinkTime time.Time) error

	// UpdateLevel sets a user's level
	UpdateLevel(ctx context.Context, userID int64, level int) error

	// AddVodka unconditionally adds liters to a user's accumulator
	AddVodka(ctx context.Context, userID int64, liters float64) error

	// SetVodka sets a user's accumulator to an absolute value
	SetVodka(ctx context.Context, userID int64, liters float64) error

	// AddLevels unconditionally shifts a user's level by delta
	AddLevels(ctx context.Context, userID int64, delta int) error

	// TopByTotal returns up to limit users ordered by lifetime drinks descending
	TopByTotal(ctx context.Context, limit int) ([]*models.User, error)

	// TopByToday returns up to limit users ordered by today's drinks descending
	TopByToday(ctx context.Context, limit int) ([]*models.User, error)
}

// GroupRepository defines the interface for group and membership data access
type GroupRepository interface {
	// GetByID retrieves a group by its chat ID
	GetByID(ctx context.Context, groupID int64) (*models.Group, error)

	// Create creates a new group with a zeroed aggregate counter
	Create(ctx context.Context, groupID int64, name string) (*models.Group, error)

	// EnsureMember inserts the (group, user) membership if it does not exist yet
	EnsureMember(ctx context.Context, groupID, userID int64) error

	// AddGroupDrink increments the group's aggregate drink counter
	AddGroupDrink(ctx context.Context, groupID int64) error

	// AddMemberDrink increments one member's in-group drink counter
	AddMemberDrink(ctx context.Context, groupID, userID int64) error

	// Top returns up to limit members ordered by in-group drinks descending
	Top(ctx context.Context, groupID int64, limit int) ([]*models.GroupTopEntry, error)
}

// UserService defines the interface for user lookups and registration
type UserService interface {
	// GetOrCreateUser retrieves an existing user or registers a new one
	GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error)

	// GetUser returns a user snapshot, or nil when the user is unknown
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// GetUserByUsername resolves a username (an optional leading @ is
	// stripped) to a user snapshot, or nil when unknown
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// DrinkService defines the interface for the drink state machine
type DrinkService interface {
	// CheckCooldown reports whether the user may drink now and, if not,
	// how many whole minutes remain until they may
	CheckCooldown(ctx context.Context, userID int64) (allowed bool, minutesLeft int, err error)

	// TakeDrink records one drink: daily reset, counter increments, a
	// random pour, timestamps and level re-derivation, all in one
	// transaction. When groupID is set the group aggregate and the member
	// counter advance in the same transaction. Callers are expected to
	// have passed CheckCooldown first; TakeDrink does not re-check.
	TakeDrink(ctx context.Context, userID int64, groupID *int64) (*models.DrinkResult, error)

	// UpdateLevel re-derives a user's level from their lifetime total
	UpdateLevel(ctx context.Context, userID int64) error
}

// GroupService defines the interface for group bookkeeping
type GroupService interface {
	// EnsureGroup registers a group if it is unknown; created reports
	// whether this call inserted it
	EnsureGroup(ctx context.Context, groupID int64, name string) (created bool, err error)

	// EnsureMembership registers a (group, user) membership idempotently
	EnsureMembership(ctx context.Context, groupID, userID int64) error

	// GroupTop returns the group's leaderboard
	GroupTop(ctx context.Context, groupID int64, limit int) ([]*models.GroupTopEntry, error)

	// GroupInfo returns a group snapshot, or nil when the group is unknown
	GroupInfo(ctx context.Context, groupID int64) (*models.Group, error)
}

// StatsService defines the interface for leaderboard reads
type StatsService interface {
	// TopByTotal returns the all-time leaderboard
	TopByTotal(ctx context.Context, limit int) ([]*models.User, error)

	// TopByToday returns today's leaderboard
	TopByToday(ctx context.Context, limit int) ([]*models.User, error)
}

// AdminService defines the interface for privileged overrides
type AdminService interface {
	// AddVodka adds liters to a user's accumulator, no clamp
	AddVodka(ctx context.Context, userID int64, liters int64) (*models.User, error)

	// RemoveVodka removes liters from a user's accumulator; the amount is
	// clamped to at most 10 per call and the result is floored at zero
	RemoveVodka(ctx context.Context, userID int64, liters int64) (*models.User, error)

	// AddLevels shifts a user's level by delta with no clamping and no
	// re-derivation from the drink total
	AddLevels(ctx context.Context, userID int64, delta int) (*models.User, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	GroupRepository() GroupRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
