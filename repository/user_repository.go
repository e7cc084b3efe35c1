package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drinkmeter/database"
	"drinkmeter/models"

	"github.com/jackc/pgx/v5"
)

const userColumns = `
	user_id,
	username,
	total_drinks,
	today_drinks,
	last_drink_date,
	last_drink_time,
	level,
	vodka_liters,
	achievements,
	created_at,
	updated_at
`

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.TotalDrinks,
		&user.TodayDrinks,
		&user.LastDrinkDate,
		&user.LastDrinkTime,
		&user.Level,
		&user.VodkaLiters,
		&user.Achievements,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their chat ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return user, nil
}

// GetByUsername retrieves a user by their username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username %q: %w", username, err)
	}

	return user, nil
}

// Create creates a new user with zeroed counters
func (r *UserRepository) Create(ctx context.Context, userID int64, username string) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, username)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, username))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", userID, err)
	}

	return user, nil
}

// UpdateDrinkCounters persists the counters and timestamps of one recorded drink
func (r *UserRepository) UpdateDrinkCounters(ctx context.Context, userID int64, totalDrinks, todayDrinks int, vodkaLiters float64, drinkTime time.Time) error {
	query := `
		UPDATE users
		SET total_drinks = $1,
		    today_drinks = $2,
		    vodka_liters = $3,
		    last_drink_date = $4::date,
		    last_drink_time = $4,
		    updated_at = NOW()
		WHERE user_id = $5
	`

	result, err := r.q.Exec(ctx, query, totalDrinks, todayDrinks, vodkaLiters, drinkTime, userID)
	if err != nil {
		return fmt.Errorf("failed to update drink counters for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// UpdateLevel sets a user's level
func (r *UserRepository) UpdateLevel(ctx context.Context, userID int64, level int) error {
	query := `UPDATE users SET level = $1, updated_at = NOW() WHERE user_id = $2`

	result, err := r.q.Exec(ctx, query, level, userID)
	if err != nil {
		return fmt.Errorf("failed to update level for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// AddVodka unconditionally adds liters to a user's accumulator
func (r *UserRepository) AddVodka(ctx context.Context, userID int64, liters float64) error {
	query := `UPDATE users SET vodka_liters = vodka_liters + $1, updated_at = NOW() WHERE user_id = $2`

	result, err := r.q.Exec(ctx, query, liters, userID)
	if err != nil {
		return fmt.Errorf("failed to add vodka for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// SetVodka sets a user's accumulator to an absolute value
func (r *UserRepository) SetVodka(ctx context.Context, userID int64, liters float64) error {
	query := `UPDATE users SET vodka_liters = $1, updated_at = NOW() WHERE user_id = $2`

	result, err := r.q.Exec(ctx, query, liters, userID)
	if err != nil {
		return fmt.Errorf("failed to set vodka for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// AddLevels unconditionally shifts a user's level by delta
func (r *UserRepository) AddLevels(ctx context.Context, userID int64, delta int) error {
	query := `UPDATE users SET level = level + $1, updated_at = NOW() WHERE user_id = $2`

	result, err := r.q.Exec(ctx, query, delta, userID)
	if err != nil {
		return fmt.Errorf("failed to add levels for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// TopByTotal returns up to limit users ordered by lifetime drinks descending
func (r *UserRepository) TopByTotal(ctx context.Context, limit int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY total_drinks DESC LIMIT $1`
	return r.queryUsers(ctx, query, limit)
}

// TopByToday returns up to limit users ordered by today's drinks descending
func (r *UserRepository) TopByToday(ctx context.Context, limit int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY today_drinks DESC LIMIT $1`
	return r.queryUsers(ctx, query, limit)
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
