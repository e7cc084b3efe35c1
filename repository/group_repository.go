package repository

import (
	"context"
	"errors"
	"fmt"

	"drinkmeter/database"
	"drinkmeter/models"

	"github.com/jackc/pgx/v5"
)

// GroupRepository implements the service.GroupRepository interface
type GroupRepository struct {
	q queryable
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *database.DB) *GroupRepository {
	return &GroupRepository{q: db.Pool}
}

// newGroupRepositoryWithTx creates a new group repository with a transaction
func newGroupRepositoryWithTx(tx queryable) *GroupRepository {
	return &GroupRepository{q: tx}
}

// GetByID retrieves a group by its chat ID
func (r *GroupRepository) GetByID(ctx context.Context, groupID int64) (*models.Group, error) {
	query := `
		SELECT group_id, group_name, total_drinks, created_at
		FROM groups
		WHERE group_id = $1
	`

	var group models.Group
	err := r.q.QueryRow(ctx, query, groupID).Scan(
		&group.GroupID,
		&group.GroupName,
		&group.TotalDrinks,
		&group.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}

	return &group, nil
}

// Create creates a new group with a zeroed aggregate counter
func (r *GroupRepository) Create(ctx context.Context, groupID int64, name string) (*models.Group, error) {
	query := `
		INSERT INTO groups (group_id, group_name)
		VALUES ($1, $2)
		RETURNING group_id, group_name, total_drinks, created_at
	`

	var group models.Group
	err := r.q.QueryRow(ctx, query, groupID, name).Scan(
		&group.GroupID,
		&group.GroupName,
		&group.TotalDrinks,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group %d: %w", groupID, err)
	}

	return &group, nil
}

// EnsureMember inserts the (group, user) membership if it does not exist
// yet. Conflicts on the unique pair are not errors; anything else is.
func (r *GroupRepository) EnsureMember(ctx context.Context, groupID, userID int64) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to ensure membership of user %d in group %d: %w", userID, groupID, err)
	}

	return nil
}

// AddGroupDrink increments the group's aggregate drink counter
func (r *GroupRepository) AddGroupDrink(ctx context.Context, groupID int64) error {
	query := `UPDATE groups SET total_drinks = total_drinks + 1 WHERE group_id = $1`

	result, err := r.q.Exec(ctx, query, groupID)
	if err != nil {
		return fmt.Errorf("failed to add group drink for group %d: %w", groupID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("group %d not found", groupID)
	}

	return nil
}

// AddMemberDrink increments one member's in-group drink counter
func (r *GroupRepository) AddMemberDrink(ctx context.Context, groupID, userID int64) error {
	query := `
		UPDATE group_members
		SET drinks_in_group = drinks_in_group + 1
		WHERE group_id = $1 AND user_id = $2
	`

	result, err := r.q.Exec(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to add member drink for user %d in group %d: %w", userID, groupID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d is not a member of group %d", userID, groupID)
	}

	return nil
}

// Top returns up to limit members ordered by in-group drinks descending
func (r *GroupRepository) Top(ctx context.Context, groupID int64, limit int) ([]*models.GroupTopEntry, error) {
	query := `
		SELECT u.username, gm.drinks_in_group, u.level
		FROM group_members gm
		JOIN users u ON gm.user_id = u.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.drinks_in_group DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query group top for group %d: %w", groupID, err)
	}
	defer rows.Close()

	var entries []*models.GroupTopEntry
	for rows.Next() {
		var entry models.GroupTopEntry
		if err := rows.Scan(&entry.Username, &entry.DrinksInGroup, &entry.Level); err != nil {
			return nil, fmt.Errorf("failed to scan group top entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group top entries: %w", err)
	}

	return entries, nil
}
