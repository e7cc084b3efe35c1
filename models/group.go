package models

import (
	"time"
)

// Group represents a chat group with an aggregate drink counter
type Group struct {
	GroupID     int64     `db:"group_id"`
	GroupName   string    `db:"group_name"`
	TotalDrinks int       `db:"total_drinks"`
	CreatedAt   time.Time `db:"created_at"`
}

// GroupMember tracks a single user's drink count inside one group
type GroupMember struct {
	ID            int64 `db:"id"`
	GroupID       int64 `db:"group_id"`
	UserID        int64 `db:"user_id"`
	DrinksInGroup int   `db:"drinks_in_group"`
}

// GroupTopEntry is one row of a group-scoped leaderboard
type GroupTopEntry struct {
	Username      string
	DrinksInGroup int
	Level         int
}
