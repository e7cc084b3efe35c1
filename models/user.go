package models

import (
	"time"
)

// User represents a drinker with lifetime and daily counters
type User struct {
	UserID        int64      `db:"user_id"`
	Username      string     `db:"username"`
	TotalDrinks   int        `db:"total_drinks"`
	TodayDrinks   int        `db:"today_drinks"`
	LastDrinkDate *time.Time `db:"last_drink_date"` // calendar day of the last drink, for the daily reset
	LastDrinkTime *time.Time `db:"last_drink_time"` // exact instant of the last drink, for the cooldown
	Level         int        `db:"level"`
	VodkaLiters   float64    `db:"vodka_liters"`
	Achievements  string     `db:"achievements"` // free text, not interpreted by any logic
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// DrinkResult is the outcome of a single recorded drink
type DrinkResult struct {
	PouredLiters int64 // random pour credited for this drink
	TotalDrinks  int
	TodayDrinks  int
	VodkaLiters  float64
	Level        int
}
