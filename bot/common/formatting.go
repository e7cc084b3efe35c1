package common

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// levelNames maps each tier to its display name and emoji
var levelNames = map[int][2]string{
	1: {"Novice", "🟢"},
	2: {"Amateur", "🟡"},
	3: {"Connoisseur", "🔵"},
	4: {"Professional", "🟣"},
	5: {"Master", "🔴"},
	6: {"Legend", "🌟"},
}

// drinkComments are picked at random after a successful drink
var drinkComments = []string{
	"Unbelievable! 🔥",
	"How even?!",
	"Whoa ⚡",
	"On fire! 🔥",
	"Oh my... 😱",
	"Bullseye! 🎯",
	"Wow! 🚀",
}

// LevelName returns the display name and emoji for a level. Admin
// overrides can push levels outside the table; those render as unknown.
func LevelName(level int) (string, string) {
	if entry, ok := levelNames[level]; ok {
		return entry[0], entry[1]
	}
	return "Unknown", "❓"
}

// RandomDrinkComment returns one of the stock post-drink comments
func RandomDrinkComment() string {
	return drinkComments[rand.Intn(len(drinkComments))]
}

// FormatLiters formats a vodka accumulator value with one decimal place
func FormatLiters(liters float64) string {
	return fmt.Sprintf("%.1fL", liters)
}

// FormatCooldown renders a whole-minute countdown as "Xh Ymin"
func FormatCooldown(minutesLeft int) string {
	return fmt.Sprintf("%dh %dmin", minutesLeft/60, minutesLeft%60)
}

// ProgressBar renders a ten-segment bar for progress within [0, needed]
func ProgressBar(progress, needed int) string {
	if needed <= 0 {
		return strings.Repeat("▓", 10)
	}
	filled := progress * 10 / needed
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)
}

// Medal formats a leaderboard rank, with medals for the top three
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("#%d", rank)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
