package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForDrinks_Boundaries(t *testing.T) {
	tests := []struct {
		totalDrinks int
		expected    int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{49, 2},
		{50, 3},
		{99, 3},
		{100, 4},
		{199, 4},
		{200, 5},
		{499, 5},
		{500, 6},
		{1000, 6},
		{99999, 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelForDrinks(tt.totalDrinks), "totalDrinks=%d", tt.totalDrinks)
	}
}

func TestLevelForDrinks_NeverDecreasesWithMoreDrinks(t *testing.T) {
	prev := 1
	for total := 0; total <= 600; total++ {
		level := LevelForDrinks(total)
		assert.GreaterOrEqual(t, level, prev, "totalDrinks=%d", total)
		assert.LessOrEqual(t, level, MaxLevel)
		prev = level
	}
}
