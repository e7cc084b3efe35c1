package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	b := &Bot{config: Config{AdminUsername: "BigBoss"}}

	tests := []struct {
		username string
		expected bool
	}{
		{"BigBoss", true},
		{"bigboss", true},
		{"BIGBOSS", true},
		{"@BigBoss", true},
		{"@bigboss", true},
		{"someone", false},
		{"@someone", false},
		{"", false},
		{"BigBoss2", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, b.isAdmin(tt.username), "username=%q", tt.username)
	}
}

func TestIsAdmin_ConfiguredWithAt(t *testing.T) {
	b := &Bot{config: Config{AdminUsername: "@BigBoss"}}

	assert.True(t, b.isAdmin("bigboss"))
	assert.True(t, b.isAdmin("@BigBoss"))
	assert.False(t, b.isAdmin("other"))
}

func TestIsAdmin_NoAdminConfigured(t *testing.T) {
	b := &Bot{config: Config{}}

	assert.False(t, b.isAdmin(""))
	assert.False(t, b.isAdmin("anyone"))
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		total    int
		progress int
		needed   int
	}{
		{"fresh novice", 1, 0, 0, 10},
		{"mid novice", 1, 7, 7, 10},
		{"new amateur", 2, 10, 0, 40},
		{"mid master", 5, 350, 150, 300},
		{"legend", 6, 700, 200, 500},
		{"legend past target", 6, 2000, 500, 500},
		{"admin-pushed level clamps", 9, 600, 100, 500},
	}

	for _, tt := range tests {
		progress, needed := levelProgress(tt.level, tt.total)
		assert.Equal(t, tt.progress, progress, tt.name)
		assert.Equal(t, tt.needed, needed, tt.name)
	}
}
