package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"drinkmeter/bot/common"
	"drinkmeter/models"
)

// buildTodayTopEmbed renders the global leaderboard for today's drinks
func (b *Bot) buildTodayTopEmbed(ctx context.Context) (*discordgo.MessageEmbed, error) {
	users, err := b.statsService.TopByToday(ctx, b.config.LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get today top: %w", err)
	}

	return leaderboardEmbed("🔥 Today's top drinkers", users, func(u *models.User) int {
		return u.TodayDrinks
	}), nil
}

// buildAllTimeTopEmbed renders the global lifetime leaderboard
func (b *Bot) buildAllTimeTopEmbed(ctx context.Context) (*discordgo.MessageEmbed, error) {
	users, err := b.statsService.TopByTotal(ctx, b.config.LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get all-time top: %w", err)
	}

	return leaderboardEmbed("🏆 All-time top drinkers", users, func(u *models.User) int {
		return u.TotalDrinks
	}), nil
}

// leaderboardEmbed formats a ranked user list as a code-block table
func leaderboardEmbed(title string, users []*models.User, count func(*models.User) int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: 0xf1c40f,
	}

	if len(users) == 0 {
		embed.Description = "Nobody has taken a shot yet. Be the first!"
		return embed
	}

	var table strings.Builder
	table.WriteString("```\n")
	table.WriteString(fmt.Sprintf("%-4s %-20s %-8s %s\n", "Rank", "Player", "Shots", "Level"))
	table.WriteString(strings.Repeat("-", 40) + "\n")

	for idx, user := range users {
		name := user.Username
		if len(name) > 18 {
			name = name[:15] + "..."
		}

		levelName, _ := common.LevelName(user.Level)
		table.WriteString(fmt.Sprintf("%-4s %-20s %-8d %s\n",
			common.Medal(idx+1), name, count(user), levelName))
	}

	table.WriteString("```")
	embed.Description = table.String()
	return embed
}
