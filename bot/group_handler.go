package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"drinkmeter/bot/common"
)

// handleGroupTop handles the /grouptop command
func (b *Bot) handleGroupTop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if i.GuildID == "" {
		b.respondWithError(s, i, "This command only works in a server.")
		return
	}

	groupID, err := parseSnowflake(i.GuildID)
	if err != nil {
		log.Printf("Error parsing guild ID %s: %v", i.GuildID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	entries, err := b.groupService.GroupTop(ctx, groupID, b.config.LeaderboardSize)
	if err != nil {
		log.Printf("Error getting group top for %d: %v", groupID, err)
		b.respondWithError(s, i, "Unable to retrieve the leaderboard. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏆 Server top drinkers",
		Color: 0xf1c40f,
	}

	if len(entries) == 0 {
		embed.Description = "Nobody in this server has taken a shot yet."
	} else {
		var table strings.Builder
		table.WriteString("```\n")
		table.WriteString(fmt.Sprintf("%-4s %-20s %-8s %s\n", "Rank", "Player", "Shots", "Level"))
		table.WriteString(strings.Repeat("-", 40) + "\n")

		for idx, entry := range entries {
			name := entry.Username
			if len(name) > 18 {
				name = name[:15] + "..."
			}

			levelName, _ := common.LevelName(entry.Level)
			table.WriteString(fmt.Sprintf("%-4s %-20s %-8d %s\n",
				common.Medal(idx+1), name, entry.DrinksInGroup, levelName))
		}

		table.WriteString("```")
		embed.Description = table.String()
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Printf("Error responding to grouptop command: %v", err)
	}
}

// handleGroupStats handles the /groupstats command
func (b *Bot) handleGroupStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if i.GuildID == "" {
		b.respondWithError(s, i, "This command only works in a server.")
		return
	}

	groupID, err := parseSnowflake(i.GuildID)
	if err != nil {
		log.Printf("Error parsing guild ID %s: %v", i.GuildID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	group, err := b.groupService.GroupInfo(ctx, groupID)
	if err != nil {
		log.Printf("Error getting group info for %d: %v", groupID, err)
		b.respondWithError(s, i, "Unable to retrieve server statistics. Please try again.")
		return
	}

	if group == nil {
		b.respondWithError(s, i, "This server has no drink history yet. Someone has to /drink first!")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Server statistics",
		Color: 0x3498db,
		Description: fmt.Sprintf("🍻 **%s**\n\n🏆 Shots taken together: **%d**\n📅 Counting since: %s",
			group.GroupName,
			group.TotalDrinks,
			common.FormatDiscordTimestamp(group.CreatedAt, "D")),
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Printf("Error responding to groupstats command: %v", err)
	}
}
