package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"drinkmeter/bot/common"
	"drinkmeter/models"
	"drinkmeter/service"
)

// handleProfile handles the /profile command
func (b *Bot) handleProfile(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	caller := interactionUser(i)
	userID, err := parseSnowflake(caller.ID)
	if err != nil {
		log.Printf("Error parsing Discord ID %s: %v", caller.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := b.userService.GetOrCreateUser(ctx, userID, caller.Username)
	if err != nil {
		log.Printf("Error getting user %d: %v", userID, err)
		b.respondWithError(s, i, "Unable to retrieve profile. Please try again.")
		return
	}

	embed := buildProfileEmbed(user)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Printf("Error responding to profile command: %v", err)
	}
}

// buildProfileEmbed renders a user's profile with progress to the next level
func buildProfileEmbed(user *models.User) *discordgo.MessageEmbed {
	levelName, levelEmoji := common.LevelName(user.Level)
	progress, needed := levelProgress(user.Level, user.TotalDrinks)

	description := fmt.Sprintf(
		"👤 **Name:** %s\n%s **Level:** %s (%d/6)\n\n📊 **Statistics:**\n  🍺 Lifetime: %d shots\n  🔥 Today: %d shots\n  💧 Vodka: %s\n\n📈 **Progress to next level:**\n`%s`\n%d/%d shots\n\n🎯 **Goal:** Reach Legend and down 1000 shots!",
		user.Username,
		levelEmoji, levelName, user.Level,
		user.TotalDrinks,
		user.TodayDrinks,
		common.FormatLiters(user.VodkaLiters),
		common.ProgressBar(progress, needed),
		progress, needed)

	return &discordgo.MessageEmbed{
		Title:       "👤 Your profile",
		Color:       0x3498db,
		Description: description,
	}
}

// levelProgress returns how far into the current tier a lifetime total is
// and how many drinks the tier spans. Levels pushed outside the table by
// admin overrides are clamped for display.
func levelProgress(level, totalDrinks int) (progress, needed int) {
	if level < 1 {
		level = 1
	}
	if level > service.MaxLevel {
		level = service.MaxLevel
	}

	current := service.LevelThresholds[level-1]
	next := service.LevelThresholds[level]

	progress = totalDrinks - current
	needed = next - current
	if progress < 0 {
		progress = 0
	}
	if progress > needed {
		progress = needed
	}
	return progress, needed
}
