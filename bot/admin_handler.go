package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"drinkmeter/bot/common"
	"drinkmeter/service"
)

// adminTarget extracts the amount and target user options shared by the
// admin commands
func adminTarget(s *discordgo.Session, i *discordgo.InteractionCreate) (amount int64, target *discordgo.User) {
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			target = opt.UserValue(s)
		}
	}
	return amount, target
}

// requireAdmin rejects callers that are not the allow-listed admin. It
// responds on rejection so handlers can simply return.
func (b *Bot) requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	caller := interactionUser(i)
	if caller == nil || !b.isAdmin(caller.Username) {
		b.respondWithError(s, i, "You are not allowed to use this command.")
		return false
	}
	return true
}

// handleVodka handles the /vodka admin command
func (b *Bot) handleVodka(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !b.requireAdmin(s, i) {
		return
	}

	amount, target := adminTarget(s, i)
	if amount <= 0 {
		b.respondWithError(s, i, "Amount must be positive.")
		return
	}
	if target == nil {
		b.respondWithError(s, i, "Invalid target user.")
		return
	}

	targetID, err := parseSnowflake(target.ID)
	if err != nil {
		log.Printf("Error parsing target Discord ID %s: %v", target.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := b.adminService.AddVodka(ctx, targetID, amount)
	if err != nil {
		log.Printf("Error adding %d liters to %d: %v", amount, targetID, err)
		if strings.Contains(err.Error(), "not found") {
			b.respondWithError(s, i, "That player hasn't started drinking yet.")
		} else {
			b.respondWithError(s, i, "Unable to add vodka. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("Added **%dL** to **%s**. Tank now holds **%s**.",
		amount, user.Username, common.FormatLiters(user.VodkaLiters))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Printf("Error responding to vodka command: %v", err)
	}
}

// handleRemoveVodka handles the /removevodka admin command
func (b *Bot) handleRemoveVodka(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !b.requireAdmin(s, i) {
		return
	}

	amount, target := adminTarget(s, i)
	if amount <= 0 {
		b.respondWithError(s, i, "Amount must be positive.")
		return
	}
	if amount > service.MaxVodkaRemovedPerCall {
		b.respondWithError(s, i, fmt.Sprintf("You can remove at most %dL at a time.", service.MaxVodkaRemovedPerCall))
		return
	}
	if target == nil {
		b.respondWithError(s, i, "Invalid target user.")
		return
	}

	targetID, err := parseSnowflake(target.ID)
	if err != nil {
		log.Printf("Error parsing target Discord ID %s: %v", target.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := b.adminService.RemoveVodka(ctx, targetID, amount)
	if err != nil {
		log.Printf("Error removing %d liters from %d: %v", amount, targetID, err)
		if strings.Contains(err.Error(), "not found") {
			b.respondWithError(s, i, "That player hasn't started drinking yet.")
		} else {
			b.respondWithError(s, i, "Unable to remove vodka. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("Removed **%dL** from **%s**. Tank now holds **%s**.",
		amount, user.Username, common.FormatLiters(user.VodkaLiters))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Printf("Error responding to removevodka command: %v", err)
	}
}

// handleLvlUp handles the /lvlup admin command
func (b *Bot) handleLvlUp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !b.requireAdmin(s, i) {
		return
	}

	amount, target := adminTarget(s, i)
	if amount <= 0 {
		b.respondWithError(s, i, "Amount must be positive.")
		return
	}
	if target == nil {
		b.respondWithError(s, i, "Invalid target user.")
		return
	}

	targetID, err := parseSnowflake(target.ID)
	if err != nil {
		log.Printf("Error parsing target Discord ID %s: %v", target.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := b.adminService.AddLevels(ctx, targetID, int(amount))
	if err != nil {
		log.Printf("Error adding %d levels to %d: %v", amount, targetID, err)
		if strings.Contains(err.Error(), "not found") {
			b.respondWithError(s, i, "That player hasn't started drinking yet.")
		} else {
			b.respondWithError(s, i, "Unable to raise the level. Please try again.")
		}
		return
	}

	levelName, levelEmoji := common.LevelName(user.Level)
	message := fmt.Sprintf("**%s** is now level **%d** %s %s.",
		user.Username, user.Level, levelEmoji, levelName)
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Printf("Error responding to lvlup command: %v", err)
	}
}

// handleDonate handles the /donate admin broadcast command
func (b *Bot) handleDonate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}

	var text string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "text" {
			text = opt.StringValue()
		}
	}

	if strings.TrimSpace(text) == "" {
		b.respondWithError(s, i, "Announcement text must not be empty.")
		return
	}

	if _, err := s.ChannelMessageSend(i.ChannelID, "📢 "+text); err != nil {
		log.Printf("Error broadcasting announcement: %v", err)
		b.respondWithError(s, i, "Unable to send the announcement. Please try again.")
		return
	}

	if err := common.RespondWithSuccess(s, i, "Announcement sent.", true); err != nil {
		log.Printf("Error responding to donate command: %v", err)
	}
}
