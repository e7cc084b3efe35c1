package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"drinkmeter/bot/common"
)

// handleDrink handles the /drink command
func (b *Bot) handleDrink(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	embed, err := b.takeDrinkFlow(ctx, s, i)
	if err != nil {
		log.Printf("Error processing drink: %v", err)
		b.respondWithError(s, i, "Unable to pour right now. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Printf("Error responding to drink command: %v", err)
	}
}

// takeDrinkFlow runs the full drink sequence for an interaction: lazy user
// registration, group bookkeeping when invoked in a guild, the cooldown
// check and finally the drink itself. A cooldown refusal is not an error;
// it renders as its own embed.
func (b *Bot) takeDrinkFlow(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) (*discordgo.MessageEmbed, error) {
	caller := interactionUser(i)
	userID, err := parseSnowflake(caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID %s: %w", caller.ID, err)
	}

	before, err := b.userService.GetOrCreateUser(ctx, userID, caller.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	var groupID *int64
	if i.GuildID != "" {
		gid, err := parseSnowflake(i.GuildID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse guild ID %s: %w", i.GuildID, err)
		}

		guildName := ""
		if guild, err := s.State.Guild(i.GuildID); err == nil {
			guildName = guild.Name
		}

		if _, err := b.groupService.EnsureGroup(ctx, gid, guildName); err != nil {
			return nil, fmt.Errorf("failed to ensure group: %w", err)
		}
		if err := b.groupService.EnsureMembership(ctx, gid, userID); err != nil {
			return nil, fmt.Errorf("failed to ensure membership: %w", err)
		}
		groupID = &gid
	}

	allowed, minutesLeft, err := b.drinkService.CheckCooldown(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check cooldown: %w", err)
	}

	if !allowed {
		return &discordgo.MessageEmbed{
			Title:       "⏳ Not so fast!",
			Color:       0xe67e22,
			Description: fmt.Sprintf("You can pour the next one in **%s**.", common.FormatCooldown(minutesLeft)),
		}, nil
	}

	result, err := b.drinkService.TakeDrink(ctx, userID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to take drink: %w", err)
	}

	levelName, levelEmoji := common.LevelName(result.Level)

	description := fmt.Sprintf("%s\n\n📊 **Today:** %d shots\n🏆 **Total:** %d shots\n🌊 **Vodka:** %s\n%s **Level:** %s",
		common.RandomDrinkComment(),
		result.TodayDrinks,
		result.TotalDrinks,
		common.FormatLiters(result.VodkaLiters),
		levelEmoji, levelName)

	if result.Level > before.Level {
		description += fmt.Sprintf("\n\n⬆️ **Level up!** %s %s (%d/6)", levelEmoji, levelName, result.Level)
	}

	description += "\n\n💬 The next one unlocks in 5 hours!"

	return &discordgo.MessageEmbed{
		Title:       "🥃 Shot taken!",
		Color:       0x2ecc71,
		Description: description,
	}, nil
}
