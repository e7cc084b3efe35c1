package bot

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"drinkmeter/bot/common"
)

// Custom IDs for the menu buttons
const (
	menuButtonDrink      = "menu_drink"
	menuButtonProfile    = "menu_profile"
	menuButtonTodayTop   = "menu_today_top"
	menuButtonAllTimeTop = "menu_alltime_top"
	menuButtonHelp       = "menu_help"
	menuButtonBack       = "menu_back"
)

// handleMenu handles the /menu command. Like the drink flow it lazily
// registers the caller, and in a guild the group and membership too.
func (b *Bot) handleMenu(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	caller := interactionUser(i)
	userID, err := parseSnowflake(caller.ID)
	if err != nil {
		log.Printf("Error parsing Discord ID %s: %v", caller.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if _, err := b.userService.GetOrCreateUser(ctx, userID, caller.Username); err != nil {
		log.Printf("Error getting user %d: %v", userID, err)
		b.respondWithError(s, i, "Unable to open the menu. Please try again.")
		return
	}

	if i.GuildID != "" {
		groupID, err := parseSnowflake(i.GuildID)
		if err != nil {
			log.Printf("Error parsing guild ID %s: %v", i.GuildID, err)
			b.respondWithError(s, i, "Unable to process request. Please try again.")
			return
		}

		guildName := ""
		if guild, err := s.State.Guild(i.GuildID); err == nil {
			guildName = guild.Name
		}

		if _, err := b.groupService.EnsureGroup(ctx, groupID, guildName); err != nil {
			log.Printf("Error ensuring group %d: %v", groupID, err)
			b.respondWithError(s, i, "Unable to open the menu. Please try again.")
			return
		}
		if err := b.groupService.EnsureMembership(ctx, groupID, userID); err != nil {
			log.Printf("Error ensuring membership %d/%d: %v", groupID, userID, err)
			b.respondWithError(s, i, "Unable to open the menu. Please try again.")
			return
		}
	}

	if err := common.RespondWithEmbed(s, i, rootMenuEmbed(), menuComponents(), false); err != nil {
		log.Printf("Error responding to menu command: %v", err)
	}
}

// handleMenuInteractions routes menu button presses
func (b *Bot) handleMenuInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, "menu_") {
		return
	}

	ctx := context.Background()

	switch customID {
	case menuButtonBack:
		b.updateMenuView(s, i, rootMenuEmbed(), menuComponents())

	case menuButtonDrink:
		embed, err := b.takeDrinkFlow(ctx, s, i)
		if err != nil {
			log.Printf("Error processing menu drink: %v", err)
			b.respondWithError(s, i, "Unable to pour right now. Please try again.")
			return
		}
		b.updateMenuView(s, i, embed, backComponents())

	case menuButtonProfile:
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
		b.updateMenuView(s, i, buildProfileEmbed(user), backComponents())

	case menuButtonTodayTop:
		embed, err := b.buildTodayTopEmbed(ctx)
		if err != nil {
			log.Printf("Error building today top: %v", err)
			b.respondWithError(s, i, "Unable to retrieve the leaderboard. Please try again.")
			return
		}
		b.updateMenuView(s, i, embed, backComponents())

	case menuButtonAllTimeTop:
		embed, err := b.buildAllTimeTopEmbed(ctx)
		if err != nil {
			log.Printf("Error building all-time top: %v", err)
			b.respondWithError(s, i, "Unable to retrieve the leaderboard. Please try again.")
			return
		}
		b.updateMenuView(s, i, embed, backComponents())

	case menuButtonHelp:
		b.updateMenuView(s, i, helpEmbed(), backComponents())
	}
}

func (b *Bot) updateMenuView(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	if err := common.UpdateWithEmbed(s, i, embed, components); err != nil {
		log.Printf("Error updating menu view: %v", err)
	}
}

func rootMenuEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🥃 DrinkMeter",
		Color:       0x9b59b6,
		Description: "Pick your poison:",
	}
}

func helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "❓ How it works",
		Color: 0x95a5a6,
		Description: "Take a shot with 🥃 **Drink** — one every 5 hours. Each shot " +
			"pours a random 0-10 liters of vodka into your tank and counts toward " +
			"your level:\n\n" +
			"🟢 1 - Novice (0-9 shots)\n" +
			"🟡 2 - Amateur (10-49 shots)\n" +
			"🔵 3 - Connoisseur (50-99 shots)\n" +
			"🟣 4 - Professional (100-199 shots)\n" +
			"🔴 5 - Master (200-499 shots)\n" +
			"🌟 6 - Legend (500+ shots)\n\n" +
			"Server commands: /drink, /profile, /grouptop, /groupstats",
	}
}

func menuComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Drink",
					Style:    discordgo.SuccessButton,
					CustomID: menuButtonDrink,
					Emoji:    &discordgo.ComponentEmoji{Name: "🥃"},
				},
				discordgo.Button{
					Label:    "My profile",
					Style:    discordgo.PrimaryButton,
					CustomID: menuButtonProfile,
					Emoji:    &discordgo.ComponentEmoji{Name: "👑"},
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Today's top",
					Style:    discordgo.SecondaryButton,
					CustomID: menuButtonTodayTop,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔥"},
				},
				discordgo.Button{
					Label:    "All-time top",
					Style:    discordgo.SecondaryButton,
					CustomID: menuButtonAllTimeTop,
					Emoji:    &discordgo.ComponentEmoji{Name: "🏆"},
				},
				discordgo.Button{
					Label:    "Help",
					Style:    discordgo.SecondaryButton,
					CustomID: menuButtonHelp,
					Emoji:    &discordgo.ComponentEmoji{Name: "❓"},
				},
			},
		},
	}
}

func backComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Back",
					Style:    discordgo.SecondaryButton,
					CustomID: menuButtonBack,
					Emoji:    &discordgo.ComponentEmoji{Name: "↩️"},
				},
			},
		},
	}
}
