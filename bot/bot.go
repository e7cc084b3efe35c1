package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"drinkmeter/events"
	"drinkmeter/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token           string
	GuildID         string
	AdminUsername   string
	LeaderboardSize int
}

type Bot struct {
	config       Config
	session      *discordgo.Session
	userService  service.UserService
	drinkService service.DrinkService
	groupService service.GroupService
	statsService service.StatsService
	adminService service.AdminService
	eventBus     *events.Bus
}

func New(config Config, userService service.UserService, drinkService service.DrinkService, groupService service.GroupService, statsService service.StatsService, adminService service.AdminService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:       config,
		session:      dg,
		userService:  userService,
		drinkService: drinkService,
		groupService: groupService,
		statsService: statsService,
		adminService: adminService,
		eventBus:     eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleMenuInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Subscribe to level change events for audit logging
	eventBus.Subscribe(events.EventTypeLevelChanged, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.LevelChangedEvent); ok {
			log.Infof("User %s (%d) moved from level %d to %d", e.Username, e.UserID, e.OldLevel, e.NewLevel)
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "menu":
		b.handleMenu(s, i)
	case "drink":
		b.handleDrink(s, i)
	case "profile":
		b.handleProfile(s, i)
	case "grouptop":
		b.handleGroupTop(s, i)
	case "groupstats":
		b.handleGroupStats(s, i)
	case "vodka":
		b.handleVodka(s, i)
	case "removevodka":
		b.handleRemoveVodka(s, i)
	case "lvlup":
		b.handleLvlUp(s, i)
	case "donate":
		b.handleDonate(s, i)
	}
}

// isAdmin reports whether the caller matches the allow-listed admin
// username. One leading @ is stripped and the compare is case-insensitive.
func (b *Bot) isAdmin(username string) bool {
	if b.config.AdminUsername == "" {
		return false
	}
	return strings.EqualFold(strings.TrimPrefix(username, "@"), strings.TrimPrefix(b.config.AdminUsername, "@"))
}

// interactionUser returns the invoking user for both guild and DM interactions
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// parseSnowflake converts a Discord string ID to the int64 keys used in storage
func parseSnowflake(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending error response: %v", err)
	}
}
