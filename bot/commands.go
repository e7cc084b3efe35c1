package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// commandDefinitions is the full slash command surface registered on startup
var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        "menu",
		Description: "Open the interactive drink menu",
	},
	{
		Name:        "drink",
		Description: "Knock back a shot",
	},
	{
		Name:        "profile",
		Description: "View your drinking profile",
	},
	{
		Name:        "grouptop",
		Description: "Display this server's drink leaderboard",
	},
	{
		Name:        "groupstats",
		Description: "Display this server's aggregate drink statistics",
	},
	{
		Name:        "vodka",
		Description: "Add vodka liters to a player (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Liters to add",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Player to credit",
				Required:    true,
			},
		},
	},
	{
		Name:        "removevodka",
		Description: "Remove vodka liters from a player (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Liters to remove (at most 10)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Player to debit",
				Required:    true,
			},
		},
	},
	{
		Name:        "lvlup",
		Description: "Raise a player's level (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Levels to add",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Player to promote",
				Required:    true,
			},
		},
	},
	{
		Name:        "donate",
		Description: "Broadcast an announcement to the channel (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "Announcement text",
				Required:    true,
			},
		},
	},
}

// registerCommands registers all slash commands with Discord, scoped to the
// configured guild. An empty guild ID registers them globally.
func (b *Bot) registerCommands() error {
	for _, cmd := range commandDefinitions {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
