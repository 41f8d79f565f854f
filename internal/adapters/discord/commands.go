package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "play",
		Description: "Queue a track by URL, playlist URL or search text",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "query",
			Description: "URL or search text",
			Required:    true,
		}},
	},
	{
		Name:        "search",
		Description: "Search for tracks without queueing anything",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Search text",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "Max results (default 10)",
			},
		},
	},
	{
		Name:        "skip",
		Description: "Vote to skip the current track",
	},
	{
		Name:        "stop",
		Description: "Stop playback and clear the queue (stays in voice)",
	},
	{
		Name:        "pause",
		Description: "Pause the current track",
	},
	{
		Name:        "resume",
		Description: "Resume a paused track",
	},
	{
		Name:        "leave",
		Description: "Stop playback and leave the voice channel",
	},
	{
		Name:        "queue",
		Description: "Show the playback queue",
	},
	{
		Name:        "nowplaying",
		Description: "Show the current track",
	},
	{
		Name:        "repeat",
		Description: "Cycle repeat mode: off -> one -> all",
	},
	{
		Name:        "shuffle",
		Description: "Toggle shuffled playback",
	},
	{
		Name:        "volume",
		Description: "Set the playback volume (applies from the next track)",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "level",
			Description: "0 to 100",
			Required:    true,
		}},
	},
	{
		Name:        "favorite",
		Description: "Your saved tracks",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "add", Description: "Save the current track"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "List your saved tracks"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a saved track",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "url",
					Description: "Track URL as shown in /favorite list",
					Required:    true,
				}},
			},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "play", Description: "Queue all your saved tracks"},
		},
	},
	{
		Name:        "playlist",
		Description: "Your named playlists",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Create an empty playlist",
				Options: []*discordgo.ApplicationCommandOption{{
					Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Playlist name", Required: true,
				}},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Add the current track to a playlist",
				Options: []*discordgo.ApplicationCommandOption{{
					Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Playlist name", Required: true,
				}},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "load",
				Description: "Queue every track of a playlist",
				Options: []*discordgo.ApplicationCommandOption{{
					Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Playlist name", Required: true,
				}},
			},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "List your playlists"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Delete a playlist",
				Options: []*discordgo.ApplicationCommandOption{{
					Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Playlist name", Required: true,
				}},
			},
		},
	},
	{
		Name:        "stats",
		Description: "Most played tracks in this server",
	},
	{
		Name:        "connect4",
		Description: "Challenge someone to Connect Four",
		Options: []*discordgo.ApplicationCommandOption{{
			Type: discordgo.ApplicationCommandOptionUser, Name: "opponent", Description: "Who to play against", Required: true,
		}},
	},
	{
		Name:        "othello",
		Description: "Challenge someone to Othello",
		Options: []*discordgo.ApplicationCommandOption{{
			Type: discordgo.ApplicationCommandOptionUser, Name: "opponent", Description: "Who to play against", Required: true,
		}},
	},
	{
		Name:        "tictactoe",
		Description: "Challenge someone to Tic-Tac-Toe",
		Options: []*discordgo.ApplicationCommandOption{{
			Type: discordgo.ApplicationCommandOptionUser, Name: "opponent", Description: "Who to play against", Required: true,
		}},
	},
	{
		Name:        "drop",
		Description: "Connect Four: drop a disc into a column",
		Options: []*discordgo.ApplicationCommandOption{{
			Type: discordgo.ApplicationCommandOptionInteger, Name: "column", Description: "Column 1-7", Required: true,
		}},
	},
	{
		Name:        "place",
		Description: "Othello / Tic-Tac-Toe: place at row and column",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "row", Description: "Row, starting at 1", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "column", Description: "Column, starting at 1", Required: true},
		},
	},
	{
		Name:        "resign",
		Description: "Give up the game in this channel",
	},
	{
		Name:        "settings",
		Description: "View or change bot settings for this server (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "show", Description: "View settings"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Change settings (only what you pass)",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "default_volume", Description: "Default volume 0-100"},
					{Type: discordgo.ApplicationCommandOptionChannel, Name: "notify_channel", Description: "Channel for now-playing messages"},
					{Type: discordgo.ApplicationCommandOptionBoolean, Name: "music_enabled", Description: "Allow music commands"},
					{Type: discordgo.ApplicationCommandOptionBoolean, Name: "games_enabled", Description: "Allow game commands"},
				},
			},
		},
	},
}
