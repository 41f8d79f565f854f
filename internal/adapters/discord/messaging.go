package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/harukit/melodybot/internal/domain"
)

// Defer buys time for work that may exceed the 3s interaction window.
func DeferEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string, embeds ...*discordgo.MessageEmbed) {
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Embeds:  embeds,
	})
	if err != nil {
		// webhook unknown means nothing was deferred yet; respond directly
		var reqErr *discordgo.RESTError
		if errors.As(err, &reqErr) && reqErr.Message != nil && reqErr.Message.Code == 10015 {
			_ = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
					Embeds:  embeds,
				},
			})
		}
	}
}

// ReplyPublic posts the followup for everyone; game boards and now-playing
// style output belong in the channel, not behind an ephemeral flag.
func ReplyPublic(s *discordgo.Session, ic *discordgo.InteractionCreate, content string, embeds ...*discordgo.MessageEmbed) {
	_, _ = s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Embeds:  embeds,
	})
}

// DeferPublic defers with a visible (non-ephemeral) placeholder.
func DeferPublic(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// ChannelNotifier posts playback announcements to text channels. It backs the
// player's fire-and-forget notifications; errors are logged and swallowed.
type ChannelNotifier struct {
	s   *discordgo.Session
	log zerolog.Logger
}

func NewChannelNotifier(s *discordgo.Session, log zerolog.Logger) *ChannelNotifier {
	return &ChannelNotifier{s: s, log: log.With().Str("component", "notifier").Logger()}
}

func (n *ChannelNotifier) NowPlaying(channelID string, t *domain.Track) {
	embed := &discordgo.MessageEmbed{
		Title:       "Now playing",
		Description: trackLine(t),
		Color:       0x1db954,
	}
	if t.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: t.Thumbnail}
	}
	if t.RequesterID != "" {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Requested by", Value: "<@" + t.RequesterID + ">", Inline: true},
		}
	}
	if _, err := n.s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		n.log.Warn().Str("channel_id", channelID).Err(err).Msg("now playing message failed")
	}
}

func (n *ChannelNotifier) Info(channelID, title, msg string) {
	embed := &discordgo.MessageEmbed{Title: title, Description: msg, Color: 0x888888}
	if _, err := n.s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		n.log.Warn().Str("channel_id", channelID).Err(err).Msg("info message failed")
	}
}
