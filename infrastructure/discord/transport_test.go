package discord

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestToRemoteHandle(t *testing.T) {
	req := require.New(t)
	// Snowflake of 2015-01-01T00:00:00Z plus one millisecond.
	id := fmt.Sprintf("%d", int64(1)<<22)

	owned := toRemoteHandle(&discordgo.Webhook{ID: id, Token: "tk", ChannelID: "c1", Name: "RP:Nova", ApplicationID: "bot"}, "bot")
	req.True(owned.Owned)
	req.Equal("RP:Nova", owned.Name)
	req.Equal("tk", owned.Token)
	req.Equal(time.UnixMilli(1420070400001).UTC(), owned.CreatedAt.UTC())

	byUser := toRemoteHandle(&discordgo.Webhook{ID: id, User: &discordgo.User{ID: "bot"}}, "bot")
	req.True(byUser.Owned)

	foreign := toRemoteHandle(&discordgo.Webhook{ID: id, ApplicationID: "other"}, "bot")
	req.False(foreign.Owned)

	req.False(toRemoteHandle(&discordgo.Webhook{ID: id}, "").Owned)
}

func TestToQuotedMessage(t *testing.T) {
	req := require.New(t)

	withNick := toQuotedMessage(&discordgo.Message{
		Content: "hi",
		Author:  &discordgo.User{Username: "user", GlobalName: "Global"},
		Member:  &discordgo.Member{Nick: "Nick"},
	})
	req.Equal("Nick", withNick.AuthorName)
	req.False(withNick.Ephemeral)

	global := toQuotedMessage(&discordgo.Message{Author: &discordgo.User{Username: "user", GlobalName: "Global"}})
	req.Equal("Global", global.AuthorName)

	plain := toQuotedMessage(&discordgo.Message{
		Author: &discordgo.User{Username: "user"},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	req.Equal("user", plain.AuthorName)
	req.True(plain.Ephemeral)
}

func TestAvatarDataURI(t *testing.T) {
	req := require.New(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	req.Equal("data:image/png;base64,"+base64.StdEncoding.EncodeToString(png), AvatarDataURI(png))
	req.Equal("", AvatarDataURI(nil))
}

func TestIsUnknownWebhook(t *testing.T) {
	req := require.New(t)

	req.True(IsUnknownWebhook(&discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownWebhook}}))
	req.True(IsUnknownWebhook(fmt.Errorf("send: %w", &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}})))
	req.False(IsUnknownWebhook(&discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}}))
	req.False(IsUnknownWebhook(fmt.Errorf("timeout")))
}

func TestAllowedMentions(t *testing.T) {
	req := require.New(t)
	req.Equal([]discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers}, allowedMentions().Parse)
}
