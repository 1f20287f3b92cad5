// Package discord adapts a discordgo session to the relay ports.
package discord

import (
	"bytes"
	"context"
	"encoding/base64"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"persona-relay/contract"
	"persona-relay/domain"
	"persona-relay/errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

// Transport implements contract.ITransport on top of the REST API.
// Binary content is downloaded by the injected fetcher.
type Transport struct {
	session *discordgo.Session
	content contentFetcher
	log     *slog.Logger
}

type contentFetcher interface {
	FetchContent(ctx context.Context, url string) ([]byte, error)
}

var _ contract.ITransport = (*Transport)(nil)

func NewTransport(session *discordgo.Session, content contentFetcher, log *slog.Logger) *Transport {
	return &Transport{session: session, content: content, log: log}
}

func (t *Transport) ListHandles(ctx context.Context, channelID string) ([]domain.RemoteHandle, error) {
	webhooks, err := t.session.ChannelWebhooks(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing webhooks of %s: %w", channelID, err)
	}
	self := t.selfID()
	return lo.Map(webhooks, func(w *discordgo.Webhook, _ int) domain.RemoteHandle {
		return toRemoteHandle(w, self)
	}), nil
}

func (t *Transport) CreateHandle(ctx context.Context, channelID, name string, avatar []byte) (domain.RemoteHandle, error) {
	w, err := t.session.WebhookCreate(channelID, name, AvatarDataURI(avatar), discordgo.WithContext(ctx))
	if err != nil {
		return domain.RemoteHandle{}, err
	}
	return toRemoteHandle(w, t.selfID()), nil
}

func (t *Transport) DeleteHandle(ctx context.Context, handle domain.RemoteHandle) error {
	return t.session.WebhookDelete(handle.ID, discordgo.WithContext(ctx))
}

// SendAsPersona executes the webhook and waits for the created message.
func (t *Transport) SendAsPersona(ctx context.Context, handle domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
	params := &discordgo.WebhookParams{
		Content:         msg.Content,
		Username:        msg.Username,
		AvatarURL:       msg.AvatarURL,
		Files:           toFiles(msg.Files),
		AllowedMentions: allowedMentions(),
	}
	m, err := t.session.WebhookExecute(handle.ID, handle.Token, true, params, discordgo.WithContext(ctx))
	if err != nil {
		if IsUnknownWebhook(err) {
			return "", fmt.Errorf("%w: %s", errors.ErrHandleGone, handle.ID)
		}
		return "", err
	}
	return m.ID, nil
}

func (t *Transport) SendScene(ctx context.Context, channelID, text string) (string, error) {
	m, err := t.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         text,
		AllowedMentions: allowedMentions(),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (t *Transport) FetchMessage(ctx context.Context, ref domain.MessageRef) (domain.QuotedMessage, error) {
	m, err := t.session.ChannelMessage(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx))
	if err != nil {
		return domain.QuotedMessage{}, err
	}
	return toQuotedMessage(m), nil
}

func (t *Transport) DeleteMessage(ctx context.Context, ref domain.MessageRef) error {
	return t.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx))
}

func (t *Transport) RemoveReaction(ctx context.Context, ref domain.MessageRef, emoji, userID string) error {
	return t.session.MessageReactionRemove(ref.ChannelID, ref.MessageID, emoji, userID, discordgo.WithContext(ctx))
}

// SendTransient posts a bot message that removes itself after ttl.
func (t *Transport) SendTransient(ctx context.Context, channelID, text string, ttl time.Duration) error {
	m, err := t.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	time.AfterFunc(ttl, func() {
		if err := t.session.ChannelMessageDelete(channelID, m.ID); err != nil {
			t.log.Debug("Transient message already gone", "channel", channelID, "message", m.ID, "error", err)
		}
	})
	return nil
}

func (t *Transport) FetchContent(ctx context.Context, url string) ([]byte, error) {
	return t.content.FetchContent(ctx, url)
}

// CustomEmojis lists the emoji of every guild the bot is in.
func (t *Transport) CustomEmojis(_ context.Context) ([]domain.CustomEmoji, error) {
	if t.session.State == nil {
		return nil, nil
	}
	t.session.State.RLock()
	defer t.session.State.RUnlock()
	var emojis []domain.CustomEmoji
	for _, g := range t.session.State.Guilds {
		for _, e := range g.Emojis {
			if e == nil || e.ID == "" || !e.Available {
				continue
			}
			emojis = append(emojis, domain.CustomEmoji{ID: e.ID, Name: e.Name, Animated: e.Animated})
		}
	}
	return emojis, nil
}

func (t *Transport) selfID() string {
	if t.session.State == nil || t.session.State.User == nil {
		return ""
	}
	return t.session.State.User.ID
}

func toRemoteHandle(w *discordgo.Webhook, selfID string) domain.RemoteHandle {
	owned := selfID != "" && (w.ApplicationID == selfID || (w.User != nil && w.User.ID == selfID))
	createdAt, _ := discordgo.SnowflakeTimestamp(w.ID)
	return domain.RemoteHandle{
		ID:        w.ID,
		Token:     w.Token,
		ChannelID: w.ChannelID,
		Name:      w.Name,
		Owned:     owned,
		CreatedAt: createdAt,
	}
}

func toQuotedMessage(m *discordgo.Message) domain.QuotedMessage {
	author := ""
	if m.Member != nil && m.Member.Nick != "" {
		author = m.Member.Nick
	} else if m.Author != nil {
		author = lo.CoalesceOrEmpty(m.Author.GlobalName, m.Author.Username)
	}
	return domain.QuotedMessage{
		AuthorName: author,
		Content:    m.Content,
		Ephemeral:  m.Flags&discordgo.MessageFlagsEphemeral != 0,
	}
}

func toFiles(files []domain.File) []*discordgo.File {
	return lo.Map(files, func(f domain.File, _ int) *discordgo.File {
		return &discordgo.File{Name: f.Name, ContentType: f.ContentType, Reader: bytes.NewReader(f.Data)}
	})
}

// allowedMentions lets relayed text ping users but never roles or everyone.
func allowedMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers}}
}

// AvatarDataURI encodes an image the way webhook creation expects it.
// Empty data means no avatar.
func AvatarDataURI(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return "data:" + mimetype.Detect(data).String() + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsUnknownWebhook reports a webhook deleted out-of-band.
func IsUnknownWebhook(err error) bool {
	var restErr *discordgo.RESTError
	if !stdErrors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownWebhook {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
