package discord

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/domain"
	"persona-relay/services"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	DefaultEventTimeout = 60 * time.Second
	warningTTL          = 10 * time.Second
)

// channelOps is the part of the transport the listener needs besides dispatch.
type channelOps interface {
	DeleteMessage(ctx context.Context, ref domain.MessageRef) error
	SendTransient(ctx context.Context, channelID, text string, ttl time.Duration) error
	FetchContent(ctx context.Context, url string) ([]byte, error)
}

// Listener relays every message posted in an enabled channel and handles
// removal reactions. Enabled channels are reserved to relayed messages:
// the source message is always deleted.
type Listener struct {
	dispatcher services.IDispatchService
	retraction services.IRetractionService
	ops        channelOps
	log        *slog.Logger
	timeout    time.Duration
}

func NewListener(dispatcher services.IDispatchService, retraction services.IRetractionService, ops channelOps,
	log *slog.Logger, timeout time.Duration) *Listener {
	if timeout <= 0 {
		timeout = DefaultEventTimeout
	}
	return &Listener{dispatcher: dispatcher, retraction: retraction, ops: ops, log: log, timeout: timeout}
}

func (l *Listener) OnMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	l.HandleMessage(ctx, m.Message)
}

func (l *Listener) OnReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if s.State != nil && s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	l.HandleReaction(ctx, r.MessageReaction)
}

func (l *Listener) HandleMessage(ctx context.Context, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot || m.WebhookID != "" {
		return
	}
	if !l.dispatcher.ChannelEnabled(m.ChannelID) {
		return
	}

	req := RequestFromMessage(m, l.downloadAttachments(ctx, m.Attachments))
	res := l.dispatcher.Dispatch(ctx, req)
	log := l.log.With("request_id", req.ID.String(), "channel", m.ChannelID, "author", m.Author.ID)

	switch res.Outcome {
	case domain.Completed:
		log.Debug("Message relayed", "messages", len(res.Delivered))
	case domain.Rejected:
		log.Debug("Message rejected, deleting it", "reason", res.Reason)
	case domain.Failed:
		if err := l.ops.SendTransient(ctx, m.ChannelID, "⚠️ "+RenderResult(res, m.ChannelID), warningTTL); err != nil {
			log.Warn("Failed to send warning", "error", err)
		}
	}

	if err := l.ops.DeleteMessage(ctx, domain.MessageRef{ChannelID: m.ChannelID, MessageID: m.ID}); err != nil {
		log.Warn("Failed to delete source message", "message", m.ID, "error", err)
	}
}

func (l *Listener) HandleReaction(ctx context.Context, r *discordgo.MessageReaction) {
	if r == nil || !l.dispatcher.ChannelEnabled(r.ChannelID) {
		return
	}
	// Custom emoji are never removal reactions.
	if r.Emoji.ID != "" {
		return
	}
	ref := domain.MessageRef{ChannelID: r.ChannelID, MessageID: r.MessageID}
	outcome, err := l.retraction.Retract(ctx, r.UserID, ref, r.Emoji.Name)
	if err != nil {
		l.log.Warn("Retraction failed", "message", r.MessageID, "author", r.UserID, "error", err)
		return
	}
	if outcome == services.RetractionDenied {
		l.log.Debug("Removal reaction not allowed", "message", r.MessageID, "author", r.UserID)
	}
}

// downloadAttachments keeps the attachments that could be downloaded.
func (l *Listener) downloadAttachments(ctx context.Context, attachments []*discordgo.MessageAttachment) []domain.File {
	return lo.FilterMap(attachments, func(a *discordgo.MessageAttachment, _ int) (domain.File, bool) {
		data, err := l.ops.FetchContent(ctx, a.URL)
		if err != nil {
			l.log.Warn("Attachment download failed", "attachment", a.Filename, "error", err)
			return domain.File{}, false
		}
		return domain.File{Name: a.Filename, ContentType: a.ContentType, Data: data}, true
	})
}

// RequestFromMessage builds the dispatch request of a chat message.
func RequestFromMessage(m *discordgo.Message, files []domain.File) domain.DispatchRequest {
	req := domain.DispatchRequest{
		ID:          uuid.New(),
		RawContent:  m.Content,
		ChannelID:   m.ChannelID,
		Attachments: files,
		Stickers:    StickerRefs(m.StickerItems),
	}
	if m.Author != nil {
		req.AuthorID = m.Author.ID
	}
	if ref := m.MessageReference; ref != nil && ref.MessageID != "" {
		req.ReplyTo = &domain.MessageRef{
			ChannelID: lo.CoalesceOrEmpty(ref.ChannelID, m.ChannelID),
			MessageID: ref.MessageID,
		}
	}
	return req
}

func StickerRefs(items []*discordgo.StickerItem) []domain.StickerRef {
	return lo.Map(items, func(item *discordgo.StickerItem, _ int) domain.StickerRef {
		format := domain.StickerFormat(item.FormatType)
		return domain.StickerRef{ID: item.ID, Name: item.Name, Format: format, URL: StickerURL(item.ID, format)}
	})
}

// StickerURL returns where the sticker content can be downloaded.
func StickerURL(id string, format domain.StickerFormat) string {
	switch format {
	case domain.StickerPNG, domain.StickerAPNG:
		return fmt.Sprintf("https://media.discordapp.net/stickers/%s.png", id)
	case domain.StickerGIF:
		return fmt.Sprintf("https://media.discordapp.net/stickers/%s.gif", id)
	case domain.StickerLottie:
		return fmt.Sprintf("https://discord.com/stickers/%s.json", id)
	default:
		return ""
	}
}
