//go:generate go run go.uber.org/mock/mockgen -source=transport.go -destination=../mocks/mock_transport.go -package=mocks
package contract

import (
	"context"
	"persona-relay/domain"
)

// IHandleTransport manages webhooks of a channel.
type IHandleTransport interface {
	ListHandles(ctx context.Context, channelID string) ([]domain.RemoteHandle, error)
	CreateHandle(ctx context.Context, channelID, name string, avatar []byte) (domain.RemoteHandle, error)
	DeleteHandle(ctx context.Context, handle domain.RemoteHandle) error
}

// IMessenger posts and reads messages.
// SendAsPersona returns errors.ErrHandleGone when the webhook was removed out-of-band.
type IMessenger interface {
	SendAsPersona(ctx context.Context, handle domain.RemoteHandle, msg domain.OutboundMessage) (string, error)
	SendScene(ctx context.Context, channelID, text string) (string, error)
	FetchMessage(ctx context.Context, ref domain.MessageRef) (domain.QuotedMessage, error)
	DeleteMessage(ctx context.Context, ref domain.MessageRef) error
	RemoveReaction(ctx context.Context, ref domain.MessageRef, emoji, userID string) error
}

// IContentSource gives access to remote binary content and known emoji.
type IContentSource interface {
	FetchContent(ctx context.Context, url string) ([]byte, error)
	CustomEmojis(ctx context.Context) ([]domain.CustomEmoji, error)
}

type ITransport interface {
	IHandleTransport
	IMessenger
	IContentSource
}

// IStickerConverter turns an animated vector sticker into a raster animation.
type IStickerConverter interface {
	Convert(ctx context.Context, sticker domain.StickerRef, data []byte) (domain.File, error)
}
