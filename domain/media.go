package domain

import "fmt"

// File is an in-memory blob forwarded with a message.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type StickerFormat int

const (
	StickerPNG StickerFormat = iota + 1
	StickerAPNG
	StickerLottie
	StickerGIF
)

// Static reports whether the sticker can be forwarded without conversion.
func (f StickerFormat) Static() bool {
	return f == StickerPNG || f == StickerAPNG || f == StickerGIF
}

func (f StickerFormat) String() string {
	switch f {
	case StickerPNG:
		return "png"
	case StickerAPNG:
		return "apng"
	case StickerLottie:
		return "lottie"
	case StickerGIF:
		return "gif"
	default:
		return "unknown"
	}
}

// StickerRef points at a sticker attached to the source message.
type StickerRef struct {
	ID     string
	Name   string
	Format StickerFormat
	URL    string
}

// CustomEmoji is an emoji of a guild the bot can see.
type CustomEmoji struct {
	ID       string
	Name     string
	Animated bool
}

// Tag renders the platform-native emoji markup.
func (e CustomEmoji) Tag() string {
	if e.Animated {
		return fmt.Sprintf("<a:%s:%s>", e.Name, e.ID)
	}
	return fmt.Sprintf("<:%s:%s>", e.Name, e.ID)
}
