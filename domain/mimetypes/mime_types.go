package mimetypes

import (
	"mime"
	"persona-relay/domain"
)

type MIME string

const (
	Unknown         MIME = "unknown"
	ApplicationJSON MIME = "application/json"
	ImagePNG        MIME = "image/png"
	ImageAPNG       MIME = "image/vnd.mozilla.apng"
	ImageGIF        MIME = "image/gif"
)

// Matches reports whether a detected content type, parameters included,
// is the expected one.
func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// ForSticker is the content type a sticker of format f is downloaded as.
func ForSticker(f domain.StickerFormat) MIME {
	switch f {
	case domain.StickerPNG:
		return ImagePNG
	case domain.StickerAPNG:
		return ImageAPNG
	case domain.StickerGIF:
		return ImageGIF
	case domain.StickerLottie:
		return ApplicationJSON
	default:
		return Unknown
	}
}
