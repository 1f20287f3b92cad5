// Package enrichment rewrites outgoing text and media on a best-effort basis.
// Nothing here ever fails a dispatch: every error is logged and the input is
// kept as it was.
package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/contract"
	"persona-relay/domain"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

var (
	emojiToken     = regexp.MustCompile(`:([a-zA-Z0-9_]+):`)
	resolvedSuffix = regexp.MustCompile(`^\d+>`)
	unsafeFileRune = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)
)

type IResolver interface {
	Enrich(ctx context.Context, text string, attachments []domain.File) (string, []domain.File)
	Stickers(ctx context.Context, stickers []domain.StickerRef) []domain.File
}

// Resolver substitutes emoji tokens and converts stickers into files.
type Resolver struct {
	source    contract.IContentSource
	converter contract.IStickerConverter
	emojiMap  map[string]string
	log       *slog.Logger
}

// NewResolver builds a resolver. converter may be nil, in which case
// animated vector stickers are skipped. emojiMap maps an emoji name to an
// image URL used when the bot cannot render the emoji natively.
func NewResolver(source contract.IContentSource, converter contract.IStickerConverter,
	emojiMap map[string]string, log *slog.Logger) *Resolver {
	return &Resolver{
		source:    source,
		converter: converter,
		emojiMap:  lo.Assign(emojiMap),
		log:       log,
	}
}

type token struct {
	start, end int
	name       string
}

// Enrich replaces each :name: token with, in order of preference, the native
// tag of a custom emoji the bot knows, a link to an uploaded copy of an
// external emoji image, or the token itself.
// The returned files are the attachments followed by uploaded emoji images.
func (r *Resolver) Enrich(ctx context.Context, text string, attachments []domain.File) (string, []domain.File) {
	files := append([]domain.File(nil), attachments...)
	tokens := scanTokens(text)
	if len(tokens) == 0 {
		return text, files
	}

	known := r.knownEmoji(ctx)
	uploaded := make(map[string]string)

	var b strings.Builder
	last := 0
	for _, t := range tokens {
		b.WriteString(text[last:t.start])
		b.WriteString(r.resolve(ctx, t, text, known, uploaded, &files))
		last = t.end
	}
	b.WriteString(text[last:])
	return b.String(), files
}

func (r *Resolver) resolve(ctx context.Context, t token, text string, known map[string]domain.CustomEmoji,
	uploaded map[string]string, files *[]domain.File) string {
	if emoji, ok := known[t.name]; ok {
		return emoji.Tag()
	}
	if fileName, ok := uploaded[t.name]; ok {
		return fmt.Sprintf("[%s](%s)", t.name, fileName)
	}
	url, ok := r.emojiMap[t.name]
	if !ok {
		return text[t.start:t.end]
	}
	data, err := r.source.FetchContent(ctx, url)
	if err != nil {
		r.log.Warn("External emoji fetch failed, keeping token", "emoji", t.name, "error", err)
		return text[t.start:t.end]
	}
	file := newFile(t.name, data, ".png")
	*files = append(*files, file)
	uploaded[t.name] = file.Name
	return fmt.Sprintf("[%s](%s)", t.name, file.Name)
}

// knownEmoji indexes the emoji inventory by name, keeping the first one seen.
func (r *Resolver) knownEmoji(ctx context.Context) map[string]domain.CustomEmoji {
	emojis, err := r.source.CustomEmojis(ctx)
	if err != nil {
		r.log.Warn("Custom emoji inventory unavailable", "error", err)
		return nil
	}
	known := make(map[string]domain.CustomEmoji, len(emojis))
	for _, e := range emojis {
		if _, seen := known[e.Name]; !seen {
			known[e.Name] = e
		}
	}
	return known
}

// scanTokens finds :name: tokens that are not part of an already rendered
// <:name:id> or <a:name:id> tag. A rejected candidate restarts the scan one
// byte further so that overlapping candidates are still considered.
func scanTokens(text string) []token {
	var tokens []token
	pos := 0
	for pos < len(text) {
		loc := emojiToken.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if (start > 0 && text[start-1] == '<') || resolvedSuffix.MatchString(text[end:]) {
			pos = start + 1
			continue
		}
		tokens = append(tokens, token{start: start, end: end, name: text[pos+loc[2] : pos+loc[3]]})
		pos = end
	}
	return tokens
}

// newFile names a blob after base with an extension sniffed from its content.
func newFile(base string, data []byte, fallbackExt string) domain.File {
	mt := mimetype.Detect(data)
	ext := mt.Extension()
	if ext == "" {
		ext = fallbackExt
	}
	name := strings.Trim(unsafeFileRune.ReplaceAllString(base, "_"), "_")
	if name == "" {
		name = "file"
	}
	return domain.File{Name: name + ext, ContentType: mt.String(), Data: data}
}
