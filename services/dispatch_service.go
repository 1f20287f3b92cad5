package services

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"persona-relay/contract"
	"persona-relay/domain"
	"persona-relay/enrichment"
	"persona-relay/errors"
	"persona-relay/moderation"
	"persona-relay/observability"
	"persona-relay/parser"
	"persona-relay/persona"
	"persona-relay/segmenter"
	"persona-relay/webhook"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	traceScope     = "persona-relay/services"
	quoteMaxLength = 200
)

type IDispatchService interface {
	Dispatch(ctx context.Context, req domain.DispatchRequest) domain.DispatchResult
	ListAvailablePersonas(userID string) []domain.PersonaListing
	FindPersona(selector, userID string) (domain.Persona, bool)
	ChannelEnabled(channelID string) bool
}

// ICensor masks banned words in a payload and reports the ones it found.
type ICensor interface {
	Censor(text string) (string, []string)
}

type DispatchConfig struct {
	SceneSelector      string
	ChunkLimit         int
	EnabledChannels    []string
	RateLimitPerMinute int
}

// DispatchService runs one relay request from raw text to delivered messages.
type DispatchService struct {
	registry  persona.IRegistry
	cache     webhook.IHandleCache
	resolver  enrichment.IResolver
	messenger contract.IMessenger
	store     contract.IStore
	censor    ICensor
	log       *slog.Logger
	metrics   *observability.Metrics
	limiter   *userLimiter
	channels  map[string]struct{}
	sceneSel  string
	limit     int
	now       func() time.Time
}

func NewDispatchService(registry persona.IRegistry, cache webhook.IHandleCache, resolver enrichment.IResolver,
	messenger contract.IMessenger, store contract.IStore, censor ICensor, log *slog.Logger,
	metrics *observability.Metrics, cfg DispatchConfig) *DispatchService {
	scene := cfg.SceneSelector
	if scene == "" {
		scene = parser.DefaultSceneSelector
	}
	limit := cfg.ChunkLimit
	if limit <= 0 || limit > segmenter.HardCap {
		limit = segmenter.DefaultLimit
	}
	var channels map[string]struct{}
	if len(cfg.EnabledChannels) > 0 {
		channels = lo.SliceToMap(cfg.EnabledChannels, func(id string) (string, struct{}) {
			return id, struct{}{}
		})
	}
	return &DispatchService{
		registry:  registry,
		cache:     cache,
		resolver:  resolver,
		messenger: messenger,
		store:     store,
		censor:    censor,
		log:       log,
		metrics:   metrics,
		limiter:   newUserLimiter(cfg.RateLimitPerMinute),
		channels:  channels,
		sceneSel:  scene,
		limit:     limit,
		now:       time.Now,
	}
}

// ChannelEnabled reports whether relaying is allowed in channelID.
// An empty allow-list enables every channel.
func (s *DispatchService) ChannelEnabled(channelID string) bool {
	if s.channels == nil {
		return true
	}
	_, ok := s.channels[channelID]
	return ok
}

func (s *DispatchService) FindPersona(selector, userID string) (domain.Persona, bool) {
	return s.registry.Find(selector, userID)
}

func (s *DispatchService) ListAvailablePersonas(userID string) []domain.PersonaListing {
	return lo.Map(s.registry.ListAvailable(userID), func(p domain.Persona, _ int) domain.PersonaListing {
		return domain.PersonaListing{Name: p.Name, Selectors: append([]string(nil), p.Selectors...)}
	})
}

// Dispatch never returns an error: rejections and delivery failures are
// reported in the result.
func (s *DispatchService) Dispatch(ctx context.Context, req domain.DispatchRequest) domain.DispatchResult {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	start := s.now()
	ctx, span := otel.Tracer(traceScope).Start(ctx, "dispatch", trace.WithAttributes(
		attribute.String("request_id", req.ID.String()),
		attribute.String("channel", req.ChannelID),
	))
	defer span.End()

	log := s.log.With("request_id", req.ID.String(), "channel", req.ChannelID, "author", req.AuthorID)
	res := s.dispatch(ctx, log, req)
	res.RequestID = req.ID

	s.metrics.Dispatch(res.Outcome.String(), string(res.Reason), s.now().Sub(start).Seconds())
	span.SetAttributes(
		attribute.String("outcome", res.Outcome.String()),
		attribute.Int("chunks", res.Chunks),
		attribute.Int("delivered", len(res.Delivered)),
	)
	switch res.Outcome {
	case domain.Failed:
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	case domain.Rejected:
		span.SetAttributes(attribute.String("reason", string(res.Reason)))
		span.SetStatus(codes.Ok, "")
	default:
		span.SetStatus(codes.Ok, "")
	}
	return res
}

func (s *DispatchService) dispatch(ctx context.Context, log *slog.Logger, req domain.DispatchRequest) domain.DispatchResult {
	if !s.ChannelEnabled(req.ChannelID) {
		return rejected(domain.ReasonChannelDisabled)
	}

	parsed := s.parse(ctx, log, req)
	switch parsed.Kind {
	case parser.KindRejected:
		log.Debug("Dispatch rejected", "reason", parsed.Reason)
		return rejected(parsed.Reason)
	case parser.KindScene:
		if !s.limiter.Allow(req.AuthorID) {
			return rejected(domain.ReasonRateLimited)
		}
		return s.sendScene(ctx, log, req, parsed.Payload)
	}

	p, ok := s.registry.Find(parsed.Selector, req.AuthorID)
	if !ok {
		log.Debug("Persona not found", "selector", parsed.Selector)
		return rejected(domain.ReasonPersonaNotFound)
	}
	if !s.limiter.Allow(req.AuthorID) {
		return rejected(domain.ReasonRateLimited)
	}
	log = log.With("persona", p.Name)

	text := s.quote(ctx, log, req.ReplyTo) + s.filter(log, parsed.Payload)
	chunks := segmenter.Segment(text, s.limit)

	media := append(append([]domain.File(nil), req.Attachments...), s.resolver.Stickers(ctx, req.Stickers)...)
	if text == "" && len(media) == 0 {
		// Only failed stickers were sent: nothing is left to deliver.
		return rejected(domain.ReasonEmptyMessage)
	}

	res := domain.DispatchResult{Persona: &p, Chunks: len(chunks)}
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			log.Warn("Dispatch cancelled, abandoning remaining chunks", "chunk", i, "error", err)
			res.Failures = append(res.Failures, domain.ChunkFailure{Index: i, Err: err})
			break
		}
		var attachments []domain.File
		if i == len(chunks)-1 {
			attachments = media
		}
		id, err := s.deliver(ctx, req.ChannelID, p, chunk, attachments)
		if err != nil {
			s.metrics.Chunk(false)
			log.Error("Chunk delivery failed", "chunk", i, "error", err)
			res.Failures = append(res.Failures, domain.ChunkFailure{Index: i, Err: err})
			continue
		}
		s.metrics.Chunk(true)
		res.Delivered = append(res.Delivered, domain.DeliveredChunk{Index: i, MessageID: id})
		s.recordProvenance(ctx, log, req.AuthorID, id)
	}

	if len(res.Failures) > 0 {
		res.Outcome = domain.Failed
		res.Err = res.Failures[0].Err
		return res
	}
	res.Outcome = domain.Completed
	log.Debug("Dispatch completed", "chunks", res.Chunks)
	return res
}

// parse reads the stored default selector only when the text does not name
// one itself. A store failure is treated as having no default.
func (s *DispatchService) parse(ctx context.Context, log *slog.Logger, req domain.DispatchRequest) parser.Result {
	hasMedia := req.HasMedia()
	if req.Selector != "" {
		return parser.Explicit(req.Selector, req.RawContent, hasMedia, s.sceneSel)
	}
	var def *string
	if !parser.HasExplicitSelector(req.RawContent) && s.store != nil {
		stored, err := s.store.GetDefaultSelector(ctx, req.AuthorID)
		if err != nil {
			log.Warn("Default selector lookup failed", "error", err)
		} else {
			def = stored
		}
	}
	return parser.Parse(parser.Input{Text: req.RawContent, DefaultSelector: def, HasMedia: hasMedia}, s.sceneSel)
}

// sendScene sends an upper-cased narration line through the bot itself.
func (s *DispatchService) sendScene(ctx context.Context, log *slog.Logger, req domain.DispatchRequest, payload string) domain.DispatchResult {
	text := strings.ToUpper(s.filter(log, payload))
	if text == "" {
		return rejected(domain.ReasonEmptyMessage)
	}
	if utf8.RuneCountInString(text) > segmenter.HardCap {
		text = string([]rune(text)[:segmenter.HardCap])
	}
	res := domain.DispatchResult{Scene: true, Chunks: 1}
	id, err := s.messenger.SendScene(ctx, req.ChannelID, text)
	if err != nil {
		s.metrics.Chunk(false)
		log.Error("Scene delivery failed", "error", err)
		res.Outcome = domain.Failed
		res.Err = err
		res.Failures = []domain.ChunkFailure{{Index: 0, Err: err}}
		return res
	}
	s.metrics.Chunk(true)
	res.Outcome = domain.Completed
	res.Delivered = []domain.DeliveredChunk{{Index: 0, MessageID: id}}
	s.recordProvenance(ctx, log, req.AuthorID, id)
	return res
}

// deliver enriches one chunk and sends it. A handle removed out-of-band is
// replaced once.
func (s *DispatchService) deliver(ctx context.Context, channelID string, p domain.Persona, chunk string,
	attachments []domain.File) (string, error) {
	content, files := s.resolver.Enrich(ctx, chunk, attachments)
	if utf8.RuneCountInString(content) > segmenter.HardCap {
		content, files = chunk, attachments
	}
	msg := domain.OutboundMessage{
		Content:   content,
		Username:  p.Name,
		AvatarURL: p.AvatarURL,
		Files:     files,
	}

	id, err := s.send(ctx, channelID, p, msg)
	if stdErrors.Is(err, errors.ErrHandleGone) {
		s.log.Warn("Handle gone, recreating it", "channel", channelID, "persona", p.Name)
		s.cache.Invalidate(channelID, p.Name)
		id, err = s.send(ctx, channelID, p, msg)
	}
	return id, err
}

func (s *DispatchService) send(ctx context.Context, channelID string, p domain.Persona, msg domain.OutboundMessage) (string, error) {
	handle, err := s.cache.GetOrCreate(ctx, channelID, p)
	if err != nil {
		return "", err
	}
	return s.messenger.SendAsPersona(ctx, handle.Remote(p.Name), msg)
}

// quote renders the replied-to message as a one line block quote.
// Ephemeral messages and lookup failures produce no quote.
func (s *DispatchService) quote(ctx context.Context, log *slog.Logger, ref *domain.MessageRef) string {
	if ref == nil {
		return ""
	}
	quoted, err := s.messenger.FetchMessage(ctx, *ref)
	if err != nil {
		log.Warn("Replied message lookup failed, sending without quote", "message", ref.MessageID, "error", err)
		return ""
	}
	if quoted.Ephemeral {
		return ""
	}
	return FormatQuote(quoted)
}

// FormatQuote renders "> author: content" with the content cut to 200
// characters and kept on a single line.
func FormatQuote(quoted domain.QuotedMessage) string {
	content := []rune(strings.ReplaceAll(quoted.Content, "\n", " "))
	if len(content) > quoteMaxLength {
		content = content[:quoteMaxLength]
	}
	return fmt.Sprintf("> %s: %s\n", quoted.AuthorName, string(content))
}

func (s *DispatchService) filter(log *slog.Logger, text string) string {
	if s.censor == nil {
		return text
	}
	censored, words := s.censor.Censor(text)
	if len(words) > 0 {
		log.Info("Payload censored", "matches", len(words), "lang", moderation.Language(text))
	}
	return censored
}

func (s *DispatchService) recordProvenance(ctx context.Context, log *slog.Logger, authorID, messageID string) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordProvenance(ctx, authorID, messageID); err != nil {
		log.Warn("Provenance not recorded", "message", messageID, "error", err)
	}
}

func rejected(reason domain.RejectReason) domain.DispatchResult {
	return domain.DispatchResult{Outcome: domain.Rejected, Reason: reason}
}
