package services

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/domain"
	"persona-relay/enrichment"
	"persona-relay/errors"
	"persona-relay/mocks"
	"persona-relay/moderation"
	"persona-relay/observability"
	"persona-relay/persona"
	"persona-relay/webhook"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	channelID = "chan-1"
	novaURL   = "https://cdn.example.org/nova.png"
)

var avatarBytes = []byte("\x89PNG\r\n\x1a\navatar")

type fixture struct {
	transport *mocks.MockITransport
	store     *mocks.MockIStore
	service   *DispatchService
	registry  *prometheus.Registry
}

func novaPersona(restricted ...string) domain.Persona {
	return domain.Persona{
		Selectors:       []string{"nova", "n"},
		Name:            "Nova",
		AvatarURL:       novaURL,
		RestrictedUsers: restricted,
	}
}

func newFixture(t *testing.T, cfg DispatchConfig, censor ICensor, personas ...domain.Persona) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	if len(personas) == 0 {
		personas = []domain.Persona{novaPersona()}
	}
	registry, err := persona.NewRegistry(personas)
	require.NoError(t, err)

	promRegistry := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(promRegistry)
	require.NoError(t, err)

	transport := mocks.NewMockITransport(ctrl)
	store := mocks.NewMockIStore(ctrl)
	cache := webhook.NewCache(transport, transport, log, metrics, webhook.DefaultLimit, webhook.DefaultPrefix)
	resolver := enrichment.NewResolver(transport, nil, nil, log)
	service := NewDispatchService(registry, cache, resolver, transport, store, censor, log, metrics, cfg)
	return fixture{transport: transport, store: store, service: service, registry: promRegistry}
}

// expectFirstHandle expects the channel listing and one creation for Nova.
func (f fixture) expectFirstHandle(id string) {
	f.transport.EXPECT().ListHandles(gomock.Any(), channelID).Return(nil, nil)
	f.expectCreate(id)
}

func (f fixture) expectCreate(id string) {
	f.transport.EXPECT().FetchContent(gomock.Any(), novaURL).Return(avatarBytes, nil)
	f.transport.EXPECT().CreateHandle(gomock.Any(), channelID, "RP:Nova", avatarBytes).
		Return(domain.RemoteHandle{ID: id, Token: "tok-" + id, ChannelID: channelID, Name: "RP:Nova", Owned: true}, nil)
}

func TestDispatchService_ScenarioA(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, DispatchConfig{}, nil)
	ctx := context.Background()

	f.expectFirstHandle("wh-1")
	var sent domain.OutboundMessage
	f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, handle domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
			req.Equal("wh-1", handle.ID)
			req.Equal("tok-wh-1", handle.Token)
			sent = msg
			return "msg-1", nil
		})
	f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

	res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "n: hello world", AuthorID: "U", ChannelID: channelID})

	req.Equal(domain.Completed, res.Outcome)
	req.NotNil(res.Persona)
	req.Equal("Nova", res.Persona.Name)
	req.Equal([]string{"msg-1"}, res.MessageIDs())
	req.NotEqual(uuid.Nil, res.RequestID)
	req.Equal("hello world", sent.Content)
	req.Equal("Nova", sent.Username)
	req.Equal(novaURL, sent.AvatarURL)
	req.Empty(sent.Files)
	req.NoError(testutil.GatherAndCompare(f.registry, strings.NewReader(`
# HELP relay_handle_cache_lookups_total Delivery handle lookups by result (hit, miss).
# TYPE relay_handle_cache_lookups_total counter
relay_handle_cache_lookups_total{result="miss"} 1
`), "relay_handle_cache_lookups_total"))
}

func TestDispatchService_SendsAvatarNotThumbnail(t *testing.T) {
	req := require.New(t)
	nova := novaPersona()
	nova.ThumbnailURL = "https://cdn.example.org/nova-bust.png"
	f := newFixture(t, DispatchConfig{}, nil, nova)
	ctx := context.Background()

	f.expectFirstHandle("wh-1")
	var sent domain.OutboundMessage
	f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
			sent = msg
			return "msg-1", nil
		})
	f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

	res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "n: hi", AuthorID: "U", ChannelID: channelID})

	req.Equal(domain.Completed, res.Outcome)
	req.Equal(novaURL, sent.AvatarURL)
}

func TestDispatchService_ScenarioB(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, DispatchConfig{}, nil, novaPersona("42"))

	res := f.service.Dispatch(context.Background(), domain.DispatchRequest{RawContent: "n: hi", AuthorID: "99", ChannelID: channelID})

	req.Equal(domain.Rejected, res.Outcome)
	req.Equal(domain.ReasonPersonaNotFound, res.Reason)
	req.Nil(res.Persona)
	req.Empty(res.Delivered)
}

func TestDispatchService_ScenarioC(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, DispatchConfig{}, nil)
	attachment := domain.File{Name: "map.png", ContentType: "image/png", Data: avatarBytes}

	f.expectFirstHandle("wh-1")
	var sent []domain.OutboundMessage
	f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, _ domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
			sent = append(sent, msg)
			return fmt.Sprintf("msg-%d", len(sent)), nil
		})
	f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)
	f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-2").Return(nil)

	payload := strings.Repeat("a", 2500)
	res := f.service.Dispatch(context.Background(), domain.DispatchRequest{
		RawContent:  "nova: " + payload,
		AuthorID:    "U",
		ChannelID:   channelID,
		Attachments: []domain.File{attachment},
	})

	req.Equal(domain.Completed, res.Outcome)
	req.Equal(2, res.Chunks)
	req.Equal([]string{"msg-1", "msg-2"}, res.MessageIDs())
	req.Len(sent, 2)
	req.Empty(sent[0].Files)
	req.Equal([]domain.File{attachment}, sent[1].Files)
	req.Equal(payload, sent[0].Content+sent[1].Content)
	req.Len(sent[0].Content, 1999)
}

func TestDispatchService_DefaultSelector(t *testing.T) {
	ctx := context.Background()

	t.Run("should use the stored default when the text has no selector", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		def := "nova"
		f.store.EXPECT().GetDefaultSelector(gomock.Any(), "U").Return(&def, nil)
		f.expectFirstHandle("wh-1")
		f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
				req.Equal("just talking", msg.Content)
				return "msg-1", nil
			})
		f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "just talking", AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.Completed, res.Outcome)
	})

	t.Run("should reject when no default is stored", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.store.EXPECT().GetDefaultSelector(gomock.Any(), "U").Return(nil, nil)

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "just talking", AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.Rejected, res.Outcome)
		req.Equal(domain.ReasonMissingSelector, res.Reason)
	})

	t.Run("should treat a store failure as no default", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.store.EXPECT().GetDefaultSelector(gomock.Any(), "U").Return(nil, fmt.Errorf("disk full"))

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "just talking", AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.ReasonMissingSelector, res.Reason)
	})

	t.Run("should not keep a url behind the default selector guard", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.store.EXPECT().GetDefaultSelector(gomock.Any(), "U").Return(nil, nil)

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "https://example.org", AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.ReasonMissingSelector, res.Reason)
	})
}

func TestDispatchService_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject an empty payload", func(t *testing.T) {
		f := newFixture(t, DispatchConfig{}, nil)
		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova:   ", AuthorID: "U", ChannelID: channelID})
		require.Equal(t, domain.ReasonEmptyMessage, res.Reason)
	})

	t.Run("should reject a disabled channel before anything else", func(t *testing.T) {
		f := newFixture(t, DispatchConfig{EnabledChannels: []string{"chan-2"}}, nil)
		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova: hi", AuthorID: "U", ChannelID: channelID})
		require.Equal(t, domain.Rejected, res.Outcome)
		require.Equal(t, domain.ReasonChannelDisabled, res.Reason)
	})

	t.Run("should rate limit an author", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{RateLimitPerMinute: 1}, nil)
		f.expectFirstHandle("wh-1")
		f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).Return("msg-1", nil)
		f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

		first := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova: one", AuthorID: "U", ChannelID: channelID})
		second := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova: two", AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.Completed, first.Outcome)
		req.Equal(domain.Rejected, second.Outcome)
		req.Equal(domain.ReasonRateLimited, second.Reason)
	})
}

func TestDispatchService_Scene(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, DispatchConfig{}, nil)
	f.transport.EXPECT().SendScene(gomock.Any(), channelID, "THE DOOR CREAKS OPEN").Return("msg-9", nil)
	f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-9").Return(nil)

	res := f.service.Dispatch(context.Background(), domain.DispatchRequest{RawContent: "Scene: the door creaks open", AuthorID: "U", ChannelID: channelID})

	req.Equal(domain.Completed, res.Outcome)
	req.True(res.Scene)
	req.Nil(res.Persona)
	req.Equal([]string{"msg-9"}, res.MessageIDs())
}

func TestDispatchService_ExplicitSelector(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, DispatchConfig{}, nil)
	f.expectFirstHandle("wh-1")
	f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
			req.Equal("vex: not a selector here", msg.Content)
			return "msg-1", nil
		})
	f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

	res := f.service.Dispatch(context.Background(), domain.DispatchRequest{
		Selector:   "N",
		RawContent: "vex: not a selector here",
		AuthorID:   "U",
		ChannelID:  channelID,
	})
	req.Equal(domain.Completed, res.Outcome)
}

func TestDispatchService_DeliveryFailures(t *testing.T) {
	ctx := context.Background()
	twoChunks := "nova: " + strings.Repeat("b", 2100)

	t.Run("should keep going after a failed chunk and report a partial result", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.expectFirstHandle("wh-1")
		gomock.InOrder(
			f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).Return("", fmt.Errorf("503 service unavailable")),
			f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).Return("msg-2", nil),
		)
		f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-2").Return(nil)

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: twoChunks, AuthorID: "U", ChannelID: channelID})

		req.Equal(domain.Failed, res.Outcome)
		req.True(res.Partial())
		req.ErrorContains(res.Err, "503")
		req.Len(res.Failures, 1)
		req.Equal(0, res.Failures[0].Index)
		req.Equal([]domain.DeliveredChunk{{Index: 1, MessageID: "msg-2"}}, res.Delivered)
	})

	t.Run("should recreate a handle removed out-of-band and resend once", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.expectFirstHandle("wh-1")
		f.expectCreate("wh-2")
		gomock.InOrder(
			f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
				Return("", fmt.Errorf("%w: unknown webhook", errors.ErrHandleGone)),
			f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, handle domain.RemoteHandle, _ domain.OutboundMessage) (string, error) {
					req.Equal("wh-2", handle.ID)
					return "msg-1", nil
				}),
		)
		f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova: hi", AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.Completed, res.Outcome)
	})

	t.Run("should report a handle creation failure", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.transport.EXPECT().ListHandles(gomock.Any(), channelID).Return(nil, nil)
		f.transport.EXPECT().FetchContent(gomock.Any(), novaURL).Return(nil, fmt.Errorf("404"))
		f.transport.EXPECT().CreateHandle(gomock.Any(), channelID, "RP:Nova", nil).Return(domain.RemoteHandle{}, fmt.Errorf("missing permission"))

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova: hi", AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.Failed, res.Outcome)
		req.False(res.Partial())
		req.ErrorIs(res.Err, errors.ErrHandleCreationFailed)
	})

	t.Run("should abandon chunks once the context is cancelled", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		res := f.service.Dispatch(cancelled, domain.DispatchRequest{RawContent: twoChunks, AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.Failed, res.Outcome)
		req.ErrorIs(res.Err, context.Canceled)
		req.Empty(res.Delivered)
	})

	t.Run("should still succeed when provenance cannot be recorded", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.expectFirstHandle("wh-1")
		f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).Return("msg-1", nil)
		f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(fmt.Errorf("read-only"))

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova: hi", AuthorID: "U", ChannelID: channelID})
		req.Equal(domain.Completed, res.Outcome)
	})
}

func TestDispatchService_Quote(t *testing.T) {
	ctx := context.Background()
	ref := &domain.MessageRef{ChannelID: channelID, MessageID: "src-1"}

	t.Run("should prepend the replied message to the first chunk", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.transport.EXPECT().FetchMessage(gomock.Any(), *ref).
			Return(domain.QuotedMessage{AuthorName: "Ash", Content: "first line\nsecond line"}, nil)
		f.expectFirstHandle("wh-1")
		f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
				req.Equal("> Ash: first line second line\nhello", msg.Content)
				return "msg-1", nil
			})
		f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

		res := f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova: hello", AuthorID: "U", ChannelID: channelID, ReplyTo: ref})
		req.Equal(domain.Completed, res.Outcome)
	})

	t.Run("should not quote an ephemeral message", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, DispatchConfig{}, nil)
		f.transport.EXPECT().FetchMessage(gomock.Any(), *ref).
			Return(domain.QuotedMessage{AuthorName: "Bot", Content: "only you can see this", Ephemeral: true}, nil)
		f.expectFirstHandle("wh-1")
		f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
				req.Equal("hello", msg.Content)
				return "msg-1", nil
			})
		f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

		f.service.Dispatch(ctx, domain.DispatchRequest{RawContent: "nova: hello", AuthorID: "U", ChannelID: channelID, ReplyTo: ref})
	})

	t.Run("should cut the quoted content to 200 characters", func(t *testing.T) {
		quote := FormatQuote(domain.QuotedMessage{AuthorName: "Ash", Content: strings.Repeat("é", 300)})
		require.Equal(t, "> Ash: "+strings.Repeat("é", 200)+"\n", quote)
	})
}

func TestDispatchService_Censor(t *testing.T) {
	req := require.New(t)
	moderator, err := moderation.NewModerator([]string{"darn"}, '*', logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)
	f := newFixture(t, DispatchConfig{}, moderator)
	f.expectFirstHandle("wh-1")
	f.transport.EXPECT().SendAsPersona(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.RemoteHandle, msg domain.OutboundMessage) (string, error) {
			req.Equal("well **** it", msg.Content)
			return "msg-1", nil
		})
	f.store.EXPECT().RecordProvenance(gomock.Any(), "U", "msg-1").Return(nil)

	f.service.Dispatch(context.Background(), domain.DispatchRequest{RawContent: "nova: well darn it", AuthorID: "U", ChannelID: channelID})
}

func TestDispatchService_Lookups(t *testing.T) {
	req := require.New(t)
	vex := domain.Persona{Selectors: []string{"vex"}, Name: "Vex", AvatarURL: "https://cdn.example.org/vex.png", RestrictedUsers: []string{"42"}}
	f := newFixture(t, DispatchConfig{}, nil, novaPersona(), vex)

	req.Equal([]domain.PersonaListing{{Name: "Nova", Selectors: []string{"nova", "n"}}}, f.service.ListAvailablePersonas("99"))
	req.Len(f.service.ListAvailablePersonas("42"), 2)

	p, ok := f.service.FindPersona("VEX", "42")
	req.True(ok)
	req.Equal("Vex", p.Name)
	_, ok = f.service.FindPersona("vex", "99")
	req.False(ok)
}
