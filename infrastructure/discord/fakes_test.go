package discord

import (
	"context"
	"persona-relay/domain"
	"persona-relay/services"
	"sync"
	"time"
)

type fakeDispatcher struct {
	mu       sync.Mutex
	enabled  map[string]bool
	result   domain.DispatchResult
	requests []domain.DispatchRequest
	listings []domain.PersonaListing
}

func (f *fakeDispatcher) Dispatch(_ context.Context, req domain.DispatchRequest) domain.DispatchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	res := f.result
	res.RequestID = req.ID
	return res
}

func (f *fakeDispatcher) ListAvailablePersonas(string) []domain.PersonaListing { return f.listings }

func (f *fakeDispatcher) FindPersona(string, string) (domain.Persona, bool) {
	return domain.Persona{}, false
}

func (f *fakeDispatcher) ChannelEnabled(channelID string) bool { return f.enabled[channelID] }

type retractCall struct {
	userID string
	ref    domain.MessageRef
	emoji  string
}

type fakeRetraction struct {
	calls   []retractCall
	outcome services.Retraction
	err     error
}

func (f *fakeRetraction) Retract(_ context.Context, userID string, ref domain.MessageRef, emoji string) (services.Retraction, error) {
	f.calls = append(f.calls, retractCall{userID: userID, ref: ref, emoji: emoji})
	return f.outcome, f.err
}

type fakePreferences struct {
	persona domain.Persona
	found   bool
	err     error
	def     *string
	set     []string
	unsets  int
}

func (f *fakePreferences) SetDefault(_ context.Context, _ string, selector string) (domain.Persona, bool, error) {
	f.set = append(f.set, selector)
	return f.persona, f.found, f.err
}

func (f *fakePreferences) UnsetDefault(context.Context, string) error {
	f.unsets++
	return f.err
}

func (f *fakePreferences) Default(context.Context, string) (*string, error) { return f.def, f.err }

type transient struct {
	channelID string
	text      string
	ttl       time.Duration
}

type fakeOps struct {
	deleted    []domain.MessageRef
	transients []transient
	content    map[string][]byte
	deleteErr  error
}

func (f *fakeOps) DeleteMessage(_ context.Context, ref domain.MessageRef) error {
	f.deleted = append(f.deleted, ref)
	return f.deleteErr
}

func (f *fakeOps) SendTransient(_ context.Context, channelID, text string, ttl time.Duration) error {
	f.transients = append(f.transients, transient{channelID: channelID, text: text, ttl: ttl})
	return nil
}

func (f *fakeOps) FetchContent(_ context.Context, url string) ([]byte, error) {
	data, ok := f.content[url]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return data, nil
}
