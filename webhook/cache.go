// Package webhook keeps one reusable delivery handle per persona and channel.
package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/contract"
	"persona-relay/domain"
	"persona-relay/errors"
	"persona-relay/observability"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samber/lo"
)

const (
	DefaultLimit  = 15
	DefaultPrefix = "RP:"
	maxNameLength = 80
)

type IHandleCache interface {
	GetOrCreate(ctx context.Context, channelID string, persona domain.Persona) (domain.DeliveryHandle, error)
	Invalidate(channelID, personaName string)
}

type avatarSource interface {
	FetchContent(ctx context.Context, url string) ([]byte, error)
}

// channelEntry is the cache of a single channel. Its mutex covers the whole
// lookup, eviction, creation and insertion sequence, and the one-time
// population. The lru recency order is the most-recently-used order.
// Entries are keyed by the remote handle name, so a handle found after a
// restart is matched the same way it was named, truncation included.
type channelEntry struct {
	mu        sync.Mutex
	populated bool
	handles   *lru.Cache[string, domain.DeliveryHandle]
}

// Cache hands out delivery handles, creating them lazily and evicting the
// least recently used one when a channel reaches its limit.
type Cache struct {
	transport contract.IHandleTransport
	avatars   avatarSource
	log       *slog.Logger
	metrics   *observability.Metrics
	limit     int
	prefix    string
	now       func() time.Time

	mu       sync.Mutex
	channels map[string]*channelEntry
}

func NewCache(transport contract.IHandleTransport, avatars avatarSource, log *slog.Logger,
	metrics *observability.Metrics, limit int, prefix string) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{
		transport: transport,
		avatars:   avatars,
		log:       log,
		metrics:   metrics,
		limit:     max(1, limit),
		prefix:    prefix,
		now:       time.Now,
		channels:  make(map[string]*channelEntry),
	}
}

// GetOrCreate returns the handle bound to persona in channelID.
// A creation failure wraps errors.ErrHandleCreationFailed and leaves the cache
// without any entry for the persona.
func (c *Cache) GetOrCreate(ctx context.Context, channelID string, persona domain.Persona) (domain.DeliveryHandle, error) {
	if strings.TrimSpace(channelID) == "" {
		return domain.DeliveryHandle{}, fmt.Errorf("%w: empty channel id", errors.ErrChannelUnresolved)
	}
	e := c.entry(channelID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.populated {
		c.populate(ctx, channelID, e)
	}

	key := c.handleName(persona.Name)
	if h, ok := e.handles.Get(key); ok {
		h.LastUsedAt = c.now()
		e.handles.Add(key, h)
		c.metrics.CacheHit()
		c.log.Debug("Using existing handle", "channel", channelID, "persona", persona.Name, "handle", h.ID)
		return h, nil
	}
	c.metrics.CacheMiss()

	if err := ctx.Err(); err != nil {
		return domain.DeliveryHandle{}, err
	}
	if e.handles.Len() >= c.limit {
		c.evictOldest(ctx, channelID, e)
	}

	remote, err := c.transport.CreateHandle(ctx, channelID, key, c.avatar(ctx, persona))
	if err != nil {
		c.metrics.HandleCreationFailed()
		c.log.Warn("Handle creation failed", "channel", channelID, "persona", persona.Name, "error", err)
		return domain.DeliveryHandle{}, fmt.Errorf("%w: persona %q in channel %s: %v",
			errors.ErrHandleCreationFailed, persona.Name, channelID, err)
	}

	h := domain.DeliveryHandle{
		ID:          remote.ID,
		Token:       remote.Token,
		ChannelID:   channelID,
		PersonaName: persona.Name,
		LastUsedAt:  c.now(),
	}
	e.handles.Add(key, h)
	c.log.Debug("Created handle", "channel", channelID, "persona", persona.Name, "handle", h.ID)
	return h, nil
}

// Invalidate forgets the handle of a persona, typically after the transport
// reported it was removed out-of-band. Nothing is deleted remotely.
func (c *Cache) Invalidate(channelID, personaName string) {
	e := c.entry(channelID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handles.Remove(c.handleName(personaName)) {
		c.log.Debug("Invalidated handle", "channel", channelID, "persona", personaName)
	}
}

// Handles returns the cached handles of a channel, most recently used first.
func (c *Cache) Handles(channelID string) []domain.DeliveryHandle {
	e := c.entry(channelID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return lo.Reverse(e.handles.Values())
}

func (c *Cache) Limit() int {
	return c.limit
}

func (c *Cache) entry(channelID string) *channelEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.channels[channelID]
	if !ok {
		// lru.New only fails on a non-positive size, which NewCache rules out.
		handles, _ := lru.New[string, domain.DeliveryHandle](c.limit)
		e = &channelEntry{handles: handles}
		c.channels[channelID] = e
	}
	return e
}

// populate seeds the channel with the handles this bot created earlier.
// Handles are inserted oldest first so that the newest ends up most recent.
// A duplicate persona or an overflow beyond the limit is destroyed. If the
// listing fails the channel stays unpopulated and the next call retries; the
// handles created in between are then recognized by id.
func (c *Cache) populate(ctx context.Context, channelID string, e *channelEntry) {
	remotes, err := c.transport.ListHandles(ctx, channelID)
	if err != nil {
		c.log.Warn("Listing existing handles failed", "channel", channelID, "error", err)
		return
	}
	owned := lo.Filter(remotes, func(r domain.RemoteHandle, _ int) bool {
		return r.Owned && strings.HasPrefix(r.Name, c.prefix)
	})
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	c.log.Debug("Found existing handles", "channel", channelID, "total", len(remotes), "owned", len(owned))

	for _, r := range owned {
		old, dup := e.handles.Peek(r.Name)
		if dup && old.ID == r.ID {
			continue
		}
		if dup {
			e.handles.Remove(r.Name)
			c.destroy(ctx, channelID, r.Name, old)
		} else if e.handles.Len() >= c.limit {
			c.evictOldest(ctx, channelID, e)
		}
		e.handles.Add(r.Name, domain.DeliveryHandle{
			ID:          r.ID,
			Token:       r.Token,
			ChannelID:   channelID,
			PersonaName: strings.TrimPrefix(r.Name, c.prefix),
			LastUsedAt:  r.CreatedAt,
		})
	}
	e.populated = true
}

func (c *Cache) evictOldest(ctx context.Context, channelID string, e *channelEntry) {
	key, h, ok := e.handles.RemoveOldest()
	if !ok {
		return
	}
	c.metrics.CacheEviction()
	c.log.Debug("Evicting least recently used handle", "channel", channelID, "persona", h.PersonaName, "handle", h.ID)
	c.destroy(ctx, channelID, key, h)
}

// destroy asks the transport to delete a handle. Failure is only logged.
func (c *Cache) destroy(ctx context.Context, channelID, key string, h domain.DeliveryHandle) {
	if err := c.transport.DeleteHandle(ctx, h.Remote(key)); err != nil {
		c.log.Warn("Handle deletion failed", "channel", channelID, "persona", h.PersonaName, "handle", h.ID, "error", err)
	}
}

// avatar downloads the persona avatar; the handle is created without one on failure.
func (c *Cache) avatar(ctx context.Context, persona domain.Persona) []byte {
	if persona.AvatarURL == "" || c.avatars == nil {
		return nil
	}
	data, err := c.avatars.FetchContent(ctx, persona.AvatarURL)
	if err != nil {
		c.log.Warn("Avatar download failed, creating handle without avatar", "persona", persona.Name, "error", err)
		return nil
	}
	return data
}

func (c *Cache) handleName(personaName string) string {
	name := []rune(c.prefix + personaName)
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return string(name)
}
