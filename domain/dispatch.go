package domain

import "github.com/google/uuid"

// MessageRef locates a message on the transport.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// QuotedMessage is the part of a replied-to message needed to quote it.
type QuotedMessage struct {
	AuthorName string
	Content    string
	Ephemeral  bool
}

// DispatchRequest is created per inbound event or command and dropped once handled.
// Selector is set by the command path; the passive path leaves it empty and
// lets RawContent carry the "selector: payload" form.
type DispatchRequest struct {
	ID          uuid.UUID
	Selector    string
	RawContent  string
	AuthorID    string
	ChannelID   string
	ReplyTo     *MessageRef
	Attachments []File
	Stickers    []StickerRef
}

// HasMedia reports whether the request carries something besides text.
func (r DispatchRequest) HasMedia() bool {
	return len(r.Attachments) > 0 || len(r.Stickers) > 0
}

// OutboundMessage is one persona-voiced send.
type OutboundMessage struct {
	Content   string
	Username  string
	AvatarURL string
	Files     []File
}

type Outcome int

const (
	Completed Outcome = iota + 1
	Rejected
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type RejectReason string

const (
	ReasonNone            RejectReason = ""
	ReasonMissingSelector RejectReason = "missing-selector"
	ReasonEmptyMessage    RejectReason = "empty-message"
	ReasonPersonaNotFound RejectReason = "persona-not-found"
	ReasonChannelDisabled RejectReason = "channel-disabled"
	ReasonRateLimited     RejectReason = "rate-limited"
)

type DeliveredChunk struct {
	Index     int
	MessageID string
}

type ChunkFailure struct {
	Index int
	Err   error
}

// DispatchResult is reported to the caller instead of raising errors, so the
// command responder and the passive listener can render their own feedback.
type DispatchResult struct {
	RequestID uuid.UUID
	Outcome   Outcome
	Reason    RejectReason
	Err       error
	Persona   *Persona
	Scene     bool
	Chunks    int
	Delivered []DeliveredChunk
	Failures  []ChunkFailure
}

// Partial reports a failed dispatch that still produced messages.
func (r DispatchResult) Partial() bool {
	return r.Outcome == Failed && len(r.Delivered) > 0
}

// MessageIDs lists produced message identifiers in chunk order.
func (r DispatchResult) MessageIDs() []string {
	ids := make([]string, 0, len(r.Delivered))
	for _, d := range r.Delivered {
		ids = append(ids, d.MessageID)
	}
	return ids
}
