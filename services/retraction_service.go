package services

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/contract"
	"persona-relay/domain"

	"github.com/samber/lo"
)

// RemovalEmojis are the reactions that ask for a relayed message to be removed.
var RemovalEmojis = []string{"❌", ":x:"}

type Retraction int

const (
	// RetractionIgnored means the reaction is not a removal request.
	RetractionIgnored Retraction = iota
	RetractionDeleted
	RetractionDenied
)

type IRetractionService interface {
	Retract(ctx context.Context, userID string, ref domain.MessageRef, emoji string) (Retraction, error)
}

// RetractionService lets authors delete the messages relayed on their behalf.
type RetractionService struct {
	store     contract.IStore
	messenger contract.IMessenger
	log       *slog.Logger
}

func NewRetractionService(store contract.IStore, messenger contract.IMessenger, log *slog.Logger) *RetractionService {
	return &RetractionService{store: store, messenger: messenger, log: log}
}

// Retract deletes the message when the reacting user authored it. Any other
// removal reaction is taken back so the channel stays clean.
func (s *RetractionService) Retract(ctx context.Context, userID string, ref domain.MessageRef, emoji string) (Retraction, error) {
	if !lo.Contains(RemovalEmojis, emoji) {
		return RetractionIgnored, nil
	}
	owned, err := s.store.HasProvenance(ctx, userID, ref.MessageID)
	if err != nil {
		return RetractionIgnored, fmt.Errorf("checking provenance: %w", err)
	}
	if !owned {
		if err := s.messenger.RemoveReaction(ctx, ref, emoji, userID); err != nil {
			s.log.Warn("Removing reaction failed", "message", ref.MessageID, "author", userID, "error", err)
		}
		return RetractionDenied, nil
	}
	if err := s.messenger.DeleteMessage(ctx, ref); err != nil {
		return RetractionIgnored, fmt.Errorf("deleting message %s: %w", ref.MessageID, err)
	}
	s.log.Info("Relayed message retracted", "message", ref.MessageID, "author", userID)
	return RetractionDeleted, nil
}
