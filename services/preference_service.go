package services

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/contract"
	"persona-relay/domain"
	"persona-relay/errors"
	"persona-relay/persona"
	"strings"
)

type IPreferenceService interface {
	SetDefault(ctx context.Context, userID, selector string) (domain.Persona, bool, error)
	UnsetDefault(ctx context.Context, userID string) error
	Default(ctx context.Context, userID string) (*string, error)
}

// PreferenceService manages the default selector used when a message does
// not name a persona.
type PreferenceService struct {
	store    contract.IStore
	registry persona.IRegistry
	log      *slog.Logger
}

func NewPreferenceService(store contract.IStore, registry persona.IRegistry, log *slog.Logger) *PreferenceService {
	return &PreferenceService{store: store, registry: registry, log: log}
}

// SetDefault stores selector even when it resolves to no persona the user
// may use, and reports the resolved persona so the caller can warn.
func (s *PreferenceService) SetDefault(ctx context.Context, userID, selector string) (domain.Persona, bool, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return domain.Persona{}, false, errors.ErrEmptySelector
	}
	if s.store == nil {
		return domain.Persona{}, false, errors.ErrStoreUnavailable
	}
	if err := s.store.SetDefaultSelector(ctx, userID, selector); err != nil {
		return domain.Persona{}, false, fmt.Errorf("storing default selector: %w", err)
	}
	p, ok := s.registry.Find(selector, userID)
	s.log.Debug("Default selector set", "author", userID, "selector", selector, "resolved", ok)
	return p, ok, nil
}

func (s *PreferenceService) UnsetDefault(ctx context.Context, userID string) error {
	if s.store == nil {
		return errors.ErrStoreUnavailable
	}
	if err := s.store.UnsetDefaultSelector(ctx, userID); err != nil {
		return fmt.Errorf("removing default selector: %w", err)
	}
	return nil
}

func (s *PreferenceService) Default(ctx context.Context, userID string) (*string, error) {
	if s.store == nil {
		return nil, errors.ErrStoreUnavailable
	}
	return s.store.GetDefaultSelector(ctx, userID)
}
