package persona

import (
	"fmt"
	"persona-relay/domain"
	"persona-relay/errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type IRegistry interface {
	Find(selector, userID string) (domain.Persona, bool)
	ListAvailable(userID string) []domain.Persona
}

// Registry is the read-only table of personas built once at startup.
// It is safe for concurrent use because nothing mutates it after NewRegistry.
type Registry struct {
	personas   []domain.Persona
	bySelector map[string]int
}

// NewRegistry validates every persona and indexes its selectors.
// A selector claimed by two personas is a fatal configuration error.
func NewRegistry(personas []domain.Persona) (*Registry, error) {
	r := &Registry{
		personas:   make([]domain.Persona, 0, len(personas)),
		bySelector: make(map[string]int),
	}
	for i, p := range personas {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: persona #%d (%q): %v", errors.ErrInvalidPersona, i, p.Name, err)
		}
		for _, s := range p.Selectors {
			key := normalize(s)
			if key == "" {
				return nil, fmt.Errorf("%w: persona %q has a blank selector", errors.ErrInvalidPersona, p.Name)
			}
			if owner, taken := r.bySelector[key]; taken {
				return nil, fmt.Errorf("%w: %q used by %q and %q",
					errors.ErrDuplicateSelector, s, r.personas[owner].Name, p.Name)
			}
			r.bySelector[key] = len(r.personas)
		}
		r.personas = append(r.personas, clone(p))
	}
	return r, nil
}

// Find resolves a selector for a user.
// A persona the user may not use is reported exactly like an unknown one.
func (r *Registry) Find(selector, userID string) (domain.Persona, bool) {
	idx, ok := r.bySelector[normalize(selector)]
	if !ok {
		return domain.Persona{}, false
	}
	p := r.personas[idx]
	if !p.Allows(userID) {
		return domain.Persona{}, false
	}
	return p, true
}

// ListAvailable returns the personas a user may use, in registry order.
func (r *Registry) ListAvailable(userID string) []domain.Persona {
	return lo.Filter(r.personas, func(p domain.Persona, _ int) bool {
		return p.Allows(userID)
	})
}

// Len returns the number of registered personas.
func (r *Registry) Len() int {
	return len(r.personas)
}

func normalize(selector string) string {
	return strings.ToLower(strings.TrimSpace(selector))
}

func clone(p domain.Persona) domain.Persona {
	p.Selectors = append([]string(nil), p.Selectors...)
	if p.RestrictedUsers != nil {
		p.RestrictedUsers = append([]string{}, p.RestrictedUsers...)
	}
	return p
}
