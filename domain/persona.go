// Package domain contains core concepts of the persona relay.
// This file defines Persona identities and their access rules.
// Personas are immutable once loaded; no runtime or network logic belongs here.
package domain

import (
	"strings"

	"github.com/samber/lo"
)

// Persona is a configured identity that relayed messages are rendered as.
type Persona struct {
	Selectors       []string `yaml:"selectors" validate:"required,min=1,dive,required,max=64"`
	Name            string   `yaml:"name" validate:"required,max=80"`
	AvatarURL       string   `yaml:"avatar_url" validate:"required,url"`
	ThumbnailURL    string   `yaml:"thumbnail_url" validate:"omitempty,url"`
	RestrictedUsers []string `yaml:"restricted_users"`
}

// Canonical returns the selector shown in listings.
func (p Persona) Canonical() string {
	if len(p.Selectors) == 0 {
		return ""
	}
	return p.Selectors[0]
}

// Matches reports whether selector designates this persona, ignoring case.
func (p Persona) Matches(selector string) bool {
	return lo.ContainsBy(p.Selectors, func(s string) bool {
		return strings.EqualFold(s, selector)
	})
}

// Allows reports whether userID may speak as this persona.
// A nil restriction list means everybody may.
func (p Persona) Allows(userID string) bool {
	if p.RestrictedUsers == nil {
		return true
	}
	return lo.Contains(p.RestrictedUsers, userID)
}

// DisplayThumbnail prefers the thumbnail and falls back on the avatar.
func (p Persona) DisplayThumbnail() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	return p.AvatarURL
}

// PersonaListing is the help/autocomplete view of a persona.
type PersonaListing struct {
	Name      string
	Selectors []string
}
