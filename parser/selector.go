// Package parser turns raw chat input into a persona selector and a payload.
package parser

import (
	"persona-relay/domain"
	"regexp"
	"strings"
)

// DefaultSceneSelector is the reserved selector that produces a scene message.
const DefaultSceneSelector = "scene"

var selectorPattern = regexp.MustCompile(`(?is)^\s*([a-z0-9\-_]+?)\s*:(.*)$`)

type Kind int

const (
	KindRejected Kind = iota
	KindPersona
	KindScene
)

// Result is the outcome of parsing. Selector is only set for KindPersona
// and Reason only for KindRejected.
type Result struct {
	Kind     Kind
	Selector string
	Payload  string
	Reason   domain.RejectReason
}

type Input struct {
	Text            string
	DefaultSelector *string
	HasMedia        bool
}

// Parse applies the "selector: payload" grammar.
// The URL guard runs before the default selector is substituted, and the
// empty message check runs after it, so a media-only message with a default
// selector is accepted.
func Parse(in Input, scene string) Result {
	selector, payload, explicit := Split(in.Text)
	if !explicit {
		if in.DefaultSelector == nil || strings.TrimSpace(*in.DefaultSelector) == "" {
			return reject(domain.ReasonMissingSelector)
		}
		selector = strings.TrimSpace(*in.DefaultSelector)
	}
	return resolve(selector, payload, in.HasMedia, scene)
}

// Explicit builds a result for callers that already know the selector,
// such as a slash command with separate arguments.
func Explicit(selector, payload string, hasMedia bool, scene string) Result {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return reject(domain.ReasonMissingSelector)
	}
	return resolve(selector, strings.TrimSpace(payload), hasMedia, scene)
}

// Split extracts an explicit selector from text.
// When explicit is false the whole trimmed text is the payload.
func Split(text string) (selector, payload string, explicit bool) {
	trimmed := strings.TrimSpace(text)
	m := selectorPattern.FindStringSubmatch(trimmed)
	if m == nil || looksLikeURL(m[1]) {
		return "", trimmed, false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// HasExplicitSelector reports whether text names its selector itself.
func HasExplicitSelector(text string) bool {
	_, _, explicit := Split(text)
	return explicit
}

func resolve(selector, payload string, hasMedia bool, scene string) Result {
	if payload == "" && !hasMedia {
		return reject(domain.ReasonEmptyMessage)
	}
	if scene != "" && strings.EqualFold(selector, scene) {
		return Result{Kind: KindScene, Payload: payload}
	}
	return Result{Kind: KindPersona, Selector: selector, Payload: payload}
}

func looksLikeURL(selector string) bool {
	return strings.HasPrefix(strings.ToLower(selector), "http")
}

func reject(reason domain.RejectReason) Result {
	return Result{Kind: KindRejected, Reason: reason}
}
