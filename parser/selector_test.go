package parser

import (
	"persona-relay/domain"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		expected Result
	}{
		{
			name:     "selector and payload",
			input:    Input{Text: "nova: hello world"},
			expected: Result{Kind: KindPersona, Selector: "nova", Payload: "hello world"},
		},
		{
			name:     "spaces around selector",
			input:    Input{Text: "   n   :   hi  "},
			expected: Result{Kind: KindPersona, Selector: "n", Payload: "hi"},
		},
		{
			name:     "payload spanning lines",
			input:    Input{Text: "nova: first\nsecond\nthird"},
			expected: Result{Kind: KindPersona, Selector: "nova", Payload: "first\nsecond\nthird"},
		},
		{
			name:     "upper case selector is kept as typed",
			input:    Input{Text: "NOVA: hey"},
			expected: Result{Kind: KindPersona, Selector: "NOVA", Payload: "hey"},
		},
		{
			name:     "only the first colon separates",
			input:    Input{Text: "nova: time is 10:30"},
			expected: Result{Kind: KindPersona, Selector: "nova", Payload: "time is 10:30"},
		},
		{
			name:     "url without default is rejected",
			input:    Input{Text: "https://a.b:80"},
			expected: Result{Kind: KindRejected, Reason: domain.ReasonMissingSelector},
		},
		{
			name:     "url with default becomes payload",
			input:    Input{Text: "https://a.b:80", DefaultSelector: lo.ToPtr("nova")},
			expected: Result{Kind: KindPersona, Selector: "nova", Payload: "https://a.b:80"},
		},
		{
			name:     "empty selector is rejected",
			input:    Input{Text: "  :hello"},
			expected: Result{Kind: KindRejected, Reason: domain.ReasonMissingSelector},
		},
		{
			name:     "no colon uses default",
			input:    Input{Text: "no colon here", DefaultSelector: lo.ToPtr("nova")},
			expected: Result{Kind: KindPersona, Selector: "nova", Payload: "no colon here"},
		},
		{
			name:     "no colon without default",
			input:    Input{Text: "no colon here"},
			expected: Result{Kind: KindRejected, Reason: domain.ReasonMissingSelector},
		},
		{
			name:     "blank default counts as missing",
			input:    Input{Text: "hello", DefaultSelector: lo.ToPtr("  ")},
			expected: Result{Kind: KindRejected, Reason: domain.ReasonMissingSelector},
		},
		{
			name:     "empty text with default is empty",
			input:    Input{Text: "", DefaultSelector: lo.ToPtr("nova")},
			expected: Result{Kind: KindRejected, Reason: domain.ReasonEmptyMessage},
		},
		{
			name:     "selector with empty payload",
			input:    Input{Text: "nova:   "},
			expected: Result{Kind: KindRejected, Reason: domain.ReasonEmptyMessage},
		},
		{
			name:     "media only with default",
			input:    Input{Text: "", DefaultSelector: lo.ToPtr("nova"), HasMedia: true},
			expected: Result{Kind: KindPersona, Selector: "nova", Payload: ""},
		},
		{
			name:     "media only with explicit selector",
			input:    Input{Text: "nova:", HasMedia: true},
			expected: Result{Kind: KindPersona, Selector: "nova", Payload: ""},
		},
		{
			name:     "scene directive",
			input:    Input{Text: "Scene: the lights go out"},
			expected: Result{Kind: KindScene, Payload: "the lights go out"},
		},
		{
			name:     "scene directive from default",
			input:    Input{Text: "the lights go out", DefaultSelector: lo.ToPtr("scene")},
			expected: Result{Kind: KindScene, Payload: "the lights go out"},
		},
		{
			name:     "selector with dash and underscore",
			input:    Input{Text: "old-nova_2: hi"},
			expected: Result{Kind: KindPersona, Selector: "old-nova_2", Payload: "hi"},
		},
		{
			name:     "sentence with colon is not a selector",
			input:    Input{Text: "look at this: wow", DefaultSelector: lo.ToPtr("nova")},
			expected: Result{Kind: KindPersona, Selector: "nova", Payload: "look at this: wow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Parse(tt.input, DefaultSceneSelector))
		})
	}
}

func TestParse_WordSelectorProperty(t *testing.T) {
	req := require.New(t)
	words := []string{"a", "nova", "n", "x-1", "under_score", "ABC"}
	rests := []string{"", " hi", "hello : world ", "\nline\n", "  spaced  "}
	for _, w := range words {
		for _, rest := range rests {
			for _, pad := range []string{"", "  ", "\t"} {
				input := pad + w + pad + ":" + rest
				selector, payload, explicit := Split(input)
				req.True(explicit, input)
				req.Equal(w, selector, input)
				req.Equal(strings.TrimSpace(rest), payload, input)
			}
		}
	}
}

func TestExplicit(t *testing.T) {
	t.Run("should accept command arguments", func(t *testing.T) {
		require.Equal(t,
			Result{Kind: KindPersona, Selector: "nova", Payload: "hi"},
			Explicit(" nova ", " hi ", false, DefaultSceneSelector))
	})
	t.Run("should reject blank selector", func(t *testing.T) {
		require.Equal(t, domain.ReasonMissingSelector, Explicit("", "hi", false, DefaultSceneSelector).Reason)
	})
	t.Run("should reject empty payload", func(t *testing.T) {
		require.Equal(t, domain.ReasonEmptyMessage, Explicit("nova", "", false, DefaultSceneSelector).Reason)
	})
	t.Run("should not treat scene specially when disabled", func(t *testing.T) {
		require.Equal(t, KindPersona, Explicit("scene", "hi", false, "").Kind)
	})
}
