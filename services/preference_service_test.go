package services

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/domain"
	"persona-relay/errors"
	"persona-relay/mocks"
	"persona-relay/persona"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPreferenceService(t *testing.T) {
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry, err := persona.NewRegistry([]domain.Persona{novaPersona("42")})
	require.NoError(t, err)

	t.Run("should store the selector and report the persona", func(t *testing.T) {
		req := require.New(t)
		store := mocks.NewMockIStore(gomock.NewController(t))
		store.EXPECT().SetDefaultSelector(gomock.Any(), "42", "n").Return(nil)

		p, ok, err := NewPreferenceService(store, registry, log).SetDefault(ctx, "42", "  n ")
		req.NoError(err)
		req.True(ok)
		req.Equal("Nova", p.Name)
	})

	t.Run("should store a selector the user cannot use yet", func(t *testing.T) {
		req := require.New(t)
		store := mocks.NewMockIStore(gomock.NewController(t))
		store.EXPECT().SetDefaultSelector(gomock.Any(), "99", "nova").Return(nil)

		_, ok, err := NewPreferenceService(store, registry, log).SetDefault(ctx, "99", "nova")
		req.NoError(err)
		req.False(ok)
	})

	t.Run("should refuse an empty selector", func(t *testing.T) {
		store := mocks.NewMockIStore(gomock.NewController(t))
		_, _, err := NewPreferenceService(store, registry, log).SetDefault(ctx, "42", " ")
		require.ErrorIs(t, err, errors.ErrEmptySelector)
	})

	t.Run("should wrap store failures", func(t *testing.T) {
		req := require.New(t)
		store := mocks.NewMockIStore(gomock.NewController(t))
		store.EXPECT().SetDefaultSelector(gomock.Any(), "42", "nova").Return(errors.ErrStoreUnavailable)
		store.EXPECT().UnsetDefaultSelector(gomock.Any(), "42").Return(fmt.Errorf("closed"))
		service := NewPreferenceService(store, registry, log)

		_, _, err := service.SetDefault(ctx, "42", "nova")
		req.ErrorIs(err, errors.ErrStoreUnavailable)
		req.ErrorContains(service.UnsetDefault(ctx, "42"), "closed")
	})

	t.Run("should read the stored default", func(t *testing.T) {
		req := require.New(t)
		store := mocks.NewMockIStore(gomock.NewController(t))
		def := "nova"
		store.EXPECT().GetDefaultSelector(gomock.Any(), "42").Return(&def, nil)

		got, err := NewPreferenceService(store, registry, log).Default(ctx, "42")
		req.NoError(err)
		req.Equal("nova", *got)
	})

	t.Run("should report a missing store", func(t *testing.T) {
		req := require.New(t)
		service := NewPreferenceService(nil, registry, log)

		_, _, err := service.SetDefault(ctx, "42", "nova")
		req.ErrorIs(err, errors.ErrStoreUnavailable)
		req.ErrorIs(service.UnsetDefault(ctx, "42"), errors.ErrStoreUnavailable)
		_, err = service.Default(ctx, "42")
		req.ErrorIs(err, errors.ErrStoreUnavailable)
	})
}
