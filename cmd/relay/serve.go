package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"persona-relay/contract"
	"persona-relay/enrichment"
	"persona-relay/infrastructure/codec"
	"persona-relay/infrastructure/discord"
	"persona-relay/infrastructure/fetch"
	"persona-relay/infrastructure/storage"
	"persona-relay/internal"
	"persona-relay/moderation"
	"persona-relay/observability"
	"persona-relay/persona"
	"persona-relay/runtime/workers"
	"persona-relay/services"
	"persona-relay/webhook"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const (
	debugEndpoint = "/inspect"
	intents       = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent
)

func newServeCommand(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to the gateway and relay messages until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := internal.LoadConfig(*envFiles...)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			code, err := run(ctx, config)
			if err != nil {
				return &exitError{code: code, err: err}
			}
			return nil
		},
	}
}

// run wires every component and blocks until ctx is cancelled.
// Deferred cleanups run before the exit code reaches main.
func run(ctx context.Context, config internal.Config) (int, error) {
	// 1. Logger
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Static data: personas, banned words, emoji images
	registry, err := persona.Load(config.PersonasFile)
	if err != nil {
		return exitConfig, fmt.Errorf("persona registry: %w", err)
	}
	words, err := moderation.LoadWords(config.BannedWordsFile)
	if err != nil {
		return exitConfig, err
	}
	censorChar, err := internal.CharacterRune(config.CensorChar)
	if err != nil {
		return exitConfig, err
	}
	censor, err := moderation.NewModerator(words, censorChar, log)
	if err != nil {
		return exitConfig, err
	}
	emojiMap, err := enrichment.LoadEmojiMap(config.EmojiMapFile)
	if err != nil {
		return exitConfig, err
	}

	// 3. Store
	store, err := storage.Open(storage.Options{
		Driver:         config.StoreDriver,
		BadgerFilepath: config.BadgerFilepath,
		SQLiteFilepath: config.SQLiteFilepath,
		ProvenanceTTL:  config.ProvenanceTTL,
	}, log)
	if err != nil {
		return exitRuntime, fmt.Errorf("store opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing store...")
		_ = store.Close()
	}()

	// 4. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return exitRuntime, err
	}

	// 5. Transport and core services
	session, err := discordgo.New("Bot " + config.DiscordToken)
	if err != nil {
		return exitConfig, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = intents

	fetcher := fetch.NewFetcher(config.FetchTimeout, config.FetchMaxBytes, log)
	transport := discord.NewTransport(session, fetcher, log)
	var converter contract.IStickerConverter
	if config.LottieCodecPath != "" {
		converter = codec.NewLottieConverter(config.LottieCodecPath, config.FetchTimeout, log)
	}
	resolver := enrichment.NewResolver(transport, converter, emojiMap, log)
	cache := webhook.NewCache(transport, fetcher, log, metrics, config.HandleLimit, config.HandlePrefix)

	dispatcher := services.NewDispatchService(registry, cache, resolver, transport, store, censor, log, metrics,
		services.DispatchConfig{
			SceneSelector:      config.SceneSelector,
			ChunkLimit:         config.ChunkLimit,
			EnabledChannels:    config.Channels(),
			RateLimitPerMinute: config.RateLimitPerMinute,
		})
	preferences := services.NewPreferenceService(store, registry, log)
	retraction := services.NewRetractionService(store, transport, log)

	listener := discord.NewListener(dispatcher, retraction, transport, log, config.RequestTimeout)
	commands := discord.NewCommandHandler(dispatcher, preferences, log, config.RequestTimeout)
	session.AddHandler(listener.OnMessageCreate)
	session.AddHandler(listener.OnReactionAdd)
	session.AddHandler(commands.OnInteractionCreate)

	// 6. Supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewGatewayWorker(log, session, registerCommands(session, log)),
		workers.NewMetricsServerWorker(log, config.MetricsPort, reg),
		workers.NewProcessMetricsWorker(log, metrics, config.MetricInterval),
	)
	if badgerStore, ok := store.(*storage.BadgerStore); ok {
		sup.Add(workers.NewStoreGCWorker(log, badgerStore, config.GCInterval))
		if log.Enabled(ctx, slog.LevelDebug) && config.DebugPort > 0 {
			url := fmt.Sprintf("http://localhost:%d%s", config.DebugPort, debugEndpoint)
			log.Info("Debug Badger inspector available", "url", url)
			database.StartDebugServer(badgerStore.DB(), config.DebugPort, debugEndpoint, storage.InspectMapper)
		}
	}

	log.Info("Relay starting", "personas", registry.Len(), "channels", config.Channels())
	sup.Run(ctx)
	log.Info("Relay stopped")
	return exitOK, nil
}

func registerCommands(session *discordgo.Session, log *slog.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if session.State == nil || session.State.User == nil {
			return fmt.Errorf("gateway session has no user")
		}
		registered, err := session.ApplicationCommandBulkOverwrite(session.State.User.ID, "",
			discord.Commands(), discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("register commands: %w", err)
		}
		log.Info("Commands registered", "count", len(registered))
		return nil
	}
}
