package workers

import (
	"context"
	"log/slog"
)

type gatewaySession interface {
	Open() error
	Close() error
}

// GatewayWorker keeps the chat gateway connection open until the context ends.
// onOpen runs after every successful connection, typically to register commands.
type GatewayWorker struct {
	log     *slog.Logger
	session gatewaySession
	onOpen  func(ctx context.Context) error
}

func NewGatewayWorker(log *slog.Logger, session gatewaySession, onOpen func(ctx context.Context) error) *GatewayWorker {
	return &GatewayWorker{log: log, session: session, onOpen: onOpen}
}

func (w *GatewayWorker) Run(ctx context.Context) error {
	if err := w.session.Open(); err != nil {
		return err
	}
	w.log.Info("Gateway connected")
	defer func() {
		if err := w.session.Close(); err != nil {
			w.log.Warn("Gateway close failed", "error", err)
		}
	}()
	if w.onOpen != nil {
		if err := w.onOpen(ctx); err != nil {
			return err
		}
	}
	<-ctx.Done()
	w.log.Info("Gateway disconnecting")
	return nil
}
