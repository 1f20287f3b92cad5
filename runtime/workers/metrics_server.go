package workers

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// MetricsServerWorker exposes the gatherer on /metrics.
type MetricsServerWorker struct {
	log      *slog.Logger
	addr     string
	gatherer prometheus.Gatherer
	// ready receives the bound address once the listener is up.
	ready chan string
}

func NewMetricsServerWorker(log *slog.Logger, port int, gatherer prometheus.Gatherer) *MetricsServerWorker {
	addr := ""
	if port > 0 {
		addr = fmt.Sprintf(":%d", port)
	}
	return &MetricsServerWorker{log: log, addr: addr, gatherer: gatherer, ready: make(chan string, 1)}
}

func (w *MetricsServerWorker) Run(ctx context.Context) error {
	if w.addr == "" {
		w.log.Debug("Metrics server disabled")
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(w.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})

	ln, err := net.Listen("tcp", w.addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	w.log.Info("Metrics server listening", "addr", ln.Addr().String())
	select {
	case w.ready <- ln.Addr().String():
	default:
	}

	errs := make(chan error, 1)
	go func() { errs <- srv.Serve(ln) }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
