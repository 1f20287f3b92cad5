package workers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeCollector struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCollector) CollectGarbage(float64) (int, error) {
	f.calls.Add(1)
	return 1, f.err
}

type fakeGauges struct {
	mu      sync.Mutex
	samples []processSample
}

func (f *fakeGauges) ProcessSample(rss uint64, cpu float64, threads int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = append(f.samples, processSample{rss: rss, cpu: cpu, threads: threads})
}

func (f *fakeGauges) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.samples)
}

type fakeSession struct {
	openErr error
	opened  atomic.Bool
	closed  atomic.Bool
}

func (f *fakeSession) Open() error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened.Store(true)
	return nil
}

func (f *fakeSession) Close() error {
	f.closed.Store(true)
	return nil
}

func TestStoreGCWorker(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should collect on every tick until cancelled", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		req := require.New(t)
		store := &fakeCollector{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- NewStoreGCWorker(log, store, 5*time.Millisecond).Run(ctx) }()

		req.Eventually(func() bool { return store.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		cancel()
		req.NoError(<-done)
	})

	t.Run("should return the collection error so the worker restarts", func(t *testing.T) {
		req := require.New(t)
		store := &fakeCollector{err: fmt.Errorf("value log corrupted")}
		err := NewStoreGCWorker(log, store, time.Millisecond).Run(context.Background())
		req.EqualError(err, "value log corrupted")
	})

	t.Run("should finish at once when disabled", func(t *testing.T) {
		req := require.New(t)
		req.NoError(NewStoreGCWorker(log, &fakeCollector{}, 0).Run(context.Background()))
		req.NoError(NewStoreGCWorker(log, nil, time.Second).Run(context.Background()))
	})
}

func TestProcessMetricsWorker(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should publish samples and skip failed ones", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		req := require.New(t)
		gauges := &fakeGauges{}
		w := NewProcessMetricsWorker(log, gauges, 5*time.Millisecond)
		var n atomic.Int32
		w.sample = func() (processSample, error) {
			if n.Add(1)%2 == 0 {
				return processSample{}, fmt.Errorf("process gone")
			}
			return processSample{rss: 1024, cpu: 1.5, threads: 4}, nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		req.Eventually(func() bool { return gauges.count() >= 2 }, time.Second, 5*time.Millisecond)
		cancel()
		req.NoError(<-done)
		req.Equal((int(n.Load())+1)/2, gauges.count())
		req.Equal(processSample{rss: 1024, cpu: 1.5, threads: 4}, gauges.samples[0])
	})

	t.Run("should sample the current process", func(t *testing.T) {
		req := require.New(t)
		s, err := NewProcessMetricsWorker(log, &fakeGauges{}, time.Second).sample()
		req.NoError(err)
		req.Positive(s.rss)
		req.Positive(s.threads)
	})
}

func TestGatewayWorker(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should open, run the hook and close on cancel", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		req := require.New(t)
		session := &fakeSession{}
		hooked := make(chan struct{})
		w := NewGatewayWorker(log, session, func(ctx context.Context) error {
			close(hooked)
			return nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		<-hooked
		req.True(session.opened.Load())
		req.False(session.closed.Load())
		cancel()
		req.NoError(<-done)
		req.True(session.closed.Load())
	})

	t.Run("should fail when the connection cannot open", func(t *testing.T) {
		req := require.New(t)
		session := &fakeSession{openErr: fmt.Errorf("invalid token")}
		err := NewGatewayWorker(log, session, nil).Run(context.Background())
		req.EqualError(err, "invalid token")
		req.False(session.closed.Load())
	})

	t.Run("should close the connection when the hook fails", func(t *testing.T) {
		req := require.New(t)
		session := &fakeSession{}
		err := NewGatewayWorker(log, session, func(context.Context) error {
			return fmt.Errorf("command registration refused")
		}).Run(context.Background())
		req.EqualError(err, "command registration refused")
		req.True(session.closed.Load())
	})
}

func TestMetricsServerWorker(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should serve the registry until cancelled", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		req := require.New(t)
		reg := prometheus.NewRegistry()
		counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "relay_test_total", Help: "test"})
		reg.MustRegister(counter)
		counter.Inc()

		w := NewMetricsServerWorker(log, 1, reg)
		w.addr = "127.0.0.1:0"
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()
		addr := <-w.ready

		client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
		resp, err := client.Get("http://" + addr + "/metrics")
		req.NoError(err)
		body, err := io.ReadAll(resp.Body)
		req.NoError(err)
		req.NoError(resp.Body.Close())
		req.Contains(string(body), "relay_test_total 1")

		cancel()
		req.NoError(<-done)
	})

	t.Run("should finish at once without a port", func(t *testing.T) {
		req := require.New(t)
		req.NoError(NewMetricsServerWorker(log, 0, prometheus.NewRegistry()).Run(context.Background()))
	})
}
