package workers

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/contract"
	"persona-relay/errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultRestartDelay = 200 * time.Millisecond
	maxRestartDelay     = 30 * time.Second
)

// Supervisor runs every worker in its own goroutine, recovers panics and
// restarts failing workers with an exponential delay until the context ends.
type Supervisor struct {
	Cancel       context.CancelFunc
	wg           *sync.WaitGroup
	log          *slog.Logger
	workers      []contract.Worker
	restartDelay time.Duration
}

func NewSupervisor(log *slog.Logger, restartDelay time.Duration) *Supervisor {
	if restartDelay <= 0 {
		restartDelay = defaultRestartDelay
	}
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, restartDelay: restartDelay}
}

// Run blocks until every worker returned.
// Cancelling the parent context or calling Stop ends all of them.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.Cancel = cancel
	defer s.Cancel()

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs a worker under supervision.
// A nil return ends the worker for good, an error or a panic restarts it.
// The restart delay grows while the worker keeps failing fast and resets
// once a run outlived the maximum delay.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		delays := backoff.NewExponentialBackOff()
		delays.InitialInterval = s.restartDelay
		delays.MaxInterval = maxRestartDelay
		restarts := 0

		for {
			if ctx.Err() != nil {
				s.log.Info(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			startedAt := time.Now()
			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						s.log.Error("Worker panicked", "name", workerName, "panic", r)
						err = errors.ErrWorkerPanic
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				s.log.Info(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			if time.Since(startedAt) > maxRestartDelay {
				delays.Reset()
			}
			restarts++
			wait := delays.NextBackOff()
			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err, "restarts", restarts, "in", wait)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

// Stop cancels the supervised context, Run returns once every worker did.
func (s *Supervisor) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
}
