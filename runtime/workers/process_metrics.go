package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

type processSample struct {
	rss     uint64
	cpu     float64
	threads int32
}

type processSampler func() (processSample, error)

type processGauges interface {
	ProcessSample(rssBytes uint64, cpuPercent float64, threads int32)
}

// ProcessMetricsWorker samples the relay's own process on every tick.
type ProcessMetricsWorker struct {
	log      *slog.Logger
	metrics  processGauges
	interval time.Duration
	sample   processSampler
}

func NewProcessMetricsWorker(log *slog.Logger, metrics processGauges, interval time.Duration) *ProcessMetricsWorker {
	return &ProcessMetricsWorker{
		log:      log,
		metrics:  metrics,
		interval: interval,
		sample:   selfSampler(int32(os.Getpid())),
	}
}

func (w *ProcessMetricsWorker) Run(ctx context.Context) error {
	if w.interval <= 0 {
		w.log.Debug("Process metrics disabled")
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping process sampling")
			return nil
		case <-ticker.C:
			s, err := w.sample()
			if err != nil {
				w.log.Debug("Error while sampling process", "err", err)
				continue
			}
			w.metrics.ProcessSample(s.rss, s.cpu, s.threads)
		}
	}
}

func selfSampler(pid int32) processSampler {
	var proc *process.Process
	return func() (processSample, error) {
		if proc == nil {
			p, err := process.NewProcess(pid)
			if err != nil {
				return processSample{}, err
			}
			proc = p
		}
		mem, err := proc.MemoryInfo()
		if err != nil {
			return processSample{}, err
		}
		cpu, err := proc.CPUPercent()
		if err != nil {
			return processSample{}, err
		}
		threads, err := proc.NumThreads()
		if err != nil {
			return processSample{}, err
		}
		return processSample{rss: mem.RSS, cpu: cpu, threads: threads}, nil
	}
}
