package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thenoetrevino/tablero/internal/events"
)

// DefaultPollInterval matches the board's reconciliation cadence
const DefaultPollInterval = 3 * time.Second

// Streamer delivers server change events
type Streamer interface {
	Stream(ctx context.Context, fn func(events.Event)) error
}

// Poller reloads the full snapshot on a fixed schedule. A run that would
// overlap the previous one is skipped; the last completed run wins.
type Poller struct {
	interval time.Duration
	reload   func(context.Context) error
	logger   *slog.Logger

	cron   *cron.Cron
	job    cron.Job
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	runs   atomic.Int64

	// triggered tracks Trigger runs; mu guards stopped against new ones
	mu        sync.Mutex
	stopped   bool
	triggered sync.WaitGroup
}

// NewPoller creates a poller calling reload every interval. cron schedules
// have one-second resolution, so shorter intervals round up.
func NewPoller(interval time.Duration, reload func(context.Context) error, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		interval: interval,
		reload:   reload,
		logger:   logger,
		cron:     cron.New(cron.WithLogger(cronLogger{logger})),
		ctx:      ctx,
		cancel:   cancel,
	}
	p.job = cron.NewChain(cron.SkipIfStillRunning(cronLogger{logger})).Then(cron.FuncJob(p.run))
	return p
}

// Start schedules the reload job. It does not run one immediately.
func (p *Poller) Start() error {
	if _, err := p.cron.AddJob(fmt.Sprintf("@every %s", p.interval), p.job); err != nil {
		return fmt.Errorf("failed to schedule poll: %w", err)
	}
	p.cron.Start()
	return nil
}

// Trigger runs a reload now, unless one is already running or the
// poller was stopped
func (p *Poller) Trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.triggered.Go(p.job.Run)
}

// Runs returns the number of completed reloads
func (p *Poller) Runs() int64 {
	return p.runs.Load()
}

// Follow reloads on every change event until ctx ends, reopening the
// stream after retry when it drops
func (p *Poller) Follow(ctx context.Context, s Streamer, retry time.Duration) {
	if retry <= 0 {
		retry = time.Second
	}
	for {
		err := s.Stream(ctx, func(events.Event) { p.Trigger() })
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			p.logger.Debug("event stream closed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retry):
		}
	}
}

// Stop cancels the schedule and any in-flight reload, waiting for every
// running job to return
func (p *Poller) Stop() {
	p.once.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()

		p.cancel()
		<-p.cron.Stop().Done()
		p.triggered.Wait()
	})
}

func (p *Poller) run() {
	if p.ctx.Err() != nil {
		return
	}
	if err := p.reload(p.ctx); err != nil {
		p.logger.Debug("poll reload failed", "error", err)
		return
	}
	p.runs.Add(1)
}

// cronLogger routes cron's logging through slog
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Warn("cron: "+msg, append(keysAndValues, "error", err)...)
}
