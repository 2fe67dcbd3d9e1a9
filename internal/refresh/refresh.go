// Package refresh periodically rebuilds the expiry alert feed from the latest
// inventory snapshot.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
)

// DefaultInterval is the period between feed rebuilds.
const DefaultInterval = 5 * time.Minute

var (
	// ErrRunInProgress is returned by RunOnce when another run holds the scheduler.
	ErrRunInProgress = errors.New("refresh already in progress")

	// ErrPublish wraps sink failures. The feed was generated; only delivery
	// to some sinks failed.
	ErrPublish = errors.New("publishing feed")
)

// Result is one generated alert feed.
type Result struct {
	Alerts      []model.Alert  `json:"alerts"`
	Summary     notify.Summary `json:"summary"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Source provides the current inventory. It is read on every run.
type Source interface {
	Snapshot(ctx context.Context) ([]model.InventoryItem, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]model.InventoryItem, error)

// Snapshot calls f.
func (f SourceFunc) Snapshot(ctx context.Context) ([]model.InventoryItem, error) { return f(ctx) }

// Sink receives every successfully generated feed.
type Sink interface {
	Publish(ctx context.Context, r Result) error
}

// Observer is notified about run outcomes.
type Observer interface {
	RunCompleted(elapsed time.Duration, r Result)
	RunFailed(elapsed time.Duration, err error)
	RunSkipped()
}

// Scheduler runs the notification generator on a fixed period.
type Scheduler struct {
	source   Source
	sinks    []Sink
	interval time.Duration
	now      func() time.Time
	observer Observer

	// run is held for the duration of a single generation.
	run sync.Mutex

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSinks adds sinks that receive each feed.
func WithSinks(sinks ...Sink) Option {
	return func(s *Scheduler) { s.sinks = append(s.sinks, sinks...) }
}

// WithClock replaces time.Now as the reference time for classification.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithObserver sets the run outcome observer.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.observer = o }
}

// New creates a scheduler. A non-positive interval falls back to
// DefaultInterval.
func New(source Source, interval time.Duration, opts ...Option) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Scheduler{
		source:   source,
		interval: interval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the period between runs.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Start runs the generator immediately and then once per interval until ctx is
// cancelled or Stop is called. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(parent context.Context) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)

	slog.Info("refresh scheduler started", "interval", s.interval.String())
}

// Stop cancels the loop and waits for an in-flight run to return.
func (s *Scheduler) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil

	slog.Info("refresh scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.tick(ctx)

	// A Ticker drops ticks that fire while a run is still going, so a slow
	// run never queues a burst of catch-up runs.
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	err := s.RunOnce(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrRunInProgress):
		slog.Warn("refresh skipped, previous run still in progress")
	case ctx.Err() != nil:
	default:
		slog.Error("refresh failed", "error", err)
	}
}

// RunOnce generates and publishes one feed. It never runs concurrently with
// another run; a call made while a run is in progress returns
// ErrRunInProgress. On failure no sink is called, so previously published
// feeds stay in place.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if !s.run.TryLock() {
		if s.observer != nil {
			s.observer.RunSkipped()
		}
		return ErrRunInProgress
	}
	defer s.run.Unlock()

	start := time.Now()
	result, err := s.generate(ctx)
	if err != nil {
		if s.observer != nil {
			s.observer.RunFailed(time.Since(start), err)
		}
		return err
	}

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, result); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrPublish, err))
		}
	}

	if s.observer != nil {
		s.observer.RunCompleted(time.Since(start), result)
	}
	slog.Info("alert feed refreshed",
		"alerts", result.Summary.Total,
		"high", result.Summary.High,
		"medium", result.Summary.Medium,
	)
	return errors.Join(errs...)
}

func (s *Scheduler) generate(ctx context.Context) (Result, error) {
	items, err := s.source.Snapshot(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("reading inventory snapshot: %w", err)
	}

	now := s.now()
	alerts, err := notify.Generate(items, now)
	if err != nil {
		return Result{}, fmt.Errorf("generating alerts: %w", err)
	}

	return Result{
		Alerts:      alerts,
		Summary:     notify.Summarize(alerts),
		GeneratedAt: now,
	}, nil
}
