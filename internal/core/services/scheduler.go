package services

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
)

// Ensure RefreshScheduler implements the interface.
var _ driving.RefreshScheduler = (*RefreshScheduler)(nil)

// RefreshScheduler repopulates the index on an interval and on demand.
// It is a pure core service; callers drive it through Trigger.
type RefreshScheduler struct {
	config       domain.RefreshSettings
	synchronizer driving.FtsSynchronizer
	limiter      *rate.Limiter

	// OnResult, if set, is called after every refresh.
	OnResult func(domain.RefreshResult)

	triggers chan domain.SyncTrigger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	last    *domain.RefreshResult
}

// NewRefreshScheduler creates a scheduler with configuration.
func NewRefreshScheduler(config domain.RefreshSettings, synchronizer driving.FtsSynchronizer) *RefreshScheduler {
	perMinute := config.RatePerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	return &RefreshScheduler{
		config:       config,
		synchronizer: synchronizer,
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		triggers:     make(chan domain.SyncTrigger, 1),
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	defer close(doneCh)
	defer func() {
		s.mu.Lock()
		if s.stopCh == stopCh {
			s.running = false
		}
		s.mu.Unlock()
	}()
	return s.run(ctx, stopCh)
}

// Stop gracefully shuts down the scheduler and waits for an in-flight
// refresh to finish.
func (s *RefreshScheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh
	return nil
}

// Trigger requests a refresh without blocking. A request made while
// another is pending is dropped.
func (s *RefreshScheduler) Trigger(trigger domain.SyncTrigger) {
	select {
	case s.triggers <- trigger:
	default:
	}
}

// LastResult returns the outcome of the latest refresh.
func (s *RefreshScheduler) LastResult() *domain.RefreshResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	result := *s.last
	return &result
}

// run is the main scheduler loop.
func (s *RefreshScheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	// The rate wait must end on Stop; an in-flight refresh still runs on ctx.
	waitCtx, cancelWait := context.WithCancel(ctx)
	defer cancelWait()
	go func() {
		select {
		case <-stopCh:
			cancelWait()
		case <-waitCtx.Done():
		}
	}()

	for {
		var trigger domain.SyncTrigger
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-tick:
			trigger = domain.SyncTriggerScheduled
		case trigger = <-s.triggers:
		}

		if err := s.limiter.Wait(waitCtx); err != nil {
			return ctx.Err()
		}
		s.refresh(ctx, trigger)
	}
}

// refresh executes one population.
func (s *RefreshScheduler) refresh(ctx context.Context, trigger domain.SyncTrigger) {
	result := domain.RefreshResult{
		Trigger:   trigger,
		StartedAt: time.Now(),
	}

	run, err := s.synchronizer.Populate(ctx, trigger)
	result.EndedAt = time.Now()
	if run != nil {
		result.ItemsIndexed = run.Total()
	}
	if err != nil {
		result.Success = false
		result.Error = err.Error()
		log.Printf("scheduler: %s refresh failed: %v", trigger, err)
	} else {
		result.Success = true
	}

	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()

	if s.OnResult != nil {
		s.OnResult(result)
	}
}
