package battery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/log"

	"github.com/tnguyen21/decor-minutes/internal/logging"
)

const (
	defaultRetryFor = 2 * time.Second
	retryInitial    = 50 * time.Millisecond
	retryMax        = 500 * time.Millisecond
)

// Service caches the last reading from a Source. Readings may arrive from
// background commands while the event loop observes them, so access is
// locked.
type Service struct {
	source   Source
	retryFor time.Duration
	log      *log.Logger

	mu    sync.Mutex
	last  ChargeState
	known bool
}

// NewService wraps src. retryFor bounds how long Peek keeps retrying a
// failing sensor; zero selects a short default.
func NewService(src Source, retryFor time.Duration) *Service {
	if retryFor <= 0 {
		retryFor = defaultRetryFor
	}
	return &Service{
		source:   src,
		retryFor: retryFor,
		log:      logging.For("battery"),
	}
}

// Peek reads the sensor, retrying with exponential backoff. When the sensor
// stays unavailable it returns the last known state (or Default) together
// with an error wrapping ErrSensorUnavailable.
func (s *Service) Peek(ctx context.Context) (ChargeState, error) {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = retryInitial
	retry.MaxInterval = retryMax

	state, err := backoff.Retry(ctx, func() (ChargeState, error) {
		st, err := s.source.Read(ctx)
		if errors.Is(err, ErrNoBattery) || errors.Is(err, ErrBadReading) {
			return st, backoff.Permanent(err)
		}
		return st, err
	},
		backoff.WithBackOff(retry),
		backoff.WithMaxElapsedTime(s.retryFor),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.log.Debug("retrying battery read", "err", err, "next_retry", next.String())
		}),
	)
	if err != nil {
		return s.Last(), fmt.Errorf("%w: %w", ErrSensorUnavailable, err)
	}
	s.store(state)
	return state, nil
}

// Read takes a single reading without retrying.
func (s *Service) Read(ctx context.Context) (ChargeState, error) {
	return s.source.Read(ctx)
}

// Observe records state and reports whether it differs from the previous
// reading. A true result is a battery change event.
func (s *Service) Observe(state ChargeState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := !s.known || state != s.last
	s.last = state
	s.known = true
	return changed
}

// Last returns the most recent reading, or Default before the first one.
func (s *Service) Last() ChargeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.known {
		return Default
	}
	return s.last
}

func (s *Service) store(state ChargeState) {
	s.mu.Lock()
	s.last = state
	s.known = true
	s.mu.Unlock()
}
