package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerGenerator fails fast while the backend keeps failing. Only service
// and transport failures count against the breaker; an empty response
// means the backend is reachable. Calls abandoned by their own caller or
// refused by the rate limiter are not counted at all.
type BreakerGenerator struct {
	next Generator
	cb   *gobreaker.CircuitBreaker[*GenerateResponse]
}

// NewBreakerGenerator wraps next with a circuit breaker that opens after
// cfg.MaxFailures consecutive failures.
func NewBreakerGenerator(next Generator, cfg BreakerConfig) *BreakerGenerator {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	cb := gobreaker.NewCircuitBreaker[*GenerateResponse](gobreaker.Settings{
		Name:        "llm-generate",
		MaxRequests: 1,
		Interval:    time.Duration(cfg.IntervalMs) * time.Millisecond,
		Timeout:     time.Duration(cfg.OpenTimeoutMs) * time.Millisecond,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrEmptyResponse)
		},
		IsExcluded: func(err error) bool {
			var abandoned *callerAbandoned
			return errors.As(err, &abandoned)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			breakerState.Set(stateToFloat(to))
		},
	})

	return &BreakerGenerator{next: next, cb: cb}
}

func (g *BreakerGenerator) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	resp, err := g.cb.Execute(func() (*GenerateResponse, error) {
		resp, err := g.next.Generate(ctx, prompt)
		if err != nil && (ctx.Err() != nil || errors.Is(err, ErrRateLimited)) {
			return nil, &callerAbandoned{err: err}
		}
		return resp, err
	})
	if err == nil {
		return resp, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, transportFailure(fmt.Errorf("circuit breaker: %w", err))
	}
	return nil, AsGenerationError(err)
}

// callerAbandoned marks a failure that never measured the backend: the
// caller's context ended or the limiter refused the wait.
type callerAbandoned struct {
	err error
}

func (e *callerAbandoned) Error() string { return e.err.Error() }
func (e *callerAbandoned) Unwrap() error { return e.err }

// State reports the breaker's current state.
func (g *BreakerGenerator) State() gobreaker.State {
	return g.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
