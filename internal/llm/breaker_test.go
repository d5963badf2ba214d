package llm

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcGenerator struct {
	calls atomic.Int32
	fn    func() (*GenerateResponse, error)
}

func (g *funcGenerator) Generate(context.Context, string) (*GenerateResponse, error) {
	g.calls.Add(1)
	return g.fn()
}

// slowGenerator answers after delay unless the caller's context ends first.
type slowGenerator struct {
	calls atomic.Int32
	delay time.Duration
}

func (g *slowGenerator) Generate(ctx context.Context, _ string) (*GenerateResponse, error) {
	g.calls.Add(1)
	select {
	case <-time.After(g.delay):
		return &GenerateResponse{Text: "ok", Model: "m"}, nil
	case <-ctx.Done():
		return nil, transportFailure(ctx.Err())
	}
}

func TestBreakerGenerator_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &funcGenerator{fn: func() (*GenerateResponse, error) {
		return nil, serviceError(500, "boom")
	}}
	g := NewBreakerGenerator(inner, BreakerConfig{Enabled: true, MaxFailures: 2, OpenTimeoutMs: 60000})

	for i := 0; i < 2; i++ {
		_, err := g.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, ErrServiceError)
	}
	assert.Equal(t, gobreaker.StateOpen, g.State())

	_, err := g.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), inner.calls.Load(), "open breaker must not call the backend")
}

func TestBreakerGenerator_EmptyResponseDoesNotTrip(t *testing.T) {
	inner := &funcGenerator{fn: func() (*GenerateResponse, error) {
		return nil, emptyResponse("content is blank")
	}}
	g := NewBreakerGenerator(inner, BreakerConfig{Enabled: true, MaxFailures: 1})

	for i := 0; i < 3; i++ {
		_, err := g.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	}
	assert.Equal(t, gobreaker.StateClosed, g.State())
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestBreakerGenerator_PassesThroughSuccess(t *testing.T) {
	inner := &funcGenerator{fn: func() (*GenerateResponse, error) {
		return &GenerateResponse{Text: "ok", Model: "m"}, nil
	}}
	g := NewBreakerGenerator(inner, BreakerConfig{Enabled: true, MaxFailures: 1})

	resp, err := g.Generate(context.Background(), "x")

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}

func TestRateLimitedGenerator_CancelledWait(t *testing.T) {
	inner := &funcGenerator{fn: func() (*GenerateResponse, error) {
		return &GenerateResponse{Text: "ok"}, nil
	}}
	g := NewRateLimitedGenerator(inner, 0.001, 1)

	_, err := g.Generate(context.Background(), "x")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Generate(ctx, "x")

	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestBreakerGenerator_CallerDeadlinesDoNotTrip(t *testing.T) {
	inner := &slowGenerator{delay: 50 * time.Millisecond}
	g := NewBreakerGenerator(inner, BreakerConfig{Enabled: true, MaxFailures: 2, OpenTimeoutMs: 60000})

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, err := g.Generate(ctx, "x")
		cancel()
		assert.ErrorIs(t, err, ErrTransportFailure)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.Equal(t, gobreaker.StateClosed, g.State())

	resp, err := g.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(6), inner.calls.Load())
}

func TestBreakerGenerator_CallerCancellationDoesNotTrip(t *testing.T) {
	inner := &slowGenerator{delay: time.Minute}
	g := NewBreakerGenerator(inner, BreakerConfig{Enabled: true, MaxFailures: 1, OpenTimeoutMs: 60000})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 3; i++ {
		_, err := g.Generate(ctx, "x")
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, g.State())
}

func TestBreakerGenerator_BackendTimeoutStillTrips(t *testing.T) {
	inner := &funcGenerator{fn: func() (*GenerateResponse, error) {
		return nil, transportFailure(context.DeadlineExceeded)
	}}
	g := NewBreakerGenerator(inner, BreakerConfig{Enabled: true, MaxFailures: 2, OpenTimeoutMs: 60000})

	for i := 0; i < 2; i++ {
		_, err := g.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, ErrTransportFailure)
	}
	assert.Equal(t, gobreaker.StateOpen, g.State(), "the client's own timeout measures the backend")
}

func TestBreakerGenerator_RateLimitRefusalsDoNotTrip(t *testing.T) {
	inner := &funcGenerator{fn: func() (*GenerateResponse, error) {
		return &GenerateResponse{Text: "ok"}, nil
	}}
	g := NewBreakerGenerator(NewRateLimitedGenerator(inner, 0.001, 1),
		BreakerConfig{Enabled: true, MaxFailures: 1, OpenTimeoutMs: 60000})

	_, err := g.Generate(context.Background(), "x")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_, err := g.Generate(ctx, "x")
		cancel()
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.ErrorIs(t, err, ErrTransportFailure)
	}
	assert.Equal(t, gobreaker.StateClosed, g.State())
	assert.Equal(t, int32(1), inner.calls.Load())
}
