package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedGenerator paces outbound calls with a token bucket. Waiting
// respects ctx; a cancelled wait is a transport failure.
type RateLimitedGenerator struct {
	next    Generator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator allows perSecond calls per second with the given burst.
func NewRateLimitedGenerator(next Generator, perSecond float64, burst int) *RateLimitedGenerator {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedGenerator{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (g *RateLimitedGenerator) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, transportFailure(fmt.Errorf("%w: %w", ErrRateLimited, err))
	}
	return g.next.Generate(ctx, prompt)
}
