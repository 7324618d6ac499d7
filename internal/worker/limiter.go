package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outbound KCSC calls. Every batch worker funnels through one
// shared limiter, so raising the worker count never raises the request rate
// against the API.
type Limiter struct {
	lim *rate.Limiter
}

// NewLimiter creates a limiter allowing requestsPerSecond sustained with the
// given burst.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{lim: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until the next call is allowed or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}
