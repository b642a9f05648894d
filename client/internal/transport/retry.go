package transport

import (
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds retries of idempotent requests. The zero value disables
// retries: each request is sent exactly once.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxInterval time.Duration
}

// DefaultRetryPolicy is a conservative policy for interactive tools.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseBackoff: 200 * time.Millisecond, MaxInterval: 5 * time.Second}
}

func (p RetryPolicy) enabled() bool { return p.MaxAttempts > 1 }

func (p RetryPolicy) normalize() RetryPolicy {
	if !p.enabled() {
		return RetryPolicy{}
	}
	if p.BaseBackoff <= 0 {
		p.BaseBackoff = 100 * time.Millisecond
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = 20 * time.Second
	}
	return p
}

// backOff paces retries under p. MaxAttempts alone bounds the loop, so the
// elapsed-time cutoff is off and NextBackOff never returns backoff.Stop.
func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()
	return exp
}
