/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package retry computes retry delays for the inbox and outbox pipelines.
package retry

import (
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultInitialDelay = time.Second
	defaultFactor       = 2.0
	defaultMaxDelay     = 12 * time.Hour
	defaultMaxAttempts  = 10
)

// Context carries the state a Policy needs to compute the next delay.
type Context struct {
	// ElapsedTime is the time since the first attempt.
	ElapsedTime time.Duration
	// Attempts is the number of attempts already made (0 on the first failure).
	Attempts int
}

// Policy computes the delay before the next retry attempt, or returns
// (0, false) to indicate no further retries should be attempted.
type Policy interface {
	NextDelay(ctx Context) (time.Duration, bool)
}

// Config holds the parameters of the default exponential-backoff Policy.
type Config struct {
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// Factor is the multiplier applied to the delay after each attempt.
	Factor float64
	// MaxDelay caps the computed delay, post-jitter.
	MaxDelay time.Duration
	// MaxAttempts is the number of attempts after which NextDelay gives up.
	MaxAttempts int
}

// DefaultConfig returns spec-mandated defaults: 1s initial delay, factor 2,
// capped at 12h, giving up after 10 attempts.
func DefaultConfig() Config {
	return Config{
		InitialDelay: defaultInitialDelay,
		Factor:       defaultFactor,
		MaxDelay:     defaultMaxDelay,
		MaxAttempts:  defaultMaxAttempts,
	}
}

// ExponentialPolicy is the default Policy: delay = initialDelay *
// factor^attempts, multiplied by a `1 + rand()` jitter, then clamped at
// maxDelay. Clamping after jitter is a deliberate tightening of the
// reference behavior (whose jitter can overshoot maxDelay by up to 2x) so
// that Config.MaxDelay is an actual ceiling, not just a rough guide.
// Grounded on cenkalti/backoff/v4's ExponentialBackOff for the
// factor/cap/randomization shape, reimplemented directly against Config
// rather than wrapping backoff.BackOff since the desired contract
// (NextDelay(ctx) -> duration-or-give-up, driven by caller-tracked Attempts)
// doesn't match BackOff's self-tracking NextBackOff() interface.
type ExponentialPolicy struct {
	Config

	// randFloat returns a value in [0, 1); overridable in tests for determinism.
	randFloat func() float64
}

// NewExponentialPolicy returns a new ExponentialPolicy with the given config.
func NewExponentialPolicy(cfg Config) *ExponentialPolicy {
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = defaultInitialDelay
	}

	if cfg.Factor <= 0 {
		cfg.Factor = defaultFactor
	}

	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}

	return &ExponentialPolicy{Config: cfg, randFloat: rand.Float64}
}

// NextDelay implements Policy.
func (p *ExponentialPolicy) NextDelay(ctx Context) (time.Duration, bool) {
	if ctx.Attempts >= p.MaxAttempts {
		return 0, false
	}

	delay := float64(p.InitialDelay) * pow(p.Factor, ctx.Attempts)

	jitter := 1 + p.randFloat()
	delay *= jitter

	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}

	return time.Duration(delay), true
}

func pow(base float64, exp int) float64 {
	result := 1.0

	for i := 0; i < exp; i++ {
		result *= base
	}

	return result
}

// NewBackOff returns a cenkalti/backoff/v4 BackOff with cfg's initial delay,
// factor and maximum delay, for callers that want self-tracking retry rather
// than the explicit Context-driven Policy above. It keeps backoff's own
// randomization and has no attempt or elapsed-time limit; cfg.MaxAttempts is
// not used.
func NewBackOff(cfg Config) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialDelay
	b.Multiplier = cfg.Factor
	b.MaxInterval = cfg.MaxDelay
	b.MaxElapsedTime = 0

	return b
}
