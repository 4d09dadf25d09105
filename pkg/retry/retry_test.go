/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialPolicy_GivesUpAfterMaxAttempts(t *testing.T) {
	p := NewExponentialPolicy(Config{MaxAttempts: 3})

	_, ok := p.NextDelay(Context{Attempts: 3})
	require.False(t, ok)

	_, ok = p.NextDelay(Context{Attempts: 4})
	require.False(t, ok)
}

func TestExponentialPolicy_DelayGrowsWithAttempts(t *testing.T) {
	p := NewExponentialPolicy(Config{
		InitialDelay: time.Second,
		Factor:       2,
		MaxDelay:     time.Hour,
		MaxAttempts:  10,
	})
	p.randFloat = func() float64 { return 0 } // no jitter, for a deterministic comparison

	d0, ok := p.NextDelay(Context{Attempts: 0})
	require.True(t, ok)
	require.Equal(t, time.Second, d0)

	d1, ok := p.NextDelay(Context{Attempts: 1})
	require.True(t, ok)
	require.Equal(t, 2*time.Second, d1)

	d2, ok := p.NextDelay(Context{Attempts: 2})
	require.True(t, ok)
	require.Equal(t, 4*time.Second, d2)
}

func TestExponentialPolicy_ClampsAfterJitter(t *testing.T) {
	p := NewExponentialPolicy(Config{
		InitialDelay: time.Second,
		Factor:       2,
		MaxDelay:     5 * time.Second,
		MaxAttempts:  10,
	})
	p.randFloat = func() float64 { return 0.999 } // near-maximal jitter

	d, ok := p.NextDelay(Context{Attempts: 5}) // unclamped would be far beyond MaxDelay
	require.True(t, ok)
	require.LessOrEqual(t, d, 5*time.Second)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, time.Second, cfg.InitialDelay)
	require.Equal(t, 2.0, cfg.Factor)
	require.Equal(t, 12*time.Hour, cfg.MaxDelay)
	require.Equal(t, 10, cfg.MaxAttempts)
}

func TestNewBackOff(t *testing.T) {
	b := NewBackOff(DefaultConfig())
	require.NotNil(t, b)
	require.Greater(t, b.NextBackOff(), time.Duration(0))
}
