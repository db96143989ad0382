// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_FirstRequestImmediate(t *testing.T) {
	p := NewPacer(time.Hour)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPacer_SpacesRequests(t *testing.T) {
	interval := 40 * time.Millisecond
	p := NewPacer(interval)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	// Two gaps after the free first request.
	assert.GreaterOrEqual(t, time.Since(start), 2*interval-5*time.Millisecond)
}

func TestPacer_PauseCountsFromDone(t *testing.T) {
	interval := 60 * time.Millisecond
	p := NewPacer(interval)

	require.NoError(t, p.Wait(context.Background()))
	// A page slower than the interval must not use up the pause.
	time.Sleep(2 * interval)
	p.Done()
	done := time.Now()

	require.NoError(t, p.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(done), interval-time.Millisecond)
}

func TestPacer_DoneWithoutIntervalIsNoop(t *testing.T) {
	p := NewPacer(0)
	p.Done()

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPacer_ZeroIntervalDisabled(t *testing.T) {
	p := NewPacer(0)

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPacer_ContextCancelled(t *testing.T) {
	p := NewPacer(time.Hour)
	require.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, p.Wait(ctx))
}
