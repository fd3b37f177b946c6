package util

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestTimestamp(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 27, 4, 28, 0, 0, time.FixedZone("CEST", 2*60*60)))
	require.Equal(t, "2025-09-27T02:28:00.000Z", Timestamp(clock))
}

func TestSleepContextReturnsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		SleepContext(ctx, clock, time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sleep did not honour cancelled context")
	}
}

func TestSleepContextZeroDuration(t *testing.T) {
	SleepContext(context.Background(), clockwork.NewFakeClock(), 0)
}
