package util

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// ISOLayout renders UTC timestamps with millisecond precision and a Z suffix.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats the clock's current instant for API payloads.
func Timestamp(clock clockwork.Clock) string {
	return clock.Now().UTC().Format(ISOLayout)
}

// SleepContext waits for d on the given clock, returning early when ctx ends.
func SleepContext(ctx context.Context, clock clockwork.Clock, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-clock.After(d):
	case <-ctx.Done():
	}
}
