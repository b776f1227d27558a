package internal

import (
	"context"
	"time"
)

// DefaultDetectTimeout bounds the observation phase. If no identity
// resolves within this window the detector settles on the fallback.
const DefaultDetectTimeout = 5 * time.Second

// Resolve drives the detector to a terminal state. It runs the selector
// and heuristic passes synchronously; if neither resolves, it watches the
// page's mutation feed and re-runs both passes on every mutation until
// something resolves or the timeout fires, at which point the fallback
// identity wins. The mutation feed is abandoned the moment either side
// wins, and resolution is recorded exactly once.
//
// Cancelling ctx ends observation early with the fallback identity.
func (d *IdentityDetector) Resolve(ctx context.Context, timeout time.Duration, fallback string) string {
	if name, ok := d.ScanOnce(); ok {
		return name
	}

	d.mu.Lock()
	if !d.terminal() {
		d.state = StateObserving
	}
	d.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return d.fallbackTo(fallback)
		case <-timer.C:
			return d.fallbackTo(fallback)
		case <-d.page.Mutations():
			if name, ok := d.ScanOnce(); ok {
				return name
			}
			d.mu.Lock()
			if !d.terminal() {
				d.state = StateObserving
			}
			d.mu.Unlock()
		}
	}
}

// fallbackTo settles on the fallback identity. If a mutation callback won
// the race first, the already-resolved identity is returned instead.
func (d *IdentityDetector) fallbackTo(fallback string) string {
	if d.resolve(fallback, StateFallbackGuest) {
		LogDebug("identity detection timed out, using fallback %q", fallback)
		return fallback
	}
	return d.Identity()
}
