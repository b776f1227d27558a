package internal

import (
	"context"
	"testing"
	"time"

	"github.com/govassist/widget-agent/testutil"
)

func TestResolve_ImmediateFromSelectors(t *testing.T) {
	page := newTestPage(t, testutil.PageWithUserHeader)
	d := NewIdentityDetector(page)

	name := d.Resolve(context.Background(), 50*time.Millisecond, FallbackIdentity)
	if name != "Priya Nair" {
		t.Errorf("Resolve() = %q, want %q", name, "Priya Nair")
	}
	if d.State() != StateResolved {
		t.Errorf("state = %q, want %q", d.State(), StateResolved)
	}
}

func TestResolve_FallbackAfterTimeout(t *testing.T) {
	page := newTestPage(t, testutil.PageAnonymous)
	d := NewIdentityDetector(page)

	start := time.Now()
	name := d.Resolve(context.Background(), 50*time.Millisecond, FallbackIdentity)
	elapsed := time.Since(start)

	if name != FallbackIdentity {
		t.Errorf("Resolve() = %q, want fallback %q", name, FallbackIdentity)
	}
	if d.State() != StateFallbackGuest {
		t.Errorf("state = %q, want %q", d.State(), StateFallbackGuest)
	}
	if elapsed < 50*time.Millisecond {
		t.Errorf("fallback fired before the timeout: %v", elapsed)
	}
}

func TestResolve_FallbackIsTerminal(t *testing.T) {
	page := newTestPage(t, testutil.PageAnonymous)
	d := NewIdentityDetector(page)

	_ = d.Resolve(context.Background(), 10*time.Millisecond, FallbackIdentity)

	// A late mutation carrying a real name must not displace the result.
	if err := page.SetHTML(testutil.PageWithUserHeader); err != nil {
		t.Fatalf("SetHTML() error = %v", err)
	}
	if got := d.Identity(); got != FallbackIdentity {
		t.Errorf("Identity() = %q, fallback should be terminal", got)
	}
}

func TestResolve_MutationResolves(t *testing.T) {
	page := newTestPage(t, testutil.PageAnonymous)
	d := NewIdentityDetector(page)

	done := make(chan string, 1)
	go func() {
		done <- d.Resolve(context.Background(), 2*time.Second, FallbackIdentity)
	}()

	// Let the initial passes fail, then mutate in a signed-in header.
	time.Sleep(20 * time.Millisecond)
	if err := page.SetHTML(testutil.PageWithUserHeader); err != nil {
		t.Fatalf("SetHTML() error = %v", err)
	}

	select {
	case name := <-done:
		if name != "Priya Nair" {
			t.Errorf("Resolve() = %q, want %q", name, "Priya Nair")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Resolve() did not return after the mutation")
	}
	if d.State() != StateResolved {
		t.Errorf("state = %q, want %q", d.State(), StateResolved)
	}
}

func TestResolve_CancelledContext(t *testing.T) {
	page := newTestPage(t, testutil.PageAnonymous)
	d := NewIdentityDetector(page)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	name := d.Resolve(ctx, time.Minute, FallbackIdentity)
	if name != FallbackIdentity {
		t.Errorf("cancelled Resolve() = %q, want fallback", name)
	}
}
