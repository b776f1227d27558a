package internal

import (
	"testing"

	"github.com/govassist/widget-agent/testutil"
)

func newTestPage(t *testing.T, html string) *Page {
	t.Helper()
	page, err := NewPage("test://page", html)
	if err != nil {
		t.Fatalf("NewPage() error = %v", err)
	}
	return page
}

func TestIdentityDetector_SelectorPass(t *testing.T) {
	page := newTestPage(t, testutil.PageWithUserHeader)
	d := NewIdentityDetector(page)

	name, ok := d.ScanOnce()
	if !ok {
		t.Fatal("ScanOnce() should resolve from the header username")
	}
	if name != "Priya Nair" {
		t.Errorf("name = %q, want %q", name, "Priya Nair")
	}
	if d.State() != StateResolved {
		t.Errorf("state = %q, want %q", d.State(), StateResolved)
	}
}

func TestIdentityDetector_WelcomeBannerCleaned(t *testing.T) {
	page := newTestPage(t, testutil.PageWithWelcomeBanner)
	d := NewIdentityDetector(page)

	name, ok := d.ScanOnce()
	if !ok {
		t.Fatal("ScanOnce() should resolve from the welcome banner")
	}
	if name != "Arjun Mehta" {
		t.Errorf("greeting tokens should be stripped, got %q", name)
	}
}

func TestIdentityDetector_HeuristicPass(t *testing.T) {
	page := newTestPage(t, testutil.PageWithLogoutMenu)
	d := NewIdentityDetector(page)

	name, ok := d.ScanOnce()
	if !ok {
		t.Fatal("ScanOnce() should resolve from the logout menu")
	}
	if name != "Ravi Kumar" {
		t.Errorf("name = %q, want %q", name, "Ravi Kumar")
	}
}

func TestIdentityDetector_NoiseFiltered(t *testing.T) {
	page := newTestPage(t, testutil.PageWithNoisyMenu)
	d := NewIdentityDetector(page)

	name, ok := d.ScanOnce()
	if !ok {
		t.Fatal("ScanOnce() should resolve past the navigation noise")
	}
	if name != "Meera Joshi" {
		t.Errorf("noise tokens should be filtered, got %q", name)
	}
}

func TestIdentityDetector_SelectorBeatsHeuristic(t *testing.T) {
	// Both passes could resolve here; the selector result must win.
	html := `<html><body>
		<header><div class="username">Priya Nair</div></header>
		<nav><span>Other Person</span><a class="logout-link" href="/logout">Logout</a></nav>
	</body></html>`
	page := newTestPage(t, html)
	d := NewIdentityDetector(page)

	name, _ := d.ScanOnce()
	if name != "Priya Nair" {
		t.Errorf("selector pass should win, got %q", name)
	}
}

func TestIdentityDetector_RejectsLoginText(t *testing.T) {
	page := newTestPage(t, testutil.PageLoginHeader)
	d := NewIdentityDetector(page)

	if name, ok := d.ScanOnce(); ok {
		t.Errorf("text containing %q should not resolve, got %q", "log", name)
	}
	if d.State() != StateScanningHeuristic {
		t.Errorf("state = %q, want %q after failed passes", d.State(), StateScanningHeuristic)
	}
}

func TestIdentityDetector_AnonymousPage(t *testing.T) {
	page := newTestPage(t, testutil.PageAnonymous)
	d := NewIdentityDetector(page)

	if name, ok := d.ScanOnce(); ok {
		t.Errorf("anonymous page should not resolve, got %q", name)
	}
	if d.Identity() != "" {
		t.Errorf("Identity() should be empty while unresolved, got %q", d.Identity())
	}
}

func TestIdentityDetector_Reset(t *testing.T) {
	page := newTestPage(t, testutil.PageWithUserHeader)
	d := NewIdentityDetector(page)

	if _, ok := d.ScanOnce(); !ok {
		t.Fatal("expected initial resolution")
	}

	d.Reset()

	if d.State() != StateScanningSelectors {
		t.Errorf("Reset() state = %q, want %q", d.State(), StateScanningSelectors)
	}
	if d.Identity() != "" {
		t.Error("Reset() should clear the identity")
	}
}

func TestIdentityDetector_ResolutionTerminal(t *testing.T) {
	page := newTestPage(t, testutil.PageWithUserHeader)
	d := NewIdentityDetector(page)

	name, _ := d.ScanOnce()

	// A new document must not change a resolved identity.
	if err := page.SetHTML(testutil.PageWithLogoutMenu); err != nil {
		t.Fatalf("SetHTML() error = %v", err)
	}
	again, ok := d.ScanOnce()
	if !ok || again != name {
		t.Errorf("resolution should be terminal: got %q, want %q", again, name)
	}
}

func TestIdentityDetector_ExtraSelectors(t *testing.T) {
	html := `<html><body><div class="portal-citizen-name">Anita Desai</div></body></html>`
	page := newTestPage(t, html)
	d := NewIdentityDetector(page, ".portal-citizen-name")

	name, ok := d.ScanOnce()
	if !ok || name != "Anita Desai" {
		t.Errorf("extra selector should resolve, got %q (ok=%v)", name, ok)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Welcome, Asha Rao!", "Asha Rao"},
		{"Hello Ravi", "Ravi"},
		{"Hi, Meera", "Meera"},
		{"Mr. Arjun Mehta", "Arjun Mehta"},
		{"Ms Priya Nair", "Priya Nair"},
		{"User: Kavita", "Kavita"},
		{"  Plain Name  ", "Plain Name"},
		{"Welcome", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanName(tt.in); got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
