package internal

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// DetectState is the identity detector's state machine position
type DetectState string

const (
	StateScanningSelectors DetectState = "scanning-selectors"
	StateScanningHeuristic DetectState = "scanning-heuristic"
	StateObserving         DetectState = "observing"
	StateResolved          DetectState = "resolved"
	StateFallbackGuest     DetectState = "fallback-guest"
)

// FallbackIdentity is the generic identity used when no name can be
// inferred within the detection window. Resolving to it is expected,
// normal behavior for anonymous pages, not an error.
const FallbackIdentity = "Guest"

// defaultSelectors are the structural locations checked first, in priority
// order. These are places host sites commonly render a signed-in name.
var defaultSelectors = []string{
	"header .username",
	"header .user-name",
	".navbar .username",
	".navbar .user-name",
	".user-info .name",
	".username",
	".user-name",
	"#username",
	".welcome-user",
	".welcome-message",
	".welcome",
	"nav .profile-name",
	".account-name",
	"a[href*='profile']",
}

// logoutTextPatterns match the visible label of a logout affordance
var logoutTextPatterns = []string{"logout", "log out", "sign out", "signout"}

// logoutClassPatterns match icon or control class names for logout
var logoutClassPatterns = []string{"logout", "log-out", "sign-out", "signout", "power"}

// greetingTokens are stripped from the front of a candidate name before it
// is compared or used. "user" also covers the "User:" label form.
var greetingTokens = map[string]bool{
	"welcome": true,
	"hello":   true,
	"hi":      true,
	"hey":     true,
	"mr":      true,
	"ms":      true,
	"mrs":     true,
	"user":    true,
}

// noiseTokens are single-line matches discarded by the heuristic pass:
// navigation and settings chrome that sits next to logout controls.
var noiseTokens = map[string]bool{
	"home":          true,
	"help":          true,
	"admin":         true,
	"user":          true,
	"settings":      true,
	"setting":       true,
	"language":      true,
	"languages":     true,
	"preferences":   true,
	"account":       true,
	"profile":       true,
	"menu":          true,
	"dashboard":     true,
	"search":        true,
	"notifications": true,
}

// maxCandidateLen rejects heuristic lines too long to be a display name
const maxCandidateLen = 30

// IdentityDetector infers the signed-in user's display name from a host
// page's rendered content. Detection is best-effort pattern matching with
// no correctness guarantee; once an identity resolves it is fixed for the
// page's lifetime until logout re-enters scanning.
type IdentityDetector struct {
	page      *Page
	selectors []string

	mu       sync.Mutex
	state    DetectState
	identity string
}

// NewIdentityDetector creates a detector for the given page. Extra
// selectors, if any, are checked after the built-in list.
func NewIdentityDetector(page *Page, extraSelectors ...string) *IdentityDetector {
	selectors := make([]string, 0, len(defaultSelectors)+len(extraSelectors))
	selectors = append(selectors, defaultSelectors...)
	selectors = append(selectors, extraSelectors...)
	return &IdentityDetector{
		page:      page,
		selectors: selectors,
		state:     StateScanningSelectors,
	}
}

// State returns the detector's current state
func (d *IdentityDetector) State() DetectState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Identity returns the resolved identity, or "" while unresolved
func (d *IdentityDetector) Identity() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateResolved || d.state == StateFallbackGuest {
		return d.identity
	}
	return ""
}

// Reset re-enters the initial scanning state. Called on logout; this is
// the only way out of a terminal state.
func (d *IdentityDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateScanningSelectors
	d.identity = ""
}

// terminal reports whether detection has already concluded
func (d *IdentityDetector) terminal() bool {
	return d.state == StateResolved || d.state == StateFallbackGuest
}

// resolve records a detected identity. A later resolution attempt against
// a terminal detector is a no-op, so the observation path and the timeout
// path cannot both take effect.
func (d *IdentityDetector) resolve(name string, state DetectState) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.terminal() {
		return false
	}
	d.identity = name
	d.state = state
	return true
}

// ScanOnce runs the selector pass and then the heuristic pass against the
// page's current document. It returns the resolved identity and true on
// success. Selector-pass results always win over heuristic ones because
// the heuristic pass only runs after the selector pass fails.
func (d *IdentityDetector) ScanOnce() (string, bool) {
	d.mu.Lock()
	if d.terminal() {
		identity := d.identity
		d.mu.Unlock()
		return identity, true
	}
	d.state = StateScanningSelectors
	d.mu.Unlock()

	doc := d.page.Document()

	if name, ok := d.selectorPass(doc); ok {
		d.resolve(name, StateResolved)
		LogDebug("identity resolved by selector pass: %s", name)
		return name, true
	}

	d.mu.Lock()
	if !d.terminal() {
		d.state = StateScanningHeuristic
	}
	d.mu.Unlock()

	if name, ok := d.heuristicPass(doc); ok {
		d.resolve(name, StateResolved)
		LogDebug("identity resolved by heuristic pass: %s", name)
		return name, true
	}

	return "", false
}

// selectorPass checks the fixed priority-ordered selector list. The first
// element whose cleaned text is plausibly a name resolves immediately.
func (d *IdentityDetector) selectorPass(doc *goquery.Document) (string, bool) {
	for _, sel := range d.selectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			name := CleanName(s.Text())
			if plausibleName(name) {
				found = name
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

// heuristicPass locates a logout affordance and reads a name from the
// containers around it. The matched element is removed from a clone of
// each container before reading, so the logout label itself is never
// mistaken for a name.
func (d *IdentityDetector) heuristicPass(doc *goquery.Document) (string, bool) {
	var candidate string
	doc.Find("a, button, i, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !isLogoutAffordance(s) {
			return true
		}
		if name, ok := nameNearLogout(s); ok {
			candidate = name
			return false
		}
		return true
	})
	if candidate != "" {
		return candidate, true
	}
	return "", false
}

// nameNearLogout walks up to three ancestors of a logout element looking
// for a line of text that survives the noise filters
func nameNearLogout(logout *goquery.Selection) (string, bool) {
	container := logout
	for level := 0; level < 3; level++ {
		container = container.Parent()
		if container.Length() == 0 {
			break
		}

		clone := container.Clone()
		clone.Find("a, button, i, span").Each(func(_ int, s *goquery.Selection) {
			if isLogoutAffordance(s) {
				s.Remove()
			}
		})

		for _, line := range strings.Split(clone.Text(), "\n") {
			name := CleanName(line)
			if plausibleName(name) && !noiseTokens[strings.ToLower(name)] && len(name) <= maxCandidateLen {
				return name, true
			}
		}
	}
	return "", false
}

// isLogoutAffordance matches an element by visible text or class patterns
func isLogoutAffordance(s *goquery.Selection) bool {
	text := strings.ToLower(strings.TrimSpace(s.Text()))
	for _, pat := range logoutTextPatterns {
		if text == pat {
			return true
		}
	}
	class := strings.ToLower(s.AttrOr("class", ""))
	for _, pat := range logoutClassPatterns {
		if strings.Contains(class, pat) {
			return true
		}
	}
	return false
}

// plausibleName applies the shared acceptance rule for both passes: a
// cleaned candidate must be longer than two characters and must not
// contain "log" (which would indicate a login/logout control label).
func plausibleName(name string) bool {
	if len(name) <= 2 {
		return false
	}
	return !strings.Contains(strings.ToLower(name), "log")
}

// CleanName strips greeting and honorific tokens from the front of a
// candidate and trims stray punctuation
func CleanName(s string) string {
	fields := strings.Fields(s)
	i := 0
	for i < len(fields) {
		tok := strings.ToLower(strings.Trim(fields[i], ",.!:;"))
		if greetingTokens[tok] {
			i++
			continue
		}
		break
	}
	return strings.Trim(strings.Join(fields[i:], " "), " ,.!:;")
}
