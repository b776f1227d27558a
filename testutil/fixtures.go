package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory state database with the
// agentState table ready for use
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS agentState (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create agentState table: %v", err)
	}

	return db
}

// InsertState inserts a raw key/value row into the agentState table
func InsertState(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	if _, err := db.Exec("INSERT OR REPLACE INTO agentState (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert state row: %v", err)
	}
}

// Host page fixtures for identity detection tests.
const (
	// PageWithUserHeader carries a signed-in name in a structural
	// location the selector pass checks first.
	PageWithUserHeader = `<html><body>
		<header><div class="username">Priya Nair</div></header>
		<main><p>Apply for certificates and licenses online.</p></main>
	</body></html>`

	// PageWithWelcomeBanner greets the user; the greeting token must be
	// stripped before the name is used.
	PageWithWelcomeBanner = `<html><body>
		<div class="welcome">Welcome, Arjun Mehta!</div>
		<main><p>Portal services</p></main>
	</body></html>`

	// PageWithLogoutMenu has no recognizable selector but a user menu
	// containing a logout control next to the display name.
	PageWithLogoutMenu = `<html><body>
		<nav>
			<div class="menu">
				<span>Ravi Kumar</span>
				<a href="/logout" class="logout-link">Logout</a>
			</div>
		</nav>
		<main><p>Dashboard</p></main>
	</body></html>`

	// PageWithNoisyMenu surrounds the logout control with navigation
	// chrome that the noise filters must reject before the real name.
	PageWithNoisyMenu = `<html><body>
		<div class="topbar">
			<div class="links">
				<span>Home</span>
				<span>Help</span>
				<span>Settings</span>
				<span>Meera Joshi</span>
				<button class="sign-out"><i class="icon-power"></i></button>
			</div>
		</div>
	</body></html>`

	// PageAnonymous has no identity markers at all
	PageAnonymous = `<html><body>
		<header><a href="/login">Login</a></header>
		<main><p>Welcome to the services portal. Please sign in.</p></main>
	</body></html>`

	// PageLoginHeader has header text that would match a selector but
	// contains "log", so it must be rejected.
	PageLoginHeader = `<html><body>
		<header><div class="username">Login required</div></header>
	</body></html>`
)
