package internal

import (
	"strings"
	"testing"

	"github.com/govassist/widget-agent/testutil"
)

func TestNewPage(t *testing.T) {
	page := newTestPage(t, testutil.PageWithUserHeader)

	if page.Document() == nil {
		t.Fatal("Document() should not be nil")
	}
	if page.Viewport != DefaultViewport {
		t.Errorf("Viewport = %+v, want default", page.Viewport)
	}
}

func TestPage_TextContent(t *testing.T) {
	html := `<html><body>
		<script>var secret = 1;</script>
		<style>.x { color: red }</style>
		<p>Apply   for services
		online.</p>
	</body></html>`
	page := newTestPage(t, html)

	text := page.TextContent()
	if strings.Contains(text, "secret") {
		t.Error("TextContent() should drop script content")
	}
	if strings.Contains(text, "color") {
		t.Error("TextContent() should drop style content")
	}
	if !strings.Contains(text, "Apply for services online.") {
		t.Errorf("TextContent() should collapse whitespace, got %q", text)
	}
}

func TestPage_TextContentTruncated(t *testing.T) {
	long := strings.Repeat("services portal ", 2000)
	page := newTestPage(t, "<html><body><p>"+long+"</p></body></html>")

	if got := len(page.TextContent()); got > maxPageContent {
		t.Errorf("TextContent() length = %d, cap is %d", got, maxPageContent)
	}
}

func TestPage_SetHTMLSignalsMutation(t *testing.T) {
	page := newTestPage(t, testutil.PageAnonymous)

	if err := page.SetHTML(testutil.PageWithUserHeader); err != nil {
		t.Fatalf("SetHTML() error = %v", err)
	}

	select {
	case <-page.Mutations():
	default:
		t.Fatal("SetHTML() should signal the mutation feed")
	}

	name := page.Document().Find("header .username").Text()
	if name != "Priya Nair" {
		t.Errorf("Document() should reflect the new HTML, got %q", name)
	}
}

func TestPage_MutationsCoalesce(t *testing.T) {
	page := newTestPage(t, testutil.PageAnonymous)

	// Multiple replacements with no consumer must not block.
	for i := 0; i < 5; i++ {
		if err := page.SetHTML(testutil.PageAnonymous); err != nil {
			t.Fatalf("SetHTML() error = %v", err)
		}
	}

	<-page.Mutations()
	select {
	case <-page.Mutations():
		t.Error("pending mutations should coalesce into one signal")
	default:
	}
}
