package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Size is a width/height pair in pixels
type Size struct {
	Width  int
	Height int
}

// DefaultViewport is assumed when the host page reports no dimensions
var DefaultViewport = Size{Width: 1280, Height: 800}

// Page is the agent's view of one rendered host page: the parsed document,
// the viewport the widget is clamped to, and a mutation feed that fires
// whenever the document is replaced. It is the Go-side stand-in for a live
// DOM plus its subtree observer.
type Page struct {
	URL      string
	Viewport Size

	mu        sync.RWMutex
	doc       *goquery.Document
	mutations chan struct{}
}

// NewPage parses the given HTML into a Page
func NewPage(url, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &PageError{URL: url, Op: "parse", Err: err}
	}
	return &Page{
		URL:       url,
		Viewport:  DefaultViewport,
		doc:       doc,
		mutations: make(chan struct{}, 1),
	}, nil
}

// FetchPage retrieves a host page over HTTP and parses it
func FetchPage(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &PageError{URL: url, Op: "fetch", Err: err}
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &PageError{URL: url, Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &PageError{URL: url, Op: "fetch", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &PageError{URL: url, Op: "fetch", Err: err}
	}

	return NewPage(url, string(body))
}

// Document returns the current parsed document
func (p *Page) Document() *goquery.Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc
}

// SetHTML replaces the document and signals the mutation feed. The signal
// is coalescing: a pending unconsumed mutation is not duplicated.
func (p *Page) SetHTML(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &PageError{URL: p.URL, Op: "parse", Err: err}
	}

	p.mu.Lock()
	p.doc = doc
	p.mu.Unlock()

	select {
	case p.mutations <- struct{}{}:
	default:
	}
	return nil
}

// Mutations returns the feed an observer selects on. One receive
// corresponds to at least one document replacement since the last receive.
func (p *Page) Mutations() <-chan struct{} {
	return p.mutations
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// maxPageContent caps the page text sent along with chat requests
const maxPageContent = 8000

// TextContent extracts the page's visible text for use as request context.
// Script/style/iframe content is dropped and whitespace collapsed.
func (p *Page) TextContent() string {
	doc := p.Document()

	clone := doc.Find("body").Clone()
	clone.Find("script, style, noscript, iframe").Remove()

	text := whitespaceRe.ReplaceAllString(strings.TrimSpace(clone.Text()), " ")
	if len(text) > maxPageContent {
		text = text[:maxPageContent]
	}
	return text
}
