package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// WidgetElementID is the fixed marker element identifying a mounted
// widget. The mount guard keys on it, so mounting is idempotent per page
// without relying on global state.
const WidgetElementID = "govassist-widget"

// ErrWidgetMounted is returned when the page already hosts a widget
var ErrWidgetMounted = errors.New("widget already mounted on this page")

// DefaultWidgetSize is the widget's footprint used for drag clamping
var DefaultWidgetSize = Size{Width: 340, Height: 460}

// transportErrorText is the user-facing inline error for any failed send
const transportErrorText = "Unable to reach the assistant. Please try again."

// Entry is one rendered row of the visible message log. Error entries are
// visible but never persisted to the snapshot.
type Entry struct {
	Sender  string
	HTML    string
	IsError bool
}

// WidgetController composes the store, detector, channel and renderer
// into the widget. Construction always restores the persisted snapshot
// before any identity detection runs, so a returning user with a resolved
// identity never sees the detection phase.
type WidgetController struct {
	page    *Page
	store   *StateStore
	channel *MessageChannel
	cfg     Config

	Detector *IdentityDetector
	Drag     *DragManager

	mu       sync.Mutex
	snapshot *Snapshot
	entries  []Entry
	pending  *PendingAttachment
	typing   bool
}

// Mount constructs the widget on a page from the last-known snapshot.
// A page that already hosts the widget returns ErrWidgetMounted.
func Mount(page *Page, store *StateStore, channel *MessageChannel, cfg Config) (*WidgetController, error) {
	doc := page.Document()
	if doc.Find("#" + WidgetElementID).Length() > 0 {
		return nil, ErrWidgetMounted
	}

	snap, err := store.Load()
	if err != nil {
		return nil, err
	}

	if cfg.ViewportWidth > 0 && cfg.ViewportHeight > 0 {
		page.Viewport = Size{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight}
	}

	w := &WidgetController{
		page:     page,
		store:    store,
		channel:  channel,
		cfg:      cfg,
		snapshot: snap,
		Detector: NewIdentityDetector(page, cfg.ExtraSelectors...),
	}
	w.Drag = NewDragManager(page.Viewport, DefaultWidgetSize, w.persistPosition)
	channel.SetTypingFunc(w.setTyping)

	for _, m := range snap.Messages {
		w.entries = append(w.entries, Entry{Sender: m.Sender, HTML: RenderMessage(m)})
	}

	doc.Find("body").AppendHtml(fmt.Sprintf(`<div id=%q></div>`, WidgetElementID))

	LogDebug("widget mounted: %d restored messages, identity=%q", len(snap.Messages), snap.User)
	return w, nil
}

// DetectIdentity resolves the widget's identity. A snapshot restored with
// an identity short-circuits; otherwise the detector runs its passes with
// the configured bounded timeout and the result is persisted.
func (w *WidgetController) DetectIdentity(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.snapshot.User != "" {
		user := w.snapshot.User
		w.mu.Unlock()
		w.Detector.resolve(user, StateResolved)
		return user, nil
	}
	w.mu.Unlock()

	name := w.Detector.Resolve(ctx, w.detectTimeout(), w.cfg.FallbackIdentity)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshot.User = name
	if err := w.store.Save(w.snapshot); err != nil {
		return name, err
	}
	return name, nil
}

// Send issues one request for a user action carrying text and/or the
// pending attachment. The user message is appended and persisted first;
// on success the response is rendered and persisted, on failure a single
// visible error entry is added and nothing is persisted for it.
func (w *WidgetController) Send(ctx context.Context, text string) (Entry, error) {
	w.mu.Lock()
	var image string
	if w.pending != nil {
		image = w.pending.DataURI
		w.pending = nil
	}

	if text == "" && image == "" {
		w.mu.Unlock()
		return Entry{}, errors.New("nothing to send")
	}

	userMsg := Message{Sender: SenderUser, Text: text, Image: image}
	w.entries = append(w.entries, Entry{Sender: SenderUser, HTML: RenderMessage(userMsg)})
	if err := w.snapshot.Append(userMsg); err != nil {
		w.mu.Unlock()
		return Entry{}, err
	}
	if err := w.store.Save(w.snapshot); err != nil {
		LogWarn("failed to persist outgoing message: %v", err)
	}
	user := w.snapshot.User
	w.mu.Unlock()

	req := ChatRequest{
		Message:     text,
		Image:       image,
		PageContent: w.page.TextContent(),
		UserName:    user,
	}

	respText, err := w.channel.Send(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		entry := Entry{Sender: SenderBot, HTML: RenderError(transportErrorText), IsError: true}
		w.entries = append(w.entries, entry)
		LogWarn("send failed: %v", err)
		return entry, err
	}

	botMsg := Message{Sender: SenderBot, Text: respText}
	entry := Entry{Sender: SenderBot, HTML: RenderMessage(botMsg)}
	w.entries = append(w.entries, entry)
	if err := w.snapshot.Append(botMsg); err != nil {
		return entry, err
	}
	if err := w.store.Save(w.snapshot); err != nil {
		LogWarn("failed to persist response: %v", err)
	}
	return entry, nil
}

// PasteText handles a paste action. Image content becomes the pending
// attachment; anything else leaves the pending state unchanged and shows
// no error.
func (w *WidgetController) PasteText(text string) {
	att := AttachmentFromText(text)
	if att == nil {
		return
	}
	w.mu.Lock()
	w.pending = att
	w.mu.Unlock()
}

// PasteClipboard handles a paste action sourced from the system clipboard
func (w *WidgetController) PasteClipboard() {
	att := ReadClipboardAttachment()
	if att == nil {
		return
	}
	w.mu.Lock()
	w.pending = att
	w.mu.Unlock()
}

// Toggle opens or closes the widget and persists the choice
func (w *WidgetController) Toggle(open bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshot.IsOpen = open
	return w.store.Save(w.snapshot)
}

// Logout clears the message log and identity, discards any pending
// attachment, and returns the detector to its initial scanning state.
func (w *WidgetController) Logout() error {
	w.mu.Lock()
	w.snapshot.ClearSession()
	w.entries = nil
	w.pending = nil
	err := w.store.Save(w.snapshot)
	w.mu.Unlock()

	w.Detector.Reset()
	return err
}

// Entries returns a copy of the visible message log
func (w *WidgetController) Entries() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Snapshot returns the controller's current snapshot
func (w *WidgetController) Snapshot() *Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot
}

// Pending reports whether an attachment awaits the next send
func (w *WidgetController) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil
}

// Typing reports whether a request is in flight
func (w *WidgetController) Typing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.typing
}

func (w *WidgetController) setTyping(on bool) {
	w.mu.Lock()
	w.typing = on
	w.mu.Unlock()
}

// persistPosition is the drag manager's release hook
func (w *WidgetController) persistPosition(p Position) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshot.Position = p
	return w.store.Save(w.snapshot)
}

// detectTimeout returns the configured detection window
func (w *WidgetController) detectTimeout() time.Duration {
	if w.cfg.DetectTimeout > 0 {
		return time.Duration(w.cfg.DetectTimeout)
	}
	return DefaultDetectTimeout
}
