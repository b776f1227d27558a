package internal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message senders as persisted in the snapshot.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one entry in the widget's chat log. At least one of Text or
// Image must be set; Image holds a data-URI reference, not raw bytes.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text,omitempty"`
	Image  string `json:"image,omitempty"`
}

// Validate checks that the message carries some content and a known sender.
func (m Message) Validate() error {
	if m.Sender != SenderUser && m.Sender != SenderBot {
		return fmt.Errorf("unknown sender %q", m.Sender)
	}
	if m.Text == "" && m.Image == "" {
		return fmt.Errorf("message has neither text nor image")
	}
	return nil
}

// Position is the widget's placement on the page. A freshly installed
// widget is corner-anchored (Bottom/Right set); the first drag movement
// switches it to absolute Top/Left coordinates.
type Position struct {
	Top    *int `json:"top,omitempty"`
	Left   *int `json:"left,omitempty"`
	Bottom *int `json:"bottom,omitempty"`
	Right  *int `json:"right,omitempty"`
}

// Anchored reports whether the position is still corner-anchored rather
// than absolute.
func (p Position) Anchored() bool {
	return p.Top == nil || p.Left == nil
}

// Absolute returns a position pinned to the given top/left coordinates.
func Absolute(top, left int) Position {
	return Position{Top: &top, Left: &left}
}

// DefaultPosition anchors the widget to the bottom-right corner.
func DefaultPosition() Position {
	bottom, right := 20, 20
	return Position{Bottom: &bottom, Right: &right}
}

// Snapshot is the complete widget state persisted between page loads.
// Revision and UpdatedAt exist so readers can detect lost updates across
// concurrent writers; no reconciliation is performed (see StateStore).
type Snapshot struct {
	SessionID string    `json:"sessionId"`
	IsOpen    bool      `json:"isOpen"`
	Messages  []Message `json:"messages"`
	User      string    `json:"user,omitempty"`
	Position  Position  `json:"position"`
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// DefaultSnapshot returns the state of a fresh install: closed widget,
// unresolved identity, empty log, corner-anchored position.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		SessionID: uuid.NewString(),
		IsOpen:    false,
		Messages:  []Message{},
		Position:  DefaultPosition(),
	}
}

// Append adds a message to the log, preserving chronological send order.
func (s *Snapshot) Append(m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.Messages = append(s.Messages, m)
	return nil
}

// ClearSession wipes the message log and identity. Used by logout; the
// session ID and position survive.
func (s *Snapshot) ClearSession() {
	s.Messages = []Message{}
	s.User = ""
}

// ParseSnapshot decodes a persisted snapshot value.
func ParseSnapshot(value string) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}
	if snap.Messages == nil {
		snap.Messages = []Message{}
	}
	return &snap, nil
}

// Encode serializes the snapshot for storage.
func (s *Snapshot) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return string(data), nil
}
