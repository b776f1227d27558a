package internal

import "strings"

// PointerEvent is one pointer sample delivered to the drag manager.
// Target names the element role under the pointer at gesture start
// ("header", "prompt", "button", "input", ...).
type PointerEvent struct {
	X      int
	Y      int
	Target string
}

// dragRegions are the widget regions a drag gesture may originate from
var dragRegions = map[string]bool{
	"header": true,
	"prompt": true,
}

// DragManager repositions the widget from pointer gestures. Offsets are
// clamped to keep the widget fully on screen, the position flips from
// corner-anchored to absolute top/left on the first movement, and only
// the final position on release is persisted.
type DragManager struct {
	container Size
	widget    Size
	persist   func(Position) error

	dragging   bool
	moved      bool
	startX     int
	startY     int
	originTop  int
	originLeft int
	pos        Position
}

// NewDragManager creates a DragManager. persist is called once per
// completed gesture with the final position.
func NewDragManager(container, widget Size, persist func(Position) error) *DragManager {
	return &DragManager{container: container, widget: widget, persist: persist}
}

// Dragging reports whether a gesture is in progress
func (m *DragManager) Dragging() bool {
	return m.dragging
}

// Start begins a drag gesture from the widget's current position. A
// gesture originating on a button or input is ignored so those elements
// keep their click semantics; only header and prompt regions drag.
func (m *DragManager) Start(ev PointerEvent, current Position) bool {
	if !dragRegions[strings.ToLower(ev.Target)] {
		return false
	}

	m.dragging = true
	m.moved = false
	m.startX = ev.X
	m.startY = ev.Y
	m.originTop, m.originLeft = m.resolveOffsets(current)
	m.pos = current
	return true
}

// Move updates the widget position from a pointer sample. The first move
// switches the position to absolute coordinates; every move clamps both
// axes to [0, container-widget]. Intermediate positions are not persisted.
func (m *DragManager) Move(ev PointerEvent) Position {
	if !m.dragging {
		return m.pos
	}

	top := clamp(m.originTop+ev.Y-m.startY, m.container.Height-m.widget.Height)
	left := clamp(m.originLeft+ev.X-m.startX, m.container.Width-m.widget.Width)
	m.pos = Absolute(top, left)
	m.moved = true
	return m.pos
}

// End finishes the gesture and persists the final position, if the
// gesture moved at all.
func (m *DragManager) End() error {
	if !m.dragging {
		return nil
	}
	m.dragging = false
	if !m.moved || m.persist == nil {
		return nil
	}
	return m.persist(m.pos)
}

// Position returns the widget's current position as tracked by the manager
func (m *DragManager) Position() Position {
	return m.pos
}

// resolveOffsets converts the current position to absolute top/left,
// deriving them from the corner anchor when needed
func (m *DragManager) resolveOffsets(p Position) (top, left int) {
	if p.Top != nil {
		top = *p.Top
	} else if p.Bottom != nil {
		top = m.container.Height - m.widget.Height - *p.Bottom
	}
	if p.Left != nil {
		left = *p.Left
	} else if p.Right != nil {
		left = m.container.Width - m.widget.Width - *p.Right
	}
	return clamp(top, m.container.Height-m.widget.Height), clamp(left, m.container.Width-m.widget.Width)
}

// clamp bounds v to [0, max]; a non-positive max collapses to 0
func clamp(v, max int) int {
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
