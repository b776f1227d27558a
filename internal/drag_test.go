package internal

import "testing"

func testDragManager(persisted *[]Position) *DragManager {
	return NewDragManager(Size{Width: 1280, Height: 800}, Size{Width: 340, Height: 460}, func(p Position) error {
		*persisted = append(*persisted, p)
		return nil
	})
}

func TestDragManager_IgnoresControls(t *testing.T) {
	var persisted []Position
	m := testDragManager(&persisted)

	for _, target := range []string{"button", "input", "textarea"} {
		if m.Start(PointerEvent{X: 10, Y: 10, Target: target}, DefaultPosition()) {
			t.Errorf("drag from %q should be ignored to preserve click semantics", target)
		}
	}
	if m.Start(PointerEvent{X: 10, Y: 10, Target: "header"}, DefaultPosition()) == false {
		t.Error("drag from the header should start")
	}
	if m.Start(PointerEvent{X: 10, Y: 10, Target: "prompt"}, DefaultPosition()) == false {
		t.Error("drag from the pre-login prompt should start")
	}
}

func TestDragManager_AnchoredToAbsolute(t *testing.T) {
	var persisted []Position
	m := testDragManager(&persisted)

	if !m.Start(PointerEvent{X: 1000, Y: 700, Target: "header"}, DefaultPosition()) {
		t.Fatal("Start() should accept a header gesture")
	}

	pos := m.Move(PointerEvent{X: 990, Y: 690})
	if pos.Anchored() {
		t.Error("first move should switch to absolute positioning")
	}

	// Default anchor is bottom/right 20: origin top = 800-460-20, left = 1280-340-20
	if *pos.Top != 310 || *pos.Left != 910 {
		t.Errorf("position = (%d, %d), want (310, 910)", *pos.Top, *pos.Left)
	}
}

func TestDragManager_ClampsToContainer(t *testing.T) {
	var persisted []Position
	m := testDragManager(&persisted)

	container := Size{Width: 1280, Height: 800}
	widget := Size{Width: 340, Height: 460}

	m.Start(PointerEvent{X: 0, Y: 0, Target: "header"}, Absolute(100, 100))

	tests := []struct {
		name string
		ev   PointerEvent
	}{
		{"far off top-left", PointerEvent{X: -5000, Y: -5000}},
		{"far off bottom-right", PointerEvent{X: 5000, Y: 5000}},
		{"mixed", PointerEvent{X: 5000, Y: -5000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := m.Move(tt.ev)
			if *pos.Top < 0 || *pos.Top > container.Height-widget.Height {
				t.Errorf("top %d outside [0, %d]", *pos.Top, container.Height-widget.Height)
			}
			if *pos.Left < 0 || *pos.Left > container.Width-widget.Width {
				t.Errorf("left %d outside [0, %d]", *pos.Left, container.Width-widget.Width)
			}
		})
	}
}

func TestDragManager_PersistsOnReleaseOnly(t *testing.T) {
	var persisted []Position
	m := testDragManager(&persisted)

	m.Start(PointerEvent{X: 500, Y: 500, Target: "header"}, Absolute(100, 100))
	m.Move(PointerEvent{X: 510, Y: 520})
	m.Move(PointerEvent{X: 530, Y: 540})
	m.Move(PointerEvent{X: 550, Y: 560})

	if len(persisted) != 0 {
		t.Fatalf("no position should persist before release, got %d", len(persisted))
	}

	if err := m.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if len(persisted) != 1 {
		t.Fatalf("exactly one position should persist on release, got %d", len(persisted))
	}
	if *persisted[0].Top != 160 || *persisted[0].Left != 150 {
		t.Errorf("persisted = (%d, %d), want (160, 150)", *persisted[0].Top, *persisted[0].Left)
	}
}

func TestDragManager_NoMoveNoPersist(t *testing.T) {
	var persisted []Position
	m := testDragManager(&persisted)

	m.Start(PointerEvent{X: 10, Y: 10, Target: "header"}, DefaultPosition())
	if err := m.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if len(persisted) != 0 {
		t.Error("a click without movement should not persist a position")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, max, want int
	}{
		{-10, 100, 0},
		{0, 100, 0},
		{50, 100, 50},
		{100, 100, 100},
		{150, 100, 100},
		{10, -5, 0},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.max); got != tt.want {
			t.Errorf("clamp(%d, %d) = %d, want %d", tt.v, tt.max, got, tt.want)
		}
	}
}
