package panes

import "testing"

func testConfig() Config {
	return Config{
		Axis:           Horizontal,
		MinPrimary:     32,
		MinSecondary:   42,
		Thickness:      1,
		DefaultPrimary: 40,
	}
}

func TestPrimaryDefaultWithoutOverride(t *testing.T) {
	c := New(testConfig())
	if got := c.Primary(120); got != 40 {
		t.Errorf("Primary(120) = %d, want 40", got)
	}
	if c.HasOverride() {
		t.Errorf("HasOverride() = true, want false")
	}
}

func TestDragAppliesImmediatelyOnPress(t *testing.T) {
	c := New(testConfig())
	if !c.PointerDown(1, 55, 120, false) {
		t.Fatalf("PointerDown = false, want true")
	}
	if got := c.Primary(120); got != 55 {
		t.Errorf("Primary = %d, want 55 right after press", got)
	}
	if !c.Dragging() {
		t.Errorf("Dragging() = false, want true")
	}
}

func TestDragClampBounds(t *testing.T) {
	c := New(testConfig())
	c.PointerDown(1, 0, 120, false)
	if got := c.Primary(120); got != 32 {
		t.Errorf("Primary = %d, want MinPrimary 32", got)
	}
	c.PointerMove(1, 500, 120)
	// max = 120 - 1 - 42 = 77
	if got := c.Primary(120); got != 77 {
		t.Errorf("Primary = %d, want 77", got)
	}
}

func TestPrimaryMinWinsWhenViewportTooSmall(t *testing.T) {
	c := New(testConfig())
	c.PointerDown(1, 60, 50, false)
	if got := c.Primary(50); got != 32 {
		t.Errorf("Primary(50) = %d, want 32 (primary minimum wins)", got)
	}
}

func TestMovesFromOtherPointersIgnored(t *testing.T) {
	c := New(testConfig())
	c.PointerDown(1, 50, 120, false)
	c.PointerMove(2, 70, 120)
	if got := c.Primary(120); got != 50 {
		t.Errorf("Primary = %d, want 50 (foreign pointer applied)", got)
	}
}

func TestSecondPressRefused(t *testing.T) {
	c := New(testConfig())
	c.PointerDown(1, 50, 120, false)
	if c.PointerDown(2, 70, 120, false) {
		t.Errorf("second PointerDown = true, want false")
	}
	if got := c.Primary(120); got != 50 {
		t.Errorf("Primary = %d, want 50", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	c := New(testConfig())
	c.Stop() // not dragging: no-op
	c.PointerDown(1, 50, 120, false)
	c.Stop()
	c.Stop()
	if c.Dragging() {
		t.Errorf("Dragging() = true after Stop")
	}
	// Override survives the drag ending.
	if got := c.Primary(120); got != 50 {
		t.Errorf("Primary = %d, want 50 after Stop", got)
	}
}

func TestMovesAfterStopIgnored(t *testing.T) {
	c := New(testConfig())
	c.PointerDown(1, 50, 120, false)
	c.Stop()
	c.PointerMove(1, 70, 120)
	if got := c.Primary(120); got != 50 {
		t.Errorf("Primary = %d, want 50 (move after stop applied)", got)
	}
}

func TestCompactPressRefused(t *testing.T) {
	c := New(testConfig())
	if c.PointerDown(1, 50, 120, true) {
		t.Errorf("PointerDown in compact = true, want false")
	}
	if c.HasOverride() {
		t.Errorf("compact press installed an override")
	}
}

func TestResizeIntoCompactStopsAndClearsOverride(t *testing.T) {
	c := New(testConfig())
	c.PointerDown(1, 50, 120, false)
	c.Resize(80, true)
	if c.Dragging() {
		t.Errorf("Dragging() = true after compact resize")
	}
	if c.HasOverride() {
		t.Errorf("override survived compact resize")
	}
	if got := c.Primary(120); got != 40 {
		t.Errorf("Primary = %d, want default 40", got)
	}
}

func TestResizeReclampsOverride(t *testing.T) {
	c := New(testConfig())
	c.PointerDown(1, 77, 120, false)
	c.Stop()
	c.Resize(100, false)
	// max for total 100 = 100 - 1 - 42 = 57
	if got := c.Primary(100); got != 57 {
		t.Errorf("Primary(100) = %d, want 57", got)
	}
	if !c.HasOverride() {
		t.Errorf("override lost on plain resize")
	}
}

func TestSecondaryAccountsForThickness(t *testing.T) {
	c := New(testConfig())
	if got := c.Secondary(120); got != 120-1-40 {
		t.Errorf("Secondary(120) = %d, want %d", got, 120-1-40)
	}
}

func TestVerticalAxisConfig(t *testing.T) {
	c := New(Config{Axis: Vertical, MinPrimary: 7, MinSecondary: 7, Thickness: 1, DefaultPrimary: 10})
	if c.Axis() != Vertical {
		t.Errorf("Axis() = %v, want Vertical", c.Axis())
	}
	if got := c.Primary(30); got != 10 {
		t.Errorf("Primary(30) = %d, want 10", got)
	}
}
