// Package panes implements the splitter drag state machine shared by the
// three resizable splits: a pointer-captured Idle→Dragging→Idle cycle with
// axis-aware clamping, responsive collapse in compact viewports, and
// re-clamping on viewport resize. Sizes are terminal cells.
package panes

// Axis selects which pointer coordinate drives the drag.
type Axis int

const (
	// Horizontal splits two columns; the x coordinate drives the drag.
	Horizontal Axis = iota
	// Vertical splits two rows; the y coordinate drives the drag.
	Vertical
)

// Config holds the per-instance constants. DefaultPrimary is the primary
// size used until the user drags an override into place.
type Config struct {
	Axis           Axis
	MinPrimary     int
	MinSecondary   int
	Thickness      int
	DefaultPrimary int
}

// Controller is one splitter instance. At most one drag is active at a
// time, tracked by the pointer identifier that started it. Instances are
// independent; they never share state.
type Controller struct {
	cfg Config

	dragging  bool
	pointerID int

	hasOverride bool
	override    int
}

// New returns an idle controller with no manual override.
func New(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// Axis returns the configured drag axis.
func (c *Controller) Axis() Axis {
	return c.cfg.Axis
}

// Dragging reports whether a drag is in progress. The rendering layer uses
// this as the "resizing" flag.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// PointerDown begins a drag, unless the viewport is compact or another drag
// already holds the controller. The pointer identifier is tracked
// exclusively until the drag stops, and the pointer coordinate is applied
// immediately. Reports whether the drag started.
func (c *Controller) PointerDown(pointerID, coord, total int, compact bool) bool {
	if compact || c.dragging {
		return false
	}
	c.dragging = true
	c.pointerID = pointerID
	c.apply(coord, total)
	return true
}

// PointerMove recomputes the primary size from the pointer coordinate.
// Moves from any pointer other than the captured one are ignored.
func (c *Controller) PointerMove(pointerID, coord, total int) {
	if !c.dragging || pointerID != c.pointerID {
		return
	}
	c.apply(coord, total)
}

// Stop ends the drag and releases the captured pointer. Idempotent: calling
// Stop when not dragging is a no-op.
func (c *Controller) Stop() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.pointerID = 0
}

// Resize handles a viewport change. Entering compact mode forces any
// in-flight drag to stop and removes the manual override so the layout
// reverts to its stacked default; otherwise an existing override is
// re-clamped against the new total so it never ends up out of bounds after
// a shrink.
func (c *Controller) Resize(total int, compact bool) {
	if compact {
		c.Stop()
		c.hasOverride = false
		c.override = 0
		return
	}
	if c.hasOverride {
		c.override = c.clamp(c.override, total)
	}
}

// Primary returns the effective primary size for the given total: the
// clamped override when one exists, else the clamped default.
func (c *Controller) Primary(total int) int {
	if c.hasOverride {
		return c.clamp(c.override, total)
	}
	return c.clamp(c.cfg.DefaultPrimary, total)
}

// Secondary returns the size left for the other region after the primary
// and the splitter itself.
func (c *Controller) Secondary(total int) int {
	s := total - c.cfg.Thickness - c.Primary(total)
	if s < 0 {
		return 0
	}
	return s
}

// HasOverride reports whether the user has dragged a manual size into
// place.
func (c *Controller) HasOverride() bool {
	return c.hasOverride
}

func (c *Controller) apply(coord, total int) {
	c.override = c.clamp(coord, total)
	c.hasOverride = true
}

// clamp bounds a desired primary size to
// [MinPrimary, total − Thickness − MinSecondary]. When the viewport is too
// small for both minimums the primary minimum wins.
func (c *Controller) clamp(desired, total int) int {
	maxPrimary := total - c.cfg.Thickness - c.cfg.MinSecondary
	if maxPrimary < c.cfg.MinPrimary {
		maxPrimary = c.cfg.MinPrimary
	}
	if desired > maxPrimary {
		desired = maxPrimary
	}
	if desired < c.cfg.MinPrimary {
		desired = c.cfg.MinPrimary
	}
	return desired
}
