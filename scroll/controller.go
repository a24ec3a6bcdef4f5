package scroll

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
)

// State is the controller's gesture/animation state.
type State uint8

const (
	// StateIdle - nothing moving.
	StateIdle State = iota
	// StateDragging - the pointer is scrolling the content.
	StateDragging
	// StateFlinging - inertial scroll after a fast release.
	StateFlinging
	// StateSettling - programmatic eased scroll toward a target offset.
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateFlinging:
		return "flinging"
	case StateSettling:
		return "settling"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Config tunes drag detection and scroll physics.
type Config struct {
	DragThreshold     int           // Distance to move before a drag starts (px)
	FlingThreshold    float32       // Minimum release speed that starts a fling (px/s)
	VelocityWindow    time.Duration // Trailing window for release velocity
	Deceleration      float32       // Fling deceleration (px/s²)
	MinSmoothDuration time.Duration // Lower bound for programmatic scrolls
	MaxSmoothDuration time.Duration // Upper bound for programmatic scrolls
	Easing            EasingFunc    // Curve for programmatic scrolls
}

// DefaultConfig returns the stock touch-scrolling behavior.
func DefaultConfig() Config {
	return Config{
		DragThreshold:     10,
		FlingThreshold:    200,
		VelocityWindow:    time.Second,
		Deceleration:      DecelerationFor(DefaultFriction, 1),
		MinSmoothDuration: 300 * time.Millisecond,
		MaxSmoothDuration: 600 * time.Millisecond,
		Easing:            EaseOutCubic,
	}
}

// withDefaults replaces unusable values with the defaults.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DragThreshold < 0 {
		c.DragThreshold = def.DragThreshold
	}
	if c.FlingThreshold < 0 {
		c.FlingThreshold = def.FlingThreshold
	}
	if c.VelocityWindow <= 0 {
		c.VelocityWindow = def.VelocityWindow
	}
	if c.Deceleration <= 0 {
		c.Deceleration = def.Deceleration
	}
	if c.MinSmoothDuration <= 0 {
		c.MinSmoothDuration = def.MinSmoothDuration
	}
	if c.MaxSmoothDuration < c.MinSmoothDuration {
		c.MaxSmoothDuration = c.MinSmoothDuration
	}
	if c.Easing == nil {
		c.Easing = def.Easing
	}
	return c
}

// SmoothDuration returns how long a programmatic scroll over distance
// pixels takes: one millisecond per pixel, clamped to the configured bounds.
func (c Config) SmoothDuration(distance int) time.Duration {
	if distance < 0 {
		distance = -distance
	}
	d := time.Duration(distance) * time.Millisecond
	if d < c.MinSmoothDuration {
		d = c.MinSmoothDuration
	}
	if d > c.MaxSmoothDuration {
		d = c.MaxSmoothDuration
	}
	return d
}

// Controller owns the vertical scroll offset of a container and drives it
// from pointer events and animation ticks. The offset always stays within
// [0, MaxOffset].
//
// A Controller is not safe for concurrent use; all calls are expected on the
// UI thread.
type Controller struct {
	cfg Config

	offset    int
	maxOffset int
	state     State

	// Press tracking (pressed is set between down and up)
	pressed bool
	startY  int
	lastY   int

	tracker  VelocityEstimator
	scroller *Scroller

	onScroll      func(offset int)
	onStateChange func(State)
}

// NewController creates an idle controller at offset 0.
func NewController(cfg Config) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		cfg:      cfg,
		tracker:  NewVelocityTracker(cfg.VelocityWindow),
		scroller: NewScroller(cfg.Deceleration),
	}
}

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// SetVelocityEstimator replaces the velocity estimator.
func (c *Controller) SetVelocityEstimator(v VelocityEstimator) {
	if v != nil {
		c.tracker = v
	}
}

// OnScroll sets the callback fired whenever the offset changes.
func (c *Controller) OnScroll(fn func(offset int)) { c.onScroll = fn }

// OnStateChange sets the callback fired on every state transition.
func (c *Controller) OnStateChange(fn func(State)) { c.onStateChange = fn }

// Offset returns the current scroll offset.
func (c *Controller) Offset() int { return c.offset }

// MaxOffset returns the largest valid offset.
func (c *Controller) MaxOffset() int { return c.maxOffset }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Scrollable reports whether the content is taller than the viewport.
func (c *Controller) Scrollable() bool { return c.maxOffset > 0 }

// IsAnimating reports whether a fling or programmatic scroll is running.
func (c *Controller) IsAnimating() bool {
	return c.state == StateFlinging || c.state == StateSettling
}

// Target returns where the running fling or programmatic scroll comes to
// rest, clamped to the scroll range. Without an animation it is Offset.
func (c *Controller) Target() int {
	if !c.IsAnimating() {
		return c.offset
	}
	return c.clamp(c.scroller.FinalY())
}

// AnimationDuration returns the full length of the running animation, or 0.
// A fling cut short by an edge ends earlier.
func (c *Controller) AnimationDuration() time.Duration {
	if !c.IsAnimating() {
		return 0
	}
	return c.scroller.Duration()
}

// SetMaxOffset updates the scroll bound, clamping the current offset into
// the new range. Negative bounds are treated as 0.
func (c *Controller) SetMaxOffset(max int) {
	if max < 0 {
		max = 0
	}
	c.maxOffset = max
	if c.offset > max {
		c.setOffset(max)
	}
}

// SetOffset jumps to y (clamped), stopping any running animation.
func (c *Controller) SetOffset(y int) {
	c.abortAnimation()
	c.setOffset(c.clamp(y))
}

// SmoothScrollTo starts an eased scroll to y (clamped). The duration is
// proportional to the distance within the configured bounds.
func (c *Controller) SmoothScrollTo(y int, now time.Time) {
	c.abortAnimation()
	target := c.clamp(y)
	dy := target - c.offset
	if dy == 0 {
		return
	}
	c.scroller.StartScroll(c.offset, dy, c.cfg.SmoothDuration(dy), c.cfg.Easing, now)
	c.setState(StateSettling)
}

// Fling starts an inertial scroll with velocity in px/s. Positive
// velocities move toward larger offsets.
func (c *Controller) Fling(velocity float32, now time.Time) {
	c.abortAnimation()
	c.scroller.Fling(c.offset, velocity, now)
	if c.scroller.IsFinished() {
		return
	}
	c.setState(StateFlinging)
}

// Abort stops any running animation and leaves the offset where it is.
func (c *Controller) Abort() {
	c.abortAnimation()
}

// HandlePointer feeds one pointer event through the drag state machine.
// It returns true when the event was consumed for scrolling.
func (c *Controller) HandlePointer(ev PointerEvent) bool {
	y := int(ev.Y)

	switch ev.Action {
	case ActionDown:
		if !c.Scrollable() {
			return false
		}
		c.press(ev, y)
		// Presses are left to children so taps still work
		return false

	case ActionMove:
		if !c.pressed {
			// A child took the press; the first intercepted move starts the gesture
			if !c.Scrollable() {
				return false
			}
			c.press(ev, y)
			return true
		}
		c.tracker.AddSample(ev.Time, ev.Y)

		if c.state != StateDragging {
			dist := y - c.startY
			if dist < 0 {
				dist = -dist
			}
			if dist <= c.cfg.DragThreshold {
				return true
			}
			// The threshold crossing becomes the drag baseline
			c.lastY = y
			c.setState(StateDragging)
			return true
		}

		dy := c.lastY - y
		c.lastY = y
		c.setOffset(c.clamp(c.offset + dy))
		return true

	case ActionUp:
		if !c.pressed {
			return false
		}
		c.pressed = false
		if c.state != StateDragging {
			c.tracker.Reset()
			return false
		}

		c.tracker.AddSample(ev.Time, ev.Y)
		velocity := c.tracker.Velocity()
		c.tracker.Reset()

		if math32.Abs(velocity) > c.cfg.FlingThreshold {
			// Dragging down scrolls toward smaller offsets
			c.Fling(-velocity, ev.Time)
			if c.state == StateFlinging {
				return true
			}
		}
		c.setState(StateIdle)
		return true

	case ActionCancel:
		c.pressed = false
		c.tracker.Reset()
		if c.state == StateDragging {
			c.setState(StateIdle)
		}
		return false
	}
	return false
}

// Tick advances a running fling or programmatic scroll to now. It returns
// true while another tick is needed.
func (c *Controller) Tick(now time.Time) bool {
	if !c.IsAnimating() {
		return false
	}
	if !c.scroller.Compute(now) {
		c.setState(StateIdle)
		return false
	}

	y := c.scroller.CurrY()
	clamped := c.clamp(y)
	c.setOffset(clamped)

	if clamped != y || c.scroller.IsFinished() {
		// Edge hit: no bounce, stop right here
		c.scroller.Abort()
		c.setState(StateIdle)
		return false
	}
	return true
}

func (c *Controller) press(ev PointerEvent, y int) {
	c.abortAnimation()
	c.tracker.Reset()
	c.tracker.AddSample(ev.Time, ev.Y)
	c.pressed = true
	c.startY = y
	c.lastY = y
}

func (c *Controller) abortAnimation() {
	if !c.scroller.IsFinished() {
		c.scroller.Abort()
	}
	if c.IsAnimating() {
		c.setState(StateIdle)
	}
}

func (c *Controller) clamp(y int) int {
	if y < 0 {
		return 0
	}
	if y > c.maxOffset {
		return c.maxOffset
	}
	return y
}

func (c *Controller) setOffset(y int) {
	if y == c.offset {
		return
	}
	c.offset = y
	if c.onScroll != nil {
		c.onScroll(y)
	}
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.state = s
	if c.onStateChange != nil {
		c.onStateChange(s)
	}
}
