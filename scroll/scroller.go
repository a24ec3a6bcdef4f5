package scroll

import (
	"time"

	"github.com/chewxy/math32"
)

const (
	gravityEarth   = 9.80665 // m/s²
	inchesPerMeter = 39.37

	// DefaultFriction is the platform scroll friction coefficient.
	DefaultFriction = 0.015
)

// DecelerationFor converts a friction coefficient and a display density
// (1.0 = 160 dpi) into a deceleration in px/s².
func DecelerationFor(friction, density float32) float32 {
	if friction <= 0 || density <= 0 {
		return 0
	}
	ppi := density * 160
	return gravityEarth * inchesPerMeter * ppi * friction
}

type motion uint8

const (
	motionNone motion = iota
	motionSmooth
	motionFling
)

// Scroller computes a one-dimensional scroll position over time. It runs at
// most one motion at a time: either an eased scroll between two offsets or a
// fling that decelerates at a constant rate until its velocity reaches zero.
//
// Scroller holds no timer; callers step it with Compute from their frame loop.
type Scroller struct {
	mode         motion
	finished     bool
	start        time.Time
	duration     time.Duration
	startY       int
	finalY       int
	currY        int
	velocity     float32 // initial fling velocity, px/s
	deceleration float32 // px/s²
	easing       EasingFunc
}

// NewScroller creates a finished scroller whose flings slow down at
// deceleration px/s².
func NewScroller(deceleration float32) *Scroller {
	return &Scroller{deceleration: deceleration, finished: true}
}

// StartScroll begins an eased scroll from startY by dy pixels over d.
func (s *Scroller) StartScroll(startY, dy int, d time.Duration, easing EasingFunc, now time.Time) {
	if easing == nil {
		easing = EaseOutCubic
	}
	s.mode = motionSmooth
	s.finished = false
	s.start = now
	s.duration = d
	s.startY = startY
	s.currY = startY
	s.finalY = startY + dy
	s.easing = easing
	s.velocity = 0
}

// Fling begins a decelerating motion from startY with an initial velocity in
// px/s. Positive velocities move toward larger offsets.
func (s *Scroller) Fling(startY int, velocity float32, now time.Time) {
	s.startY = startY
	s.currY = startY
	s.finalY = startY
	if velocity == 0 || s.deceleration <= 0 {
		s.mode = motionNone
		s.finished = true
		return
	}

	speed := math32.Abs(velocity)
	seconds := speed / s.deceleration
	distance := velocity * speed / (2 * s.deceleration)

	s.mode = motionFling
	s.finished = false
	s.start = now
	s.duration = time.Duration(float64(seconds) * float64(time.Second))
	s.velocity = velocity
	s.finalY = startY + int(math32.Round(distance))
}

// Compute advances the motion to now. It returns false once the scroller had
// already finished before this call, so the final position is reported once.
func (s *Scroller) Compute(now time.Time) bool {
	if s.finished {
		return false
	}

	elapsed := now.Sub(s.start)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= s.duration {
		s.currY = s.finalY
		s.finish()
		return true
	}

	switch s.mode {
	case motionSmooth:
		t := float32(elapsed) / float32(s.duration)
		p := s.easing(t)
		s.currY = s.startY + int(math32.Round(p*float32(s.finalY-s.startY)))
	case motionFling:
		t := float32(elapsed.Seconds())
		dir := math32.Copysign(1, s.velocity)
		d := s.velocity*t - dir*s.deceleration*t*t/2
		s.currY = s.startY + int(math32.Round(d))
	}
	return true
}

// Abort stops the motion where it is.
func (s *Scroller) Abort() {
	s.finish()
}

func (s *Scroller) finish() {
	s.finished = true
	s.mode = motionNone
}

// IsFinished reports whether no motion is running.
func (s *Scroller) IsFinished() bool { return s.finished }

func (s *Scroller) isFling() bool { return !s.finished && s.mode == motionFling }

// CurrY returns the position computed by the last Compute.
func (s *Scroller) CurrY() int { return s.currY }

// FinalY returns where the motion will come to rest.
func (s *Scroller) FinalY() int { return s.finalY }

// Duration returns the total duration of the last started motion.
func (s *Scroller) Duration() time.Duration { return s.duration }
