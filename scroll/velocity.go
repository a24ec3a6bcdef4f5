package scroll

import (
	"time"

	"github.com/chewxy/math32"
)

// VelocityEstimator turns pointer samples into a velocity.
type VelocityEstimator interface {
	// AddSample records the pointer position at a point in time.
	AddSample(at time.Time, y float32)
	// Velocity returns the estimated velocity in px/s. Positive means the
	// pointer is moving toward larger y.
	Velocity() float32
	// Reset discards all samples.
	Reset()
}

const maxVelocitySamples = 32

type sample struct {
	at time.Time
	y  float32
}

// VelocityTracker estimates velocity with a least-squares line fit over the
// samples that fall inside a trailing time window.
type VelocityTracker struct {
	window  time.Duration
	samples []sample
}

// NewVelocityTracker creates a tracker considering samples no older than
// window relative to the newest sample.
func NewVelocityTracker(window time.Duration) *VelocityTracker {
	if window <= 0 {
		window = time.Second
	}
	return &VelocityTracker{
		window:  window,
		samples: make([]sample, 0, maxVelocitySamples),
	}
}

// AddSample implements VelocityEstimator.
func (v *VelocityTracker) AddSample(at time.Time, y float32) {
	if n := len(v.samples); n > 0 && at.Before(v.samples[n-1].at) {
		// Out-of-order sample; the gesture restarted
		v.samples = v.samples[:0]
	}
	if len(v.samples) == maxVelocitySamples {
		copy(v.samples, v.samples[1:])
		v.samples = v.samples[:maxVelocitySamples-1]
	}
	v.samples = append(v.samples, sample{at: at, y: y})
}

// Velocity implements VelocityEstimator.
func (v *VelocityTracker) Velocity() float32 {
	n := len(v.samples)
	if n < 2 {
		return 0
	}

	newest := v.samples[n-1].at
	first := 0
	for first < n && newest.Sub(v.samples[first].at) > v.window {
		first++
	}
	window := v.samples[first:]
	if len(window) < 2 {
		return 0
	}

	// Times are seconds relative to the newest sample to keep float32 precise
	var meanT, meanY float32
	for _, s := range window {
		meanT += float32(s.at.Sub(newest).Seconds())
		meanY += s.y
	}
	count := float32(len(window))
	meanT /= count
	meanY /= count

	var num, den float32
	for _, s := range window {
		dt := float32(s.at.Sub(newest).Seconds()) - meanT
		num += dt * (s.y - meanY)
		den += dt * dt
	}
	if den == 0 || math32.IsNaN(num/den) {
		return 0
	}
	return num / den
}

// Reset implements VelocityEstimator.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}
