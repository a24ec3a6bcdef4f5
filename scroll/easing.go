package scroll

// EasingFunc maps elapsed fraction t in [0, 1] to travelled fraction in [0, 1].
type EasingFunc func(t float32) float32

var (
	EaseLinear EasingFunc = func(t float32) float32 { return t }

	EaseOutQuad EasingFunc = func(t float32) float32 { return t * (2 - t) }

	EaseInOutQuad EasingFunc = func(t float32) float32 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}

	// EaseOutCubic is the default for programmatic scrolls: fast start,
	// long settle.
	EaseOutCubic EasingFunc = func(t float32) float32 {
		t--
		return t*t*t + 1
	}

	EaseInOutCubic EasingFunc = func(t float32) float32 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	}
)

// EasingByName looks up a curve by its config name, or returns nil.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-out":
		return EaseOutQuad
	case "ease", "ease-in-out":
		return EaseInOutQuad
	case "cubic", "ease-out-cubic":
		return EaseOutCubic
	case "ease-in-out-cubic":
		return EaseInOutCubic
	}
	return nil
}
