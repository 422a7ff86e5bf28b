package timer

// EasingFunc maps progress in [0,1] to eased progress in [0,1], satisfying
// f(0)=0 and f(1)=1.
type EasingFunc func(t float64) float64

// Easings holds the built-in named easing functions a Tween may reference.
var Easings = map[string]EasingFunc{
	"linear": func(t float64) float64 { return t },
	"ease_in": func(t float64) float64 {
		return t * t
	},
	"ease_out": func(t float64) float64 {
		return t * (2 - t)
	},
	"ease_in_out": func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},
}
