package orbitnav

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Default tunables. Distances are in pixels unless noted.
const (
	defaultTapMaxDistance       = 10.0
	defaultDoubleTapInterval    = 500 * time.Millisecond
	defaultSettleDelay          = 100 * time.Millisecond
	defaultGestureChangeTimeout = 350 * time.Millisecond
	defaultMoveThrottle         = 16 * time.Millisecond
	defaultMinPanDistance       = 3.0
	defaultSmoothingFactor      = 0.2
	defaultPinchSensitivity     = 0.15
	defaultPanSensitivity       = 0.005
	defaultPinchPanMultiplier   = 0.5
	defaultFlyDuration          = time.Second
	defaultTouchFlyMultiplier   = 1.5
	defaultClickFlyMultiplier   = 3.5
)

// Config holds the flat set of interaction tunables consumed at
// construction. The zero value of every field means "use the default";
// AllowSimultaneous is the exception in spirit: gesture exclusivity is
// on by default and disabled by setting AllowSimultaneous to true.
type Config struct {
	// TapMaxDistance is the total displacement in pixels beyond which a
	// contact no longer counts as a tap (and loses double-tap candidacy).
	TapMaxDistance float64
	// DoubleTapInterval is the maximum gap between a touch-up and the
	// next touch-down for the pair to count as a double tap.
	DoubleTapInterval time.Duration
	// SettleDelay defers gesture classification after a touch-count
	// change until enough samples exist to disambiguate.
	SettleDelay time.Duration
	// GestureChangeTimeout is the debounce window: re-starting the same
	// gesture kind within this window after it ended skips SettleDelay.
	GestureChangeTimeout time.Duration
	// MoveThrottle caps gesture math at roughly one move per interval
	// (~60 Hz by default). Contact bookkeeping is never throttled.
	MoveThrottle time.Duration
	// MinPanDistance is the smoothed-delta magnitude below which pan
	// movement is ignored, for both one-finger pan and pinch-center pan.
	MinPanDistance float64
	// AllowSimultaneous disables gesture exclusivity, letting a pinch
	// lock replace an active pan lock and vice versa.
	AllowSimultaneous bool
	// SmoothingFactor is the lerp factor (0..1] applied when moving the
	// pose toward a gesture goal. Lower is smoother but laggier.
	SmoothingFactor float64
	// PinchSensitivity scales pinch distance changes into zoom deltas.
	PinchSensitivity float64
	// PanSensitivity scales screen-pixel pan deltas into world units,
	// multiplied by the current radius.
	PanSensitivity float64
	// PinchPanMultiplier reduces pan sensitivity while the pan is driven
	// by a moving pinch center rather than a single finger.
	PinchPanMultiplier float64

	// FlyDuration is the length of the double-tap flythrough animation.
	FlyDuration time.Duration
	// FlyEase is the easing function for the flythrough. Defaults to
	// ease.InOutQuad.
	FlyEase ease.TweenFunc
	// TouchFlyMultiplier and ClickFlyMultiplier scale the picked
	// distance into the flythrough goal radius. The touch multiplier is
	// smaller so touch flythroughs are more conservative.
	TouchFlyMultiplier float64
	ClickFlyMultiplier float64
}

// DefaultConfig returns a Config populated with every default.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// withDefaults fills zero-valued fields with their defaults.
func (c Config) withDefaults() Config {
	if c.TapMaxDistance == 0 {
		c.TapMaxDistance = defaultTapMaxDistance
	}
	if c.DoubleTapInterval == 0 {
		c.DoubleTapInterval = defaultDoubleTapInterval
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = defaultSettleDelay
	}
	if c.GestureChangeTimeout == 0 {
		c.GestureChangeTimeout = defaultGestureChangeTimeout
	}
	if c.MoveThrottle == 0 {
		c.MoveThrottle = defaultMoveThrottle
	}
	if c.MinPanDistance == 0 {
		c.MinPanDistance = defaultMinPanDistance
	}
	if c.SmoothingFactor == 0 {
		c.SmoothingFactor = defaultSmoothingFactor
	}
	if c.PinchSensitivity == 0 {
		c.PinchSensitivity = defaultPinchSensitivity
	}
	if c.PanSensitivity == 0 {
		c.PanSensitivity = defaultPanSensitivity
	}
	if c.PinchPanMultiplier == 0 {
		c.PinchPanMultiplier = defaultPinchPanMultiplier
	}
	if c.FlyDuration == 0 {
		c.FlyDuration = defaultFlyDuration
	}
	if c.FlyEase == nil {
		c.FlyEase = ease.InOutQuad
	}
	if c.TouchFlyMultiplier == 0 {
		c.TouchFlyMultiplier = defaultTouchFlyMultiplier
	}
	if c.ClickFlyMultiplier == 0 {
		c.ClickFlyMultiplier = defaultClickFlyMultiplier
	}
	return c
}
