package orbitnav

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Beta is kept strictly inside (0, π) so the view direction never
// degenerates at the poles.
const (
	betaEpsilon   = 0.01
	minRadius     = 0.1
	minRadiusSpan = 0.1
)

const degToRad = math.Pi / 180

// URL parameter keys for limit serialization.
const (
	urlKeyRestrictions = "restrictions"
	urlKeyAlphaMin     = "alphaMin"
	urlKeyAlphaMax     = "alphaMax"
	urlKeyBetaMin      = "betaMin"
	urlKeyBetaMax      = "betaMax"
	urlKeyRadiusMin    = "radiusMin"
	urlKeyRadiusMax    = "radiusMax"
)

// LimitConfig is the camera limit region. Invariants: AlphaMin ≤
// AlphaMax; BetaMin ≤ BetaMax, both in (0, π); RadiusMin ≤ RadiusMax,
// both positive. Mutate it only through the Limits setters, which keep
// the invariants — never directly.
type LimitConfig struct {
	AlphaMin, AlphaMax   float64
	BetaMin, BetaMax     float64
	RadiusMin, RadiusMax float64

	RestrictHorizontal bool
	RestrictVertical   bool
	RestrictDistance   bool
	EnablePanning      bool
}

// DefaultLimitConfig returns the unrestricted region: full ±2π
// horizontal freedom, the whole valid vertical band, and panning on.
func DefaultLimitConfig() LimitConfig {
	return LimitConfig{
		AlphaMin:  -2 * math.Pi,
		AlphaMax:  2 * math.Pi,
		BetaMin:   betaEpsilon,
		BetaMax:   math.Pi - betaEpsilon,
		RadiusMin: minRadius,
		RadiusMax: 100,

		EnablePanning: true,
	}
}

// normalize forces the config invariants, clamping rather than
// rejecting out-of-range values.
func (lc LimitConfig) normalize() LimitConfig {
	if lc.AlphaMin > lc.AlphaMax {
		lc.AlphaMin, lc.AlphaMax = lc.AlphaMax, lc.AlphaMin
	}
	bMin := clamp(math.Min(lc.BetaMin, lc.BetaMax), betaEpsilon, math.Pi-betaEpsilon)
	bMax := clamp(math.Max(lc.BetaMin, lc.BetaMax), betaEpsilon, math.Pi-betaEpsilon)
	lc.BetaMin, lc.BetaMax = bMin, bMax
	lc.RadiusMin = math.Max(lc.RadiusMin, minRadius)
	lc.RadiusMax = math.Max(lc.RadiusMax, lc.RadiusMin+minRadiusSpan)
	return lc
}

// UILimits is the user-facing view of a limit region, in degrees and
// offsets instead of raw radians.
type UILimits struct {
	HorizontalEnabled bool
	// TotalAngleDegrees is the width of the horizontal window;
	// OffsetDegrees is its center.
	TotalAngleDegrees float64
	OffsetDegrees     float64

	VerticalEnabled bool
	// UpDegrees is negative (looking upward reduces beta toward 0),
	// DownDegrees positive.
	UpDegrees   float64
	DownDegrees float64

	DistanceEnabled          bool
	MinDistance, MaxDistance float64

	PanningEnabled bool
}

// Limits owns the limit configuration and clamps the camera pose to it
// on every view-changed notification. All setters are idempotent and
// silently clamp invalid numeric input into the valid range.
type Limits struct {
	cam      *OrbitCamera
	cfg      LimitConfig
	defaults LimitConfig
	sub      ViewHandle
	disposed bool
}

// NewLimits creates the constraint engine for cam with the given
// operator default region and subscribes it to the camera's
// view-changed notification. The config is normalized and enforced
// immediately.
func NewLimits(cam *OrbitCamera, cfg LimitConfig) *Limits {
	l := &Limits{
		cam:      cam,
		cfg:      cfg.normalize(),
		defaults: cfg.normalize(),
	}
	l.sub = cam.OnViewChanged(func() { l.EnforceConstraints() })
	l.syncCamera()
	l.EnforceConstraints()
	return l
}

// Config returns a copy of the current limit configuration.
func (l *Limits) Config() LimitConfig {
	return l.cfg
}

// PanningEnabled reports whether panning is currently allowed.
func (l *Limits) PanningEnabled() bool {
	return l.cfg.EnablePanning
}

// SetDistanceLimits sets the radius restriction. min is raised to at
// least 0.1 and max to at least min+0.1.
func (l *Limits) SetDistanceLimits(enabled bool, min, max float64) {
	l.cfg.RestrictDistance = enabled
	if enabled {
		l.cfg.RadiusMin = math.Max(min, minRadius)
		l.cfg.RadiusMax = math.Max(max, l.cfg.RadiusMin+minRadiusSpan)
	}
	l.syncCamera()
	l.EnforceConstraints()
}

// SetVerticalLimitsUpDown sets the elevation restriction from
// user-facing degrees. Up is negative (looking upward reduces beta
// toward 0), down positive; both convert via beta = deg·π/180 + π/2
// and clamp into (0, π).
func (l *Limits) SetVerticalLimitsUpDown(enabled bool, upDeg, downDeg float64) {
	l.cfg.RestrictVertical = enabled
	if enabled {
		upBeta := upDeg*degToRad + math.Pi/2
		downBeta := downDeg*degToRad + math.Pi/2
		l.cfg.BetaMin = clamp(math.Min(upBeta, downBeta), betaEpsilon, math.Pi-betaEpsilon)
		l.cfg.BetaMax = clamp(math.Max(upBeta, downBeta), betaEpsilon, math.Pi-betaEpsilon)
	}
	l.syncCamera()
	l.EnforceConstraints()
}

// SetHorizontalLimitsAngleOffset sets the azimuth restriction as a
// window of totalDeg degrees centered on offsetDeg. Disabling restores
// the full ±2π freedom.
func (l *Limits) SetHorizontalLimitsAngleOffset(enabled bool, totalDeg, offsetDeg float64) {
	l.cfg.RestrictHorizontal = enabled
	if enabled {
		l.cfg.AlphaMin = (offsetDeg - totalDeg/2) * degToRad
		l.cfg.AlphaMax = (offsetDeg + totalDeg/2) * degToRad
		if l.cfg.AlphaMin > l.cfg.AlphaMax {
			l.cfg.AlphaMin, l.cfg.AlphaMax = l.cfg.AlphaMax, l.cfg.AlphaMin
		}
	} else {
		l.cfg.AlphaMin = -2 * math.Pi
		l.cfg.AlphaMax = 2 * math.Pi
	}
	l.syncCamera()
	l.EnforceConstraints()
}

// SetPanningEnabled toggles panning. Panning is a binary gate, not a
// bounded region: when disabled the manipulator drives pan sensitivity
// to zero.
func (l *Limits) SetPanningEnabled(enabled bool) {
	l.cfg.EnablePanning = enabled
}

// EnforceConstraints clamps the pose in place for every enabled
// restriction and reports whether any field changed. It runs on every
// view-changed notification, so it must stay cheap and re-entrant; it
// never re-notifies the camera.
func (l *Limits) EnforceConstraints() bool {
	changed := false
	if l.cfg.RestrictHorizontal {
		if a := clamp(l.cam.Alpha, l.cfg.AlphaMin, l.cfg.AlphaMax); a != l.cam.Alpha {
			l.cam.Alpha = a
			changed = true
		}
	}
	if l.cfg.RestrictVertical {
		if b := clamp(l.cam.Beta, l.cfg.BetaMin, l.cfg.BetaMax); b != l.cam.Beta {
			l.cam.Beta = b
			changed = true
		}
	}
	if l.cfg.RestrictDistance {
		if r := clamp(l.cam.Radius, l.cfg.RadiusMin, l.cfg.RadiusMax); r != l.cam.Radius {
			l.cam.Radius = r
			changed = true
		}
	}
	return changed
}

// ClampRadius clamps r into the configured radius region, regardless of
// whether the distance restriction is enabled. Used by the flythrough
// to pick its goal radius.
func (l *Limits) ClampRadius(r float64) float64 {
	return clamp(r, l.cfg.RadiusMin, l.cfg.RadiusMax)
}

// UILimits converts the current configuration into user-facing
// degree/offset values.
func (l *Limits) UILimits() UILimits {
	return UILimits{
		HorizontalEnabled: l.cfg.RestrictHorizontal,
		TotalAngleDegrees: (l.cfg.AlphaMax - l.cfg.AlphaMin) / degToRad,
		OffsetDegrees:     (l.cfg.AlphaMax + l.cfg.AlphaMin) / 2 / degToRad,

		VerticalEnabled: l.cfg.RestrictVertical,
		UpDegrees:       (l.cfg.BetaMin - math.Pi/2) / degToRad,
		DownDegrees:     (l.cfg.BetaMax - math.Pi/2) / degToRad,

		DistanceEnabled: l.cfg.RestrictDistance,
		MinDistance:     l.cfg.RadiusMin,
		MaxDistance:     l.cfg.RadiusMax,

		PanningEnabled: l.cfg.EnablePanning,
	}
}

// URLValues serializes the enabled restrictions to URL parameters.
// The restrictions value lists the active axes as characters from
// h, v, d, p; numeric keys are only emitted for enabled axes. Angles
// use 3 decimal places, radii 2.
func (l *Limits) URLValues() url.Values {
	v := url.Values{}
	var flags strings.Builder
	if l.cfg.RestrictHorizontal {
		flags.WriteByte('h')
		v.Set(urlKeyAlphaMin, fmt.Sprintf("%.3f", l.cfg.AlphaMin))
		v.Set(urlKeyAlphaMax, fmt.Sprintf("%.3f", l.cfg.AlphaMax))
	}
	if l.cfg.RestrictVertical {
		flags.WriteByte('v')
		v.Set(urlKeyBetaMin, fmt.Sprintf("%.3f", l.cfg.BetaMin))
		v.Set(urlKeyBetaMax, fmt.Sprintf("%.3f", l.cfg.BetaMax))
	}
	if l.cfg.RestrictDistance {
		flags.WriteByte('d')
		v.Set(urlKeyRadiusMin, fmt.Sprintf("%.2f", l.cfg.RadiusMin))
		v.Set(urlKeyRadiusMax, fmt.Sprintf("%.2f", l.cfg.RadiusMax))
	}
	if !l.cfg.EnablePanning {
		flags.WriteByte('p')
	}
	if flags.Len() > 0 {
		v.Set(urlKeyRestrictions, flags.String())
	}
	return v
}

// ApplyURLValues applies limits parsed from URL parameters. A missing
// restrictions key leaves the configuration untouched. Numeric fields
// that are absent or fail to parse as finite numbers keep their current
// value; everything applied passes through the usual clamping.
func (l *Limits) ApplyURLValues(v url.Values) {
	flags, ok := getParam(v, urlKeyRestrictions)
	if !ok {
		return
	}

	l.cfg.RestrictHorizontal = strings.ContainsRune(flags, 'h')
	l.cfg.RestrictVertical = strings.ContainsRune(flags, 'v')
	l.cfg.RestrictDistance = strings.ContainsRune(flags, 'd')
	l.cfg.EnablePanning = !strings.ContainsRune(flags, 'p')

	if l.cfg.RestrictHorizontal {
		applyFinite(v, urlKeyAlphaMin, &l.cfg.AlphaMin)
		applyFinite(v, urlKeyAlphaMax, &l.cfg.AlphaMax)
	} else {
		l.cfg.AlphaMin = -2 * math.Pi
		l.cfg.AlphaMax = 2 * math.Pi
	}
	if l.cfg.RestrictVertical {
		applyFinite(v, urlKeyBetaMin, &l.cfg.BetaMin)
		applyFinite(v, urlKeyBetaMax, &l.cfg.BetaMax)
	}
	if l.cfg.RestrictDistance {
		applyFinite(v, urlKeyRadiusMin, &l.cfg.RadiusMin)
		applyFinite(v, urlKeyRadiusMax, &l.cfg.RadiusMax)
	}

	l.cfg = l.cfg.normalize()
	l.syncCamera()
	l.EnforceConstraints()
}

// ResetToDefaults restores the operator default region and re-applies
// the constraints immediately.
func (l *Limits) ResetToDefaults() {
	l.cfg = l.defaults
	l.syncCamera()
	l.EnforceConstraints()
}

// Dispose deregisters the view-changed subscription. Safe to call more
// than once.
func (l *Limits) Dispose() {
	if l.disposed {
		return
	}
	l.disposed = true
	l.sub.Remove()
}

// syncCamera mirrors the enabled restrictions into the camera's
// nullable limit fields for renderers that honor them natively.
func (l *Limits) syncCamera() {
	if l.cfg.RestrictHorizontal {
		l.cam.LowerAlphaLimit = ptr(l.cfg.AlphaMin)
		l.cam.UpperAlphaLimit = ptr(l.cfg.AlphaMax)
	} else {
		l.cam.LowerAlphaLimit = nil
		l.cam.UpperAlphaLimit = nil
	}
	if l.cfg.RestrictVertical {
		l.cam.LowerBetaLimit = ptr(l.cfg.BetaMin)
		l.cam.UpperBetaLimit = ptr(l.cfg.BetaMax)
	} else {
		l.cam.LowerBetaLimit = nil
		l.cam.UpperBetaLimit = nil
	}
	if l.cfg.RestrictDistance {
		l.cam.LowerRadiusLimit = ptr(l.cfg.RadiusMin)
		l.cam.UpperRadiusLimit = ptr(l.cfg.RadiusMax)
	} else {
		l.cam.LowerRadiusLimit = nil
		l.cam.UpperRadiusLimit = nil
	}
}

func ptr(f float64) *float64 {
	return &f
}

// getParam returns the first value for key, reporting presence.
func getParam(v url.Values, key string) (string, bool) {
	if _, ok := v[key]; !ok {
		return "", false
	}
	return v.Get(key), true
}

// applyFinite parses the named parameter and stores it into dst only if
// it is a finite number; otherwise dst keeps its value.
func applyFinite(v url.Values, key string, dst *float64) {
	s, ok := getParam(v, key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	*dst = f
}
