package orbitnav

import (
	"math"
	"net/url"
	"testing"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

func TestLimitsVerticalUpDownConversion(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())

	l.SetVerticalLimitsUpDown(true, -80, 80)
	cfg := l.Config()
	approx(t, "BetaMin", cfg.BetaMin, 0.1745, 0.001)
	approx(t, "BetaMax", cfg.BetaMax, 2.967, 0.001)
}

func TestLimitsVerticalClampsToValidBand(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())

	// ±120° would leave the (0, π) band; the stored limits stay inside.
	l.SetVerticalLimitsUpDown(true, -120, 120)
	cfg := l.Config()
	approx(t, "BetaMin", cfg.BetaMin, 0.01, 1e-12)
	approx(t, "BetaMax", cfg.BetaMax, math.Pi-0.01, 1e-12)
}

func TestLimitsHorizontalAngleOffsetConversion(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())

	l.SetHorizontalLimitsAngleOffset(true, 90, 45)
	cfg := l.Config()
	approx(t, "AlphaMin", cfg.AlphaMin, 0, 1e-12)
	approx(t, "AlphaMax", cfg.AlphaMax, math.Pi/2, 1e-9)

	// Disabling restores full freedom.
	l.SetHorizontalLimitsAngleOffset(false, 0, 0)
	cfg = l.Config()
	approx(t, "AlphaMin", cfg.AlphaMin, -2*math.Pi, 1e-12)
	approx(t, "AlphaMax", cfg.AlphaMax, 2*math.Pi, 1e-12)
}

func TestLimitsDistanceClampsInput(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())

	tests := []struct {
		name             string
		min, max         float64
		wantMin, wantMax float64
	}{
		{"well formed", 2, 50, 2, 50},
		{"min below floor", -5, 50, 0.1, 50},
		{"max below min", 10, 3, 10, 10.1},
		{"both invalid", -1, -1, 0.1, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.SetDistanceLimits(true, tt.min, tt.max)
			cfg := l.Config()
			approx(t, "RadiusMin", cfg.RadiusMin, tt.wantMin, 1e-9)
			approx(t, "RadiusMax", cfg.RadiusMax, tt.wantMax, 1e-9)
		})
	}
}

func TestLimitsEnforceClampInvariant(t *testing.T) {
	tests := []struct {
		name                string
		alpha, beta, radius float64
		wantChanged         bool
	}{
		{"inside region", 0.5, 1.0, 10, false},
		{"alpha low", -3, 1.0, 10, true},
		{"alpha high", 3, 1.0, 10, true},
		{"beta low", 0.5, 0.05, 10, true},
		{"beta high", 0.5, 3.1, 10, true},
		{"radius low", 0.5, 1.0, 0.5, true},
		{"radius high", 0.5, 1.0, 500, true},
		{"everything out", -10, 10, 1e6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewOrbitCamera()
			l := NewLimits(cam, DefaultLimitConfig())
			l.SetHorizontalLimitsAngleOffset(true, 90, 0)
			l.SetVerticalLimitsUpDown(true, -60, 60)
			l.SetDistanceLimits(true, 2, 50)

			cam.Alpha, cam.Beta, cam.Radius = tt.alpha, tt.beta, tt.radius
			changed := l.EnforceConstraints()
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}

			cfg := l.Config()
			if cam.Alpha < cfg.AlphaMin || cam.Alpha > cfg.AlphaMax {
				t.Errorf("alpha %v outside [%v,%v]", cam.Alpha, cfg.AlphaMin, cfg.AlphaMax)
			}
			if cam.Beta < cfg.BetaMin || cam.Beta > cfg.BetaMax {
				t.Errorf("beta %v outside [%v,%v]", cam.Beta, cfg.BetaMin, cfg.BetaMax)
			}
			if cam.Radius < cfg.RadiusMin || cam.Radius > cfg.RadiusMax {
				t.Errorf("radius %v outside [%v,%v]", cam.Radius, cfg.RadiusMin, cfg.RadiusMax)
			}
		})
	}
}

func TestLimitsDisabledRestrictionsDoNotClamp(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())

	cam.Alpha, cam.Beta, cam.Radius = 100, 1.0, 1e6
	if l.EnforceConstraints() {
		t.Error("pose changed with every restriction disabled")
	}
	if cam.Alpha != 100 || cam.Radius != 1e6 {
		t.Error("pose fields mutated with restrictions disabled")
	}
}

func TestLimitsClampOnViewChanged(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())
	l.SetVerticalLimitsUpDown(true, -30, 30)

	cam.Beta = 3.0
	cam.NotifyViewChanged()
	cfg := l.Config()
	approx(t, "Beta after notify", cam.Beta, cfg.BetaMax, 1e-12)
}

func TestLimitsUIRoundTrip(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())
	l.SetVerticalLimitsUpDown(true, -80, 45)
	l.SetHorizontalLimitsAngleOffset(true, 120, -30)
	l.SetDistanceLimits(true, 2, 50)
	l.SetPanningEnabled(false)

	ui := l.UILimits()
	approx(t, "UpDegrees", ui.UpDegrees, -80, 1)
	approx(t, "DownDegrees", ui.DownDegrees, 45, 1)
	approx(t, "TotalAngleDegrees", ui.TotalAngleDegrees, 120, 1)
	approx(t, "OffsetDegrees", ui.OffsetDegrees, -30, 1)
	approx(t, "MinDistance", ui.MinDistance, 2, 1e-9)
	approx(t, "MaxDistance", ui.MaxDistance, 50, 1e-9)
	if ui.PanningEnabled {
		t.Error("PanningEnabled = true, want false")
	}

	// Feeding the UI values back through the setters reproduces the
	// stored radians.
	before := l.Config()
	l.SetVerticalLimitsUpDown(ui.VerticalEnabled, ui.UpDegrees, ui.DownDegrees)
	l.SetHorizontalLimitsAngleOffset(ui.HorizontalEnabled, ui.TotalAngleDegrees, ui.OffsetDegrees)
	after := l.Config()
	approx(t, "BetaMin", after.BetaMin, before.BetaMin, 0.0175) // 1°
	approx(t, "BetaMax", after.BetaMax, before.BetaMax, 0.0175)
	approx(t, "AlphaMin", after.AlphaMin, before.AlphaMin, 0.0175)
	approx(t, "AlphaMax", after.AlphaMax, before.AlphaMax, 0.0175)
}

func TestLimitsURLRoundTrip(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())
	l.SetHorizontalLimitsAngleOffset(true, 90, 45)
	l.SetVerticalLimitsUpDown(true, -80, 80)
	l.SetDistanceLimits(true, 2, 50)
	l.SetPanningEnabled(false)

	v := l.URLValues()
	if got := v.Get("restrictions"); got != "hvdp" {
		t.Fatalf("restrictions = %q, want %q", got, "hvdp")
	}

	cam2 := NewOrbitCamera()
	l2 := NewLimits(cam2, DefaultLimitConfig())
	l2.ApplyURLValues(v)

	a, b := l.Config(), l2.Config()
	approx(t, "AlphaMin", b.AlphaMin, a.AlphaMin, 0.001)
	approx(t, "AlphaMax", b.AlphaMax, a.AlphaMax, 0.001)
	approx(t, "BetaMin", b.BetaMin, a.BetaMin, 0.001)
	approx(t, "BetaMax", b.BetaMax, a.BetaMax, 0.001)
	approx(t, "RadiusMin", b.RadiusMin, a.RadiusMin, 0.01)
	approx(t, "RadiusMax", b.RadiusMax, a.RadiusMax, 0.01)
	if !b.RestrictHorizontal || !b.RestrictVertical || !b.RestrictDistance {
		t.Error("restriction flags lost in round trip")
	}
	if b.EnablePanning {
		t.Error("panning flag lost in round trip")
	}
}

func TestLimitsURLOnlyEmitsEnabledAxes(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())
	l.SetDistanceLimits(true, 2, 50)

	v := l.URLValues()
	if got := v.Get("restrictions"); got != "d" {
		t.Errorf("restrictions = %q, want %q", got, "d")
	}
	for _, key := range []string{"alphaMin", "alphaMax", "betaMin", "betaMax"} {
		if _, ok := v[key]; ok {
			t.Errorf("key %q emitted for a disabled axis", key)
		}
	}
}

func TestLimitsURLNoRestrictions(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())
	if v := l.URLValues(); len(v) != 0 {
		t.Errorf("URLValues with nothing restricted = %v, want empty", v)
	}
}

func TestLimitsApplyURLMalformed(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())
	l.SetDistanceLimits(true, 5, 20)

	tests := []struct {
		name string
		raw  string
	}{
		{"garbage number", "restrictions=d&radiusMin=abc&radiusMax=xyz"},
		{"NaN", "restrictions=d&radiusMin=NaN&radiusMax=NaN"},
		{"infinite", "restrictions=d&radiusMin=-Inf&radiusMax=%2BInf"},
		{"missing fields", "restrictions=d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.raw)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			l.ApplyURLValues(v)
			cfg := l.Config()
			approx(t, "RadiusMin", cfg.RadiusMin, 5, 1e-9)
			approx(t, "RadiusMax", cfg.RadiusMax, 20, 1e-9)
			if !cfg.RestrictDistance {
				t.Error("distance restriction flag not applied")
			}
		})
	}
}

func TestLimitsApplyURLWithoutRestrictionsKey(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())
	l.SetDistanceLimits(true, 5, 20)

	l.ApplyURLValues(url.Values{"radiusMin": {"1"}, "radiusMax": {"2"}})
	cfg := l.Config()
	if !cfg.RestrictDistance || cfg.RadiusMin != 5 || cfg.RadiusMax != 20 {
		t.Error("configuration changed without a restrictions key")
	}
}

func TestLimitsCameraMirrorFields(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())

	if cam.LowerBetaLimit != nil || cam.UpperRadiusLimit != nil {
		t.Fatal("limit fields set while unrestricted")
	}

	l.SetVerticalLimitsUpDown(true, -60, 60)
	if cam.LowerBetaLimit == nil || cam.UpperBetaLimit == nil {
		t.Fatal("beta limit fields not mirrored")
	}
	approx(t, "*LowerBetaLimit", *cam.LowerBetaLimit, l.Config().BetaMin, 1e-12)

	l.SetVerticalLimitsUpDown(false, 0, 0)
	if cam.LowerBetaLimit != nil || cam.UpperBetaLimit != nil {
		t.Error("beta limit fields not cleared on disable")
	}
}

func TestLimitsResetToDefaults(t *testing.T) {
	cam := NewOrbitCamera()
	def := DefaultLimitConfig()
	def.RestrictDistance = true
	def.RadiusMin, def.RadiusMax = 3, 30
	l := NewLimits(cam, def)

	l.SetDistanceLimits(true, 10, 12)
	cam.Radius = 100
	l.ResetToDefaults()

	cfg := l.Config()
	approx(t, "RadiusMin", cfg.RadiusMin, 3, 1e-9)
	approx(t, "RadiusMax", cfg.RadiusMax, 30, 1e-9)
	approx(t, "Radius clamped on reset", cam.Radius, 30, 1e-9)
}

func TestLimitsDisposeIdempotent(t *testing.T) {
	cam := NewOrbitCamera()
	l := NewLimits(cam, DefaultLimitConfig())
	l.SetVerticalLimitsUpDown(true, -30, 30)

	l.Dispose()
	l.Dispose() // must be safe

	cam.Beta = 3.0
	cam.NotifyViewChanged()
	if cam.Beta != 3.0 {
		t.Error("disposed limits still clamp on view changed")
	}
}
