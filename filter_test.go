package orbitnav

import (
	"math"
	"testing"
)

func TestMovingAverageRampsUp(t *testing.T) {
	m := NewMovingAverage(3)

	tests := []struct {
		push float64
		want float64
	}{
		{6, 6},   // one sample
		{12, 9},  // (6+12)/2
		{18, 12}, // (6+12+18)/3
		{24, 18}, // oldest evicted: (12+18+24)/3
		{30, 24}, // (18+24+30)/3
	}
	for i, tt := range tests {
		if got := m.Push(tt.push); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("push %d: Push(%v) = %v, want %v", i, tt.push, got, tt.want)
		}
	}
}

func TestMovingAverageValueBeforePush(t *testing.T) {
	m := NewMovingAverage(3)
	if got := m.Value(); got != 0 {
		t.Errorf("Value() before any Push = %v, want 0", got)
	}
}

func TestMovingAverageReset(t *testing.T) {
	m := NewMovingAverage(3)
	m.Push(10)
	m.Push(20)
	m.Reset()
	if got := m.Push(5); got != 5 {
		t.Errorf("Push after Reset = %v, want 5", got)
	}
}

func TestMovingAverageSeed(t *testing.T) {
	m := NewMovingAverage(3)
	m.Seed(100)
	if got := m.Value(); got != 100 {
		t.Errorf("Value after Seed(100) = %v, want 100", got)
	}
	// One new sample only shifts the average by a third of the change.
	if got := m.Push(130); math.Abs(got-110) > 1e-12 {
		t.Errorf("Push(130) after Seed(100) = %v, want 110", got)
	}
}

func TestMovingAverageInvalidSize(t *testing.T) {
	m := NewMovingAverage(0)
	m.Push(3)
	m.Push(6)
	m.Push(9)
	if got := m.Value(); math.Abs(got-6) > 1e-12 {
		t.Errorf("default-window average = %v, want 6", got)
	}
}

func TestPointAverage(t *testing.T) {
	p := NewPointAverage(3)
	p.Seed(Vec2{X: 10, Y: 20})

	got := p.Push(Vec2{X: 40, Y: 20})
	want := Vec2{X: 20, Y: 20}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("Push = %+v, want %+v", got, want)
	}

	p.Reset()
	got = p.Push(Vec2{X: 5, Y: 7})
	if got.X != 5 || got.Y != 7 {
		t.Errorf("Push after Reset = %+v, want {5 7}", got)
	}
}
