package orbitnav

// smoothWindow is the default number of samples averaged by the
// smoothing filters. Three samples is enough to absorb single-frame
// touch jitter without adding visible lag.
const smoothWindow = 3

// MovingAverage is a fixed-length moving average over scalar samples,
// used to smooth the pinch distance stream.
type MovingAverage struct {
	samples []float64
	head    int
	count   int
}

// NewMovingAverage creates a moving average over the given window size.
// Sizes below 1 fall back to the default window.
func NewMovingAverage(size int) *MovingAverage {
	if size < 1 {
		size = smoothWindow
	}
	return &MovingAverage{samples: make([]float64, size)}
}

// Push adds a sample and returns the average over the samples seen so
// far (up to the window size).
func (m *MovingAverage) Push(v float64) float64 {
	m.samples[m.head] = v
	m.head = (m.head + 1) % len(m.samples)
	if m.count < len(m.samples) {
		m.count++
	}
	return m.Value()
}

// Value returns the current average without adding a sample.
// Returns 0 before the first Push.
func (m *MovingAverage) Value() float64 {
	if m.count == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < m.count; i++ {
		sum += m.samples[i]
	}
	return sum / float64(m.count)
}

// Reset clears all samples.
func (m *MovingAverage) Reset() {
	m.head = 0
	m.count = 0
}

// Seed resets the filter and fills the whole window with v, so the
// average starts at v instead of ramping up from the first sample.
func (m *MovingAverage) Seed(v float64) {
	for i := range m.samples {
		m.samples[i] = v
	}
	m.head = 0
	m.count = len(m.samples)
}

// PointAverage is a fixed-length moving average over 2D samples, used
// to smooth the pan position stream.
type PointAverage struct {
	xs *MovingAverage
	ys *MovingAverage
}

// NewPointAverage creates a 2D moving average over the given window size.
func NewPointAverage(size int) *PointAverage {
	return &PointAverage{xs: NewMovingAverage(size), ys: NewMovingAverage(size)}
}

// Push adds a sample and returns the smoothed position.
func (p *PointAverage) Push(v Vec2) Vec2 {
	return Vec2{X: p.xs.Push(v.X), Y: p.ys.Push(v.Y)}
}

// Value returns the current smoothed position without adding a sample.
func (p *PointAverage) Value() Vec2 {
	return Vec2{X: p.xs.Value(), Y: p.ys.Value()}
}

// Reset clears all samples.
func (p *PointAverage) Reset() {
	p.xs.Reset()
	p.ys.Reset()
}

// Seed resets the filter and fills the window with v.
func (p *PointAverage) Seed(v Vec2) {
	p.xs.Seed(v.X)
	p.ys.Seed(v.Y)
}
