package component

// Meter is a clamped resource in [0, Max]: health, stamina, block stamina and
// combo potential all use it.
type Meter struct {
	Max     float64
	Current float64
}

// NewMeter creates a full meter. Non-positive max falls back to 1.
func NewMeter(max float64) Meter {
	if max <= 0 {
		max = 1
	}
	return Meter{Max: max, Current: max}
}

// Set assigns the current value and clamps to [0, Max].
func (m *Meter) Set(v float64) {
	if m == nil {
		return
	}
	m.Current = v
	if m.Current < 0 {
		m.Current = 0
	}
	if m.Current > m.Max {
		m.Current = m.Max
	}
}

// Add increases the meter by amount, clamped to Max. Negative amounts drain.
func (m *Meter) Add(amount float64) {
	if m == nil {
		return
	}
	m.Set(m.Current + amount)
}

// Drain decreases the meter by amount, clamped to zero.
func (m *Meter) Drain(amount float64) {
	m.Add(-amount)
}

// Empty reports whether the meter is at zero.
func (m Meter) Empty() bool {
	return m.Current <= 0
}

// Full reports whether the meter is at Max.
func (m Meter) Full() bool {
	return m.Current >= m.Max
}

// Fraction returns Current/Max in [0, 1].
func (m Meter) Fraction() float64 {
	if m.Max <= 0 {
		return 0
	}
	return m.Current / m.Max
}
