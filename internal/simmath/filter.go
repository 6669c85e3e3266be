package simmath

import "fmt"

// LowPassFilter is a stateful first-order low-pass filter holding the
// previous output sample and its time constant. Update advances it one
// step:
//
//	y_next = y_prev + (dt/tau)*(u - y_prev)
//
// tau must be strictly positive; a zero or negative time constant would
// collapse the filter to a pass-through or invert its sense, so NewLowPassFilter
// rejects it outright rather than silently clamping.
type LowPassFilter struct {
	yPrev float64
	tau   float64
}

// NewLowPassFilter creates a filter with initial output y0 and time constant
// tau. It returns an error if tau <= 0.
func NewLowPassFilter(y0, tau float64) (*LowPassFilter, error) {
	if tau <= 0 {
		return nil, fmt.Errorf("simmath: low-pass filter requires tau > 0, got %g", tau)
	}
	return &LowPassFilter{yPrev: y0, tau: tau}, nil
}

// Update advances the filter by one step of size dt given input u, returning
// the new filtered output. The filter's internal state is replaced with the
// returned value.
func (f *LowPassFilter) Update(u, dt float64) float64 {
	yNext := f.yPrev + (dt/f.tau)*(u-f.yPrev)
	f.yPrev = yNext
	return yNext
}

// Value returns the filter's current output without advancing it.
func (f *LowPassFilter) Value() float64 {
	return f.yPrev
}

// Reset replaces the filter's internal state, used when an interceptor
// launches so that no filtered rate from before launch bleeds into the new
// track.
func (f *LowPassFilter) Reset(y0 float64) {
	f.yPrev = y0
}
