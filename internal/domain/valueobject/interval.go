package valueobject

import (
	"fmt"
	"math"
)

// Interval is a closed numeric range [Min, Max]. An unbounded upper end is
// represented by Max = +Inf.
type Interval struct {
	Min float64
	Max float64
}

// NewInterval validates and returns a closed interval.
func NewInterval(lo, hi float64) (Interval, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Interval{}, fmt.Errorf("interval bounds must be numbers")
	}
	if lo > hi {
		return Interval{}, fmt.Errorf("interval lower bound %v exceeds upper bound %v", lo, hi)
	}
	return Interval{Min: lo, Max: hi}, nil
}

// AtLeastInterval returns the unbounded interval [lo, +Inf].
func AtLeastInterval(lo float64) Interval {
	return Interval{Min: lo, Max: math.Inf(1)}
}

// Contains reports whether v lies within the closed interval.
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

// Unbounded reports whether the interval has no upper limit.
func (i Interval) Unbounded() bool { return math.IsInf(i.Max, 1) }

// String renders the interval for logs and validation findings.
func (i Interval) String() string {
	if i.Unbounded() {
		return fmt.Sprintf("[%g, +inf)", i.Min)
	}
	return fmt.Sprintf("[%g, %g]", i.Min, i.Max)
}

// Bracket pairs an interval with a signed percentage-point delta.
type Bracket struct {
	Range Interval
	Delta float64
}

// BracketTable is an ordered list of brackets. Lookup returns the delta of
// the first bracket, in declaration order, whose range contains the value;
// overlapping brackets therefore resolve to the earlier entry.
type BracketTable []Bracket

// Lookup returns the delta of the first bracket containing v.
func (t BracketTable) Lookup(v float64) (float64, bool) {
	for _, b := range t {
		if b.Range.Contains(v) {
			return b.Delta, true
		}
	}
	return 0, false
}

// DeltaFor is Lookup with a zero delta when no bracket matches.
func (t BracketTable) DeltaFor(v float64) float64 {
	d, _ := t.Lookup(v)
	return d
}
