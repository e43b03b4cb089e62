package valueobject

import "sort"

// Comparison selects how a ThresholdLadder compares a value with its steps.
type Comparison int

const (
	// AtLeast matches the first step with value >= threshold, scanning from
	// the highest threshold down.
	AtLeast Comparison = iota
	// AtMost matches the first step with value <= threshold, scanning from
	// the lowest threshold up.
	AtMost
)

// Step is one rung of a ThresholdLadder.
type Step struct {
	Threshold float64
	Delta     float64
}

// ThresholdLadder maps a value to a delta through a sorted list of
// (threshold, delta) steps with a fallback when no step matches. NaN never
// matches a step.
type ThresholdLadder struct {
	steps    []Step
	fallback float64
	cmp      Comparison
}

// NewThresholdLadder sorts the steps for the given comparison and returns
// the ladder. Steps with equal thresholds keep their declaration order.
func NewThresholdLadder(cmp Comparison, fallback float64, steps ...Step) ThresholdLadder {
	sorted := make([]Step, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool {
		if cmp == AtLeast {
			return sorted[i].Threshold > sorted[j].Threshold
		}
		return sorted[i].Threshold < sorted[j].Threshold
	})
	return ThresholdLadder{steps: sorted, fallback: fallback, cmp: cmp}
}

// Match returns the first step satisfied by v.
func (l ThresholdLadder) Match(v float64) (Step, bool) {
	for _, s := range l.steps {
		if l.satisfies(v, s.Threshold) {
			return s, true
		}
	}
	return Step{}, false
}

// Evaluate returns the delta of the matching step or the fallback.
func (l ThresholdLadder) Evaluate(v float64) float64 {
	if s, ok := l.Match(v); ok {
		return s.Delta
	}
	return l.fallback
}

func (l ThresholdLadder) satisfies(v, threshold float64) bool {
	if l.cmp == AtLeast {
		return v >= threshold
	}
	return v <= threshold
}
