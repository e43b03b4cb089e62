package valueobject

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreditHistoryTier(t *testing.T) {
	tests := []struct {
		input   string
		want    CreditHistoryTier
		wantErr bool
	}{
		{"excellent", CreditHistoryExcellent, false},
		{"GOOD", CreditHistoryGood, false},
		{" fair ", CreditHistoryFair, false},
		{"none", CreditHistoryNone, false},
		{"stellar", CreditHistoryTier{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewCreditHistoryTier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEmploymentType_Normalizes(t *testing.T) {
	for _, in := range []string{"full-time", "FULL_TIME", "full time"} {
		got, err := NewEmploymentType(in)
		require.NoError(t, err)
		assert.Equal(t, EmploymentFullTime, got)
	}
	_, err := NewEmploymentType("retired")
	assert.Error(t, err)
}

func TestNewHousingStatus(t *testing.T) {
	got, err := NewHousingStatus("living_with_family")
	require.NoError(t, err)
	assert.Equal(t, "living-with-family", got.String())
	assert.True(t, HousingStatus{}.IsZero())
}

func TestInterval(t *testing.T) {
	iv, err := NewInterval(25, 45)
	require.NoError(t, err)
	assert.True(t, iv.Contains(25))
	assert.True(t, iv.Contains(45))
	assert.False(t, iv.Contains(45.01))
	assert.Equal(t, "[25, 45]", iv.String())

	_, err = NewInterval(10, 5)
	assert.Error(t, err)
	_, err = NewInterval(math.NaN(), 5)
	assert.Error(t, err)

	open := AtLeastInterval(61)
	assert.True(t, open.Unbounded())
	assert.True(t, open.Contains(1e12))
	assert.Equal(t, "[61, +inf)", open.String())
}

func TestBracketTable_FirstMatchWins(t *testing.T) {
	table := BracketTable{
		{Range: Interval{Min: 0, Max: 100}, Delta: 0.5},
		{Range: Interval{Min: 100, Max: 500}, Delta: 0},
		{Range: AtLeastInterval(500), Delta: -0.5},
	}

	tests := []struct {
		name  string
		value float64
		want  float64
		found bool
	}{
		{"inside first", 50, 0.5, true},
		{"shared boundary resolves to earlier bracket", 100, 0.5, true},
		{"second", 300, 0, true},
		{"open end", 1e9, -0.5, true},
		{"below all", -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Lookup(tt.value)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, table.DeltaFor(tt.value))
		})
	}
}

func TestThresholdLadder_AtLeast(t *testing.T) {
	// Declared out of order on purpose; the ladder sorts descending.
	l := NewThresholdLadder(AtLeast, -1,
		Step{Threshold: 1, Delta: 3},
		Step{Threshold: 10, Delta: 10},
		Step{Threshold: 5, Delta: 8},
	)

	assert.Equal(t, 10.0, l.Evaluate(10))
	assert.Equal(t, 8.0, l.Evaluate(9.99))
	assert.Equal(t, 3.0, l.Evaluate(1))
	assert.Equal(t, -1.0, l.Evaluate(0.99))
	assert.Equal(t, 10.0, l.Evaluate(math.Inf(1)))
	assert.Equal(t, -1.0, l.Evaluate(math.NaN()))
}

func TestThresholdLadder_AtMost(t *testing.T) {
	l := NewThresholdLadder(AtMost, -5,
		Step{Threshold: 0.6, Delta: 0},
		Step{Threshold: 0.3, Delta: 10},
		Step{Threshold: 0.4, Delta: 7},
	)

	assert.Equal(t, 10.0, l.Evaluate(0.3))
	assert.Equal(t, 7.0, l.Evaluate(0.30001))
	assert.Equal(t, 0.0, l.Evaluate(0.6))
	assert.Equal(t, -5.0, l.Evaluate(0.61))
	assert.Equal(t, -5.0, l.Evaluate(math.Inf(1)))

	step, ok := l.Match(0.35)
	require.True(t, ok)
	assert.Equal(t, 0.4, step.Threshold)
}
