package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	vo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/testutil"
)

func TestRateResolver_StacksAdjustments(t *testing.T) {
	tier := testutil.Tier(80, 100, 8)
	tier.LoanAmountAdjustments = vo.BracketTable{
		{Range: vo.Interval{Min: 0, Max: 200_000_000}, Delta: 0.5},
		{Range: vo.AtLeastInterval(200_000_000), Delta: -0.25},
	}
	tier.TermAdjustments = vo.BracketTable{
		{Range: vo.Interval{Min: 0, Max: 5}, Delta: -0.2},
		{Range: vo.AtLeastInterval(6), Delta: 0.4},
	}
	tier.CollateralAdjustments = vo.BracketTable{
		{Range: vo.Interval{Min: 0, Max: 0}, Delta: 1},
		{Range: vo.AtLeastInterval(1), Delta: -0.5},
	}
	tier.OccupationAdjustments = map[string]float64{"engineer": -0.3}

	l := testutil.Lender("l", 0)
	l.RateTiers = []model.RateTier{tier}

	p := testutil.ReferenceApplicant()
	r := NewRateResolver()

	rate, ok := r.Resolve(p, 96, l)
	require.True(t, ok)
	assert.InDelta(t, 8+0.5+0.4+1, rate, 1e-9)

	p.OccupationCategory = "engineer"
	p.CollateralValue = 500_000_000
	p.DesiredLoanAmount = 300_000_000
	p.DesiredTermYears = 3
	rate, ok = r.Resolve(p, 96, l)
	require.True(t, ok)
	assert.InDelta(t, 8-0.25-0.2-0.3-0.5, rate, 1e-9)
}

func TestRateResolver_OccupationIsExactMatch(t *testing.T) {
	tier := testutil.Tier(0, 100, 10)
	tier.OccupationAdjustments = map[string]float64{"doctor": -1}
	l := testutil.Lender("l", 0)
	l.RateTiers = []model.RateTier{tier}

	p := testutil.ReferenceApplicant()
	p.OccupationCategory = "Doctor"

	rate, ok := NewRateResolver().Resolve(p, 70, l)
	require.True(t, ok)
	assert.Equal(t, 10.0, rate)
}

func TestRateResolver_Clamps(t *testing.T) {
	r := NewRateResolver()
	p := testutil.ReferenceApplicant()

	low, ok := r.Resolve(p, 90, testutil.Lender("low", 2))
	require.True(t, ok)
	assert.Equal(t, MinAnnualRate, low)

	high, ok := r.Resolve(p, 90, testutil.Lender("high", 35))
	require.True(t, ok)
	assert.Equal(t, MaxAnnualRate, high)
}

func TestRateResolver_NoCoveringTier(t *testing.T) {
	l := testutil.Lender("gap", 0)
	l.RateTiers = []model.RateTier{
		testutil.Tier(70, 100, 8),
		testutil.Tier(50, 64, 10),
	}
	r := NewRateResolver()
	p := testutil.ReferenceApplicant()

	_, ok := r.Resolve(p, 67, l)
	assert.False(t, ok)

	rate, ok := r.Resolve(p, 64, l)
	require.True(t, ok)
	assert.Equal(t, 10.0, rate)
}

func TestRateResolver_FirstTierWins(t *testing.T) {
	l := testutil.Lender("l", 0)
	l.RateTiers = []model.RateTier{
		testutil.Tier(60, 90, 11),
		testutil.Tier(80, 100, 7),
	}

	rate, ok := NewRateResolver().Resolve(testutil.ReferenceApplicant(), 85, l)
	require.True(t, ok)
	assert.Equal(t, 11.0, rate)
}
