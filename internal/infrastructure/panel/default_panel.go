package panel

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	vo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
)

// DefaultVersion identifies the built-in panel.
const DefaultVersion = "builtin-2024.1"

const million = 1_000_000

func br(lo, hi, delta float64) vo.Bracket {
	return vo.Bracket{Range: vo.Interval{Min: lo, Max: hi}, Delta: delta}
}

func scores(lo, hi float64) vo.Interval { return vo.Interval{Min: lo, Max: hi} }

func pct(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

var inf = math.Inf(1)

// Adjustment tables shared by the built-in lenders.
var (
	standardLoanAmount = vo.BracketTable{
		br(0, 100*million, 0.5),
		br(100*million, 500*million, 0),
		br(500*million, 2000*million, -0.3),
		br(2000*million, inf, -0.5),
	}
	standardTerm = vo.BracketTable{
		br(1, 3, -0.2),
		br(4, 10, 0),
		br(11, 20, 0.5),
		br(21, 35, 1.0),
	}
	standardCollateral = vo.BracketTable{
		br(0, 0, 1.5),
		br(1, 500*million, 0.5),
		br(500*million, 2000*million, 0),
		br(2000*million, inf, -0.5),
	}
	consumerLoanAmount = vo.BracketTable{
		br(0, 50*million, 1.0),
		br(50*million, 300*million, 0),
		br(300*million, inf, -0.5),
	}
	consumerTerm = vo.BracketTable{
		br(1, 2, -0.5),
		br(3, 5, 0),
		br(6, 35, 1.0),
	}
	consumerCollateral = vo.BracketTable{
		br(0, 0, 2.0),
		br(1, inf, -0.5),
	}
)

// Default returns the built-in panel of Vietnamese lenders. Rates are
// annual percentages; amounts are in VND.
func Default() *model.LenderPanel {
	p, err := model.NewLenderPanel(DefaultVersion, defaultLenders(), time.Now().UTC())
	if err != nil {
		panic("built-in lender panel is invalid: " + err.Error())
	}
	return p
}

func defaultLenders() []model.LenderProfile {
	return []model.LenderProfile{
		{
			ID:                   "vietcombank",
			Name:                 "Vietcombank",
			MinScore:             65,
			MinMonthlyIncome:     10 * million,
			MaxDebtToIncome:      0.5,
			MaxLoanToCollateral:  0.7,
			MinEmploymentYears:   1,
			PreferredOccupations: []string{"civil-servant", "doctor", "office-worker"},
			PreferredPurposes:    []string{"home", "car"},
			RateTiers: []model.RateTier{
				{
					Scores: scores(85, 100), BaseRate: 7.5,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"civil-servant": -0.3, "doctor": -0.3},
				},
				{
					Scores: scores(70, 84), BaseRate: 9.0,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"civil-servant": -0.2, "freelancer": 0.5},
				},
				{
					Scores: scores(55, 69), BaseRate: 11.5,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"freelancer": 1.0},
				},
			},
			Fees: model.FeeSchedule{
				ProcessingFeePercent:     pct(0.5),
				InsuranceFeePercent:      pct(0.3),
				EarlyRepaymentFeePercent: pct(2.0),
				LatePaymentFeePercent:    pct(150),
				AnnualManagementFee:      decimal.NewFromInt(0),
			},
		},
		{
			ID:                   "techcombank",
			Name:                 "Techcombank",
			MinScore:             60,
			MinMonthlyIncome:     8 * million,
			MaxDebtToIncome:      0.55,
			MaxLoanToCollateral:  0.75,
			MinEmploymentYears:   1,
			PreferredOccupations: []string{"engineer", "office-worker", "business-owner"},
			PreferredPurposes:    []string{"home", "business", "car"},
			RateTiers: []model.RateTier{
				{
					Scores: scores(85, 100), BaseRate: 7.8,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"engineer": -0.3},
				},
				{
					Scores: scores(70, 84), BaseRate: 9.2,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"engineer": -0.2, "business-owner": 0.3},
				},
				{
					Scores: scores(55, 69), BaseRate: 11.8,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
				},
				{
					Scores: scores(40, 54), BaseRate: 14.0,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"freelancer": 1.5},
				},
			},
			Fees: model.FeeSchedule{
				ProcessingFeePercent:     pct(1.0),
				InsuranceFeePercent:      pct(0.5),
				EarlyRepaymentFeePercent: pct(3.0),
				LatePaymentFeePercent:    pct(150),
				AnnualManagementFee:      decimal.NewFromInt(300_000),
			},
		},
		{
			ID:                   "bidv",
			Name:                 "BIDV",
			MinScore:             60,
			MinMonthlyIncome:     7 * million,
			MaxDebtToIncome:      0.5,
			MaxLoanToCollateral:  0.7,
			MinEmploymentYears:   2,
			PreferredOccupations: []string{"civil-servant", "teacher"},
			PreferredPurposes:    []string{"home", "education"},
			RateTiers: []model.RateTier{
				{
					Scores: scores(80, 100), BaseRate: 7.9,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"teacher": -0.4, "civil-servant": -0.4},
				},
				{
					Scores: scores(60, 79), BaseRate: 10.0,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"teacher": -0.2},
				},
			},
			Fees: model.FeeSchedule{
				ProcessingFeePercent:     pct(0.5),
				InsuranceFeePercent:      pct(0.4),
				EarlyRepaymentFeePercent: pct(1.5),
				LatePaymentFeePercent:    pct(150),
				AnnualManagementFee:      decimal.NewFromInt(0),
			},
		},
		{
			ID:                   "vpbank",
			Name:                 "VPBank",
			MinScore:             45,
			MinMonthlyIncome:     5 * million,
			MaxDebtToIncome:      0.6,
			MaxLoanToCollateral:  0.85,
			MinEmploymentYears:   0.5,
			PreferredOccupations: []string{"freelancer", "business-owner", "office-worker"},
			PreferredPurposes:    []string{"consumer", "car", "business"},
			RateTiers: []model.RateTier{
				{
					Scores: scores(75, 100), BaseRate: 9.5,
					LoanAmountAdjustments: consumerLoanAmount, TermAdjustments: consumerTerm,
					CollateralAdjustments: consumerCollateral,
				},
				{
					Scores: scores(55, 74), BaseRate: 12.5,
					LoanAmountAdjustments: consumerLoanAmount, TermAdjustments: consumerTerm,
					CollateralAdjustments: consumerCollateral,
					OccupationAdjustments: map[string]float64{"freelancer": 0.5},
				},
				{
					Scores: scores(45, 54), BaseRate: 16.0,
					LoanAmountAdjustments: consumerLoanAmount, TermAdjustments: consumerTerm,
					CollateralAdjustments: consumerCollateral,
					OccupationAdjustments: map[string]float64{"freelancer": 1.0},
				},
			},
			Fees: model.FeeSchedule{
				ProcessingFeePercent:     pct(1.5),
				InsuranceFeePercent:      pct(1.0),
				EarlyRepaymentFeePercent: pct(4.0),
				LatePaymentFeePercent:    pct(150),
				AnnualManagementFee:      decimal.NewFromInt(500_000),
			},
		},
		{
			ID:                   "mbbank",
			Name:                 "MB Bank",
			MinScore:             55,
			MinMonthlyIncome:     6 * million,
			MaxDebtToIncome:      0.55,
			MaxLoanToCollateral:  0.8,
			MinEmploymentYears:   1,
			PreferredOccupations: []string{"office-worker", "engineer", "teacher"},
			PreferredPurposes:    []string{"home", "car", "consumer"},
			RateTiers: []model.RateTier{
				{
					Scores: scores(85, 100), BaseRate: 7.7,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
				},
				// No tier covers scores 65-69.
				{
					Scores: scores(70, 84), BaseRate: 9.4,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
					OccupationAdjustments: map[string]float64{"office-worker": -0.2},
				},
				{
					Scores: scores(50, 64), BaseRate: 12.2,
					LoanAmountAdjustments: standardLoanAmount, TermAdjustments: standardTerm,
					CollateralAdjustments: standardCollateral,
				},
			},
			Fees: model.FeeSchedule{
				ProcessingFeePercent:     pct(1.0),
				InsuranceFeePercent:      pct(0.5),
				EarlyRepaymentFeePercent: pct(2.5),
				LatePaymentFeePercent:    pct(150),
				AnnualManagementFee:      decimal.NewFromInt(200_000),
			},
		},
	}
}
