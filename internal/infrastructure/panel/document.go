package panel

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
)

// Document is the serialised form of a lender panel, shared by the YAML
// file source and the JSONB column of the PostgreSQL source.
type Document struct {
	Version string           `yaml:"version" json:"version"`
	Lenders []LenderDocument `yaml:"lenders" json:"lenders"`
}

// LenderDocument is the serialised form of one lender.
type LenderDocument struct {
	Fees                 FeeDocument    `yaml:"fees" json:"fees"`
	ID                   string         `yaml:"id" json:"id"`
	Name                 string         `yaml:"name" json:"name"`
	PreferredOccupations []string       `yaml:"preferred_occupations" json:"preferred_occupations"`
	PreferredPurposes    []string       `yaml:"preferred_purposes" json:"preferred_purposes"`
	RateTiers            []TierDocument `yaml:"rate_tiers" json:"rate_tiers"`
	MinScore             int            `yaml:"min_score" json:"min_score"`
	MinMonthlyIncome     float64        `yaml:"min_monthly_income" json:"min_monthly_income"`
	MaxDebtToIncome      float64        `yaml:"max_debt_to_income" json:"max_debt_to_income"`
	MaxLoanToCollateral  float64        `yaml:"max_loan_to_collateral" json:"max_loan_to_collateral"`
	MinEmploymentYears   float64        `yaml:"min_employment_years" json:"min_employment_years"`
}

// FeeDocument holds percentages of principal plus a flat yearly fee.
type FeeDocument struct {
	ProcessingPercent     float64 `yaml:"processing_percent" json:"processing_percent"`
	InsurancePercent      float64 `yaml:"insurance_percent" json:"insurance_percent"`
	EarlyRepaymentPercent float64 `yaml:"early_repayment_percent" json:"early_repayment_percent"`
	LatePaymentPercent    float64 `yaml:"late_payment_percent" json:"late_payment_percent"`
	AnnualManagementFee   float64 `yaml:"annual_management_fee" json:"annual_management_fee"`
}

// TierDocument is one rate tier. Occupation deltas are keyed by the exact
// occupation category.
type TierDocument struct {
	Occupation map[string]float64 `yaml:"occupation,omitempty" json:"occupation,omitempty"`
	Scores     RangeDocument      `yaml:"scores" json:"scores"`
	LoanAmount []BracketDocument  `yaml:"loan_amount,omitempty" json:"loan_amount,omitempty"`
	Term       []BracketDocument  `yaml:"term,omitempty" json:"term,omitempty"`
	Collateral []BracketDocument  `yaml:"collateral,omitempty" json:"collateral,omitempty"`
	BaseRate   float64            `yaml:"base_rate" json:"base_rate"`
}

// RangeDocument is an inclusive range. A missing Max means unbounded.
type RangeDocument struct {
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Min float64  `yaml:"min" json:"min"`
}

// BracketDocument is an inclusive range with a rate delta in percentage points.
type BracketDocument struct {
	Max   *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Min   float64  `yaml:"min" json:"min"`
	Delta float64  `yaml:"delta" json:"delta"`
}

// ToProfiles converts the document into domain lender profiles.
func (d Document) ToProfiles() ([]model.LenderProfile, error) {
	out := make([]model.LenderProfile, 0, len(d.Lenders))
	for i, l := range d.Lenders {
		p, err := l.ToProfile()
		if err != nil {
			return nil, fmt.Errorf("lender %d (%s): %w", i, l.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ToProfile converts one lender document into a domain profile.
func (l LenderDocument) ToProfile() (model.LenderProfile, error) {
	tiers := make([]model.RateTier, 0, len(l.RateTiers))
	for i, t := range l.RateTiers {
		tier, err := t.toTier()
		if err != nil {
			return model.LenderProfile{}, fmt.Errorf("rate tier %d: %w", i, err)
		}
		tiers = append(tiers, tier)
	}

	return model.LenderProfile{
		ID:                   l.ID,
		Name:                 l.Name,
		MinScore:             l.MinScore,
		MinMonthlyIncome:     l.MinMonthlyIncome,
		MaxDebtToIncome:      l.MaxDebtToIncome,
		MaxLoanToCollateral:  l.MaxLoanToCollateral,
		MinEmploymentYears:   l.MinEmploymentYears,
		PreferredOccupations: l.PreferredOccupations,
		PreferredPurposes:    l.PreferredPurposes,
		RateTiers:            tiers,
		Fees: model.FeeSchedule{
			ProcessingFeePercent:     decimal.NewFromFloat(l.Fees.ProcessingPercent),
			InsuranceFeePercent:      decimal.NewFromFloat(l.Fees.InsurancePercent),
			EarlyRepaymentFeePercent: decimal.NewFromFloat(l.Fees.EarlyRepaymentPercent),
			LatePaymentFeePercent:    decimal.NewFromFloat(l.Fees.LatePaymentPercent),
			AnnualManagementFee:      decimal.NewFromFloat(l.Fees.AnnualManagementFee),
		},
	}, nil
}

func (t TierDocument) toTier() (model.RateTier, error) {
	scores, err := t.Scores.toInterval()
	if err != nil {
		return model.RateTier{}, fmt.Errorf("scores: %w", err)
	}
	loan, err := toTable(t.LoanAmount)
	if err != nil {
		return model.RateTier{}, fmt.Errorf("loan_amount: %w", err)
	}
	term, err := toTable(t.Term)
	if err != nil {
		return model.RateTier{}, fmt.Errorf("term: %w", err)
	}
	collateral, err := toTable(t.Collateral)
	if err != nil {
		return model.RateTier{}, fmt.Errorf("collateral: %w", err)
	}
	return model.RateTier{
		Scores:                scores,
		BaseRate:              t.BaseRate,
		LoanAmountAdjustments: loan,
		TermAdjustments:       term,
		CollateralAdjustments: collateral,
		OccupationAdjustments: t.Occupation,
	}, nil
}

func (r RangeDocument) toInterval() (valueobject.Interval, error) {
	hi := math.Inf(1)
	if r.Max != nil {
		hi = *r.Max
	}
	return valueobject.NewInterval(r.Min, hi)
}

func toTable(brackets []BracketDocument) (valueobject.BracketTable, error) {
	table := make(valueobject.BracketTable, 0, len(brackets))
	for i, b := range brackets {
		iv, err := RangeDocument{Min: b.Min, Max: b.Max}.toInterval()
		if err != nil {
			return nil, fmt.Errorf("bracket %d: %w", i, err)
		}
		table = append(table, valueobject.Bracket{Range: iv, Delta: b.Delta})
	}
	return table, nil
}

// FromPanel serialises a panel back into a document.
func FromPanel(p *model.LenderPanel) Document {
	lenders := p.Lenders()
	doc := Document{Version: p.Version(), Lenders: make([]LenderDocument, 0, len(lenders))}
	for _, l := range lenders {
		doc.Lenders = append(doc.Lenders, FromProfile(l))
	}
	return doc
}

// FromProfile serialises one lender profile.
func FromProfile(l model.LenderProfile) LenderDocument {
	tiers := make([]TierDocument, 0, len(l.RateTiers))
	for _, t := range l.RateTiers {
		tiers = append(tiers, TierDocument{
			Scores:     fromInterval(t.Scores),
			BaseRate:   t.BaseRate,
			LoanAmount: fromTable(t.LoanAmountAdjustments),
			Term:       fromTable(t.TermAdjustments),
			Collateral: fromTable(t.CollateralAdjustments),
			Occupation: t.OccupationAdjustments,
		})
	}
	return LenderDocument{
		ID:                   l.ID,
		Name:                 l.Name,
		MinScore:             l.MinScore,
		MinMonthlyIncome:     l.MinMonthlyIncome,
		MaxDebtToIncome:      l.MaxDebtToIncome,
		MaxLoanToCollateral:  l.MaxLoanToCollateral,
		MinEmploymentYears:   l.MinEmploymentYears,
		PreferredOccupations: l.PreferredOccupations,
		PreferredPurposes:    l.PreferredPurposes,
		RateTiers:            tiers,
		Fees: FeeDocument{
			ProcessingPercent:     l.Fees.ProcessingFeePercent.InexactFloat64(),
			InsurancePercent:      l.Fees.InsuranceFeePercent.InexactFloat64(),
			EarlyRepaymentPercent: l.Fees.EarlyRepaymentFeePercent.InexactFloat64(),
			LatePaymentPercent:    l.Fees.LatePaymentFeePercent.InexactFloat64(),
			AnnualManagementFee:   l.Fees.AnnualManagementFee.InexactFloat64(),
		},
	}
}

func fromInterval(iv valueobject.Interval) RangeDocument {
	r := RangeDocument{Min: iv.Min}
	if !iv.Unbounded() {
		hi := iv.Max
		r.Max = &hi
	}
	return r
}

func fromTable(t valueobject.BracketTable) []BracketDocument {
	if len(t) == 0 {
		return nil
	}
	out := make([]BracketDocument, 0, len(t))
	for _, b := range t {
		r := fromInterval(b.Range)
		out = append(out, BracketDocument{Min: r.Min, Max: r.Max, Delta: b.Delta})
	}
	return out
}
