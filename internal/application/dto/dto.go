package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	vo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("invalid request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks req against its struct tags.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ApplicantRequest carries the self-reported applicant attributes.
type ApplicantRequest struct {
	CreditHistory            string  `json:"credit_history" validate:"required"`
	EmploymentType           string  `json:"employment_type" validate:"required"`
	HousingStatus            string  `json:"housing_status,omitempty"`
	OccupationCategory       string  `json:"occupation_category,omitempty"`
	LoanPurpose              string  `json:"loan_purpose,omitempty"`
	MonthlyIncome            float64 `json:"monthly_income" validate:"gte=0"`
	MonthlyExpenses          float64 `json:"monthly_expenses" validate:"gte=0"`
	ExistingAnnualDebt       float64 `json:"existing_annual_debt" validate:"gte=0"`
	DesiredLoanAmount        float64 `json:"desired_loan_amount" validate:"gte=0"`
	CollateralValue          float64 `json:"collateral_value" validate:"gte=0"`
	YearsInCurrentEmployment float64 `json:"years_in_current_employment" validate:"gte=0"`
	Age                      int     `json:"age" validate:"gte=0,lte=130"`
	DesiredTermYears         int     `json:"desired_term_years" validate:"gte=0,lte=50"`
	DependentCount           int     `json:"dependent_count" validate:"gte=0"`
	PriorLoanCount           int     `json:"prior_loan_count" validate:"gte=0"`
	PriorLoanRepaidCount     int     `json:"prior_loan_repaid_count" validate:"gte=0,ltefield=PriorLoanCount"`
	HasCoApplicant           bool    `json:"has_co_applicant"`
}

// ToProfile validates the request and converts it into a domain profile.
func (r ApplicantRequest) ToProfile() (model.ApplicantProfile, error) {
	if err := Validate(r); err != nil {
		return model.ApplicantProfile{}, err
	}

	credit, err := vo.NewCreditHistoryTier(r.CreditHistory)
	if err != nil {
		return model.ApplicantProfile{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	employment, err := vo.NewEmploymentType(r.EmploymentType)
	if err != nil {
		return model.ApplicantProfile{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	var housing vo.HousingStatus
	if r.HousingStatus != "" {
		if housing, err = vo.NewHousingStatus(r.HousingStatus); err != nil {
			return model.ApplicantProfile{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}

	p := model.ApplicantProfile{
		CreditHistory:            credit,
		EmploymentType:           employment,
		HousingStatus:            housing,
		OccupationCategory:       r.OccupationCategory,
		LoanPurpose:              r.LoanPurpose,
		MonthlyIncome:            r.MonthlyIncome,
		MonthlyExpenses:          r.MonthlyExpenses,
		ExistingAnnualDebt:       r.ExistingAnnualDebt,
		DesiredLoanAmount:        r.DesiredLoanAmount,
		CollateralValue:          r.CollateralValue,
		YearsInCurrentEmployment: r.YearsInCurrentEmployment,
		Age:                      r.Age,
		DesiredTermYears:         r.DesiredTermYears,
		DependentCount:           r.DependentCount,
		PriorLoanCount:           r.PriorLoanCount,
		PriorLoanRepaidCount:     r.PriorLoanRepaidCount,
		HasCoApplicant:           r.HasCoApplicant,
	}
	if err := p.Validate(); err != nil {
		return model.ApplicantProfile{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return p, nil
}

// ScheduleRequest asks for an amortization schedule.
type ScheduleRequest struct {
	Principal         float64 `json:"principal" validate:"gte=0"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"gte=0,lte=100"`
	TermYears         int     `json:"term_years" validate:"gte=0,lte=50"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RateUnavailable is shown in place of a rate when no tier covers the score.
const RateUnavailable = "rate unavailable"

// ScoreFactorResponse is one factor's contribution to the score.
type ScoreFactorResponse struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// ScoreResponse is the eligibility score with its breakdown.
type ScoreResponse struct {
	Score   int                   `json:"score"`
	Factors []ScoreFactorResponse `json:"factors,omitempty"`
}

// MatchResponse is one ranked lender.
type MatchResponse struct {
	LenderID    string   `json:"lender_id"`
	LenderName  string   `json:"lender_name"`
	MatchScore  int      `json:"match_score"`
	Rate        *float64 `json:"rate,omitempty"`
	RateDisplay string   `json:"rate_display"`
}

// MatchListResponse is the ranked panel for an applicant.
type MatchListResponse struct {
	Score        int             `json:"score"`
	PanelVersion string          `json:"panel_version"`
	Matches      []MatchResponse `json:"matches"`
}

// ScheduleRowResponse is one amortization period, rounded to the currency.
type ScheduleRowResponse struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// ScheduleResponse is a schedule with its totals.
type ScheduleResponse struct {
	Currency       string                `json:"currency"`
	MonthlyPayment decimal.Decimal       `json:"monthly_payment"`
	TotalPayment   decimal.Decimal       `json:"total_payment"`
	TotalInterest  decimal.Decimal       `json:"total_interest"`
	Periods        int                   `json:"periods"`
	Rows           []ScheduleRowResponse `json:"rows"`
}

// AdvisoryResponse is one cautionary notice.
type AdvisoryResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WarningsResponse lists the notices raised for an applicant.
type WarningsResponse struct {
	Advisories []AdvisoryResponse `json:"advisories"`
}

// FeeQuoteResponse itemises the top lender's fees.
type FeeQuoteResponse struct {
	ProcessingFee         decimal.Decimal `json:"processing_fee"`
	InsuranceFee          decimal.Decimal `json:"insurance_fee"`
	ManagementFees        decimal.Decimal `json:"management_fees"`
	EarlyRepaymentPenalty decimal.Decimal `json:"early_repayment_penalty"`
	LatePaymentFeePercent decimal.Decimal `json:"late_payment_fee_percent"`
	Upfront               decimal.Decimal `json:"upfront"`
	TotalCost             decimal.Decimal `json:"total_cost"`
}

// EvaluationResponse is the result of a full evaluation.
type EvaluationResponse struct {
	EvaluationID string             `json:"evaluation_id"`
	PanelVersion string             `json:"panel_version"`
	Score        ScoreResponse      `json:"score"`
	Matches      []MatchResponse    `json:"matches"`
	TopLender    *MatchResponse     `json:"top_lender,omitempty"`
	Schedule     *ScheduleResponse  `json:"schedule,omitempty"`
	Fees         *FeeQuoteResponse  `json:"fees,omitempty"`
	Advisories   []AdvisoryResponse `json:"advisories"`
}

// RateTierResponse is a lender's tier without its adjustment tables.
type RateTierResponse struct {
	MinScore float64 `json:"min_score"`
	MaxScore float64 `json:"max_score"`
	BaseRate float64 `json:"base_rate"`
}

// LenderResponse describes one lender on the panel.
type LenderResponse struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	MinScore             int                `json:"min_score"`
	MinMonthlyIncome     float64            `json:"min_monthly_income"`
	MaxDebtToIncome      float64            `json:"max_debt_to_income"`
	MaxLoanToCollateral  float64            `json:"max_loan_to_collateral"`
	MinEmploymentYears   float64            `json:"min_employment_years"`
	PreferredOccupations []string           `json:"preferred_occupations,omitempty"`
	PreferredPurposes    []string           `json:"preferred_purposes,omitempty"`
	RateTiers            []RateTierResponse `json:"rate_tiers"`
}

// PanelResponse is the active lender panel.
type PanelResponse struct {
	Version  string           `json:"version"`
	LoadedAt time.Time        `json:"loaded_at"`
	Lenders  []LenderResponse `json:"lenders"`
}

// ReloadResponse reports a completed panel reload.
type ReloadResponse struct {
	Version         string   `json:"version"`
	PreviousVersion string   `json:"previous_version,omitempty"`
	Lenders         int      `json:"lenders"`
	Findings        []string `json:"findings,omitempty"`
}
