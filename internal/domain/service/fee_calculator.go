package service

import (
	"github.com/shopspring/decimal"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/money"
)

// FeeQuote itemises a lender's charges for a loan. All amounts are rounded
// to the currency's minor unit.
type FeeQuote struct {
	ProcessingFee         money.Money
	InsuranceFee          money.Money
	ManagementFees        money.Money
	EarlyRepaymentPenalty money.Money
	LatePaymentFeePercent decimal.Decimal
}

// Upfront is the sum charged at disbursement. It fails when the quote mixes
// currencies.
func (q FeeQuote) Upfront() (money.Money, error) {
	return q.ProcessingFee.Add(q.InsuranceFee)
}

// TotalCost is the upfront fees plus management fees over the term.
func (q FeeQuote) TotalCost() (money.Money, error) {
	upfront, err := q.Upfront()
	if err != nil {
		return money.Money{}, err
	}
	return upfront.Add(q.ManagementFees)
}

// FeeCalculator prices a lender's fee schedule.
type FeeCalculator struct {
	currency money.Currency
}

// NewFeeCalculator returns a calculator quoting in currency.
func NewFeeCalculator(currency money.Currency) *FeeCalculator {
	return &FeeCalculator{currency: currency}
}

// Quote prices the lender's fees for a principal over termYears. The early
// repayment penalty assumes the full principal is repaid early.
func (c *FeeCalculator) Quote(l model.LenderProfile, principal float64, termYears int) FeeQuote {
	p := money.NewFromFloat(principal, c.currency)
	years := decimal.NewFromInt(int64(max(termYears, 0)))

	return FeeQuote{
		ProcessingFee:         p.Percent(l.Fees.ProcessingFeePercent).Round(),
		InsuranceFee:          p.Percent(l.Fees.InsuranceFeePercent).Round(),
		ManagementFees:        money.New(l.Fees.AnnualManagementFee.Mul(years), c.currency).Round(),
		EarlyRepaymentPenalty: p.Percent(l.Fees.EarlyRepaymentFeePercent).Round(),
		LatePaymentFeePercent: l.Fees.LatePaymentFeePercent,
	}
}
