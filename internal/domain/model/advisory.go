package model

// AdvisoryCode is the machine-readable identifier of a cautionary notice.
type AdvisoryCode string

const (
	AdvisoryLoanExceedsIncomeMultiple AdvisoryCode = "LOAN_EXCEEDS_5X_ANNUAL_INCOME"
	AdvisoryDebtExceedsHalfIncome     AdvisoryCode = "EXISTING_DEBT_EXCEEDS_50PCT_INCOME"
)

// Advisory is a consumer-facing warning about an applicant's request. It
// never changes a score or a schedule.
type Advisory struct {
	Code    AdvisoryCode
	Message string
}
