package valueobject

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// CreditHistoryTier – immutable value object
// ---------------------------------------------------------------------------

// CreditHistoryTier is the applicant's self-reported credit history band.
type CreditHistoryTier struct {
	value string
}

const (
	creditHistoryExcellent = "excellent"
	creditHistoryGood      = "good"
	creditHistoryFair      = "fair"
	creditHistoryPoor      = "poor"
	creditHistoryNone      = "none"
)

var (
	CreditHistoryExcellent = CreditHistoryTier{value: creditHistoryExcellent}
	CreditHistoryGood      = CreditHistoryTier{value: creditHistoryGood}
	CreditHistoryFair      = CreditHistoryTier{value: creditHistoryFair}
	CreditHistoryPoor      = CreditHistoryTier{value: creditHistoryPoor}
	CreditHistoryNone      = CreditHistoryTier{value: creditHistoryNone}
)

var validCreditHistoryTiers = map[string]CreditHistoryTier{
	creditHistoryExcellent: CreditHistoryExcellent,
	creditHistoryGood:      CreditHistoryGood,
	creditHistoryFair:      CreditHistoryFair,
	creditHistoryPoor:      CreditHistoryPoor,
	creditHistoryNone:      CreditHistoryNone,
}

// NewCreditHistoryTier parses a raw credit history tier.
func NewCreditHistoryTier(s string) (CreditHistoryTier, error) {
	v, ok := validCreditHistoryTiers[normalizeKey(s)]
	if !ok {
		return CreditHistoryTier{}, fmt.Errorf("invalid credit history tier: %q", s)
	}
	return v, nil
}

// String returns the string representation of the tier.
func (t CreditHistoryTier) String() string { return t.value }

// IsZero returns true if the tier has not been initialised.
func (t CreditHistoryTier) IsZero() bool { return t.value == "" }

// ---------------------------------------------------------------------------
// EmploymentType – immutable value object
// ---------------------------------------------------------------------------

// EmploymentType describes how the applicant is currently employed.
type EmploymentType struct {
	value string
}

const (
	employmentFullTime     = "full-time"
	employmentPartTime     = "part-time"
	employmentSelfEmployed = "self-employed"
	employmentContract     = "contract"
	employmentUnemployed   = "unemployed"
)

var (
	EmploymentFullTime     = EmploymentType{value: employmentFullTime}
	EmploymentPartTime     = EmploymentType{value: employmentPartTime}
	EmploymentSelfEmployed = EmploymentType{value: employmentSelfEmployed}
	EmploymentContract     = EmploymentType{value: employmentContract}
	EmploymentUnemployed   = EmploymentType{value: employmentUnemployed}
)

var validEmploymentTypes = map[string]EmploymentType{
	employmentFullTime:     EmploymentFullTime,
	employmentPartTime:     EmploymentPartTime,
	employmentSelfEmployed: EmploymentSelfEmployed,
	employmentContract:     EmploymentContract,
	employmentUnemployed:   EmploymentUnemployed,
}

// NewEmploymentType parses a raw employment type.
func NewEmploymentType(s string) (EmploymentType, error) {
	v, ok := validEmploymentTypes[normalizeKey(s)]
	if !ok {
		return EmploymentType{}, fmt.Errorf("invalid employment type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the employment type.
func (e EmploymentType) String() string { return e.value }

// IsZero returns true if the employment type has not been initialised.
func (e EmploymentType) IsZero() bool { return e.value == "" }

// ---------------------------------------------------------------------------
// HousingStatus – immutable value object
// ---------------------------------------------------------------------------

// HousingStatus describes the applicant's living arrangement.
type HousingStatus struct {
	value string
}

const (
	housingOwnOutright      = "own-outright"
	housingOwnMortgage      = "own-mortgage"
	housingRent             = "rent"
	housingLivingWithFamily = "living-with-family"
	housingOther            = "other"
)

var (
	HousingOwnOutright      = HousingStatus{value: housingOwnOutright}
	HousingOwnMortgage      = HousingStatus{value: housingOwnMortgage}
	HousingRent             = HousingStatus{value: housingRent}
	HousingLivingWithFamily = HousingStatus{value: housingLivingWithFamily}
	HousingOther            = HousingStatus{value: housingOther}
)

var validHousingStatuses = map[string]HousingStatus{
	housingOwnOutright:      HousingOwnOutright,
	housingOwnMortgage:      HousingOwnMortgage,
	housingRent:             HousingRent,
	housingLivingWithFamily: HousingLivingWithFamily,
	housingOther:            HousingOther,
}

// NewHousingStatus parses a raw housing status.
func NewHousingStatus(s string) (HousingStatus, error) {
	v, ok := validHousingStatuses[normalizeKey(s)]
	if !ok {
		return HousingStatus{}, fmt.Errorf("invalid housing status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the housing status.
func (h HousingStatus) String() string { return h.value }

// IsZero returns true if the housing status has not been initialised.
func (h HousingStatus) IsZero() bool { return h.value == "" }

// normalizeKey lower-cases s and maps underscores and spaces to hyphens so
// that "FULL_TIME" and "full time" both resolve to "full-time".
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}
