package model

// MatchResult is the transient outcome of matching one applicant against
// one lender. ResolvedRate is nil when no rate tier covers the applicant's
// score; callers render that as "rate unavailable".
type MatchResult struct {
	ResolvedRate *float64
	Lender       LenderProfile
	MatchScore   int
}

// HasRate reports whether a rate was resolved for this lender.
func (m MatchResult) HasRate() bool { return m.ResolvedRate != nil }

// Rate returns the resolved rate and whether one exists.
func (m MatchResult) Rate() (float64, bool) {
	if m.ResolvedRate == nil {
		return 0, false
	}
	return *m.ResolvedRate, true
}

// TopRated returns the highest-ranked result that carries a resolved rate.
// results must already be ranked.
func TopRated(results []MatchResult) (MatchResult, bool) {
	for _, r := range results {
		if r.HasRate() {
			return r, true
		}
	}
	return MatchResult{}, false
}
