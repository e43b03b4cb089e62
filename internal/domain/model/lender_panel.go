package model

import (
	"errors"
	"fmt"
	"time"
)

// Score bounds shared by the eligibility score, tier ranges and match scores.
const (
	MinScore = 0
	MaxScore = 100
)

var (
	// ErrInvalidPanel is returned when a lender panel is structurally broken.
	ErrInvalidPanel = errors.New("invalid lender panel")
	// ErrUnknownLender is returned when a lender ID is not on the panel.
	ErrUnknownLender = errors.New("unknown lender")
)

// LenderPanel is the immutable set of lenders evaluated against each
// applicant. Declaration order is preserved and is the tie-break order for
// match ranking. A panel is never mutated after construction; reloads build
// a new panel and swap it in whole.
type LenderPanel struct {
	loadedAt time.Time
	index    map[string]int
	version  string
	lenders  []LenderProfile
}

// NewLenderPanel copies the given profiles into a new panel after checking
// structural integrity. Score-tier gaps are not structural defects; see
// Validate.
func NewLenderPanel(version string, lenders []LenderProfile, loadedAt time.Time) (*LenderPanel, error) {
	p := &LenderPanel{
		loadedAt: loadedAt,
		index:    make(map[string]int, len(lenders)),
		version:  version,
		lenders:  make([]LenderProfile, 0, len(lenders)),
	}

	for i, l := range lenders {
		if l.ID == "" {
			return nil, fmt.Errorf("%w: lender at position %d has no ID", ErrInvalidPanel, i)
		}
		if _, dup := p.index[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate lender ID %q", ErrInvalidPanel, l.ID)
		}
		if err := checkLender(l); err != nil {
			return nil, fmt.Errorf("%w: lender %q: %v", ErrInvalidPanel, l.ID, err)
		}
		p.index[l.ID] = len(p.lenders)
		p.lenders = append(p.lenders, l.clone())
	}
	return p, nil
}

func checkLender(l LenderProfile) error {
	if l.MinMonthlyIncome < 0 || l.MaxDebtToIncome < 0 || l.MaxLoanToCollateral < 0 || l.MinEmploymentYears < 0 {
		return errors.New("thresholds must not be negative")
	}
	for i, t := range l.RateTiers {
		if t.Scores.Min > t.Scores.Max {
			return fmt.Errorf("rate tier %d has inverted score range %s", i, t.Scores)
		}
		if t.BaseRate < 0 {
			return fmt.Errorf("rate tier %d has negative base rate", i)
		}
	}
	return nil
}

// Lenders returns the panel's lenders in declaration order. The returned
// slice is a copy; the profiles themselves must be treated as read-only.
func (p *LenderPanel) Lenders() []LenderProfile {
	out := make([]LenderProfile, len(p.lenders))
	copy(out, p.lenders)
	return out
}

// Lender looks up a lender by ID.
func (p *LenderPanel) Lender(id string) (LenderProfile, error) {
	i, ok := p.index[id]
	if !ok {
		return LenderProfile{}, fmt.Errorf("%w: %q", ErrUnknownLender, id)
	}
	return p.lenders[i], nil
}

// Len returns the number of lenders on the panel.
func (p *LenderPanel) Len() int { return len(p.lenders) }

// Version identifies the panel source revision.
func (p *LenderPanel) Version() string { return p.version }

// LoadedAt is when the panel was built.
func (p *LenderPanel) LoadedAt() time.Time { return p.loadedAt }

// ---------------------------------------------------------------------------
// Configuration findings
// ---------------------------------------------------------------------------

// FindingKind classifies a non-fatal panel configuration issue.
type FindingKind string

const (
	FindingTierGap     FindingKind = "tier_gap"
	FindingTierOverlap FindingKind = "tier_overlap"
	FindingNoTiers     FindingKind = "no_tiers"
)

// PanelFinding describes a score range that is covered by no rate tier, or
// by more than one, for a given lender.
type PanelFinding struct {
	LenderID string
	Kind     FindingKind
	From     int
	To       int
}

func (f PanelFinding) String() string {
	return fmt.Sprintf("%s: %s for scores %d-%d", f.LenderID, f.Kind, f.From, f.To)
}

// Validate reports score ranges in [0,100] that no tier covers and ranges
// covered by several tiers. Gaps are legitimate configuration: scores in a
// gap simply get no rate from that lender.
func (p *LenderPanel) Validate() []PanelFinding {
	var findings []PanelFinding
	for _, l := range p.lenders {
		if len(l.RateTiers) == 0 {
			findings = append(findings, PanelFinding{LenderID: l.ID, Kind: FindingNoTiers, From: MinScore, To: MaxScore})
			continue
		}

		var open *PanelFinding
		flush := func() {
			if open != nil {
				findings = append(findings, *open)
				open = nil
			}
		}
		for s := MinScore; s <= MaxScore; s++ {
			covered := 0
			for _, t := range l.RateTiers {
				if t.Covers(s) {
					covered++
				}
			}

			var kind FindingKind
			switch {
			case covered == 0:
				kind = FindingTierGap
			case covered > 1:
				kind = FindingTierOverlap
			}

			if kind == "" {
				flush()
				continue
			}
			if open != nil && open.Kind == kind {
				open.To = s
				continue
			}
			flush()
			open = &PanelFinding{LenderID: l.ID, Kind: kind, From: s, To: s}
		}
		flush()
	}
	return findings
}
