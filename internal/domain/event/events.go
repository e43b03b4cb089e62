package event

import (
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// AdvisoryRaisedType is the event type published for every advisory.
const AdvisoryRaisedType = "lending.advisory.raised"

// AdvisoryRaised is raised when an advisory check flags an applicant.
type AdvisoryRaised struct {
	events.BaseEvent
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewAdvisoryRaised builds the event for one advisory on an evaluation.
func NewAdvisoryRaised(evaluationID, code, message string) AdvisoryRaised {
	return AdvisoryRaised{
		BaseEvent: events.NewBaseEvent(AdvisoryRaisedType, evaluationID, "Evaluation"),
		Code:      code,
		Message:   message,
	}
}

// PanelReloaded is raised when a new lender panel has been swapped in.
type PanelReloaded struct {
	events.BaseEvent
	Version  string `json:"version"`
	Lenders  int    `json:"lenders"`
	Findings int    `json:"findings"`
}

// NewPanelReloaded builds the event for a completed panel reload.
func NewPanelReloaded(version string, lenders, findings int) PanelReloaded {
	return PanelReloaded{
		BaseEvent: events.NewBaseEvent("lending.panel.reloaded", version, "LenderPanel"),
		Version:   version,
		Lenders:   lenders,
		Findings:  findings,
	}
}
