package port

import (
	"context"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/event"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Notification port
// ---------------------------------------------------------------------------

// Notifier receives cautionary notices raised for an applicant.
type Notifier interface {
	Notify(ctx context.Context, advisories ...model.Advisory) error
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Lender panel ports
// ---------------------------------------------------------------------------

// PanelSource builds a fresh lender panel from its backing store.
type PanelSource interface {
	Load(ctx context.Context) (*model.LenderPanel, error)
}

// PanelProvider hands out the currently active panel. Implementations must
// return a complete panel; a reload never exposes a partial one.
type PanelProvider interface {
	Current() (*model.LenderPanel, error)
}

// PanelStore is a PanelProvider whose panel can be replaced whole.
type PanelStore interface {
	PanelProvider
	Swap(next *model.LenderPanel) *model.LenderPanel
}

// ---------------------------------------------------------------------------
// Schedule cache port
// ---------------------------------------------------------------------------

// ScheduleCache stores computed amortization schedules. A miss is reported
// as (nil, false, nil).
type ScheduleCache interface {
	Get(ctx context.Context, key string) ([]model.AmortizationRow, bool, error)
	Set(ctx context.Context, key string, rows []model.AmortizationRow) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// EvaluationRecorder captures engine metrics.
type EvaluationRecorder interface {
	RecordEvaluation(ctx context.Context, score, lenders, rated int)
	RecordAdvisory(ctx context.Context, code model.AdvisoryCode)
	RecordCacheLookup(ctx context.Context, hit bool)
	RecordPanelReload(ctx context.Context, lenders int, err error)
}

// ---------------------------------------------------------------------------
// Request-scoped identifiers
// ---------------------------------------------------------------------------

type evaluationIDKey struct{}

// WithEvaluationID attaches the evaluation ID to ctx so that adapters can
// correlate notices with the evaluation that raised them.
func WithEvaluationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, evaluationIDKey{}, id)
}

// EvaluationIDFromContext returns the evaluation ID stored in ctx, if any.
func EvaluationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(evaluationIDKey{}).(string)
	return id, ok && id != ""
}
