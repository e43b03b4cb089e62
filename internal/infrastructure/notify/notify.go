package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
)

// Collector accumulates notices in memory, typically for one request.
type Collector struct {
	advisories []model.Advisory
	mu         sync.Mutex
}

// NewCollector returns an empty collector.
func NewCollector() *Collector { return &Collector{} }

// Notify implements port.Notifier.
func (c *Collector) Notify(_ context.Context, advisories ...model.Advisory) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advisories = append(c.advisories, advisories...)
	return nil
}

// Advisories returns a copy of the collected notices in arrival order.
func (c *Collector) Advisories() []model.Advisory {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Advisory, len(c.advisories))
	copy(out, c.advisories)
	return out
}

// LogNotifier writes each notice to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier logging at warn level.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements port.Notifier.
func (n *LogNotifier) Notify(ctx context.Context, advisories ...model.Advisory) error {
	for _, a := range advisories {
		attrs := []any{"advisory_code", string(a.Code), "advisory_message", a.Message}
		if id, ok := port.EvaluationIDFromContext(ctx); ok {
			attrs = append(attrs, "evaluation_id", id)
		}
		n.logger.WarnContext(ctx, "applicant advisory raised", attrs...)
	}
	return nil
}

// Fanout delivers every notice to each of its notifiers, continuing past
// failures and joining their errors.
type Fanout []port.Notifier

// Notify implements port.Notifier.
func (f Fanout) Notify(ctx context.Context, advisories ...model.Advisory) error {
	var errs []error
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, advisories...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
