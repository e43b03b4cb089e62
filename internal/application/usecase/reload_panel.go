package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/event"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
)

// ReloadPanelUseCase rebuilds the lender panel from its source and swaps it
// in whole. A failed load leaves the current panel in place.
type ReloadPanelUseCase struct {
	source    port.PanelSource
	store     port.PanelStore
	publisher port.EventPublisher
	recorder  port.EvaluationRecorder
	logger    *slog.Logger
	mu        sync.Mutex
}

// NewReloadPanelUseCase wires dependencies. publisher and recorder may be nil.
func NewReloadPanelUseCase(
	source port.PanelSource,
	store port.PanelStore,
	publisher port.EventPublisher,
	recorder port.EvaluationRecorder,
	logger *slog.Logger,
) *ReloadPanelUseCase {
	return &ReloadPanelUseCase{
		source:    source,
		store:     store,
		publisher: publisher,
		recorder:  recorderOrNop(recorder),
		logger:    loggerOrDefault(logger),
	}
}

// Execute loads, checks and installs a fresh panel. Concurrent reloads are
// serialised.
func (uc *ReloadPanelUseCase) Execute(ctx context.Context) (dto.ReloadResponse, error) {
	ctx, span := startSpan(ctx, "ReloadPanel")
	defer span.End()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	// 1. Load.
	next, err := uc.source.Load(ctx)
	if err != nil {
		failSpan(span, err)
		uc.recorder.RecordPanelReload(ctx, 0, err)
		return dto.ReloadResponse{}, fmt.Errorf("load panel: %w", err)
	}

	// 2. Report configuration findings. They never block the swap.
	findings := next.Validate()
	resp := dto.ReloadResponse{
		Version: next.Version(),
		Lenders: next.Len(),
	}
	for _, f := range findings {
		uc.logger.WarnContext(ctx, "lender panel finding",
			"lender_id", f.LenderID,
			"kind", string(f.Kind),
			"from_score", f.From,
			"to_score", f.To,
		)
		resp.Findings = append(resp.Findings, f.String())
	}

	// 3. Swap.
	if prev := uc.store.Swap(next); prev != nil {
		resp.PreviousVersion = prev.Version()
	}
	uc.recorder.RecordPanelReload(ctx, next.Len(), nil)
	uc.logger.InfoContext(ctx, "lender panel loaded",
		"panel_version", next.Version(),
		"lenders", next.Len(),
		"findings", len(findings),
	)

	// 4. Announce.
	if uc.publisher != nil {
		evt := event.NewPanelReloaded(next.Version(), next.Len(), len(findings))
		if err := uc.publisher.Publish(ctx, evt); err != nil {
			uc.logger.WarnContext(ctx, "publish panel reload event failed", "error", err)
		}
	}

	return resp, nil
}
