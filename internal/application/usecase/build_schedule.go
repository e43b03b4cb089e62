package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/service"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/money"
)

// KeyFunc derives the cache key for a schedule.
type KeyFunc func(principal, annualRatePercent float64, termYears int) string

// BuildScheduleUseCase produces amortization schedules, consulting a cache
// first when one is configured. Cache failures fall back to computing the
// schedule.
type BuildScheduleUseCase struct {
	engine   *service.Engine
	cache    port.ScheduleCache
	key      KeyFunc
	recorder port.EvaluationRecorder
	logger   *slog.Logger
	currency money.Currency
}

// NewBuildScheduleUseCase wires dependencies. cache and recorder may be nil.
func NewBuildScheduleUseCase(
	engine *service.Engine,
	cache port.ScheduleCache,
	key KeyFunc,
	recorder port.EvaluationRecorder,
	currency money.Currency,
	logger *slog.Logger,
) *BuildScheduleUseCase {
	return &BuildScheduleUseCase{
		engine:   engine,
		cache:    cache,
		key:      key,
		recorder: recorderOrNop(recorder),
		logger:   loggerOrDefault(logger),
		currency: currency,
	}
}

// Execute validates the request and returns the rounded schedule.
func (uc *BuildScheduleUseCase) Execute(ctx context.Context, req dto.ScheduleRequest) (dto.ScheduleResponse, error) {
	ctx, span := startSpan(ctx, "BuildSchedule")
	defer span.End()

	if err := dto.Validate(req); err != nil {
		failSpan(span, err)
		return dto.ScheduleResponse{}, err
	}

	rows := uc.schedule(ctx, req.Principal, req.AnnualRatePercent, req.TermYears)
	span.SetAttributes(attribute.Int("loanmatch.periods", len(rows)))
	return toScheduleResponse(rows, uc.currency), nil
}

func (uc *BuildScheduleUseCase) schedule(ctx context.Context, principal, rate float64, termYears int) []model.AmortizationRow {
	if uc.cache == nil || uc.key == nil {
		return uc.engine.BuildSchedule(principal, rate, termYears)
	}

	key := uc.key(principal, rate, termYears)
	rows, hit, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.WarnContext(ctx, "schedule cache lookup failed", "key", key, "error", err)
	}
	uc.recorder.RecordCacheLookup(ctx, hit)
	if hit {
		return rows
	}

	rows = uc.engine.BuildSchedule(principal, rate, termYears)
	if err := uc.cache.Set(ctx, key, rows); err != nil {
		uc.logger.WarnContext(ctx, "schedule cache store failed", "key", key, "error", err)
	}
	return rows
}
