package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/service"
)

// MatchLendersUseCase ranks the active panel for an applicant.
type MatchLendersUseCase struct {
	engine *service.Engine
}

// NewMatchLendersUseCase wires dependencies.
func NewMatchLendersUseCase(engine *service.Engine) *MatchLendersUseCase {
	return &MatchLendersUseCase{engine: engine}
}

// Execute scores the applicant and ranks every lender on the panel.
func (uc *MatchLendersUseCase) Execute(ctx context.Context, req dto.ApplicantRequest) (dto.MatchListResponse, error) {
	_, span := startSpan(ctx, "MatchLenders")
	defer span.End()

	p, err := req.ToProfile()
	if err != nil {
		failSpan(span, err)
		return dto.MatchListResponse{}, err
	}

	panel, err := uc.engine.Panel()
	if err != nil {
		failSpan(span, err)
		return dto.MatchListResponse{}, fmt.Errorf("current panel: %w", err)
	}

	score := uc.engine.ComputeScore(p)
	results, err := uc.engine.MatchLenders(p, score)
	if err != nil {
		failSpan(span, err)
		return dto.MatchListResponse{}, fmt.Errorf("match lenders: %w", err)
	}

	span.SetAttributes(
		attribute.Int("loanmatch.score", score),
		attribute.Int("loanmatch.lenders", len(results)),
	)
	return dto.MatchListResponse{
		Score:        score,
		PanelVersion: panel.Version(),
		Matches:      toMatchResponses(results),
	}, nil
}
