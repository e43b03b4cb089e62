package usecase

import (
	"context"
	"fmt"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
)

// ListLendersUseCase describes the active panel.
type ListLendersUseCase struct {
	panels port.PanelProvider
}

// NewListLendersUseCase wires dependencies.
func NewListLendersUseCase(panels port.PanelProvider) *ListLendersUseCase {
	return &ListLendersUseCase{panels: panels}
}

// Execute returns the panel's lenders in declaration order.
func (uc *ListLendersUseCase) Execute(ctx context.Context) (dto.PanelResponse, error) {
	_, span := startSpan(ctx, "ListLenders")
	defer span.End()

	panel, err := uc.panels.Current()
	if err != nil {
		failSpan(span, err)
		return dto.PanelResponse{}, fmt.Errorf("current panel: %w", err)
	}

	lenders := panel.Lenders()
	resp := dto.PanelResponse{
		Version:  panel.Version(),
		LoadedAt: panel.LoadedAt(),
		Lenders:  make([]dto.LenderResponse, 0, len(lenders)),
	}
	for _, l := range lenders {
		resp.Lenders = append(resp.Lenders, toLenderResponse(l))
	}
	return resp, nil
}
