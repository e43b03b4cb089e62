package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/usecase"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

// UseCases groups the application operations the transport exposes.
type UseCases struct {
	ComputeScore  *usecase.ComputeScoreUseCase
	MatchLenders  *usecase.MatchLendersUseCase
	BuildSchedule *usecase.BuildScheduleUseCase
	CheckWarnings *usecase.CheckWarningsUseCase
	Evaluate      *usecase.EvaluateApplicantUseCase
	ListLenders   *usecase.ListLendersUseCase
}

// LoanMatchHandler implements LoanMatchServiceServer.
type LoanMatchHandler struct {
	UnimplementedLoanMatchServiceServer
	uc     UseCases
	logger *slog.Logger
}

// NewLoanMatchHandler creates a new handler with all use-case dependencies.
func NewLoanMatchHandler(uc UseCases, logger *slog.Logger) *LoanMatchHandler {
	return &LoanMatchHandler{uc: uc, logger: logger}
}

func (h *LoanMatchHandler) ComputeScore(ctx context.Context, req *dto.ApplicantRequest) (*dto.ScoreResponse, error) {
	resp, err := h.uc.ComputeScore.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "ComputeScore", err)
	}
	return &resp, nil
}

func (h *LoanMatchHandler) MatchLenders(ctx context.Context, req *dto.ApplicantRequest) (*dto.MatchListResponse, error) {
	resp, err := h.uc.MatchLenders.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "MatchLenders", err)
	}
	return &resp, nil
}

func (h *LoanMatchHandler) BuildSchedule(ctx context.Context, req *dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	resp, err := h.uc.BuildSchedule.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "BuildSchedule", err)
	}
	return &resp, nil
}

func (h *LoanMatchHandler) CheckWarnings(ctx context.Context, req *dto.ApplicantRequest) (*dto.WarningsResponse, error) {
	resp, err := h.uc.CheckWarnings.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "CheckWarnings", err)
	}
	return &resp, nil
}

func (h *LoanMatchHandler) Evaluate(ctx context.Context, req *dto.ApplicantRequest) (*dto.EvaluationResponse, error) {
	resp, err := h.uc.Evaluate.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "Evaluate", err)
	}
	return &resp, nil
}

func (h *LoanMatchHandler) ListLenders(ctx context.Context, _ *ListLendersRequest) (*dto.PanelResponse, error) {
	resp, err := h.uc.ListLenders.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "ListLenders", err)
	}
	return &resp, nil
}

func (h *LoanMatchHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, dto.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrUnknownLender):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	h.logger.ErrorContext(ctx, "grpc request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}
