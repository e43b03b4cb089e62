package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/usecase"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/auth"
)

const maxBodyBytes = 1 << 20

// UseCases groups the application operations served over HTTP. The admin
// endpoint is served only when Reload is set and WithAdminAuth was called.
type UseCases struct {
	ComputeScore  *usecase.ComputeScoreUseCase
	MatchLenders  *usecase.MatchLendersUseCase
	BuildSchedule *usecase.BuildScheduleUseCase
	CheckWarnings *usecase.CheckWarningsUseCase
	Evaluate      *usecase.EvaluateApplicantUseCase
	ListLenders   *usecase.ListLendersUseCase
	Reload        *usecase.ReloadPanelUseCase
}

// LoanMatchHandler serves the engine as a JSON API.
type LoanMatchHandler struct {
	uc     UseCases
	admin  *auth.JWTService
	logger *slog.Logger
}

// NewLoanMatchHandler creates the JSON API handler.
func NewLoanMatchHandler(uc UseCases, logger *slog.Logger) *LoanMatchHandler {
	return &LoanMatchHandler{uc: uc, logger: logger}
}

// WithAdminAuth requires a panel_admin operator token on the admin routes.
func (h *LoanMatchHandler) WithAdminAuth(svc *auth.JWTService) *LoanMatchHandler {
	h.admin = svc
	return h
}

// RegisterRoutes attaches the API routes to the given mux.
func (h *LoanMatchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/score", h.computeScore)
	mux.HandleFunc("POST /v1/matches", h.matchLenders)
	mux.HandleFunc("POST /v1/schedule", h.buildSchedule)
	mux.HandleFunc("POST /v1/warnings", h.checkWarnings)
	mux.HandleFunc("POST /v1/evaluate", h.evaluate)
	mux.HandleFunc("GET /v1/lenders", h.listLenders)
	// Admin routes exist only behind operator auth.
	if h.uc.Reload != nil && h.admin != nil {
		reload := auth.RequireRole(h.admin, http.HandlerFunc(h.reloadPanel), auth.RolePanelAdmin)
		mux.Handle("POST /v1/admin/panel/reload", reload)
	}
}

func (h *LoanMatchHandler) computeScore(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplicantRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.ComputeScore.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *LoanMatchHandler) matchLenders(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplicantRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.MatchLenders.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *LoanMatchHandler) buildSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.BuildSchedule.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *LoanMatchHandler) checkWarnings(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplicantRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.CheckWarnings.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *LoanMatchHandler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplicantRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.Evaluate.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *LoanMatchHandler) listLenders(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.ListLenders.Execute(r.Context())
	h.respond(w, r, resp, err)
}

func (h *LoanMatchHandler) reloadPanel(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Reload.Execute(r.Context())
	h.respond(w, r, resp, err)
}

// decode reads a JSON body into v, rejecting unknown fields. It writes the
// error response itself and reports whether decoding succeeded.
func (h *LoanMatchHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed request body: %v", err))
		return false
	}
	return true
}

func (h *LoanMatchHandler) respond(w http.ResponseWriter, r *http.Request, resp any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	switch {
	case errors.Is(err, dto.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrUnknownLender):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "http request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
