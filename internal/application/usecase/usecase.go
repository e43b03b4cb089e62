// Package usecase orchestrates the loan matching engine for the service
// surfaces.
package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
)

var tracer = otel.Tracer("github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/usecase")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

type nopRecorder struct{}

func (nopRecorder) RecordEvaluation(context.Context, int, int, int)   {}
func (nopRecorder) RecordAdvisory(context.Context, model.AdvisoryCode) {}
func (nopRecorder) RecordCacheLookup(context.Context, bool)            {}
func (nopRecorder) RecordPanelReload(context.Context, int, error)      {}

func recorderOrNop(r port.EvaluationRecorder) port.EvaluationRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
