package upcall

import (
	"context"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type tracingHandler struct {
	base   Handler
	tracer trace.Tracer
}

// NewTracingHandler is a decorator for Handler that creates an
// OpenTelemetry trace span for every upcall that is processed.
func NewTracingHandler(base Handler, tracerProvider trace.TracerProvider) Handler {
	return &tracingHandler{
		base:   base,
		tracer: tracerProvider.Tracer("github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"),
	}
}

func endSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, windowsext.ToWin32Error(err, windowsext.ERROR_INTERNAL_ERROR).Error())
	}
	span.End()
}

func (h *tracingHandler) HandleOpen(ctx context.Context, args *OpenArgs) (*OpenReply, error) {
	ctxWithTracing, span := h.tracer.Start(ctx, "Handler.HandleOpen", trace.WithAttributes(
		attribute.String("path", args.Path),
		attribute.String("disposition", windowsext.DispositionName(args.Disposition)),
		attribute.Int64("access_mask", int64(args.AccessMask)),
		attribute.Int64("create_opts", int64(args.CreateOptions)),
	))
	reply, err := h.base.HandleOpen(ctxWithTracing, args)
	if err == nil {
		span.SetAttributes(
			attribute.Bool("created", reply.Created),
			attribute.Bool("reparse", reply.Symlink != nil),
		)
	}
	endSpanWithError(span, err)
	return reply, err
}

func (h *tracingHandler) CancelOpen(ctx context.Context, args *OpenArgs, reply *OpenReply) error {
	ctxWithTracing, span := h.tracer.Start(ctx, "Handler.CancelOpen", trace.WithAttributes(
		attribute.String("path", args.Path),
	))
	err := h.base.CancelOpen(ctxWithTracing, args, reply)
	endSpanWithError(span, err)
	return err
}

func (h *tracingHandler) HandleClose(ctx context.Context, args *CloseArgs) error {
	ctxWithTracing, span := h.tracer.Start(ctx, "Handler.HandleClose", trace.WithAttributes(
		attribute.Bool("remove", args.Remove),
		attribute.Bool("renamed", args.Renamed),
	))
	err := h.base.HandleClose(ctxWithTracing, args)
	endSpanWithError(span, err)
	return err
}
