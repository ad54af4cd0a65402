package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/skipgrid/pkg/log"
)

// ToolFunc is a typed tool handler, as accepted by [WithTracing].
type ToolFunc[In, Out any] func(
	context.Context,
	*mcp.ServerSession,
	*mcp.CallToolParamsFor[In],
) (*mcp.CallToolResultFor[Out], error)

// WithTracing runs each call of fn in a span named after the tool.
// Both returned errors and results flagged IsError mark the span as failed.
func WithTracing[In, Out any](tracer trace.Tracer, fn ToolFunc[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(
		ctx context.Context,
		ss *mcp.ServerSession,
		params *mcp.CallToolParamsFor[In],
	) (*mcp.CallToolResultFor[Out], error) {
		ctx, span := tracer.Start(ctx, params.Name,
			trace.WithAttributes(attribute.String("mcp.tool", params.Name)),
		)
		defer span.End()

		logger := log.WithContext(ctx).With(slog.String("tool", params.Name))
		start := time.Now()

		res, err := fn(ctx, ss, params)

		elapsed := slog.Duration("elapsed", time.Since(start))

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.ErrorContext(ctx, "tool call failed", elapsed, slog.Any("err", err))
		case res != nil && res.IsError:
			span.SetStatus(codes.Error, "tool returned an error result")
			logger.WarnContext(ctx, "tool returned an error result", elapsed)
		default:
			logger.DebugContext(ctx, "tool call completed", elapsed)
		}

		return res, err
	}
}
