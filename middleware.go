package main

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// loggingMiddleware records every tool call with its outcome and duration.
func loggingMiddleware(log *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			name := req.Params.Name
			log.Debug("-> tool", zap.String("tool", name), zap.Any("args", req.Params.Arguments))

			res, err := next(ctx, req)
			dur := time.Since(start)
			switch {
			case err != nil:
				log.Warn("<- tool failed", zap.String("tool", name), zap.Duration("dur", dur), zap.Error(err))
			case res != nil && res.IsError:
				fields := []zap.Field{zap.String("tool", name), zap.Duration("dur", dur)}
				if resp, ok := res.StructuredContent.(ErrorResponse); ok {
					fields = append(fields, zap.String("code", resp.Code), zap.String("error", resp.Error))
				}
				log.Info("<- tool error", fields...)
			default:
				log.Debug("<- tool ok", zap.String("tool", name), zap.Duration("dur", dur))
			}
			return res, err
		}
	}
}

// timeoutMiddleware bounds each call by d. A call that overruns reports
// TIMEOUT even if the handler finished. A zero d disables the budget.
func timeoutMiddleware(d time.Duration) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			res, err := next(ctx, req)
			if err == nil && (res == nil || !res.IsError) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return errorResult(ctx.Err()), nil
			}
			return res, err
		}
	}
}
