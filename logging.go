package forge

import (
	"context"
	"log/slog"
	"time"
)

// LoggingInterceptor creates an interceptor that logs dispatched requests
// using slog: one line per completed call with verb, path, status, and
// duration; failures log the error instead of a status.
func LoggingInterceptor(logger *slog.Logger) UnaryInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req *Request, next Handler) (*RawResponse, error) {
		start := time.Now()

		res, err := next(ctx, req)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "request failed",
				slog.String("verb", req.Verb),
				slog.String("path", req.Path),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.InfoContext(ctx, "request completed",
				slog.String("verb", req.Verb),
				slog.String("path", req.Path),
				slog.Int("status", res.Status),
				slog.Duration("duration", duration),
			)
		}

		return res, err
	}
}
