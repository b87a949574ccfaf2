package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs every unary call with its status code and latency.
func loggingInterceptor(l logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		args := []any{"method", info.FullMethod, "code", status.Code(err).String(), "latency", time.Since(start)}
		if err != nil {
			l.Warn(ctx, "rpc failed", append(args, "error", err)...)
		} else {
			l.Debug(ctx, "rpc", args...)
		}
		return resp, err
	}
}
