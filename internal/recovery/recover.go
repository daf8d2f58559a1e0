// Package recovery converts panics in RPC handlers into gRPC errors so a
// bad request cannot take the server down.
package recovery

import (
	"context"
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Guard runs fn and turns a panic into a codes.Internal error.
//
//	res, err := recovery.Guard(logger, "translate", func() (*translate.Result, error) {
//	    return tr.Translate(e)
//	})
func Guard[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logPanic(logger, operation, r)
			var zero T
			result = zero
			err = status.Errorf(codes.Internal, "%s panicked: %v", operation, r)
		}
	}()

	return fn()
}

// UnaryServerInterceptor recovers panics in unary handlers.
func UnaryServerInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return Guard(logger, info.FullMethod, func() (any, error) {
			return handler(ctx, req)
		})
	}
}

// StreamServerInterceptor recovers panics in stream handlers.
func StreamServerInterceptor(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		_, err := Guard(logger, info.FullMethod, func() (struct{}, error) {
			return struct{}{}, handler(srv, ss)
		})
		return err
	}
}

func logPanic(logger *slog.Logger, operation string, r any) {
	logger.Error("Panic recovered",
		"operation", operation,
		"panic", r,
		"stack", string(debug.Stack()),
	)
}
