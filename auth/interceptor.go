package auth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// authenticate resolves the caller of an RPC. A nil authenticator lets
// every request through without an identity.
func authenticate(ctx context.Context, authenticator Authenticator) (context.Context, error) {
	if authenticator == nil {
		return ctx, nil
	}
	token, err := tokenFromMetadata(ctx)
	if err != nil {
		return ctx, status.Error(codes.Unauthenticated, err.Error())
	}
	ctx, err = ValidateToken(ctx, token, authenticator)
	if err != nil {
		return ctx, status.Error(codes.Unauthenticated, err.Error())
	}
	return ctx, nil
}

// UnaryServerInterceptor creates a gRPC unary interceptor that validates
// bearer tokens and propagates the identity via context.
func UnaryServerInterceptor(authenticator Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, err := authenticate(ctx, authenticator)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamServerInterceptor creates a gRPC stream interceptor that validates
// bearer tokens and propagates the identity via context.
func StreamServerInterceptor(authenticator Authenticator) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := authenticate(ss.Context(), authenticator)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
	}
}

// Authorize consults authenticator's ActionAuthorizer, if it has one.
// The returned error is a PermissionDenied status.
func Authorize(ctx context.Context, authenticator Authenticator, action, mode string) error {
	az, ok := authenticator.(ActionAuthorizer)
	if !ok {
		return nil
	}
	if err := az.AuthorizeAction(ctx, action, mode); err != nil {
		return status.Errorf(codes.PermissionDenied, "%s not allowed: %v", action, err)
	}
	return nil
}

// wrappedServerStream wraps grpc.ServerStream with a custom context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
