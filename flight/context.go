package flight

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

// Metadata header keys for request correlation.
const (
	// HeaderTraceID carries the caller's trace identifier.
	HeaderTraceID = "pushdown-trace-id"
	// HeaderSessionID carries the caller's session identifier.
	HeaderSessionID = "pushdown-client-session-id"
)

type contextKey int

const requestMetaKey contextKey = iota

// RequestMeta is the correlation data of a call.
type RequestMeta struct {
	// TraceID is taken from HeaderTraceID, or generated when absent.
	TraceID   string
	SessionID string
}

// WithRequestMeta returns a context carrying meta.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, &meta)
}

// MetaFromContext returns the request metadata, or nil if not set.
func MetaFromContext(ctx context.Context) *RequestMeta {
	meta, _ := ctx.Value(requestMetaKey).(*RequestMeta)
	return meta
}

// TraceIDFromContext returns the trace ID, or "" if not set.
func TraceIDFromContext(ctx context.Context) string {
	if meta := MetaFromContext(ctx); meta != nil {
		return meta.TraceID
	}
	return ""
}

// EnrichContextMetadata reads the correlation headers from incoming gRPC
// metadata and stores them in the context. A missing trace ID is replaced
// by a random one so every call can be followed in the logs.
// Already enriched contexts are returned unchanged.
func EnrichContextMetadata(ctx context.Context) context.Context {
	if MetaFromContext(ctx) != nil {
		return ctx
	}

	var meta RequestMeta
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(HeaderTraceID); len(values) > 0 {
			meta.TraceID = values[0]
		}
		if values := md.Get(HeaderSessionID); len(values) > 0 {
			meta.SessionID = values[0]
		}
	}
	if meta.TraceID == "" {
		meta.TraceID = uuid.NewString()
	}
	return WithRequestMeta(ctx, meta)
}
