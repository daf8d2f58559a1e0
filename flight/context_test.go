package flight

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/solr-pushdown/filter"
	"github.com/hugr-lab/solr-pushdown/translate"
)

func TestEnrichContextMetadata(t *testing.T) {
	md := metadata.Pairs(HeaderTraceID, "trace-1", HeaderSessionID, "session-1")
	ctx := EnrichContextMetadata(metadata.NewIncomingContext(context.Background(), md))

	meta := MetaFromContext(ctx)
	if meta == nil {
		t.Fatal("expected request metadata")
	}
	if meta.TraceID != "trace-1" || meta.SessionID != "session-1" {
		t.Errorf("unexpected metadata %+v", meta)
	}

	// Enrichment is idempotent.
	if again := EnrichContextMetadata(ctx); TraceIDFromContext(again) != "trace-1" {
		t.Errorf("expected trace-1, got %q", TraceIDFromContext(again))
	}
}

func TestEnrichContextMetadataGeneratesTraceID(t *testing.T) {
	a := TraceIDFromContext(EnrichContextMetadata(context.Background()))
	b := TraceIDFromContext(EnrichContextMetadata(context.Background()))
	if a == "" || b == "" {
		t.Fatal("expected generated trace IDs")
	}
	if a == b {
		t.Errorf("expected distinct trace IDs, got %q twice", a)
	}
}

func TestTraceIDFromContextEmpty(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty trace ID, got %q", got)
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"invalid filter", &filter.ParseError{Path: "$", Err: errors.New("bad")}, codes.InvalidArgument},
		{"malformed", fmt.Errorf("wrap: %w", translate.ErrMalformedPredicate), codes.InvalidArgument},
		{"unsupported", &translate.PredicateError{Kind: translate.ErrUnsupportedPredicate}, codes.Unimplemented},
		{"status kept", status.Error(codes.PermissionDenied, "no"), codes.PermissionDenied},
		{"other", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusCode(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got := status.Code(toStatus(tt.err)); got != tt.want {
				t.Errorf("toStatus: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	if got := errorMessage(status.Error(codes.InvalidArgument, "bad mode")); got != "bad mode" {
		t.Errorf("expected status message, got %q", got)
	}
	if got := errorMessage(errors.New("plain")); got != "plain" {
		t.Errorf("expected plain message, got %q", got)
	}
}
