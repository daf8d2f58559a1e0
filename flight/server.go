// Package flight serves predicate translation over Arrow Flight actions.
package flight

import (
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/hugr-lab/solr-pushdown/auth"
	"github.com/hugr-lab/solr-pushdown/internal/compress"
	"github.com/hugr-lab/solr-pushdown/translate"
)

// Options configures a Server.
type Options struct {
	// Allocator for translate_batch result records.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for request logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger

	// Auth is consulted for per-action authorization when it implements
	// auth.ActionAuthorizer. Token validation happens in the interceptors.
	// OPTIONAL.
	Auth auth.Authenticator

	// DefaultMode is used for requests that leave the mode empty.
	// OPTIONAL: Uses translate.ModeDocument if empty.
	DefaultMode translate.Mode

	// CompressThreshold is the encoded response size in bytes from which
	// responses are zstd-compressed for clients that allow it.
	// OPTIONAL: 0 disables response compression.
	CompressThreshold int

	// MaxMessageSize caps the decompressed size of a request body.
	// OPTIONAL: 0 means no cap beyond the gRPC message limit.
	MaxMessageSize int
}

// Server implements the Flight service actions.
// Embeds BaseFlightServer so every other Flight RPC answers Unimplemented.
type Server struct {
	flight.BaseFlightServer

	allocator         memory.Allocator
	logger            *slog.Logger
	auth              auth.Authenticator
	defaultMode       translate.Mode
	compressThreshold int
	codec             *compress.Codec
}

// NewServer creates a Flight server. Call Close to release the codec.
func NewServer(opts Options) (*Server, error) {
	codec, err := compress.NewCodec(opts.MaxMessageSize)
	if err != nil {
		return nil, fmt.Errorf("flight: %w", err)
	}

	s := &Server{
		allocator:         opts.Allocator,
		logger:            opts.Logger,
		auth:              opts.Auth,
		defaultMode:       opts.DefaultMode,
		compressThreshold: opts.CompressThreshold,
		codec:             codec,
	}
	if s.allocator == nil {
		s.allocator = memory.DefaultAllocator
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.defaultMode == "" {
		s.defaultMode = translate.ModeDocument
	}
	return s, nil
}

// Close releases compression resources.
func (s *Server) Close() error {
	return s.codec.Close()
}

// RegisterFlightServer registers the Flight service on the provided gRPC server.
func RegisterFlightServer(grpcServer *grpc.Server, flightServer *Server) {
	flight.RegisterFlightServiceServer(grpcServer, flightServer)
}
