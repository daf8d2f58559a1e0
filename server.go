package pushdown

import (
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/grpc"

	"github.com/hugr-lab/solr-pushdown/auth"
	"github.com/hugr-lab/solr-pushdown/flight"
	"github.com/hugr-lab/solr-pushdown/internal/recovery"
	"github.com/hugr-lab/solr-pushdown/translate"
)

// Server is a registered pushdown Flight service.
type Server struct {
	server *flight.Server
	logger *slog.Logger
}

// NewServer registers the pushdown Flight service on the provided gRPC server.
// This is the main entry point for the pushdown package.
//
// The function:
//  1. Validates the ServerConfig
//  2. Creates the Flight service implementation
//  3. Registers it on grpcServer
//
// Does NOT start the gRPC server - user controls lifecycle via grpcServer.Serve().
// Call Close after the gRPC server has stopped.
//
// Use ServerOptions to create a gRPC server with the matching interceptors:
//
//	config := pushdown.ServerConfig{
//	    Auth: pushdown.BearerAuth(validateToken),
//	}
//	grpcServer := grpc.NewServer(pushdown.ServerOptions(config)...)
//	srv, err := pushdown.NewServer(grpcServer, config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	lis, _ := net.Listen("tcp", ":50051")
//	grpcServer.Serve(lis)
func NewServer(grpcServer *grpc.Server, config ServerConfig) (*Server, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger := newLogger(config)
	mode := defaultMode(config)

	flightServer, err := flight.NewServer(flight.Options{
		Allocator:         config.Allocator,
		Logger:            logger,
		Auth:              config.Auth,
		DefaultMode:       mode,
		CompressThreshold: config.CompressThreshold,
		MaxMessageSize:    config.MaxMessageSize,
	})
	if err != nil {
		return nil, err
	}

	flight.RegisterFlightServer(grpcServer, flightServer)

	logger.Info("Pushdown Flight server registered",
		"has_auth", config.Auth != nil,
		"default_mode", mode,
		"compress_threshold", config.CompressThreshold,
		"max_message_size", config.MaxMessageSize,
	)

	return &Server{server: flightServer, logger: logger}, nil
}

// Close releases the resources of the service.
func (s *Server) Close() error {
	return s.server.Close()
}

// validateConfig checks that ServerConfig fields are valid.
func validateConfig(config ServerConfig) error {
	if config.MaxMessageSize < 0 {
		return fmt.Errorf("max message size must not be negative: %d", config.MaxMessageSize)
	}
	if config.CompressThreshold < 0 {
		return fmt.Errorf("compress threshold must not be negative: %d", config.CompressThreshold)
	}
	if config.DefaultMode != "" {
		if _, err := translate.ParseMode(string(config.DefaultMode)); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(config ServerConfig) *slog.Logger {
	if config.Logger != nil {
		return config.Logger
	}
	level := slog.LevelInfo
	if config.LogLevel != nil {
		level = *config.LogLevel
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// defaultMode returns the canonical DefaultMode of a validated config.
func defaultMode(config ServerConfig) translate.Mode {
	if config.DefaultMode == "" {
		return translate.ModeDocument
	}
	mode, _ := translate.ParseMode(string(config.DefaultMode))
	return mode
}

// ServerOptions returns gRPC server options with the service interceptors:
// panic recovery, request metadata and, if Auth is set, authentication.
//
// Example:
//
//	config := pushdown.ServerConfig{
//	    Auth: pushdown.BearerAuth(validateToken),
//	}
//	grpcServer := grpc.NewServer(pushdown.ServerOptions(config)...)
//	pushdown.NewServer(grpcServer, config)
func ServerOptions(config ServerConfig) []grpc.ServerOption {
	logger := newLogger(config)

	unary := []grpc.UnaryServerInterceptor{
		recovery.UnaryServerInterceptor(logger),
		flight.UnaryServerInterceptor(),
	}
	stream := []grpc.StreamServerInterceptor{
		recovery.StreamServerInterceptor(logger),
		flight.StreamServerInterceptor(),
	}
	if config.Auth != nil {
		unary = append(unary, auth.UnaryServerInterceptor(config.Auth))
		stream = append(stream, auth.StreamServerInterceptor(config.Auth))
	}

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	}

	if config.MaxMessageSize > 0 {
		opts = append(opts,
			grpc.MaxRecvMsgSize(config.MaxMessageSize),
			grpc.MaxSendMsgSize(config.MaxMessageSize),
		)
	}

	return opts
}
