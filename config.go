package pushdown

import (
	"errors"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/solr-pushdown/auth"
	"github.com/hugr-lab/solr-pushdown/translate"
)

// ServerConfig contains configuration for the pushdown Flight server.
type ServerConfig struct {
	// Auth provides authentication logic. If it also implements
	// auth.ActionAuthorizer, every translation is authorized per mode.
	// OPTIONAL: If nil, no authentication (all requests allowed).
	Auth auth.Authenticator

	// Allocator for translate_batch result records.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for internal logging.
	// OPTIONAL: Uses a text logger on stderr if nil.
	Logger *slog.Logger

	// LogLevel sets the minimum log level.
	// OPTIONAL: If nil, uses Info level. Only used if Logger is nil.
	LogLevel *slog.Level

	// MaxMessageSize sets maximum gRPC message size in bytes. Request bodies
	// are not decompressed beyond this size either.
	// OPTIONAL: If 0, uses gRPC default (4MB).
	MaxMessageSize int

	// CompressThreshold is the encoded translate response size in bytes from
	// which responses are zstd-compressed for clients that allow it.
	// OPTIONAL: If 0, responses are never compressed.
	CompressThreshold int

	// DefaultMode is the translation mode of requests that do not name one.
	// OPTIONAL: Uses translate.ModeDocument if empty.
	DefaultMode translate.Mode
}

// Standard errors returned by pushdown package.
var (
	// ErrUnauthorized indicates authentication failed.
	// Return this from Authenticator.Authenticate() for invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidConfig indicates ServerConfig validation failed.
	ErrInvalidConfig = errors.New("invalid server config")
)
