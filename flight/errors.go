package flight

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/solr-pushdown/filter"
	"github.com/hugr-lab/solr-pushdown/translate"
)

// statusCode returns the gRPC code for a translation failure.
func statusCode(err error) codes.Code {
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	switch {
	case errors.Is(err, filter.ErrInvalidFilter),
		errors.Is(err, translate.ErrMalformedPredicate):
		return codes.InvalidArgument
	case errors.Is(err, translate.ErrUnsupportedPredicate):
		return codes.Unimplemented
	default:
		return codes.Internal
	}
}

// toStatus converts a translation failure to a gRPC status error.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(statusCode(err), err.Error())
}

// errorMessage returns the message of err without the gRPC status prefix.
func errorMessage(err error) string {
	if s, ok := status.FromError(err); ok {
		return s.Message()
	}
	return err.Error()
}
