package flight

import (
	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/solr-pushdown/auth"
)

// DoAction executes the translation actions:
//   - translate: one filter, msgpack response
//   - translate_batch: many filters, Arrow IPC response
func (s *Server) DoAction(action *flight.Action, stream flight.FlightService_DoActionServer) error {
	ctx := EnrichContextMetadata(stream.Context())
	logger := s.logger.With(
		"trace_id", TraceIDFromContext(ctx),
		"identity", auth.IdentityFromContext(ctx),
	)

	logger.Debug("DoAction called",
		"type", action.GetType(),
		"body_size", len(action.GetBody()),
	)

	switch action.GetType() {
	case ActionTranslate:
		return s.handleTranslate(ctx, logger, action, stream)
	case ActionTranslateBatch:
		return s.handleTranslateBatch(ctx, logger, action, stream)
	default:
		return status.Errorf(codes.Unimplemented, "unknown action type: %s", action.GetType())
	}
}

// ListActions advertises the translation actions.
func (s *Server) ListActions(_ *flight.Empty, stream flight.FlightService_ListActionsServer) error {
	for _, at := range actionTypes {
		if err := stream.Send(at); err != nil {
			return err
		}
	}
	return nil
}
