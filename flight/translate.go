package flight

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/solr-pushdown/auth"
	"github.com/hugr-lab/solr-pushdown/expr"
	"github.com/hugr-lab/solr-pushdown/filter"
	"github.com/hugr-lab/solr-pushdown/internal/msgpack"
	"github.com/hugr-lab/solr-pushdown/internal/recovery"
	"github.com/hugr-lab/solr-pushdown/translate"
)

// handleTranslate serves ActionTranslate.
func (s *Server) handleTranslate(ctx context.Context, logger *slog.Logger, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var req TranslateRequest
	if err := s.decodeBody(action.GetBody(), &req); err != nil {
		logger.Error("Failed to decode translate request", "error", err)
		return err
	}

	mode, err := s.mode(req.Mode)
	if err != nil {
		return err
	}
	if err := auth.Authorize(ctx, s.auth, ActionTranslate, string(mode)); err != nil {
		return err
	}

	res, err := s.translate(logger, mode, &req)
	if err != nil {
		logger.Debug("Translation rejected", "mode", mode, "error", err)
		return toStatus(err)
	}

	var resp TranslateResponse
	if res != nil {
		resp = TranslateResponse{
			Query:            res.Query,
			RequiresMatchAll: res.RequiresMatchAll,
			Translatable:     true,
		}
	}
	logger.Debug("Translated filter",
		"mode", mode,
		"translatable", resp.Translatable,
		"requires_match_all", resp.RequiresMatchAll,
	)

	body, err := msgpack.Encode(resp)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	if req.Compress && s.compressThreshold > 0 && len(body) >= s.compressThreshold {
		body = s.codec.Compress(body)
	}
	return stream.Send(&flight.Result{Body: body})
}

// handleTranslateBatch serves ActionTranslateBatch. Per-filter failures are
// reported in the error column; only undecodable bodies fail the call.
func (s *Server) handleTranslateBatch(ctx context.Context, logger *slog.Logger, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var reqs []TranslateRequest
	if err := s.decodeBody(action.GetBody(), &reqs); err != nil {
		logger.Error("Failed to decode translate_batch request", "error", err)
		return err
	}

	builder := array.NewRecordBuilder(s.allocator, BatchSchema)
	defer builder.Release()
	queries := builder.Field(0).(*array.StringBuilder)
	matchAll := builder.Field(1).(*array.BooleanBuilder)
	errs := builder.Field(2).(*array.StringBuilder)

	compressed := false
	failed := 0
	for i := range reqs {
		req := &reqs[i]
		compressed = compressed || req.Compress

		res, err := s.translateBatchItem(ctx, logger, req)
		switch {
		case err != nil:
			failed++
			queries.AppendNull()
			matchAll.Append(false)
			errs.Append(errorMessage(err))
		case res == nil:
			queries.AppendNull()
			matchAll.Append(false)
			errs.AppendNull()
		default:
			queries.Append(res.Query)
			matchAll.Append(res.RequiresMatchAll)
			errs.AppendNull()
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	opts := []ipc.Option{ipc.WithSchema(BatchSchema), ipc.WithAllocator(s.allocator)}
	if compressed {
		opts = append(opts, ipc.WithZstd())
	}

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, opts...)
	if err := w.Write(record); err != nil {
		return status.Errorf(codes.Internal, "failed to write batch result: %v", err)
	}
	if err := w.Close(); err != nil {
		return status.Errorf(codes.Internal, "failed to close batch result: %v", err)
	}

	logger.Debug("Translated filter batch",
		"filters", len(reqs),
		"failed", failed,
		"result_size", buf.Len(),
	)
	return stream.Send(&flight.Result{Body: buf.Bytes()})
}

func (s *Server) translateBatchItem(ctx context.Context, logger *slog.Logger, req *TranslateRequest) (*translate.Result, error) {
	mode, err := s.mode(req.Mode)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(ctx, s.auth, ActionTranslateBatch, string(mode)); err != nil {
		return nil, err
	}
	return s.translate(logger, mode, req)
}

// translate decodes the pushdown filter of req and renders it.
// A pushdown without filters is not translatable.
func (s *Server) translate(logger *slog.Logger, mode translate.Mode, req *TranslateRequest) (*translate.Result, error) {
	p, err := filter.Parse(req.Filter)
	if err != nil {
		return nil, err
	}
	e := p.Expression()
	if e == nil {
		return nil, nil
	}

	return recovery.Guard(logger, "translate", func() (*translate.Result, error) {
		return translate.Translate(e, mode, p.Fields, expr.AliasMap(req.Aliases))
	})
}

// decodeBody decompresses and decodes an action body into v.
func (s *Server) decodeBody(body []byte, v any) error {
	data, err := s.codec.Decompress(body)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid body: %v", err)
	}
	if err := msgpack.Decode(data, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid body: %v", err)
	}
	return nil
}

// mode resolves the requested translation mode.
func (s *Server) mode(name string) (translate.Mode, error) {
	if name == "" {
		return s.defaultMode, nil
	}
	mode, err := translate.ParseMode(name)
	if err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	return mode, nil
}
