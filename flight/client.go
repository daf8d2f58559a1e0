package flight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/hugr-lab/solr-pushdown/internal/compress"
	"github.com/hugr-lab/solr-pushdown/internal/msgpack"
)

// BatchResult is one row of a translate_batch result.
type BatchResult struct {
	Query            string
	RequiresMatchAll bool
	Translatable     bool

	// Error is the per-filter failure message, empty on success.
	Error string
}

// Client calls the translation actions of a Server.
type Client struct {
	client flight.FlightServiceClient
	codec  *compress.Codec
}

// NewClient creates a client on an established connection.
// Call Close to release the codec; the connection stays open.
func NewClient(conn grpc.ClientConnInterface) (*Client, error) {
	codec, err := compress.NewCodec(0)
	if err != nil {
		return nil, fmt.Errorf("flight: %w", err)
	}
	return &Client{client: flight.NewFlightServiceClient(conn), codec: codec}, nil
}

// Close releases compression resources.
func (c *Client) Close() error {
	return c.codec.Close()
}

// Translate runs the translate action.
func (c *Client) Translate(ctx context.Context, req *TranslateRequest) (*TranslateResponse, error) {
	body, err := msgpack.Encode(req)
	if err != nil {
		return nil, err
	}
	result, err := c.doAction(ctx, ActionTranslate, body)
	if err != nil {
		return nil, err
	}
	data, err := c.codec.Decompress(result)
	if err != nil {
		return nil, err
	}

	var resp TranslateResponse
	if err := msgpack.Decode(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TranslateBatch runs the translate_batch action. Results are in request order.
func (c *Client) TranslateBatch(ctx context.Context, reqs []TranslateRequest) ([]BatchResult, error) {
	if reqs == nil {
		reqs = []TranslateRequest{}
	}
	body, err := msgpack.Encode(reqs)
	if err != nil {
		return nil, err
	}
	result, err := c.doAction(ctx, ActionTranslateBatch, body)
	if err != nil {
		return nil, err
	}

	rdr, err := ipc.NewReader(bytes.NewReader(result), ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("invalid batch result: %w", err)
	}
	defer rdr.Release()

	out := make([]BatchResult, 0, len(reqs))
	for rdr.Next() {
		rec := rdr.Record()
		queries := rec.Column(0).(*array.String)
		matchAll := rec.Column(1).(*array.Boolean)
		errs := rec.Column(2).(*array.String)
		for i := 0; i < int(rec.NumRows()); i++ {
			r := BatchResult{RequiresMatchAll: matchAll.Value(i)}
			if queries.IsValid(i) {
				r.Query = queries.Value(i)
				r.Translatable = true
			}
			if errs.IsValid(i) {
				r.Error = errs.Value(i)
			}
			out = append(out, r)
		}
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("invalid batch result: %w", err)
	}
	return out, nil
}

// doAction calls an action and returns the body of its single result.
func (c *Client) doAction(ctx context.Context, actionType string, body []byte) ([]byte, error) {
	stream, err := c.client.DoAction(ctx, &flight.Action{Type: actionType, Body: body})
	if err != nil {
		return nil, err
	}

	result, err := stream.Recv()
	if err != nil {
		return nil, err
	}
	// Drain until the server closes the stream.
	for {
		if _, err := stream.Recv(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}
	return result.GetBody(), nil
}
