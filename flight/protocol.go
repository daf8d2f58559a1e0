package flight

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/flight"
)

// Action types served by DoAction.
const (
	// ActionTranslate translates one pushdown filter.
	// Body: msgpack TranslateRequest, optionally zstd-compressed.
	// Result: msgpack TranslateResponse, zstd-compressed when allowed.
	ActionTranslate = "translate"

	// ActionTranslateBatch translates several pushdown filters in one call.
	// Body: msgpack []TranslateRequest, optionally zstd-compressed.
	// Result: Arrow IPC stream with one record shaped by BatchSchema.
	ActionTranslateBatch = "translate_batch"
)

var actionTypes = []*flight.ActionType{
	{
		Type:        ActionTranslate,
		Description: "Translate a DuckDB filter pushdown into a search engine query (msgpack in, msgpack out)",
	},
	{
		Type:        ActionTranslateBatch,
		Description: "Translate a list of DuckDB filter pushdowns (msgpack in, Arrow IPC out)",
	},
}

// TranslateRequest is the body of a translate action.
type TranslateRequest struct {
	// Mode is "document" or "aggregate". Empty uses the server default.
	Mode string `msgpack:"mode"`

	// Filter is the DuckDB Airport filter pushdown JSON.
	Filter []byte `msgpack:"filter"`

	// Aliases maps aggregate output names to the aggregate expressions
	// they stand for. Used in aggregate mode only.
	Aliases map[string]string `msgpack:"aliases,omitempty"`

	// Compress allows the server to zstd-compress the response.
	Compress bool `msgpack:"compress"`
}

// TranslateResponse is the result of a translate action.
type TranslateResponse struct {
	// Query is the rendered predicate. Empty when not translatable.
	Query string `msgpack:"query"`

	// RequiresMatchAll reports that Query must be conjoined with the
	// match-all query to stand on its own.
	RequiresMatchAll bool `msgpack:"requires_match_all"`

	// Translatable is false when the filter cannot be pushed down and the
	// caller must evaluate it itself.
	Translatable bool `msgpack:"translatable"`
}

// BatchSchema is the schema of the translate_batch result record.
// query and error are null for a filter that is not translatable.
var BatchSchema = arrow.NewSchema([]arrow.Field{
	{Name: "query", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "requires_match_all", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "error", Type: arrow.BinaryTypes.String, Nullable: true},
}, nil)
