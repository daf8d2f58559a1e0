// Package pushdown provides an Apache Arrow Flight service that translates
// query planner filter predicates into search engine query strings.
//
// A filter arrives as the JSON pushdown document DuckDB sends to Airport
// servers. It is decoded into an expression tree (package expr) and rendered
// by package translate in one of two modes:
//
//   - document: Lucene/Solr standard query syntax for filtering documents,
//     e.g. ((price: [ 10 TO * ]) AND -(status:"deleted"))
//   - aggregate: nested function calls for filtering aggregated rows,
//     e.g. and(gteq(sum(price),10),not(eq(status,'deleted')))
//
// Document queries that consist only of negations report RequiresMatchAll;
// they must be conjoined with *:* before use as a standalone filter.
//
// # Quick Start
//
//	config := pushdown.ServerConfig{
//	    CompressThreshold: 4096,
//	}
//	grpcServer := grpc.NewServer(pushdown.ServerOptions(config)...)
//	srv, err := pushdown.NewServer(grpcServer, config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//
//	lis, _ := net.Listen("tcp", ":50051")
//	grpcServer.Serve(lis)
//
// Clients call the "translate" and "translate_batch" Flight actions, most
// easily through flight.Client.
//
// # Server Lifecycle
//
// The package registers Flight service handlers on a user-provided grpc.Server
// but does NOT manage server lifecycle (start/stop/listen). This gives users
// full control over:
//   - TLS configuration via grpc.Creds()
//   - Server options and interceptors
//   - Graceful shutdown via grpcServer.GracefulStop()
//
// # Authentication
//
// Bearer token authentication is supported via the BearerAuth helper:
//
//	auth := pushdown.BearerAuth(func(token string) (string, error) {
//	    if token == "secret-api-key" {
//	        return "user1", nil
//	    }
//	    return "", pushdown.ErrUnauthorized
//	})
//
// An authenticator that also implements ActionAuthorizer can restrict the
// translation modes available to an identity.
//
// # Logging
//
// The package logs with log/slog. ServerConfig.Logger takes precedence;
// otherwise a text logger on stderr is created at ServerConfig.LogLevel.
// Every action log line carries the request trace ID.
package pushdown
