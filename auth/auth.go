// Package auth provides bearer-token authentication for the translation service.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidAuthHeader is returned when the authorization header is not a Bearer header.
	ErrInvalidAuthHeader = errors.New("authorization header must use Bearer scheme")

	// ErrTokenIsEmpty is returned when no bearer token was sent.
	ErrTokenIsEmpty = errors.New("bearer token is empty")

	// ErrUnauthenticated is returned when the authenticator rejects a token.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Authenticator validates bearer tokens and returns the caller identity.
// Implementations MUST be goroutine-safe.
type Authenticator interface {
	// Authenticate validates a bearer token and returns the identity used
	// for logging and action authorization.
	Authenticate(ctx context.Context, token string) (identity string, err error)
}

// ActionAuthorizer is an optional interface an Authenticator can implement
// to restrict which actions (and translation modes) an identity may call.
// It runs after Authenticate with the identity already in ctx.
type ActionAuthorizer interface {
	// AuthorizeAction returns a non-nil error to reject the call with
	// PermissionDenied. mode is empty for actions that carry no mode.
	AuthorizeAction(ctx context.Context, action, mode string) error
}

// noAuthenticator allows all requests.
type noAuthenticator struct{}

// NoAuth returns an Authenticator that allows all requests.
// Useful for development/testing. DO NOT use in production.
func NoAuth() Authenticator {
	return noAuthenticator{}
}

func (noAuthenticator) Authenticate(context.Context, string) (string, error) {
	return "anonymous", nil
}

// bearerAuthenticator wraps a user-provided validation function.
type bearerAuthenticator struct {
	validateFunc func(token string) (identity string, err error)
}

// BearerAuth creates an Authenticator from a validation function.
//
//	auth := BearerAuth(func(token string) (string, error) {
//	    if token != os.Getenv("PUSHDOWN_TOKEN") {
//	        return "", pushdown.ErrUnauthorized
//	    }
//	    return "planner", nil
//	})
func BearerAuth(validateFunc func(token string) (identity string, err error)) Authenticator {
	return &bearerAuthenticator{validateFunc: validateFunc}
}

func (b *bearerAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	return b.validateFunc(token)
}
