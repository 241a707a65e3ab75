/*
service.go - The authenticate handler

PURPOSE:
  Front door for sign-in form submissions. Delegates to the provider
  and maps recognized failures to the two user-facing messages; every
  other error is returned unchanged so infrastructure failures are
  never masked as credential problems.
*/
package auth

import (
	"context"
	"errors"
)

// User-facing messages for recognized authentication failures.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."
)

// Service wraps a Provider with the message mapping.
type Service struct {
	provider Provider
}

// NewService creates the authentication service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Authenticate verifies the raw sign-in form. Exactly one of the
// returns is meaningful:
//   - session non-nil: sign-in succeeded; the caller runs its
//     post-login flow (cookie + navigation)
//   - message non-empty: a recognized authentication failure the user
//     can act on
//   - err non-nil: an unrecognized failure, propagated unchanged
func (s *Service) Authenticate(ctx context.Context, form FormData) (*Session, string, error) {
	session, err := s.provider.SignIn(ctx, MethodCredentials, form)
	if err != nil {
		var authErr *Error
		if errors.As(err, &authErr) {
			switch authErr.Type {
			case TypeCredentialsSignin:
				return nil, MsgInvalidCredentials, nil
			default:
				return nil, MsgSomethingWentWrong, nil
			}
		}
		return nil, "", err
	}

	return session, "", nil
}

// Verify validates a session token via the provider.
func (s *Service) Verify(ctx context.Context, token string) (*Claims, error) {
	return s.provider.Verify(ctx, token)
}
