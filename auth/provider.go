/*
Package auth handles credential authentication for the dashboard.

PURPOSE:
  Delegates credential verification to an identity-provider adapter
  and maps recognized provider failures to user-facing messages.
  Unrecognized failures (infrastructure, not credentials) are
  propagated unchanged.

ERROR MODEL:
  Recognized authentication failures are *Error values carrying a
  Type discriminator, returned, never panicked. errors.As is the
  recognition test; anything that is not an *Error is treated as an
  infrastructure failure.

SEE ALSO:
  - credentials.go: Store-backed provider (bcrypt + JWT sessions)
  - service.go: The authenticate handler and its message mapping
*/
package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// FormData is the raw sign-in form: a key-value mapping with "email"
// and "password" entries.
type FormData = url.Values

// =============================================================================
// PROVIDER CONTRACT
// =============================================================================

// MethodCredentials is the sign-in method for email/password forms.
const MethodCredentials = "credentials"

// Session is issued by a provider on successful sign-in. The HTTP
// layer turns Token into a cookie; handlers never inspect it.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID string
	Email  string
}

// Provider verifies credentials and session tokens.
type Provider interface {
	SignIn(ctx context.Context, method string, creds FormData) (*Session, error)
	Verify(ctx context.Context, token string) (*Claims, error)
}

// User is an account record as the store returns it. Password holds
// the bcrypt hash, never the plaintext.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// UserStore loads accounts for the credentials provider. A nil user
// with a nil error means no such account.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// =============================================================================
// TYPED AUTHENTICATION ERROR
// =============================================================================

// ErrorType discriminates recognized authentication failures.
type ErrorType string

const (
	// TypeCredentialsSignin: the supplied credentials are wrong.
	TypeCredentialsSignin ErrorType = "CredentialsSignin"
	// TypeUnsupportedMethod: the sign-in method is not one this
	// provider implements.
	TypeUnsupportedMethod ErrorType = "UnsupportedMethod"
	// TypeSessionInvalid: a session token failed verification.
	TypeSessionInvalid ErrorType = "SessionInvalid"
)

// Error is a recognized authentication failure.
type Error struct {
	Type ErrorType
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Type)
}

func (e *Error) Unwrap() error {
	return e.Err
}
