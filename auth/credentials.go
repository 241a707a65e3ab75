/*
credentials.go - Store-backed credentials provider

PURPOSE:
  Verifies email/password against the users table (bcrypt) and issues
  an HS256 session token on success. Credential failures come back as
  *Error{Type: CredentialsSignin}; store failures come back unchanged
  so the caller can tell infrastructure apart from bad passwords.
*/
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL is how long an issued session token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// sessionClaims is the JWT payload for a session token.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// CredentialsProvider implements Provider against a UserStore.
type CredentialsProvider struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
}

// NewCredentialsProvider creates a provider signing sessions with the
// given secret.
func NewCredentialsProvider(users UserStore, secret []byte) *CredentialsProvider {
	return &CredentialsProvider{users: users, secret: secret, ttl: DefaultSessionTTL}
}

// SignIn verifies the submitted credentials and issues a session.
func (p *CredentialsProvider) SignIn(ctx context.Context, method string, creds FormData) (*Session, error) {
	if method != MethodCredentials {
		return nil, &Error{Type: TypeUnsupportedMethod}
	}

	email := creds.Get("email")
	password := creds.Get("password")

	user, err := p.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &Error{Type: TypeCredentialsSignin}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &Error{Type: TypeCredentialsSignin, Err: err}
	}

	expiresAt := time.Now().Add(p.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(p.secret)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     signed,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify parses and validates a session token.
func (p *CredentialsProvider) Verify(ctx context.Context, token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, &Error{Type: TypeSessionInvalid, Err: err}
	}

	claims := parsed.Claims.(*sessionClaims)
	return &Claims{UserID: claims.Subject, Email: claims.Email}, nil
}
