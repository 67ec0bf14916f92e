// Package auth issues and verifies the access tokens carried in the
// accessToken cookie or a bearer header, and tracks revoked tokens.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingSecret means the service was built without a signing secret.
	ErrMissingSecret = errors.New("auth: token signing secret is not configured")
	ErrInvalidToken  = errors.New("auth: invalid token")
	// ErrTokenExpired wraps ErrInvalidToken so callers that only care about
	// validity can test for ErrInvalidToken alone.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
)

type Claims struct {
	AccountID int64 `json:"id"`
	jwtlib.RegisteredClaims
}

// TokenID returns the jti used as the revocation handle.
func (c *Claims) TokenID() string {
	return c.ID
}

func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenService signs HS256 tokens that embed an account id.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Lifetime is how long an issued token stays valid.
func (s *TokenService) Lifetime() time.Duration {
	return s.lifetime
}

func (s *TokenService) Issue(accountID int64) (string, *Claims, error) {
	if len(s.secret) == 0 {
		return "", nil, ErrMissingSecret
	}
	if s.lifetime <= 0 {
		return "", nil, errors.New("auth: token lifetime must be positive")
	}

	now := s.now().UTC()
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

func (s *TokenService) Verify(token string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}

	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)

	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwtlib.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if parsed == nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.AccountID <= 0 || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
