package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lexgate/lexgate/internal/directory"
	"github.com/lexgate/lexgate/internal/platform/httpx"
)

// TokenCookieName is the cookie carrying the bearer token for browser
// clients that do not set the Authorization header.
const TokenCookieName = "lexgate_token"

// Claims is the signed payload embedded in every bearer token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed bearer tokens. The signing
// secret is process-wide configuration, loaded once and never rotated
// mid-process.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// TTL exposes the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given user with iat = now and exp = now + ttl.
func (s *TokenService) Issue(user *directory.User, now time.Time) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and checks a token against the given time. Expiry is an
// expected outcome and maps to ErrTokenExpired; malformed structure, bad
// signatures, and unsupported algorithms all map to ErrTokenInvalid.
func (s *TokenService) Verify(raw string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, httpx.ErrTokenExpired
		}
		return nil, httpx.ErrTokenInvalid
	}
	return claims, nil
}

// ExtractToken pulls the raw bearer token from the Authorization header,
// falling back to the auth cookie. The missing case is reported before any
// parsing is attempted.
func ExtractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header != "" {
		return strings.TrimPrefix(header, "Bearer "), nil
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", httpx.ErrTokenMissing
}
