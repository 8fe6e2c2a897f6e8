package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lexgate/lexgate/internal/platform/httpx"
)

// Middleware wires token verification and role gating for HTTP handlers.
type Middleware struct {
	Logger   *slog.Logger
	Tokens   *TokenService
	Sessions SessionStore
	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (m Middleware) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// RequireAuth rejects requests without a valid, unexpired token backed by a
// live session, and attaches the verified claims to the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := ExtractToken(r)
		if err != nil {
			m.warn("missing authorization token", slog.String("remote", r.RemoteAddr))
			httpx.RespondError(w, err)
			return
		}

		now := m.now()
		claims, err := m.Tokens.Verify(raw, now)
		if err != nil {
			m.warn("token rejected", slog.String("remote", r.RemoteAddr), slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}

		live, err := m.Sessions.IsLive(r.Context(), claims.UserID, now)
		if err != nil {
			m.error("session lookup failed", slog.Any("error", err))
			httpx.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !live {
			m.warn("session expired", slog.String("email", claims.Email))
			httpx.RespondError(w, httpx.ErrSessionExpired)
			return
		}

		if err := m.Sessions.Touch(r.Context(), claims.UserID, now); err != nil {
			m.error("session touch failed", slog.Any("error", err))
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// RequireRole restricts a route to identities whose role is in the
// allow-list. It fails closed: with no authenticated context it answers 401
// rather than assuming anything about the caller.
func (m Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				m.warn("role gate without authenticated context", slog.String("remote", r.RemoteAddr))
				httpx.Error(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				m.warn("unauthorized access attempt",
					slog.String("email", claims.Email),
					slog.String("role", claims.Role),
					slog.String("path", r.URL.Path))
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) warn(msg string, args ...any) {
	if m.Logger != nil {
		m.Logger.Warn(msg, args...)
	}
}

func (m Middleware) error(msg string, args ...any) {
	if m.Logger != nil {
		m.Logger.Error(msg, args...)
	}
}
