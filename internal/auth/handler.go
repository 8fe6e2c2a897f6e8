package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lexgate/lexgate/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	validator    *validator.Validate
	secureCookie bool
}

// NewHandler constructs a Handler instance. secureCookie controls the Secure
// attribute on the auth cookie and should be true outside development.
func NewHandler(logger *slog.Logger, service *Service, secureCookie bool) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		validator:    validator.New(),
		secureCookie: secureCookie,
	}
}

// MountRoutes registers the auth routes. The caller wraps /logout with
// RequireAuth; /login must stay reachable without a token.
func (h *Handler) MountRoutes(r chi.Router, mw Middleware, loginLimiter func(http.Handler) http.Handler) {
	if loginLimiter != nil {
		r.With(loginLimiter).Post("/login", h.handleLogin)
	} else {
		r.Post("/login", h.handleLogin)
	}
	r.With(mw.RequireAuth).Post("/logout", h.handleLogout)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

type loginUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "No data provided")
		return
	}

	req.Email = Sanitize(req.Email)
	if req.Email == "" || req.Password == "" {
		h.logger.Warn("login attempt with missing credentials", slog.String("remote", r.RemoteAddr))
		httpx.Error(w, http.StatusBadRequest, "Email and password required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("login attempt with invalid email format", slog.String("remote", r.RemoteAddr))
		httpx.Error(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	now := time.Now().UTC()
	token, user, err := h.service.Login(r.Context(), req.Email, req.Password, now)
	if err != nil {
		// One message and one log line for every credential failure; the
		// cause is not recorded so observers cannot enumerate accounts.
		h.logger.Warn("failed login attempt", slog.String("email", req.Email))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("successful login", slog.String("email", user.Email))

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	httpx.JSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		User: loginUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		httpx.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := h.service.Logout(r.Context(), claims.UserID); err != nil {
		h.logger.Error("logout failed", slog.String("email", claims.Email), slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	h.logger.Info("user logged out", slog.String("email", claims.Email))

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}
