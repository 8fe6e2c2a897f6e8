package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lexgate/lexgate/internal/auth"
	"github.com/lexgate/lexgate/internal/platform/httpx"
)

// Handler wires HTTP endpoints for user data.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers user routes. All of them assume RequireAuth ran.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/profile", h.handleProfile)
}

type profileResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	UserType string `json:"userType"`
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpx.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("profile fetch failed", slog.Int64("user_id", claims.UserID), slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.JSON(w, http.StatusOK, profileResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		UserType: user.UserType,
	})
}
