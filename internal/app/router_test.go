package app_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lexgate/lexgate/internal/app"
	"github.com/lexgate/lexgate/internal/auth"
	"github.com/lexgate/lexgate/internal/directory"
	"github.com/lexgate/lexgate/internal/observability"
	"github.com/lexgate/lexgate/internal/users"
	_ "github.com/lexgate/lexgate/testing"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &app.Config{
		AppEnv:             "development",
		AppRequestTimeout:  30 * time.Second,
		JWTSecret:          "router-test-secret",
		JWTExpirationHours: 24,
		CORSOrigins:        []string{"http://localhost:3000"},
		RateLimitPerMinute: 600,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dir, err := directory.NewMemoryDirectory(directory.DemoUsers())
	if err != nil {
		t.Fatalf("seed directory: %v", err)
	}
	sessions := auth.NewMemorySessionStore(0)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL())
	service := auth.NewService(dir, tokens, sessions)

	return app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    auth.NewHandler(logger, service, false),
		AuthMiddleware: auth.Middleware{Logger: logger, Tokens: tokens, Sessions: sessions},
		UsersHandler:   users.NewHandler(logger, users.NewService(dir)),
		Metrics:        observability.NewMetrics(),
	})
}

func doLogin(t *testing.T, router http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "healthy" {
		t.Fatalf("unexpected status %q", body.Status)
	}
	if _, err := time.Parse(time.RFC3339, body.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %v", err)
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Permissions-Policy":     "geolocation=(), microphone=(), camera=(), payment=()",
	}
	for name, want := range headers {
		if got := res.Header().Get(name); got != want {
			t.Fatalf("header %s: expected %q, got %q", name, want, got)
		}
	}
	if csp := res.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "default-src 'self'") {
		t.Fatalf("unexpected content security policy %q", csp)
	}
}

func TestLoginLogoutProfileFlow(t *testing.T) {
	router := newTestRouter(t)

	// Protected route without a token.
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Missing authorization token") {
		t.Fatalf("unexpected body %s", res.Body.String())
	}

	// Wrong password and unknown email yield the same generic response.
	wrong := doLogin(t, router, "demo@lawfirm.com", "WrongPass123!")
	unknown := doLogin(t, router, "ghost@lawfirm.com", "Demo@123")
	if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("credential failures must be indistinguishable: %q vs %q", wrong.Body.String(), unknown.Body.String())
	}

	// Successful login.
	res = doLogin(t, router, "demo@lawfirm.com", "Demo@123")
	if res.Code != http.StatusOK {
		t.Fatalf("login failed: %d: %s", res.Code, res.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	// Profile with the fresh token.
	req = httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("profile fetch failed: %d: %s", res.Code, res.Body.String())
	}
	var profile struct {
		Email    string `json:"email"`
		UserType string `json:"userType"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Email != "demo@lawfirm.com" || profile.UserType != "firm" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	// Profile works via the cookie as well.
	req = httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: login.Token})
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("profile via cookie failed: %d", res.Code)
	}

	// Logout, then the still-unexpired token must be rejected.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", res.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Session expired") {
		t.Fatalf("unexpected body %s", res.Body.String())
	}
}

func TestLoginRateLimit(t *testing.T) {
	router := newTestRouter(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = doLogin(t, router, "demo@lawfirm.com", "WrongPass123!")
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on sixth attempt, got %d", last.Code)
	}
	if !strings.Contains(last.Body.String(), "Too many requests") {
		t.Fatalf("unexpected body %s", last.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Generate one measured request first.
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "lexgate_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}
