package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecotrack/waste-report-api/internal/auth"
	"github.com/ecotrack/waste-report-api/internal/config"
	"github.com/ecotrack/waste-report-api/internal/handler"
	"github.com/ecotrack/waste-report-api/internal/middleware"
	"github.com/ecotrack/waste-report-api/internal/router"
)

// testServer spins up the full route tree against in-memory stores, so
// requests pass through exactly the middleware chain production uses.
type testServer struct {
	e       *echo.Echo
	users   *memUserStore
	reports *memReportStore
	tokens  *auth.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := config.Config{
		Env:          "test",
		JWTSecret:    "test-secret",
		AccessTTLMin: 30,
		BcryptCost:   bcrypt.MinCost,
	}
	users := newMemUserStore()
	reports := newMemReportStore()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTLMin)
	authn := auth.NewAuthenticator(users)

	ah := handler.NewAuthHandler(cfg, users, tokens, authn)
	uh := handler.NewUserHandler(cfg, users)
	rh := handler.NewReportHandler(reports)

	// Quota disabled in tests; the limiter has its own coverage.
	quota := middleware.NewDailyReportLimit(config.ReportLimitConfig{Enabled: false}, nil)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, ah, uh, rh, tokens, users, quota)

	return &testServer{e: e, users: users, reports: reports, tokens: tokens}
}

// do performs a JSON request against the route tree and returns the
// recorder. token may be empty for unauthenticated calls.
func (ts *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

// register creates a user through the real endpoint and returns its id.
func (ts *testServer) register(t *testing.T, email, password, fullName string) uint64 {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"`+email+`","password":"`+password+`","full_name":"`+fullName+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

// login authenticates through the real endpoint and returns the token.
func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}
