package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tickethub/ticketing-api/internal/api/middleware"
	"github.com/tickethub/ticketing-api/internal/auth/password"
	"github.com/tickethub/ticketing-api/internal/auth/token"
	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/core/service"
	"github.com/tickethub/ticketing-api/internal/ratelimit"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := *user
	created.ID = "u" + strconv.Itoa(r.nextID)
	r.users[created.ID] = &created
	out := created
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, domain.ErrUserNotFound
}

// testApp wires the auth routes the way the router does, minus the real
// database: stub user store, real hasher, codec, and limiter.
func newTestApp(t *testing.T, loginLimit int) *echo.Echo {
	t.Helper()

	codec, err := token.NewCodec(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	authService := service.NewAuthService(newStubUserRepo(), password.New(bcrypt.MinCost), codec, zerolog.Nop())
	authHandler := NewAuthHandler(authService)

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = testErrorHandler
	e.Use(middleware.Identity(codec))

	limiter := ratelimit.NewMemory(loginLimit, time.Minute)
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login, middleware.LoginRateLimit(limiter))
	e.POST("/api/auth/refresh", authHandler.Refresh)

	return e
}

// testErrorHandler mirrors the central error handler's mapping for the
// domain errors the auth routes can produce.
func testErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, map[string]string{"error": fmt.Sprintf("%v", he.Message)})
		return
	}
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailTaken):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrTooManyAttempts):
		code = http.StatusTooManyRequests
	}
	_ = c.JSON(code, map[string]string{"error": err.Error()})
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const registerBody = `{"email":"alex@example.com","password":"pw123","confirm_password":"pw123","full_name":"Alex Morgan"}`

func TestAuthRoutes_RegisterThenLogin(t *testing.T) {
	e := newTestApp(t, 100)

	rec := doJSON(e, http.MethodPost, "/api/auth/register", registerBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body)
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"alex@example.com","password":"pw123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected token pair, got %s", rec.Body)
	}

	// The refresh token buys a new access token.
	rec = doJSON(e, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"`+resp.RefreshToken+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d (%s)", rec.Code, rec.Body)
	}
	var refreshed refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode refresh response: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatalf("expected a new access token")
	}

	// An access token on the refresh path is rejected.
	rec = doJSON(e, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"`+resp.AccessToken+`"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh with access token: expected 401, got %d", rec.Code)
	}
}

func TestAuthRoutes_RegisterValidation(t *testing.T) {
	e := newTestApp(t, 100)

	cases := map[string]string{
		"missing email":     `{"password":"pw123456","confirm_password":"pw123456","full_name":"A"}`,
		"missing name":      `{"email":"a@b.co","password":"pw123456","confirm_password":"pw123456"}`,
		"confirm mismatch":  `{"email":"a@b.co","password":"pw123456","confirm_password":"different","full_name":"A"}`,
		"malformed payload": `{"email":`,
	}
	for name, body := range cases {
		rec := doJSON(e, http.MethodPost, "/api/auth/register", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%s)", name, rec.Code, rec.Body)
		}
	}
}

func TestAuthRoutes_RegisterDuplicate(t *testing.T) {
	e := newTestApp(t, 100)

	if rec := doJSON(e, http.MethodPost, "/api/auth/register", registerBody); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPost, "/api/auth/register", registerBody); rec.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", rec.Code)
	}
}

func TestAuthRoutes_LoginUniformFailure(t *testing.T) {
	e := newTestApp(t, 100)
	doJSON(e, http.MethodPost, "/api/auth/register", registerBody)

	wrongPass := doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"alex@example.com","password":"wrong"}`)
	unknown := doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"ghost@example.com","password":"wrong"}`)

	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, unknown.Code)
	}
	// Identical bodies: the response must not reveal whether the email exists.
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", wrongPass.Body, unknown.Body)
	}
}

func TestAuthRoutes_LoginRateLimited(t *testing.T) {
	e := newTestApp(t, 5)
	doJSON(e, http.MethodPost, "/api/auth/register", registerBody)

	body := `{"email":"alex@example.com","password":"wrong"}`
	for i := 1; i <= 5; i++ {
		rec := doJSON(e, http.MethodPost, "/api/auth/login", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, rec.Code)
		}
	}

	// From the 6th attempt on, the limiter answers before any verification.
	for i := 6; i <= 10; i++ {
		rec := doJSON(e, http.MethodPost, "/api/auth/login", body)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("attempt %d: expected 429, got %d", i, rec.Code)
		}
	}
}
