package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/handler"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/middleware"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register       func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	login          func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	refresh        func(ctx context.Context, token string) (string, error)
	changePassword func(ctx context.Context, userID int64, oldPassword, newPassword string) error
}

func (f *fakeAuthUsecase) Register(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	return f.register(ctx, email, password)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) Refresh(ctx context.Context, token string) (string, error) {
	return f.refresh(ctx, token)
}

func (f *fakeAuthUsecase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	return f.changePassword(ctx, userID, oldPassword, newPassword)
}

// tokenResolver maps the token "good" to user 7 and "other" to user 8.
type tokenResolver struct{}

func (tokenResolver) GetCurrentUser(_ context.Context, token string) (*domain.User, error) {
	switch token {
	case "good":
		return &domain.User{ID: 7, Email: "owner@example.kz", IsActive: true}, nil
	case "other":
		return &domain.User{ID: 8, Email: "other@example.kz", IsActive: true}, nil
	}
	return nil, domain.ErrTokenMalformed
}

func okResult() *usecase.AuthResult {
	return &usecase.AuthResult{
		User:   &domain.User{ID: 7, Email: "owner@example.kz"},
		Tokens: domain.TokenPair{Access: "acc", Refresh: "ref"},
	}
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	h := handler.NewAuthHandler(uc, discard)
	authMW := middleware.Auth(tokenResolver{}, discard)

	r := gin.New()
	r.POST("/auth/register", middleware.AnonymousOnly(tokenResolver{}, discard), h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/token/refresh", h.Refresh)
	r.GET("/auth/me", authMW, h.Me)
	r.POST("/auth/password", authMW, h.ChangePassword)
	return r
}

func doJSON(e *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var body map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode field errors from %q: %v", w.Body.String(), err)
	}
	return body
}

// ---- Register ----

func TestRegister_Success_ReturnsTokens(t *testing.T) {
	var gotEmail string
	uc := &fakeAuthUsecase{register: func(_ context.Context, email, _ string) (*usecase.AuthResult, error) {
		gotEmail = email
		return okResult(), nil
	}}

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/register",
		`{"email":"  Owner@Example.kz ","password":"longenough"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", w.Code, w.Body.String())
	}
	if gotEmail != "  Owner@Example.kz " {
		t.Errorf("usecase email = %q, normalisation belongs to the usecase", gotEmail)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"id", "email", "access", "refresh"} {
		if _, ok := body[k]; !ok {
			t.Errorf("response missing %q: %v", k, body)
		}
	}
}

func TestRegister_MissingFields_Returns400PerField(t *testing.T) {
	w := doJSON(newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register", `{}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	fields := fieldErrors(t, w)
	if len(fields["email"]) == 0 || len(fields["password"]) == 0 {
		t.Errorf("fields = %v, want email and password errors", fields)
	}
}

func TestRegister_InvalidEmail_Returns400(t *testing.T) {
	w := doJSON(newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register",
		`{"email":"not-an-email","password":"longenough"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(fieldErrors(t, w)["email"]) == 0 {
		t.Error("want an email field error")
	}
}

func TestRegister_EmailLongerThanColumn_Returns400(t *testing.T) {
	called := false
	uc := &fakeAuthUsecase{register: func(context.Context, string, string) (*usecase.AuthResult, error) {
		called = true
		return okResult(), nil
	}}
	// 64 + 1 + 60 + 1 + 60 + 3 = 189 characters, each label within DNS limits.
	addr := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 60) + "." + strings.Repeat("c", 60) + ".kz"

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/register",
		`{"email":"`+addr+`","password":"longenough"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", w.Code, w.Body.String())
	}
	if got := fieldErrors(t, w)["email"]; len(got) != 1 || !strings.Contains(got[0], "150") {
		t.Errorf("email errors = %v", got)
	}
	if called {
		t.Error("usecase reached with an over-long email")
	}
}

func TestRegister_DuplicateEmail_Returns400OnEmail(t *testing.T) {
	uc := &fakeAuthUsecase{register: func(context.Context, string, string) (*usecase.AuthResult, error) {
		return nil, domain.NewFieldError("email", "User with this email already exists.").
			WithCause(domain.ErrEmailAlreadyExists)
	}}

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/register",
		`{"email":"owner@example.kz","password":"longenough"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := fieldErrors(t, w)["email"]; len(got) != 1 {
		t.Errorf("email errors = %v", got)
	}
}

func TestRegister_Authenticated_Returns403(t *testing.T) {
	w := doJSON(newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register",
		`{"email":"owner@example.kz","password":"longenough"}`, "good")

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRegister_InvalidToken_Returns401(t *testing.T) {
	w := doJSON(newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register",
		`{"email":"owner@example.kz","password":"longenough"}`, "garbage")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRegister_UsecaseFailure_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{register: func(context.Context, string, string) (*usecase.AuthResult, error) {
		return nil, errors.New("db down")
	}}

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/register",
		`{"email":"owner@example.kz","password":"longenough"}`, "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "db down") {
		t.Error("internal error leaked to the client")
	}
}

// ---- Login ----

func TestLogin_WrongPassword_Returns400OnPassword(t *testing.T) {
	uc := &fakeAuthUsecase{login: func(context.Context, string, string) (*usecase.AuthResult, error) {
		return nil, domain.NewFieldError("password", "Invalid password.").WithCause(domain.ErrInvalidPassword)
	}}

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/login",
		`{"email":"owner@example.kz","password":"wrong-password"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(fieldErrors(t, w)["password"]) == 0 {
		t.Error("want a password field error")
	}
}

func TestLogin_Success(t *testing.T) {
	uc := &fakeAuthUsecase{login: func(context.Context, string, string) (*usecase.AuthResult, error) {
		return okResult(), nil
	}}

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/login",
		`{"email":"owner@example.kz","password":"longenough"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"access":"acc"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

// ---- Me ----

func TestMe_ReturnsCurrentUser(t *testing.T) {
	w := doJSON(newAuthEngine(&fakeAuthUsecase{}), http.MethodGet, "/auth/me", "", "good")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != `{"id":7,"email":"owner@example.kz"}` {
		t.Errorf("body = %s", got)
	}
}

func TestMe_NoToken_Returns401(t *testing.T) {
	w := doJSON(newAuthEngine(&fakeAuthUsecase{}), http.MethodGet, "/auth/me", "", "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// ---- Refresh ----

func TestRefresh_WrongTokenType_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{refresh: func(context.Context, string) (string, error) {
		return "", domain.ErrTokenWrongType
	}}

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/token/refresh", `{"refresh":"an-access-token"}`, "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRefresh_Success(t *testing.T) {
	uc := &fakeAuthUsecase{refresh: func(_ context.Context, token string) (string, error) {
		if token != "ref" {
			t.Errorf("token = %q, want ref", token)
		}
		return "new-access", nil
	}}

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/token/refresh", `{"refresh":"ref"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != `{"access":"new-access"}` {
		t.Errorf("body = %s", got)
	}
}

// ---- ChangePassword ----

func TestChangePassword_PassesAuthenticatedUser(t *testing.T) {
	var gotUser int64
	uc := &fakeAuthUsecase{changePassword: func(_ context.Context, userID int64, _, _ string) error {
		gotUser = userID
		return nil
	}}

	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/password",
		`{"old_password":"longenough","new_password":"evenlonger"}`, "good")

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if gotUser != 7 {
		t.Errorf("user id = %d, want 7", gotUser)
	}
}
