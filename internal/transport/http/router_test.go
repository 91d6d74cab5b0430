package httptransport_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/auth"
	httptransport "github.com/ErlanBelekov/estate-listings/internal/transport/http"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/handler"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/middleware"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// The handlers are never reached in these tests: every request is settled
// by routing or by the middleware chain.
func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenIssuer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), 15*time.Minute, time.Hour)
	authUsecase := usecase.NewAuthUsecase(nil, auth.NewArgon2idHasher(), issuer, nil, logger)

	h := httptransport.Handlers{
		Auth:     &handler.AuthHandler{},
		Listing:  &handler.ListingHandler{},
		Property: &handler.PropertyHandler{},
		Photo:    &handler.PhotoHandler{},
		Location: &handler.LocationHandler{},
	}
	return httptransport.NewRouter(logger, h, authUsecase, middleware.NewRateLimiter(10, logger), false), issuer
}

func TestRouter_MutationsRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/listings"},
		{http.MethodPatch, "/api/listings/1"},
		{http.MethodDelete, "/api/listings/1"},
		{http.MethodPost, "/api/listings/1/publish"},
		{http.MethodPost, "/api/listings/1/archive"},
		{http.MethodGet, "/api/listings/my"},
		{http.MethodPost, "/api/properties"},
		{http.MethodPost, "/api/photos"},
		{http.MethodDelete, "/api/photos/1"},
		{http.MethodPost, "/api/locations/cities"},
		{http.MethodPatch, "/api/locations/districts/1"},
		{http.MethodDelete, "/api/locations/microdistricts/1"},
		{http.MethodPost, "/api/locations/categories"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/password"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRouter_RefreshTokenRejectedAsAccess(t *testing.T) {
	r, issuer := newTestRouter(t)
	pair, err := issuer.IssuePair(3)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/listings", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["detail"] != "Given token not valid for any token type" {
		t.Errorf("detail = %q", body["detail"])
	}
}

func TestRouter_RegisterRejectsBadToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID on unmatched route")
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS sent with hsts disabled")
	}
}
