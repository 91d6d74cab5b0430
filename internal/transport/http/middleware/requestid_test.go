package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/estate-listings/internal/requestid"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func newRequestIDEngine() *gin.Engine {
	e := gin.New()
	e.Use(middleware.RequestID(), middleware.Security(true))
	e.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, requestid.FromContext(c.Request.Context()))
	})
	return e
}

func TestRequestID_PreservesIncomingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	newRequestIDEngine().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
	if w.Body.String() != "abc-123" {
		t.Errorf("context id = %q, want abc-123", w.Body.String())
	}
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	w := httptest.NewRecorder()
	newRequestIDEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get("X-Request-ID")
	if len(id) != 36 {
		t.Errorf("X-Request-ID = %q, want a uuid", id)
	}
	if w.Body.String() != id {
		t.Errorf("context id = %q, header id = %q", w.Body.String(), id)
	}
}

func TestRequestID_ReplacesMalformedHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")
	newRequestIDEngine().ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	if id == "bad id with spaces" || len(id) != 36 {
		t.Errorf("X-Request-ID = %q, want a fresh uuid", id)
	}
}

func TestSecurity_NoHSTSWhenDisabled(t *testing.T) {
	e := gin.New()
	e.Use(middleware.Security(false))
	e.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("Strict-Transport-Security = %q, want empty", got)
	}
}

func TestSecurity_SetsHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	newRequestIDEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Strict-Transport-Security": "max-age=63072000; includeSubDomains",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}
