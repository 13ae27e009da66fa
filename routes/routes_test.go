package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// Requests carry no token, so registered routes answer 401 from the auth
// middleware; only an unregistered path produces 404.
func TestRegisteredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/cart"},
		{http.MethodGet, "/cart"},
		{http.MethodPut, "/cart/ci-123"},
		{http.MethodPatch, "/cart/ci-123"},
		{http.MethodDelete, "/cart/ci-123"},
		{http.MethodPost, "/orders"},
		{http.MethodGet, "/orders"},
		{http.MethodGet, "/orders/ord-123"},
		{http.MethodPut, "/orders/ord-123"},
		{http.MethodPut, "/orders/ord-123/status"},
		{http.MethodPost, "/payments"},
		{http.MethodPost, "/reviews"},
		{http.MethodPost, "/chat"},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(c.method, c.path, nil)
		router.ServeHTTP(w, req)
		if w.Code == http.StatusNotFound {
			t.Errorf("%s %s is not registered (got 404)", c.method, c.path)
		}
	}
}

func TestPublicRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", w.Code)
	}
}
