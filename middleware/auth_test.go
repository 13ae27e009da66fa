package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"smartbite/config"
	"smartbite/utils"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}

	router := gin.New()
	router.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("user_role")})
	})
	router.GET("/admin-only", AuthMiddleware(), AdminMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return router
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	router := testRouter()

	for _, header := range []string{"", "Bearer ", "Basic abc", "just-a-token"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: got %d, want 401", header, w.Code)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_ValidTokenSetsIdentity(t *testing.T) {
	router := testRouter()

	token, err := utils.GenerateToken("usr-1", "a@b.com", "customer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "usr-1") || !strings.Contains(body, "customer") {
		t.Errorf("identity not propagated: %s", body)
	}
}

func TestAdminMiddleware_RoleGate(t *testing.T) {
	router := testRouter()

	customerToken, _ := utils.GenerateToken("usr-1", "a@b.com", "customer")
	adminToken, _ := utils.GenerateToken("usr-2", "admin@b.com", "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("customer: got %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin: got %d, want 200", w.Code)
	}
}
