package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupMiddlewareRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	svc := newTestService(t, db)
	createTestAccount(t, db, "reader@example.com", "secret password")

	router := gin.New()
	router.GET("/protected", NewMiddleware(svc).Handler(), func(c *gin.Context) {
		account := CurrentAccount(c)
		c.JSON(http.StatusOK, gin.H{"email": account.Email})
	})
	return router, svc
}

func TestMiddleware_ValidToken(t *testing.T) {
	router, svc := setupMiddlewareRouter(t)

	token, err := svc.Login("reader@example.com", "secret password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestMiddleware_Unauthenticated(t *testing.T) {
	router, _ := setupMiddlewareRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-token"},
		{"no token after scheme", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("WWW-Authenticate = %q, want %q", got, "Bearer")
			}
		})
	}
}

func TestCurrentAccount_OutsideMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if account := CurrentAccount(c); account != nil {
		t.Errorf("CurrentAccount() = %v, want nil", account)
	}
}
