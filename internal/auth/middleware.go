package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/madr/internal/entities"
)

// ContextKeyAccount is the gin context key under which the authenticated
// account is stored.
const ContextKeyAccount = "auth_account"

// Middleware authenticates requests carrying a bearer token.
type Middleware struct {
	service *Service
}

// NewMiddleware creates the bearer-token authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// Handler returns a gin handler that resolves the Authorization header to an
// account and aborts with 401 when it cannot.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		account, err := m.service.CurrentAccount(token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextKeyAccount, account)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is missing or not a bearer scheme.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Could not validate credentials",
	})
}

// CurrentAccount retrieves the authenticated account from the gin context.
// Returns nil on routes that did not pass through the middleware.
func CurrentAccount(c *gin.Context) *entities.Account {
	if v, exists := c.Get(ContextKeyAccount); exists {
		if account, ok := v.(*entities.Account); ok {
			return account
		}
	}
	return nil
}
