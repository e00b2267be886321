package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/madr/internal/auth"
)

// AuthController serves token issuance and refresh.
type AuthController struct {
	service *auth.Service
}

func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

// Token exchanges credentials for an access token. The form follows the
// OAuth2 password grant shape: the username field carries the email.
// POST /auth/token
func (ac *AuthController) Token(c *gin.Context) {
	var form struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	token, err := ac.service.Login(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrIncorrectLogin) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Incorrect email or password"})
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "Bearer"})
}

// Refresh issues a fresh token for the authenticated account, pushing the
// expiry forward without asking for the password again.
// POST /auth/refresh_token
func (ac *AuthController) Refresh(c *gin.Context) {
	account := auth.CurrentAccount(c)

	token, err := ac.service.Refresh(account)
	if err != nil {
		respondInternalError(c, err, "refresh token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "Bearer"})
}
