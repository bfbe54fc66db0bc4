package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/contactsvc/domain"
)

// AuthHandlers handles token issuing HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginForm is the OAuth2 password grant form
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func tokenResponse(result *domain.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "bearer",
	}
}

// Login handles POST /token
func (h *AuthHandlers) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse(result))
}

// Refresh handles POST /refresh. The token may come as a query parameter or in a JSON body.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	token, ok := refreshTokenFrom(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse(result))
}

// Logout handles POST /logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, ok := refreshTokenFrom(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func refreshTokenFrom(c *gin.Context) (string, bool) {
	if token := c.Query("refresh_token"); token != "" {
		return token, true
	}
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return "", false
	}
	return req.RefreshToken, true
}
