package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/http/middleware"
)

// DefaultMaxAvatarBytes caps avatar uploads when no limit is configured
const DefaultMaxAvatarBytes int64 = 5 << 20

// UserHandlers handles account HTTP requests
type UserHandlers struct {
	userSvc        domain.UserService
	exposeTokens   bool
	maxAvatarBytes int64
}

// UserHandlerOptions tunes UserHandlers
type UserHandlerOptions struct {
	// ExposeTokens echoes reset tokens in responses. Development only.
	ExposeTokens   bool
	MaxAvatarBytes int64
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService, opts UserHandlerOptions) *UserHandlers {
	if opts.MaxAvatarBytes <= 0 {
		opts.MaxAvatarBytes = DefaultMaxAvatarBytes
	}
	return &UserHandlers{
		userSvc:        userSvc,
		exposeTokens:   opts.ExposeTokens,
		maxAvatarBytes: opts.MaxAvatarBytes,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"` // Optional, defaults to USER
}

// PasswordResetRequest asks for a reset token
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// PasswordResetConfirm sets a new password
type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
	}
}

// Register handles POST /users
func (h *UserHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Password, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse(user))
}

// Me handles GET /me
func (h *UserHandlers) Me(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.userSvc.GetProfile(c.Request.Context(), current.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// UploadAvatar handles POST /users/avatar with a multipart "file" field
func (h *UserHandlers) UploadAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAvatarBytes)
	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		bindError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		bindError(c, err)
		return
	}
	defer file.Close()

	url, err := h.userSvc.UpdateAvatar(c.Request.Context(), user, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// VerifyEmail handles GET /verify-email/:token
func (h *UserHandlers) VerifyEmail(c *gin.Context) {
	if err := h.userSvc.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// RequestPasswordReset handles POST /users/request-password-reset
func (h *UserHandlers) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.userSvc.RequestPasswordReset(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"message": "Password reset email sent"}
	if h.exposeTokens {
		resp["reset_token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPassword handles POST /users/reset-password
func (h *UserHandlers) ResetPassword(c *gin.Context) {
	var req PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.userSvc.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
