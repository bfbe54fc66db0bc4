package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/contactsvc/domain"
)

// CurrentUserKey is the gin context key holding the authenticated *domain.User
const CurrentUserKey = "current_user"

// AuthMW resolves bearer tokens to users
type AuthMW struct {
	authSvc domain.AuthService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authSvc domain.AuthService) *AuthMW {
	return &AuthMW{authSvc: authSvc}
}

// RequireUser rejects requests without a valid access token and stores the user on the context
func (mw *AuthMW) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "Not authenticated")
			return
		}

		user, err := mw.authSvc.ResolveCurrentUser(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, domain.ErrUnauthorized.Error())
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
