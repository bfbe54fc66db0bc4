package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/you/contactsvc/domain"
)

// CasbinMW gates routes on the caller's role via the policy service
type CasbinMW struct {
	policySvc domain.PolicyService
	audit     domain.AuditLogger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policySvc domain.PolicyService, audit domain.AuditLogger) *CasbinMW {
	return &CasbinMW{policySvc: policySvc, audit: audit}
}

// Enforce returns the casbin authorization middleware. It must run after AuthMW.RequireUser.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthorized(c, domain.ErrUnauthorized.Error())
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.policySvc.CheckPermission(user.Role, path, method)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"role":   user.Role,
				"path":   path,
				"method": method,
			}).Error("authorization check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}

		if !allowed {
			_ = mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, user.ID).
				WithUsername(user.Username).
				WithError(domain.ErrForbidden).
				WithMetadata("path", path).
				WithMetadata("method", method))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			return
		}

		c.Next()
	}
}
