package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/you/contactsvc/domain"
)

// StatusFor maps a domain error to its HTTP status
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": ...}. Internal errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		message = "Internal server error"
	case http.StatusUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, gin.H{"error": message})
}

// respondTokenError is respondError for endpoints that take a token in the
// request itself. A bad token there is a bad request, not a missing login.
func respondTokenError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrTokenInvalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondError(c, err)
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
