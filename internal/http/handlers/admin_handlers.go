package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/http/middleware"
)

// AdminHandlers serves the /admin routes
type AdminHandlers struct {
	userSvc   domain.UserService
	policySvc domain.PolicyService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(userSvc domain.UserService, policySvc domain.PolicyService) *AdminHandlers {
	return &AdminHandlers{userSvc: userSvc, policySvc: policySvc}
}

type policyReq struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandlers) DeleteUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.userSvc.DeleteUser(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ListPolicies handles GET /admin/policies
func (h *AdminHandlers) ListPolicies(c *gin.Context) {
	c.JSON(http.StatusOK, h.policySvc.GetPolicies())
}

// AddPolicy handles POST /admin/policies
func (h *AdminHandlers) AddPolicy(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	if err := h.policySvc.AddPolicy(r.Role, r.Resource, r.Action); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemovePolicy handles DELETE /admin/policies
func (h *AdminHandlers) RemovePolicy(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		bindError(c, err)
		return
	}
	if err := h.policySvc.RemovePolicy(r.Role, r.Resource, r.Action); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
