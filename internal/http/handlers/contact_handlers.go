package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/http/middleware"
)

const dateLayout = "2006-01-02"

// ContactHandlers handles address book HTTP requests. Every call is scoped to the caller.
type ContactHandlers struct {
	contactSvc domain.ContactService
}

// NewContactHandlers creates new contact handlers
func NewContactHandlers(contactSvc domain.ContactService) *ContactHandlers {
	return &ContactHandlers{contactSvc: contactSvc}
}

// ContactRequest is the body of create and update
type ContactRequest struct {
	FirstName string  `json:"first_name" binding:"required,max=100"`
	LastName  string  `json:"last_name" binding:"required,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone" binding:"required,max=30"`
	Birthday  string  `json:"birthday" binding:"required,datetime=2006-01-02"`
	ExtraData *string `json:"extra_data"`
}

func (r ContactRequest) fields() (domain.ContactFields, error) {
	birthday, err := time.Parse(dateLayout, r.Birthday)
	if err != nil {
		return domain.ContactFields{}, domain.ErrInvalidInput
	}
	return domain.ContactFields{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Birthday:  birthday,
		ExtraData: r.ExtraData,
	}, nil
}

// ContactResponse is the wire form of a contact
type ContactResponse struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Birthday  string  `json:"birthday"`
	ExtraData *string `json:"extra_data"`
}

func contactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday.Format(dateLayout),
		ExtraData: c.ExtraData,
	}
}

func contactList(contacts []domain.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, contactResponse(&contacts[i]))
	}
	return out
}

// ListQuery pages through contacts
type ListQuery struct {
	Skip  int `form:"skip" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// SearchQuery filters contacts; empty fields are ignored
type SearchQuery struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
}

// Create handles POST /contacts/
func (h *ContactHandlers) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	fields, err := req.fields()
	if err != nil {
		respondError(c, err)
		return
	}

	contact, err := h.contactSvc.Create(c.Request.Context(), owner, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contactResponse(contact))
}

// List handles GET /contacts/
func (h *ContactHandlers) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	contacts, err := h.contactSvc.List(c.Request.Context(), owner, q.Skip, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contactList(contacts))
}

// Get handles GET /contacts/:id
func (h *ContactHandlers) Get(c *gin.Context) {
	owner, id, ok := ownerAndContactID(c)
	if !ok {
		return
	}

	contact, err := h.contactSvc.Get(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contactResponse(contact))
}

// Update handles PUT /contacts/:id
func (h *ContactHandlers) Update(c *gin.Context) {
	owner, id, ok := ownerAndContactID(c)
	if !ok {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	fields, err := req.fields()
	if err != nil {
		respondError(c, err)
		return
	}

	contact, err := h.contactSvc.Update(c.Request.Context(), owner, id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contactResponse(contact))
}

// Delete handles DELETE /contacts/:id and returns the removed contact
func (h *ContactHandlers) Delete(c *gin.Context) {
	owner, id, ok := ownerAndContactID(c)
	if !ok {
		return
	}

	contact, err := h.contactSvc.Delete(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contactResponse(contact))
}

// Search handles GET /contacts/search/
func (h *ContactHandlers) Search(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	contacts, err := h.contactSvc.Search(c.Request.Context(), owner, domain.ContactFilter{
		FirstName: q.FirstName,
		LastName:  q.LastName,
		Email:     q.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contactList(contacts))
}

// UpcomingBirthdays handles GET /contacts/upcoming_birthdays/
func (h *ContactHandlers) UpcomingBirthdays(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	contacts, err := h.contactSvc.UpcomingBirthdays(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contactList(contacts))
}

func ownerID(c *gin.Context) (uint, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return 0, false
	}
	return user.ID, true
}

func ownerAndContactID(c *gin.Context) (uint, uint, bool) {
	owner, ok := ownerID(c)
	if !ok {
		return 0, 0, false
	}
	id, ok := pathID(c)
	if !ok {
		return 0, 0, false
	}
	return owner, id, true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
