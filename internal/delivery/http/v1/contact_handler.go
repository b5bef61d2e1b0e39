package v1

import (
	"net/http"
	"strconv"

	"vastorn-backend/internal/delivery/http/response"
	"vastorn-backend/internal/domain"
	"vastorn-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact form and submission admin routes.
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	// Public route - no auth required
	api.POST("/contact", handler.Submit)

	// Admin routes.
	// TODO: these have no authentication, same as the system this
	// replaces. Restrict them at the reverse proxy until an auth layer
	// lands.
	api.GET("/contacts", handler.List)
	api.GET("/contacts/:id", handler.Get)
	api.PATCH("/contacts/:id/status", handler.UpdateStatus)
	api.DELETE("/contacts/:id", handler.Delete)
	api.GET("/stats", handler.Stats)
}

// Submit godoc
// @Summary      Submit Contact Form
// @Description  Validate and persist a contact form submission, then queue the notification emails. Public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.SubmitContactRequest  true  "Contact Form Data"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("All fields are required"))
		return
	}

	meta := domain.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	sub, err := h.contactUC.Submit(c.Request.Context(), &req, meta)
	if err != nil {
		c.Error(err)
		return
	}

	response.OK(c, http.StatusCreated, gin.H{
		"message":      "Thank you for your message! We will get back to you soon.",
		"submissionId": sub.ID.Hex(),
	})
}

// List godoc
// @Summary      List Submissions
// @Description  Page through submissions, newest first, optionally filtered by status.
// @Tags         contact
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(new, read, replied, archived)
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 20)"
// @Success      200     {object}  map[string]interface{}
// @Failure      500     {object}  map[string]interface{}
// @Router       /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := domain.ListFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	subs, pagination, err := h.contactUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"data":       subs,
		"pagination": pagination,
	})
}

// Get godoc
// @Summary      Get Submission
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	sub, err := h.contactUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"data": sub})
}

// UpdateStatus godoc
// @Summary      Update Submission Status
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id      path      string                      true  "Submission ID"
// @Param        status  body      domain.UpdateStatusRequest  true  "New status"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Failure      404     {object}  map[string]interface{}
// @Router       /contacts/{id}/status [patch]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req domain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid status"))
		return
	}

	sub, err := h.contactUC.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"data": sub})
}

// Delete godoc
// @Summary      Delete Submission
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contactUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

// Stats godoc
// @Summary      Submission Statistics
// @Description  Aggregate counts per status plus submissions from the trailing 30 days.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /stats [get]
func (h *ContactHandler) Stats(c *gin.Context) {
	stats, err := h.contactUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"stats": stats})
}
