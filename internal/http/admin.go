package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/auth"
	"github.com/example/debtdesk/internal/models"
)

func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return limit, offset
}

func (s *Server) dashboard(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	stats, err := s.admin.Dashboard(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) listCallbacks(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	limit, offset := pagination(c)
	cbs, err := s.engagement.ListCallbacks(c.Request.Context(), caller, models.CallbackStatus(c.Query("status")), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cbs)
}

func (s *Server) patchCallback(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var payload struct {
		Status models.CallbackStatus `json:"status"`
		Note   string                `json:"note"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cb, err := s.engagement.UpdateCallback(c.Request.Context(), caller, id, payload.Status, payload.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cb)
}

func (s *Server) listReviews(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	limit, offset := pagination(c)
	reviews, err := s.engagement.ListReviews(c.Request.Context(), caller, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) patchReview(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var payload struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rev, err := s.engagement.SetReviewPublished(c.Request.Context(), caller, id, *payload.Published)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}

func (s *Server) listLeads(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	limit, offset := pagination(c)
	leads, err := s.engagement.ListLeads(c.Request.Context(), caller, models.LeadStatus(c.Query("status")), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (s *Server) patchLead(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var payload struct {
		Status models.LeadStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lead, err := s.engagement.UpdateLead(c.Request.Context(), caller, id, payload.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (s *Server) listUsers(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	limit, offset := pagination(c)
	users, err := s.admin.ListUsers(c.Request.Context(), caller, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) patchUser(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var payload struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := s.admin.SetUserRole(c.Request.Context(), caller, id, payload.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) listContacts(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	limit, offset := pagination(c)
	msgs, err := s.engagement.ListContacts(c.Request.Context(), caller, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
