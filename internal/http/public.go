package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/debtdesk/internal/auth"
)

func (s *Server) submitContact(c *gin.Context) {
	var payload struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := s.engagement.SubmitContact(c.Request.Context(), payload.Name, payload.Email, payload.Phone, payload.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (s *Server) requestCallback(c *gin.Context) {
	var payload struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone" binding:"required"`
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cb, err := s.engagement.RequestCallback(c.Request.Context(), payload.Name, payload.Phone, payload.Topic)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cb)
}

func (s *Server) submitLead(c *gin.Context) {
	var payload struct {
		Name      string     `json:"name" binding:"required"`
		Phone     string     `json:"phone" binding:"required"`
		AmountDue *float64   `json:"amountDue"`
		DueDate   *time.Time `json:"dueDate"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lead, err := s.engagement.SubmitLead(c.Request.Context(), payload.Name, payload.Phone, payload.AmountDue, payload.DueDate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (s *Server) publishedReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	reviews, err := s.engagement.PublishedReviews(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) submitReview(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	var payload struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rev, err := s.engagement.SubmitReview(c.Request.Context(), caller, payload.Rating, payload.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}
