package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/auth"
	"github.com/example/debtdesk/internal/lifecycle"
	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/repository"
	"github.com/example/debtdesk/internal/service"
)

func (s *Server) listCases(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	filter := repository.CaseFilter{
		Status: models.CaseStatus(c.Query("status")),
		Stage:  lifecycle.Stage(c.Query("stage")),
		Limit:  limit,
		Offset: offset,
	}
	cases, err := s.cases.List(c.Request.Context(), caller, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cases)
}

func (s *Server) createCase(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	var payload struct {
		LoanType   string   `json:"loanType" binding:"required"`
		LenderName string   `json:"lenderName"`
		LoanAmount *float64 `json:"loanAmount"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.cases.Create(c.Request.Context(), caller, service.CreateCaseInput{
		LoanType:   payload.LoanType,
		LenderName: payload.LenderName,
		LoanAmount: payload.LoanAmount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getCase(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	found, err := s.cases.Get(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) patchCase(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var payload struct {
		Stage          *lifecycle.Stage   `json:"stage"`
		Status         *models.CaseStatus `json:"status"`
		StagePercent   *int               `json:"stagePercent"`
		OverallPercent *int               `json:"overallPercent"`
		LoanAmount     *float64           `json:"loanAmount"`
		LenderName     *string            `json:"lenderName"`
		SettledAmount  *float64           `json:"settledAmount"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := s.cases.Update(c.Request.Context(), caller, id, service.CasePatch{
		Stage:          payload.Stage,
		Status:         payload.Status,
		StagePercent:   payload.StagePercent,
		OverallPercent: payload.OverallPercent,
		LoanAmount:     payload.LoanAmount,
		LenderName:     payload.LenderName,
		SettledAmount:  payload.SettledAmount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteCase(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.cases.Delete(c.Request.Context(), caller, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
