package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/auth"
	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/service"
)

func (s *Server) listDocuments(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	docs, err := s.documents.List(c.Request.Context(), caller, caseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) uploadDocument(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()

	doc, err := s.documents.Upload(c.Request.Context(), caller, caseID, service.UploadInput{
		Name:         c.PostForm("name"),
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Content:      f,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (s *Server) reviewDocument(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	docID, err := uuid.Parse(c.Param("docID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	var payload struct {
		Status models.DocumentStatus `json:"status" binding:"required"`
		Reason string                `json:"reason"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := s.documents.Review(c.Request.Context(), caller, caseID, docID, payload.Status, payload.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) downloadDocument(c *gin.Context) {
	caller, _ := auth.CurrentUser(c)
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	docID, err := uuid.Parse(c.Param("docID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	doc, rc, err := s.documents.Open(c.Request.Context(), caller, caseID, docID)
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.OriginalName),
	}
	contentType := doc.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, doc.Size, contentType, rc, headers)
}
