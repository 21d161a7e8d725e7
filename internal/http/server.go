package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/debtdesk/internal/auth"
	"github.com/example/debtdesk/internal/service"
)

// Server wraps the gin engine and the services needed to handle API
// requests.
type Server struct {
	Engine     *gin.Engine
	cases      *service.CaseService
	documents  *service.DocumentService
	messages   *service.MessageService
	engagement *service.EngagementService
	admin      *service.AdminService
}

// NewServer constructs a new API server and registers routes. authMW is
// the identity-resolving middleware applied to the portal and admin
// groups; tests inject a stub.
func NewServer(
	cases *service.CaseService,
	documents *service.DocumentService,
	messages *service.MessageService,
	engagement *service.EngagementService,
	admin *service.AdminService,
	authMW gin.HandlerFunc,
) *Server {
	router := gin.Default()
	srv := &Server{
		Engine:     router,
		cases:      cases,
		documents:  documents,
		messages:   messages,
		engagement: engagement,
		admin:      admin,
	}
	srv.registerRoutes(authMW)
	return srv
}

func (s *Server) registerRoutes(authMW gin.HandlerFunc) {
	api := s.Engine.Group("/api")

	api.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Public marketing-site endpoints.
	api.POST("/contact", s.submitContact)
	api.POST("/callbacks", s.requestCallback)
	api.POST("/leads", s.submitLead)
	api.GET("/reviews", s.publishedReviews)

	// Client portal.
	portal := api.Group("", authMW)
	portal.GET("/cases", s.listCases)
	portal.POST("/cases", s.createCase)
	portal.GET("/cases/:id", s.getCase)
	portal.PATCH("/cases/:id", s.patchCase)
	portal.DELETE("/cases/:id", s.deleteCase)

	portal.GET("/cases/:id/documents", s.listDocuments)
	portal.POST("/cases/:id/documents", s.uploadDocument)
	portal.PATCH("/cases/:id/documents/:docID", s.reviewDocument)
	portal.GET("/cases/:id/documents/:docID/download", s.downloadDocument)

	portal.GET("/cases/:id/messages", s.listMessages)
	portal.POST("/cases/:id/messages", s.sendMessage)

	portal.POST("/reviews", s.submitReview)

	// Back office.
	back := portal.Group("/admin", auth.AdminOnly())
	back.GET("/stats", s.dashboard)
	back.GET("/callbacks", s.listCallbacks)
	back.PATCH("/callbacks/:id", s.patchCallback)
	back.GET("/reviews", s.listReviews)
	back.PATCH("/reviews/:id", s.patchReview)
	back.GET("/leads", s.listLeads)
	back.PATCH("/leads/:id", s.patchLead)
	back.GET("/users", s.listUsers)
	back.PATCH("/users/:id", s.patchUser)
	back.GET("/contacts", s.listContacts)
}

// writeError maps service sentinels onto HTTP statuses; anything else is
// an upstream failure reported as 500 without leaking detail.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	default:
		log.Printf("internal error on %s %s: %+v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
