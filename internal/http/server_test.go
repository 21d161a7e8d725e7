package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/debtdesk/internal/lifecycle"
	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/repository"
	"github.com/example/debtdesk/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	srv     *Server
	auth    *stubAuth
	cases   *memCaseStore
	docs    *memDocumentStore
	reviews *memReviewStore
	users   *memUserStore
	stats   *memStatsStore
	client  *models.User
	admin   *models.User
}

func newTestEnv() *testEnv {
	cases := newMemCaseStore()
	docs := newMemDocumentStore()
	blobs := newMemBlobStore()
	events := &memEventStore{}
	msgs := &memMessageStore{}
	reviews := newMemReviewStore()
	users := newMemUserStore()
	stats := &memStatsStore{}

	sa := &stubAuth{}
	srv := NewServer(
		service.NewCaseService(cases, docs, blobs, nil),
		service.NewDocumentService(cases, docs, events, blobs, nil),
		service.NewMessageService(cases, msgs, events, nil),
		service.NewEngagementService(newMemCallbackStore(), reviews, newMemLeadStore(), &memContactStore{}),
		service.NewAdminService(users, stats),
		sa.handler(),
	)
	return &testEnv{
		srv:     srv,
		auth:    sa,
		cases:   cases,
		docs:    docs,
		reviews: reviews,
		users:   users,
		stats:   stats,
		client:  &models.User{ID: uuid.New(), Email: "client@example.com", Role: models.RoleUser},
		admin:   &models.User{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin},
	}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.srv.Engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createCase(t *testing.T) models.Case {
	t.Helper()
	e.auth.user = e.client
	w := e.do(http.MethodPost, "/api/cases", gin.H{"loanType": "Credit Card"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c models.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	return c
}

func TestHealthz(t *testing.T) {
	env := newTestEnv()
	w := env.do(http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCase(t *testing.T) {
	env := newTestEnv()
	c := env.createCase(t)

	assert.Equal(t, lifecycle.StageAssessment, c.Stage)
	assert.Equal(t, 0, c.OverallPercent)
	assert.Equal(t, models.CaseStatusOpen, c.Status)
	assert.NotEmpty(t, c.Events)
}

func TestCreateCaseValidation(t *testing.T) {
	env := newTestEnv()
	env.auth.user = env.client
	w := env.do(http.MethodPost, "/api/cases", gin.H{"lenderName": "HDFC"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortalRequiresAuth(t *testing.T) {
	env := newTestEnv()
	w := env.do(http.MethodGet, "/api/cases", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCase(t *testing.T) {
	env := newTestEnv()
	c := env.createCase(t)

	w := env.do(http.MethodGet, "/api/cases/"+c.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/cases/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/cases/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.auth.user = &models.User{ID: uuid.New(), Email: "other@example.com", Role: models.RoleUser}
	w = env.do(http.MethodGet, "/api/cases/"+c.ID.String(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPatchCaseClientMask(t *testing.T) {
	env := newTestEnv()
	c := env.createCase(t)

	w := env.do(http.MethodPatch, "/api/cases/"+c.ID.String(), gin.H{
		"stage":      "SETTLEMENT",
		"lenderName": "Axis Bank",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, lifecycle.StageAssessment, updated.Stage)
	assert.Equal(t, "Axis Bank", updated.LenderName)
}

func TestPatchCaseAdminStage(t *testing.T) {
	env := newTestEnv()
	c := env.createCase(t)

	env.auth.user = env.admin
	w := env.do(http.MethodPatch, "/api/cases/"+c.ID.String(), gin.H{
		"stage":        "REVIEW",
		"stagePercent": 50,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Case
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, lifecycle.StageReview, updated.Stage)
	assert.Equal(t, 30, updated.OverallPercent)
}

func TestPatchCaseBadStage(t *testing.T) {
	env := newTestEnv()
	c := env.createCase(t)

	env.auth.user = env.admin
	w := env.do(http.MethodPatch, "/api/cases/"+c.ID.String(), gin.H{"stage": "LIMBO"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCase(t *testing.T) {
	env := newTestEnv()
	c := env.createCase(t)

	w := env.do(http.MethodDelete, "/api/cases/"+c.ID.String(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.auth.user = env.admin
	w = env.do(http.MethodDelete, "/api/cases/"+c.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, "/api/cases/"+c.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadAndReviewDocument(t *testing.T) {
	env := newTestEnv()
	c := env.createCase(t)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	part, err := mw.CreateFormFile("file", "statement.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/cases/"+c.ID.String()+"/documents", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.srv.Engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var doc models.CaseDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, models.DocumentStatusPending, doc.Status)

	// client cannot review
	res := env.do(http.MethodPatch, "/api/cases/"+c.ID.String()+"/documents/"+doc.ID.String(), gin.H{"status": "APPROVED"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	env.auth.user = env.admin
	res = env.do(http.MethodPatch, "/api/cases/"+c.ID.String()+"/documents/"+doc.ID.String(), gin.H{"status": "APPROVED"})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var reviewed models.CaseDocument
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &reviewed))
	assert.Equal(t, models.DocumentStatusApproved, reviewed.Status)

	// download round-trips the blob
	env.auth.user = env.client
	res = env.do(http.MethodGet, "/api/cases/"+c.ID.String()+"/documents/"+doc.ID.String()+"/download", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "pdf bytes", res.Body.String())
	assert.Contains(t, res.Header().Get("Content-Disposition"), "statement.pdf")
}

func TestSendMessage(t *testing.T) {
	env := newTestEnv()
	c := env.createCase(t)

	w := env.do(http.MethodPost, "/api/cases/"+c.ID.String()+"/messages", gin.H{"content": "any update?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var msg models.CaseMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, models.RoleUser, msg.SenderRole)

	w = env.do(http.MethodGet, "/api/cases/"+c.ID.String()+"/messages", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicContact(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodPost, "/api/contact", gin.H{
		"name": "Ravi", "email": "ravi@example.com", "message": "please call",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodPost, "/api/contact", gin.H{"name": "Ravi", "email": "not-an-email", "message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicCallbackAndLead(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodPost, "/api/callbacks", gin.H{"name": "Ravi", "phone": "+91 98765 43210"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cb models.CallbackRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cb))
	assert.Equal(t, models.CallbackStatusPending, cb.Status)

	w = env.do(http.MethodPost, "/api/leads", gin.H{"name": "Ravi", "phone": "+91 98765 43210", "amountDue": 25000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var lead models.PaymentLead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))
	assert.Equal(t, models.LeadStatusNew, lead.Status)
}

func TestPublishedReviewsOnly(t *testing.T) {
	env := newTestEnv()
	published := models.Review{ID: uuid.New(), UserID: uuid.New(), Rating: 5, Comment: "settled my loan", Published: true}
	hidden := models.Review{ID: uuid.New(), UserID: uuid.New(), Rating: 1, Comment: "pending moderation"}
	env.reviews.reviews[published.ID] = published
	env.reviews.reviews[hidden.ID] = hidden

	w := env.do(http.MethodGet, "/api/reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.True(t, out[0].Published)
}

func TestSubmitReviewRequiresAuth(t *testing.T) {
	env := newTestEnv()
	w := env.do(http.MethodPost, "/api/reviews", gin.H{"rating": 5, "comment": "great"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.auth.user = env.client
	w = env.do(http.MethodPost, "/api/reviews", gin.H{"rating": 9, "comment": "too good"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/reviews", gin.H{"rating": 4, "comment": "helped a lot"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAdminGroupGuard(t *testing.T) {
	env := newTestEnv()

	env.auth.user = env.client
	w := env.do(http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.auth.user = env.admin
	env.stats.stats = repository.DashboardStats{TotalCases: 3, OpenCases: 2}
	w = env.do(http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"totalCases":3`))
}

func TestAdminPatchUserRole(t *testing.T) {
	env := newTestEnv()
	target := models.User{ID: uuid.New(), Email: "newadmin@example.com", Role: models.RoleUser}
	env.users.users[target.ID] = target

	env.auth.user = env.admin
	w := env.do(http.MethodPatch, "/api/admin/users/"+target.ID.String(), gin.H{"role": "ADMIN"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.RoleAdmin, updated.Role)
}
