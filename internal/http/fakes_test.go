package http

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/auth"
	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/repository"
)

// stubAuth stands in for the session-resolving middleware: whatever user
// is assigned before the request becomes the caller. A nil user means an
// unauthenticated request.
type stubAuth struct {
	user *models.User
}

func (s *stubAuth) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.user == nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing credentials"})
			return
		}
		auth.SetUser(c, s.user)
		c.Next()
	}
}

type memCaseStore struct {
	cases  map[uuid.UUID]models.Case
	events map[uuid.UUID][]models.CaseEvent
}

func newMemCaseStore() *memCaseStore {
	return &memCaseStore{
		cases:  make(map[uuid.UUID]models.Case),
		events: make(map[uuid.UUID][]models.CaseEvent),
	}
}

func (m *memCaseStore) CreateWithEvent(ctx context.Context, c *models.Case, event *models.CaseEvent) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.cases[c.ID] = *c
	event.ID = uuid.New()
	event.CaseID = c.ID
	m.events[c.ID] = append(m.events[c.ID], *event)
	return nil
}

func (m *memCaseStore) SaveWithEvents(ctx context.Context, c *models.Case, events []*models.CaseEvent) error {
	c.UpdatedAt = time.Now().UTC()
	m.cases[c.ID] = *c
	for _, e := range events {
		e.ID = uuid.New()
		e.CaseID = c.ID
		m.events[c.ID] = append(m.events[c.ID], *e)
	}
	return nil
}

func (m *memCaseStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := c
	return &cp, nil
}

func (m *memCaseStore) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Events = append([]models.CaseEvent(nil), m.events[id]...)
	return c, nil
}

func (m *memCaseStore) List(ctx context.Context, filter repository.CaseFilter) ([]models.Case, error) {
	var out []models.Case
	for _, c := range m.cases {
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Stage != "" && c.Stage != filter.Stage {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memCaseStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.cases[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.cases, id)
	delete(m.events, id)
	return nil
}

func (m *memCaseStore) Touch(ctx context.Context, id uuid.UUID) error {
	c, ok := m.cases[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	m.cases[id] = c
	return nil
}

type memEventStore struct {
	events []models.CaseEvent
}

func (m *memEventStore) Append(ctx context.Context, event *models.CaseEvent) error {
	event.ID = uuid.New()
	m.events = append(m.events, *event)
	return nil
}

type memDocumentStore struct {
	docs map[uuid.UUID]models.CaseDocument
}

func newMemDocumentStore() *memDocumentStore {
	return &memDocumentStore{docs: make(map[uuid.UUID]models.CaseDocument)}
}

func (m *memDocumentStore) Create(ctx context.Context, doc *models.CaseDocument) error {
	doc.ID = uuid.New()
	m.docs[doc.ID] = *doc
	return nil
}

func (m *memDocumentStore) Save(ctx context.Context, doc *models.CaseDocument) error {
	m.docs[doc.ID] = *doc
	return nil
}

func (m *memDocumentStore) FindByID(ctx context.Context, caseID, id uuid.UUID) (*models.CaseDocument, error) {
	doc, ok := m.docs[id]
	if !ok || doc.CaseID != caseID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := doc
	return &cp, nil
}

func (m *memDocumentStore) ListByCase(ctx context.Context, caseID uuid.UUID) ([]models.CaseDocument, error) {
	var out []models.CaseDocument
	for _, doc := range m.docs {
		if doc.CaseID == caseID {
			out = append(out, doc)
		}
	}
	return out, nil
}

type memMessageStore struct {
	msgs []models.CaseMessage
}

func (m *memMessageStore) Create(ctx context.Context, msg *models.CaseMessage) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().UTC()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memMessageStore) ListByCase(ctx context.Context, caseID uuid.UUID, limit int) ([]models.CaseMessage, error) {
	var out []models.CaseMessage
	for _, msg := range m.msgs {
		if msg.CaseID == caseID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memMessageStore) MarkRead(ctx context.Context, caseID uuid.UUID, readerRole models.Role, at time.Time) error {
	for i := range m.msgs {
		msg := &m.msgs[i]
		if msg.CaseID == caseID && msg.SenderRole != readerRole && msg.ReadAt == nil {
			t := at
			msg.ReadAt = &t
		}
	}
	return nil
}

type memBlobStore struct {
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (m *memBlobStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.blobs[key] = data
	return int64(len(data)), nil
}

func (m *memBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBlobStore) Delete(ctx context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

type memCallbackStore struct {
	cbs map[uuid.UUID]models.CallbackRequest
}

func newMemCallbackStore() *memCallbackStore {
	return &memCallbackStore{cbs: make(map[uuid.UUID]models.CallbackRequest)}
}

func (m *memCallbackStore) Create(ctx context.Context, cb *models.CallbackRequest) error {
	cb.ID = uuid.New()
	if cb.Status == "" {
		cb.Status = models.CallbackStatusPending
	}
	m.cbs[cb.ID] = *cb
	return nil
}

func (m *memCallbackStore) Save(ctx context.Context, cb *models.CallbackRequest) error {
	m.cbs[cb.ID] = *cb
	return nil
}

func (m *memCallbackStore) FindByID(ctx context.Context, id uuid.UUID) (*models.CallbackRequest, error) {
	cb, ok := m.cbs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := cb
	return &cp, nil
}

func (m *memCallbackStore) List(ctx context.Context, status models.CallbackStatus, limit, offset int) ([]models.CallbackRequest, error) {
	var out []models.CallbackRequest
	for _, cb := range m.cbs {
		if status != "" && cb.Status != status {
			continue
		}
		out = append(out, cb)
	}
	return out, nil
}

type memReviewStore struct {
	reviews map[uuid.UUID]models.Review
}

func newMemReviewStore() *memReviewStore {
	return &memReviewStore{reviews: make(map[uuid.UUID]models.Review)}
}

func (m *memReviewStore) Create(ctx context.Context, rev *models.Review) error {
	rev.ID = uuid.New()
	m.reviews[rev.ID] = *rev
	return nil
}

func (m *memReviewStore) Save(ctx context.Context, rev *models.Review) error {
	m.reviews[rev.ID] = *rev
	return nil
}

func (m *memReviewStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := rev
	return &cp, nil
}

func (m *memReviewStore) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]models.Review, error) {
	var out []models.Review
	for _, rev := range m.reviews {
		if publishedOnly && !rev.Published {
			continue
		}
		out = append(out, rev)
	}
	return out, nil
}

type memLeadStore struct {
	leads map[uuid.UUID]models.PaymentLead
}

func newMemLeadStore() *memLeadStore {
	return &memLeadStore{leads: make(map[uuid.UUID]models.PaymentLead)}
}

func (m *memLeadStore) Create(ctx context.Context, lead *models.PaymentLead) error {
	lead.ID = uuid.New()
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	m.leads[lead.ID] = *lead
	return nil
}

func (m *memLeadStore) Save(ctx context.Context, lead *models.PaymentLead) error {
	m.leads[lead.ID] = *lead
	return nil
}

func (m *memLeadStore) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentLead, error) {
	lead, ok := m.leads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := lead
	return &cp, nil
}

func (m *memLeadStore) List(ctx context.Context, status models.LeadStatus, limit, offset int) ([]models.PaymentLead, error) {
	var out []models.PaymentLead
	for _, lead := range m.leads {
		if status != "" && lead.Status != status {
			continue
		}
		out = append(out, lead)
	}
	return out, nil
}

type memContactStore struct {
	msgs []models.ContactMessage
}

func (m *memContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = uuid.New()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memContactStore) List(ctx context.Context, limit, offset int) ([]models.ContactMessage, error) {
	return append([]models.ContactMessage(nil), m.msgs...), nil
}

type memUserStore struct {
	users map[uuid.UUID]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]models.User)}
}

func (m *memUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := u
	return &cp, nil
}

func (m *memUserStore) Save(ctx context.Context, u *models.User) error {
	m.users[u.ID] = *u
	return nil
}

func (m *memUserStore) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

type memStatsStore struct {
	stats repository.DashboardStats
}

func (m *memStatsStore) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	cp := m.stats
	return &cp, nil
}
