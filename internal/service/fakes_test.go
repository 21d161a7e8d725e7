package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/repository"
)

// In-memory store fakes. They return copies so a failed save cannot leak
// partial mutations back into the "database".

type fakeCaseStore struct {
	cases   map[uuid.UUID]models.Case
	events  map[uuid.UUID][]models.CaseEvent
	saveErr error
}

func newFakeCaseStore() *fakeCaseStore {
	return &fakeCaseStore{
		cases:  make(map[uuid.UUID]models.Case),
		events: make(map[uuid.UUID][]models.CaseEvent),
	}
}

func (f *fakeCaseStore) CreateWithEvent(ctx context.Context, c *models.Case, event *models.CaseEvent) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	f.cases[c.ID] = *c
	event.ID = uuid.New()
	event.CaseID = c.ID
	event.CreatedAt = now
	f.events[c.ID] = append(f.events[c.ID], *event)
	return nil
}

func (f *fakeCaseStore) SaveWithEvents(ctx context.Context, c *models.Case, events []*models.CaseEvent) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	c.UpdatedAt = time.Now().UTC()
	f.cases[c.ID] = *c
	for _, event := range events {
		event.ID = uuid.New()
		event.CaseID = c.ID
		event.CreatedAt = time.Now().UTC()
		f.events[c.ID] = append(f.events[c.ID], *event)
	}
	return nil
}

func (f *fakeCaseStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c, ok := f.cases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := c
	return &cp, nil
}

func (f *fakeCaseStore) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	events := append([]models.CaseEvent(nil), f.events[id]...)
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
	c.Events = events
	return c, nil
}

func (f *fakeCaseStore) List(ctx context.Context, filter repository.CaseFilter) ([]models.Case, error) {
	var out []models.Case
	for _, c := range f.cases {
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

func (f *fakeCaseStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.cases, id)
	delete(f.events, id)
	return nil
}

func (f *fakeCaseStore) Touch(ctx context.Context, id uuid.UUID) error {
	c, ok := f.cases[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	f.cases[id] = c
	return nil
}

type fakeEventStore struct {
	events []models.CaseEvent
}

func (f *fakeEventStore) Append(ctx context.Context, event *models.CaseEvent) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now().UTC()
	f.events = append(f.events, *event)
	return nil
}

type fakeDocumentStore struct {
	docs map[uuid.UUID]models.CaseDocument
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: make(map[uuid.UUID]models.CaseDocument)}
}

func (f *fakeDocumentStore) Create(ctx context.Context, doc *models.CaseDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = time.Now().UTC()
	f.docs[doc.ID] = *doc
	return nil
}

func (f *fakeDocumentStore) Save(ctx context.Context, doc *models.CaseDocument) error {
	f.docs[doc.ID] = *doc
	return nil
}

func (f *fakeDocumentStore) FindByID(ctx context.Context, caseID, id uuid.UUID) (*models.CaseDocument, error) {
	doc, ok := f.docs[id]
	if !ok || doc.CaseID != caseID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := doc
	return &cp, nil
}

func (f *fakeDocumentStore) ListByCase(ctx context.Context, caseID uuid.UUID) ([]models.CaseDocument, error) {
	var out []models.CaseDocument
	for _, doc := range f.docs {
		if doc.CaseID == caseID {
			out = append(out, doc)
		}
	}
	return out, nil
}

type fakeMessageStore struct {
	msgs []models.CaseMessage
}

func (f *fakeMessageStore) Create(ctx context.Context, msg *models.CaseMessage) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().UTC()
	f.msgs = append(f.msgs, *msg)
	return nil
}

func (f *fakeMessageStore) ListByCase(ctx context.Context, caseID uuid.UUID, limit int) ([]models.CaseMessage, error) {
	var out []models.CaseMessage
	for _, m := range f.msgs {
		if m.CaseID == caseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) MarkRead(ctx context.Context, caseID uuid.UUID, readerRole models.Role, at time.Time) error {
	for i := range f.msgs {
		m := &f.msgs[i]
		if m.CaseID == caseID && m.SenderRole != readerRole && m.ReadAt == nil {
			t := at
			m.ReadAt = &t
		}
	}
	return nil
}

type fakeBlobStore struct {
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	f.blobs[key] = data
	return int64(len(data)), nil
}

func (f *fakeBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	delete(f.blobs, key)
	return nil
}

// test identities

func testClient() *models.User {
	return &models.User{ID: uuid.New(), Email: "client@example.com", Name: "Asha Client", Role: models.RoleUser}
}

func testAdmin() *models.User {
	return &models.User{ID: uuid.New(), Email: "admin@example.com", Name: "Omar Admin", Role: models.RoleAdmin}
}
