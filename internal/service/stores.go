package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/repository"
)

// The store interfaces below are what services require of the persistence
// layer; internal/repository provides the gorm-backed implementations and
// tests provide in-memory fakes.

// CaseStore persists Case aggregates.
type CaseStore interface {
	CreateWithEvent(ctx context.Context, c *models.Case, event *models.CaseEvent) error
	SaveWithEvents(ctx context.Context, c *models.Case, events []*models.CaseEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Case, error)
	List(ctx context.Context, filter repository.CaseFilter) ([]models.Case, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Touch(ctx context.Context, id uuid.UUID) error
}

// EventStore appends audit events outside the case-update transaction.
type EventStore interface {
	Append(ctx context.Context, event *models.CaseEvent) error
}

// DocumentStore persists case documents.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.CaseDocument) error
	Save(ctx context.Context, doc *models.CaseDocument) error
	FindByID(ctx context.Context, caseID, id uuid.UUID) (*models.CaseDocument, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]models.CaseDocument, error)
}

// MessageStore persists case chat messages.
type MessageStore interface {
	Create(ctx context.Context, msg *models.CaseMessage) error
	ListByCase(ctx context.Context, caseID uuid.UUID, limit int) ([]models.CaseMessage, error)
	MarkRead(ctx context.Context, caseID uuid.UUID, readerRole models.Role, at time.Time) error
}

// UserStore persists users.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

// CallbackStore persists callback requests.
type CallbackStore interface {
	Create(ctx context.Context, cb *models.CallbackRequest) error
	Save(ctx context.Context, cb *models.CallbackRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CallbackRequest, error)
	List(ctx context.Context, status models.CallbackStatus, limit, offset int) ([]models.CallbackRequest, error)
}

// ReviewStore persists client reviews.
type ReviewStore interface {
	Create(ctx context.Context, rev *models.Review) error
	Save(ctx context.Context, rev *models.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]models.Review, error)
}

// LeadStore persists emergency-payment leads.
type LeadStore interface {
	Create(ctx context.Context, lead *models.PaymentLead) error
	Save(ctx context.Context, lead *models.PaymentLead) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentLead, error)
	List(ctx context.Context, status models.LeadStatus, limit, offset int) ([]models.PaymentLead, error)
}

// ContactStore persists contact-form submissions.
type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]models.ContactMessage, error)
}

// StatsStore runs the admin dashboard aggregation.
type StatsStore interface {
	Dashboard(ctx context.Context) (*repository.DashboardStats, error)
}
