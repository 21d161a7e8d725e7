package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/models"
)

// EngagementService covers the marketing-site intake flows and their admin
// follow-up: callback requests, client reviews, emergency-payment leads
// and contact-form submissions.
type EngagementService struct {
	callbacks CallbackStore
	reviews   ReviewStore
	leads     LeadStore
	contacts  ContactStore
}

// NewEngagementService builds a service with dependencies.
func NewEngagementService(callbacks CallbackStore, reviews ReviewStore, leads LeadStore, contacts ContactStore) *EngagementService {
	return &EngagementService{callbacks: callbacks, reviews: reviews, leads: leads, contacts: contacts}
}

// RequestCallback records a public "call me back" submission.
func (s *EngagementService) RequestCallback(ctx context.Context, name, phone, topic string) (*models.CallbackRequest, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, ErrInvalidInput
	}
	cb := &models.CallbackRequest{Name: name, Phone: phone, Topic: strings.TrimSpace(topic)}
	if err := s.callbacks.Create(ctx, cb); err != nil {
		return nil, err
	}
	return cb, nil
}

// ListCallbacks returns callback requests for the back office.
func (s *EngagementService) ListCallbacks(ctx context.Context, caller *models.User, status models.CallbackStatus, limit, offset int) ([]models.CallbackRequest, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if status != "" && !models.ValidCallbackStatus(status) {
		return nil, ErrInvalidInput
	}
	return s.callbacks.List(ctx, status, limit, offset)
}

// UpdateCallback moves a callback request through the follow-up states.
func (s *EngagementService) UpdateCallback(ctx context.Context, caller *models.User, id uuid.UUID, status models.CallbackStatus, note string) (*models.CallbackRequest, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	cb, err := s.callbacks.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if status != "" {
		if !models.ValidCallbackStatus(status) {
			return nil, ErrInvalidInput
		}
		cb.Status = status
	}
	if note != "" {
		cb.Note = note
	}
	if err := s.callbacks.Save(ctx, cb); err != nil {
		return nil, err
	}
	return cb, nil
}

// SubmitReview records an authenticated client's testimonial, unpublished
// until an administrator approves it.
func (s *EngagementService) SubmitReview(ctx context.Context, caller *models.User, rating int, comment string) (*models.Review, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidInput
	}
	rev := &models.Review{UserID: caller.ID, Rating: rating, Comment: strings.TrimSpace(comment)}
	if err := s.reviews.Create(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// PublishedReviews returns the reviews shown on the marketing site.
func (s *EngagementService) PublishedReviews(ctx context.Context, limit, offset int) ([]models.Review, error) {
	return s.reviews.List(ctx, true, limit, offset)
}

// ListReviews returns every review for the back office.
func (s *EngagementService) ListReviews(ctx context.Context, caller *models.User, limit, offset int) ([]models.Review, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.reviews.List(ctx, false, limit, offset)
}

// SetReviewPublished publishes or unpublishes a review.
func (s *EngagementService) SetReviewPublished(ctx context.Context, caller *models.User, id uuid.UUID, published bool) (*models.Review, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	rev, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	rev.Published = published
	if err := s.reviews.Save(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// SubmitLead records a public emergency-payment enquiry.
func (s *EngagementService) SubmitLead(ctx context.Context, name, phone string, amountDue *float64, dueDate *time.Time) (*models.PaymentLead, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, ErrInvalidInput
	}
	lead := &models.PaymentLead{Name: name, Phone: phone, AmountDue: amountDue, DueDate: dueDate}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// ListLeads returns emergency-payment leads for the back office.
func (s *EngagementService) ListLeads(ctx context.Context, caller *models.User, status models.LeadStatus, limit, offset int) ([]models.PaymentLead, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if status != "" && !models.ValidLeadStatus(status) {
		return nil, ErrInvalidInput
	}
	return s.leads.List(ctx, status, limit, offset)
}

// UpdateLead moves a lead through the follow-up states.
func (s *EngagementService) UpdateLead(ctx context.Context, caller *models.User, id uuid.UUID, status models.LeadStatus) (*models.PaymentLead, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if !models.ValidLeadStatus(status) {
		return nil, ErrInvalidInput
	}
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	lead.Status = status
	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// SubmitContact records a public contact-form submission.
func (s *EngagementService) SubmitContact(ctx context.Context, name, email, phone, message string) (*models.ContactMessage, error) {
	name, email, message = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, ErrInvalidInput
	}
	msg := &models.ContactMessage{Name: name, Email: email, Phone: strings.TrimSpace(phone), Message: message}
	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListContacts returns contact submissions for the back office.
func (s *EngagementService) ListContacts(ctx context.Context, caller *models.User, limit, offset int) ([]models.ContactMessage, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.contacts.List(ctx, limit, offset)
}

func requireAdmin(caller *models.User) error {
	if caller == nil {
		return ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
