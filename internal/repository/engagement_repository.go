package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/models"
)

// CallbackRepository provides persistence access for callback requests.
type CallbackRepository struct {
	db *gorm.DB
}

// NewCallbackRepository constructs a repository using the provided gorm DB.
func NewCallbackRepository(db *gorm.DB) *CallbackRepository {
	return &CallbackRepository{db: db}
}

// Create persists the callback request.
func (r *CallbackRepository) Create(ctx context.Context, cb *models.CallbackRequest) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(cb).Error)
}

// Save persists the modified callback request.
func (r *CallbackRepository) Save(ctx context.Context, cb *models.CallbackRequest) error {
	return errors.WithStack(r.db.WithContext(ctx).Save(cb).Error)
}

// FindByID returns the callback request by id.
func (r *CallbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CallbackRequest, error) {
	var cb models.CallbackRequest
	if err := r.db.WithContext(ctx).First(&cb, "id = ?", id).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &cb, nil
}

// List returns callback requests newest first, optionally by status.
func (r *CallbackRepository) List(ctx context.Context, status models.CallbackStatus, limit, offset int) ([]models.CallbackRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var cbs []models.CallbackRequest
	err := q.Find(&cbs).Error
	return cbs, errors.WithStack(err)
}

// ReviewRepository provides persistence access for client reviews.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository constructs a repository using the provided gorm DB.
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create persists the review.
func (r *ReviewRepository) Create(ctx context.Context, rev *models.Review) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(rev).Error)
}

// Save persists the modified review.
func (r *ReviewRepository) Save(ctx context.Context, rev *models.Review) error {
	return errors.WithStack(r.db.WithContext(ctx).Save(rev).Error)
}

// FindByID returns the review by id.
func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var rev models.Review
	if err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &rev, nil
}

// List returns reviews newest first. When publishedOnly is set, drafts and
// unpublished reviews are excluded.
func (r *ReviewRepository) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var revs []models.Review
	err := q.Find(&revs).Error
	return revs, errors.WithStack(err)
}

// LeadRepository provides persistence access for emergency-payment leads.
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository constructs a repository using the provided gorm DB.
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create persists the lead.
func (r *LeadRepository) Create(ctx context.Context, lead *models.PaymentLead) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(lead).Error)
}

// Save persists the modified lead.
func (r *LeadRepository) Save(ctx context.Context, lead *models.PaymentLead) error {
	return errors.WithStack(r.db.WithContext(ctx).Save(lead).Error)
}

// FindByID returns the lead by id.
func (r *LeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentLead, error) {
	var lead models.PaymentLead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &lead, nil
}

// List returns leads newest first, optionally by status.
func (r *LeadRepository) List(ctx context.Context, status models.LeadStatus, limit, offset int) ([]models.PaymentLead, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var leads []models.PaymentLead
	err := q.Find(&leads).Error
	return leads, errors.WithStack(err)
}

// ContactRepository provides persistence access for contact submissions.
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs a repository using the provided gorm DB.
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create persists the contact message.
func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(msg).Error)
}

// List returns contact messages newest first.
func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]models.ContactMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var msgs []models.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	return msgs, errors.WithStack(err)
}
