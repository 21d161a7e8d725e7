package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/lifecycle"
	"github.com/example/debtdesk/internal/models"
)

const (
	caseEventCap   = 50
	caseMessageCap = 200
)

// CaseFilter narrows and pages a case listing.
type CaseFilter struct {
	UserID *uuid.UUID
	Status models.CaseStatus
	Stage  lifecycle.Stage
	Limit  int
	Offset int
}

// CaseRepository provides persistence access for Case aggregates.
type CaseRepository struct {
	db *gorm.DB
}

// NewCaseRepository constructs a repository using the provided gorm DB.
func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// CreateWithEvent persists a new case and its initial audit event in one
// transaction.
func (r *CaseRepository) CreateWithEvent(ctx context.Context, c *models.Case, event *models.CaseEvent) error {
	return errors.WithStack(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		event.CaseID = c.ID
		return tx.Create(event).Error
	}))
}

// SaveWithEvents persists the modified case and appends the given audit
// events atomically. The audit trail never lags behind the record.
func (r *CaseRepository) SaveWithEvents(ctx context.Context, c *models.Case, events []*models.CaseEvent) error {
	return errors.WithStack(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		for _, event := range events {
			event.CaseID = c.ID
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// FindByID returns the bare case record without relations.
func (r *CaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	var c models.Case
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &c, nil
}

// FindByIDWithRelations returns the case with its documents, messages
// (chronological, capped) and audit events (most recent first, capped).
func (r *CaseRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	var c models.Case
	err := r.db.WithContext(ctx).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc").Limit(caseMessageCap)
		}).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(caseEventCap)
		}).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &c, nil
}

// List returns cases matching the filter, newest first.
func (r *CaseRepository) List(ctx context.Context, filter CaseFilter) ([]models.Case, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(filter.Offset)
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Stage != "" {
		q = q.Where("stage = ?", filter.Stage)
	}
	var cases []models.Case
	err := q.Find(&cases).Error
	return cases, errors.WithStack(err)
}

// Delete hard-deletes the case; documents, messages and events cascade.
func (r *CaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.WithStack(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("case_id = ?", id).Delete(&models.CaseEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", id).Delete(&models.CaseMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", id).Delete(&models.CaseDocument{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Case{}, "id = ?", id).Error
	}))
}

// Touch bumps the case's updated-at after a sub-resource write.
func (r *CaseRepository) Touch(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.Case{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
	return errors.WithStack(err)
}
