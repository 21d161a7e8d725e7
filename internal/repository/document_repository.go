package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/models"
)

// DocumentRepository provides persistence access for case documents.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository constructs a repository using the provided gorm DB.
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create persists the document record.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.CaseDocument) error {
	return errors.WithStack(r.db.WithContext(ctx).Create(doc).Error)
}

// Save persists the modified document.
func (r *DocumentRepository) Save(ctx context.Context, doc *models.CaseDocument) error {
	return errors.WithStack(r.db.WithContext(ctx).Save(doc).Error)
}

// FindByID returns a document scoped to its parent case.
func (r *DocumentRepository) FindByID(ctx context.Context, caseID, id uuid.UUID) (*models.CaseDocument, error) {
	var doc models.CaseDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ? AND case_id = ?", id, caseID).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &doc, nil
}

// ListByCase returns the case's documents, oldest first.
func (r *DocumentRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]models.CaseDocument, error) {
	var docs []models.CaseDocument
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at asc").
		Find(&docs).Error
	return docs, errors.WithStack(err)
}
