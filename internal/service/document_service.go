package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/mq"
	"github.com/example/debtdesk/internal/storage"
)

// DocumentService handles uploads and the admin review flow for case
// documents.
type DocumentService struct {
	cases  CaseStore
	docs   DocumentStore
	events EventStore
	blobs  storage.BlobStore
	mq     mq.Publisher
}

// NewDocumentService builds a service with dependencies.
func NewDocumentService(cases CaseStore, docs DocumentStore, events EventStore, blobs storage.BlobStore, publisher mq.Publisher) *DocumentService {
	return &DocumentService{cases: cases, docs: docs, events: events, blobs: blobs, mq: publisher}
}

// caseForAccess loads the case and enforces the owner-or-admin rule shared
// by every sub-resource operation.
func caseForAccess(ctx context.Context, cases CaseStore, caller *models.User, caseID uuid.UUID) (*models.Case, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	c, err := cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !caller.IsAdmin() && c.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return c, nil
}

// UploadInput carries the multipart upload fields.
type UploadInput struct {
	Name         string
	OriginalName string
	MimeType     string
	Content      io.Reader
}

// Upload stores the blob, records the document in PENDING state and marks
// the upload on the case's audit trail.
func (s *DocumentService) Upload(ctx context.Context, caller *models.User, caseID uuid.UUID, input UploadInput) (*models.CaseDocument, error) {
	if _, err := caseForAccess(ctx, s.cases, caller, caseID); err != nil {
		return nil, err
	}
	original := strings.TrimSpace(input.OriginalName)
	if original == "" || input.Content == nil {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = original
	}

	key := uuid.NewString() + filepath.Ext(original)
	size, err := s.blobs.Put(ctx, key, input.Content)
	if err != nil {
		return nil, err
	}

	doc := &models.CaseDocument{
		CaseID:       caseID,
		Name:         name,
		OriginalName: original,
		StorageKey:   key,
		MimeType:     input.MimeType,
		Size:         size,
		Status:       models.DocumentStatusPending,
		UploadedByID: caller.ID,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	event := &models.CaseEvent{
		CaseID:      caseID,
		Type:        models.EventDocument,
		Message:     fmt.Sprintf("Document %q uploaded and awaiting review.", name),
		CreatedByID: &caller.ID,
	}
	if err := s.events.Append(ctx, event); err != nil {
		log.Printf("append document event: %v", err)
	}
	if err := s.cases.Touch(ctx, caseID); err != nil {
		log.Printf("touch case %s: %v", caseID, err)
	}
	return doc, nil
}

// List returns the case's documents for the owner or an administrator.
func (s *DocumentService) List(ctx context.Context, caller *models.User, caseID uuid.UUID) ([]models.CaseDocument, error) {
	if _, err := caseForAccess(ctx, s.cases, caller, caseID); err != nil {
		return nil, err
	}
	return s.docs.ListByCase(ctx, caseID)
}

// Open returns the document record and a reader over its blob.
func (s *DocumentService) Open(ctx context.Context, caller *models.User, caseID, docID uuid.UUID) (*models.CaseDocument, io.ReadCloser, error) {
	if _, err := caseForAccess(ctx, s.cases, caller, caseID); err != nil {
		return nil, nil, err
	}
	doc, err := s.docs.FindByID(ctx, caseID, docID)
	if err != nil {
		return nil, nil, notFoundOr(err)
	}
	rc, err := s.blobs.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// Review records an administrator's verdict on a document. Rejection
// requires a reason; approval clears any previous one.
func (s *DocumentService) Review(ctx context.Context, caller *models.User, caseID, docID uuid.UUID, status models.DocumentStatus, reason string) (*models.CaseDocument, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if _, err := s.cases.FindByID(ctx, caseID); err != nil {
		return nil, notFoundOr(err)
	}
	doc, err := s.docs.FindByID(ctx, caseID, docID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	reason = strings.TrimSpace(reason)
	var message string
	switch status {
	case models.DocumentStatusApproved:
		doc.Status = models.DocumentStatusApproved
		doc.RejectionReason = ""
		message = fmt.Sprintf("Document %q was approved.", doc.Name)
	case models.DocumentStatusRejected:
		if reason == "" {
			return nil, ErrInvalidInput
		}
		doc.Status = models.DocumentStatusRejected
		doc.RejectionReason = reason
		message = fmt.Sprintf("Document %q was rejected: %s", doc.Name, reason)
	default:
		return nil, ErrInvalidInput
	}

	now := timeNow()
	doc.ReviewedByID = &caller.ID
	doc.ReviewedAt = &now
	if err := s.docs.Save(ctx, doc); err != nil {
		return nil, err
	}
	event := &models.CaseEvent{
		CaseID:      caseID,
		Type:        models.EventDocument,
		Message:     message,
		CreatedByID: &caller.ID,
	}
	if err := s.events.Append(ctx, event); err != nil {
		log.Printf("append document event: %v", err)
	}
	if err := s.cases.Touch(ctx, caseID); err != nil {
		log.Printf("touch case %s: %v", caseID, err)
	}
	if s.mq != nil {
		_ = s.mq.Publish(ctx, "case.document_reviewed", map[string]any{
			"caseId":     caseID.String(),
			"documentId": doc.ID.String(),
			"status":     doc.Status,
		})
	}
	return doc, nil
}
