package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentStatus is the review state of an uploaded document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "PENDING"
	DocumentStatusApproved DocumentStatus = "APPROVED"
	DocumentStatusRejected DocumentStatus = "REJECTED"
)

// ValidDocumentStatus reports whether s is a known review state.
func ValidDocumentStatus(s DocumentStatus) bool {
	switch s {
	case DocumentStatusPending, DocumentStatusApproved, DocumentStatusRejected:
		return true
	}
	return false
}

// CaseDocument is a file uploaded against a case. StorageKey is an opaque
// locator into the blob-store collaborator and is never exposed over JSON.
type CaseDocument struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"caseId"`

	Name         string `gorm:"not null" json:"name"`
	OriginalName string `gorm:"not null" json:"originalName"`
	StorageKey   string `gorm:"not null" json:"-"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`

	Status          DocumentStatus `gorm:"not null;default:PENDING" json:"status"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	ReviewedByID    *uuid.UUID     `gorm:"type:uuid" json:"reviewedById,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewedAt,omitempty"`

	UploadedByID uuid.UUID `gorm:"type:uuid;not null" json:"uploadedById"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that populates the primary key.
func (d *CaseDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = DocumentStatusPending
	}
	return nil
}
