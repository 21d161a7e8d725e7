package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/lifecycle"
	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/mq"
	"github.com/example/debtdesk/internal/repository"
	"github.com/example/debtdesk/internal/storage"
)

// CaseService owns every mutation of a case's stage, status and settlement
// fields and is the only writer of STAGE_CHANGE / STATUS_CHANGE audit
// events.
type CaseService struct {
	cases CaseStore
	docs  DocumentStore
	blobs storage.BlobStore
	mq    mq.Publisher
}

// NewCaseService builds a service with dependencies.
func NewCaseService(cases CaseStore, docs DocumentStore, blobs storage.BlobStore, publisher mq.Publisher) *CaseService {
	return &CaseService{cases: cases, docs: docs, blobs: blobs, mq: publisher}
}

// CreateCaseInput is the client-supplied intake payload.
type CreateCaseInput struct {
	LoanType   string
	LenderName string
	LoanAmount *float64
}

// CasePatch is a partial update. Nil fields are untouched. Stage, Status,
// StagePercent, OverallPercent and SettledAmount are administrator-only;
// when a client supplies them they are silently dropped, not rejected.
// OverallPercent is accepted for wire compatibility but always recomputed
// server-side from (stage, stagePercent).
type CasePatch struct {
	Stage          *lifecycle.Stage
	Status         *models.CaseStatus
	StagePercent   *int
	OverallPercent *int
	LoanAmount     *float64
	LenderName     *string
	SettledAmount  *float64
}

// Create opens a new case at (ASSESSMENT, 0, 0, OPEN) with exactly one
// initial audit event.
func (s *CaseService) Create(ctx context.Context, caller *models.User, input CreateCaseInput) (*models.Case, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	loanType := strings.TrimSpace(input.LoanType)
	if loanType == "" {
		return nil, ErrInvalidInput
	}

	c := &models.Case{
		UserID:         caller.ID,
		LoanType:       loanType,
		LenderName:     strings.TrimSpace(input.LenderName),
		LoanAmount:     input.LoanAmount,
		Stage:          lifecycle.StageAssessment,
		StagePercent:   0,
		OverallPercent: 0,
		Status:         models.CaseStatusOpen,
	}
	event := &models.CaseEvent{
		Type:        models.EventStageChange,
		Message:     fmt.Sprintf("New %s case opened. %s", loanType, lifecycle.Info(lifecycle.StageAssessment).Description),
		CreatedByID: &caller.ID,
	}
	if err := s.cases.CreateWithEvent(ctx, c, event); err != nil {
		return nil, err
	}
	s.publish(ctx, "case.created", c)
	return s.cases.FindByIDWithRelations(ctx, c.ID)
}

// Get returns a case with its events, documents and messages. Only the
// owner and administrators may read a case.
func (s *CaseService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Case, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !caller.IsAdmin() && c.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return s.cases.FindByIDWithRelations(ctx, id)
}

// List returns the caller's cases, or all cases for administrators.
func (s *CaseService) List(ctx context.Context, caller *models.User, filter repository.CaseFilter) ([]models.Case, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if filter.Status != "" && !models.ValidCaseStatus(filter.Status) {
		return nil, ErrInvalidInput
	}
	if filter.Stage != "" && !lifecycle.Valid(filter.Stage) {
		return nil, ErrInvalidInput
	}
	if !caller.IsAdmin() {
		filter.UserID = &caller.ID
	}
	return s.cases.List(ctx, filter)
}

// Update applies a partial update under the role-based write mask, keeps
// overallPercent derived, and appends STAGE_CHANGE / STATUS_CHANGE audit
// events in the same transaction as the record write.
func (s *CaseService) Update(ctx context.Context, caller *models.User, id uuid.UUID, patch CasePatch) (*models.Case, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !caller.IsAdmin() && c.UserID != caller.ID {
		return nil, ErrForbidden
	}

	prevStage, prevStatus := c.Stage, c.Status

	if patch.LenderName != nil {
		c.LenderName = strings.TrimSpace(*patch.LenderName)
	}
	if patch.LoanAmount != nil {
		c.LoanAmount = patch.LoanAmount
	}

	if caller.IsAdmin() {
		if patch.Stage != nil {
			if !lifecycle.Valid(*patch.Stage) {
				return nil, ErrInvalidInput
			}
			c.Stage = *patch.Stage
		}
		if patch.Status != nil {
			if !models.ValidCaseStatus(*patch.Status) {
				return nil, ErrInvalidInput
			}
			c.Status = *patch.Status
		}
		if patch.StagePercent != nil {
			if *patch.StagePercent < 0 || *patch.StagePercent > 100 {
				return nil, ErrInvalidInput
			}
			c.StagePercent = *patch.StagePercent
		}
		if patch.SettledAmount != nil {
			now := timeNow()
			c.SettledAmount = patch.SettledAmount
			c.SettledAt = &now
		}
	}

	// Derived, never trusted from the wire.
	c.OverallPercent = lifecycle.OverallPercent(c.Stage, c.StagePercent)

	var events []*models.CaseEvent
	if c.Stage != prevStage {
		events = append(events, &models.CaseEvent{
			Type:        models.EventStageChange,
			Message:     lifecycle.StageChangeMessage(c.Stage),
			CreatedByID: &caller.ID,
		})
	}
	if c.Status != prevStatus {
		events = append(events, &models.CaseEvent{
			Type:        models.EventStatusChange,
			Message:     lifecycle.StatusChangeMessage(string(c.Status)),
			CreatedByID: &caller.ID,
		})
	}

	if err := s.cases.SaveWithEvents(ctx, c, events); err != nil {
		return nil, err
	}
	if c.Stage != prevStage {
		s.publish(ctx, "case.stage_changed", c)
	}
	if c.Status != prevStatus {
		s.publish(ctx, "case.status_changed", c)
	}
	return s.cases.FindByIDWithRelations(ctx, id)
}

// Delete hard-deletes a case and best-effort removes its stored blobs.
// Administrator only.
func (s *CaseService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	if caller == nil {
		return ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.cases.FindByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	docs, err := s.docs.ListByCase(ctx, id)
	if err != nil {
		return err
	}
	if err := s.cases.Delete(ctx, id); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.blobs.Delete(ctx, doc.StorageKey); err != nil {
			log.Printf("delete blob %s: %v", doc.StorageKey, err)
		}
	}
	s.publish(ctx, "case.deleted", &models.Case{ID: id})
	return nil
}

func (s *CaseService) publish(ctx context.Context, event string, c *models.Case) {
	if s.mq == nil {
		return
	}
	payload := map[string]any{
		"event":          event,
		"caseId":         c.ID.String(),
		"stage":          c.Stage,
		"status":         c.Status,
		"overallPercent": c.OverallPercent,
		"occurredAt":     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.mq.Publish(ctx, event, payload); err != nil {
		log.Printf("publish %s failed: %v", event, err)
	}
}
