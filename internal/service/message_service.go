package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/mq"
)

// MessageService handles the per-case chat thread between a client and
// the back office.
type MessageService struct {
	cases    CaseStore
	messages MessageStore
	events   EventStore
	mq       mq.Publisher
}

// NewMessageService builds a service with dependencies.
func NewMessageService(cases CaseStore, messages MessageStore, events EventStore, publisher mq.Publisher) *MessageService {
	return &MessageService{cases: cases, messages: messages, events: events, mq: publisher}
}

// Send appends a message to the thread, snapshotting the sender's role at
// send time, and records an INFO audit event on the case.
func (s *MessageService) Send(ctx context.Context, caller *models.User, caseID uuid.UUID, content string) (*models.CaseMessage, error) {
	if _, err := caseForAccess(ctx, s.cases, caller, caseID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput
	}

	msg := &models.CaseMessage{
		CaseID:     caseID,
		SenderID:   caller.ID,
		SenderRole: caller.Role,
		Content:    content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	event := &models.CaseEvent{
		CaseID:      caseID,
		Type:        models.EventInfo,
		Message:     fmt.Sprintf("New message from %s.", caller.Name),
		CreatedByID: &caller.ID,
	}
	if err := s.events.Append(ctx, event); err != nil {
		log.Printf("append message event: %v", err)
	}
	if err := s.cases.Touch(ctx, caseID); err != nil {
		log.Printf("touch case %s: %v", caseID, err)
	}
	if s.mq != nil {
		_ = s.mq.Publish(ctx, "case.message", map[string]any{
			"caseId":     caseID.String(),
			"senderRole": msg.SenderRole,
		})
	}
	return msg, nil
}

// List returns the thread in chronological order. As a side effect, every
// unread message sent by the other party is stamped read; repeating the
// call is a no-op.
func (s *MessageService) List(ctx context.Context, caller *models.User, caseID uuid.UUID) ([]models.CaseMessage, error) {
	if _, err := caseForAccess(ctx, s.cases, caller, caseID); err != nil {
		return nil, err
	}
	if err := s.messages.MarkRead(ctx, caseID, caller.Role, timeNow()); err != nil {
		return nil, err
	}
	return s.messages.ListByCase(ctx, caseID, 0)
}
