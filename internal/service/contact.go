package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/models"
	"github.com/tribalarts/storefront-service/internal/repository"
)

// ContactService owns the support inbox.
type ContactService struct {
	messages repository.MessageRepository
	logger   *log.Entry
}

func NewContactService(messages repository.MessageRepository) *ContactService {
	return &ContactService{
		messages: messages,
		logger:   log.WithField("component", "contact-service"),
	}
}

// Submit stores a new contact message as unread.
func (s *ContactService) Submit(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	if err := ValidateContactMessage(msg); err != nil {
		return nil, err
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns the inbox, newest first.
func (s *ContactService) List(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.messages.List(ctx)
}

// ListForUser returns a customer's own messages, newest first, so they can
// read admin replies to them.
func (s *ContactService) ListForUser(ctx context.Context, email string) ([]*models.ContactMessage, error) {
	return s.messages.ListByEmail(ctx, email)
}

// Update changes a message's status and/or appends an admin reply. At least
// one of the two must be present.
func (s *ContactService) Update(ctx context.Context, id string, req *models.UpdateMessageRequest, adminEmail string) (*models.ContactMessage, error) {
	if req.Status == "" && req.Reply == "" {
		return nil, apperrors.NewValidationError("update", "status or reply is required")
	}
	if req.Status != "" && !req.Status.IsValid() {
		return nil, apperrors.NewValidationError("status", "invalid message status")
	}

	var reply *models.MessageReply
	if req.Reply != "" {
		reply = &models.MessageReply{
			Body:      req.Reply,
			From:      adminEmail,
			CreatedAt: time.Now(),
		}
	}

	return s.messages.Update(ctx, id, req.Status, reply)
}
