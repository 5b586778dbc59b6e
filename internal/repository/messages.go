package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/models"
)

var _ MessageRepository = (*PostgresMessageRepository)(nil)

// PostgresMessageRepository stores the contact inbox. Reply threads are kept
// as a jsonb document alongside the message.
type PostgresMessageRepository struct {
	db     *sql.DB
	logger *log.Entry
}

func NewPostgresMessageRepository(db *sql.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{
		db:     db,
		logger: log.WithField("component", "message-repository"),
	}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = "msg_" + uuid.NewString()
	}
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	msg.Status = models.MessageStatusUnread
	if msg.Replies == nil {
		msg.Replies = []models.MessageReply{}
	}

	repliesJSON, err := json.Marshal(msg.Replies)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contact_messages (id, name, email, subject, body, status, replies, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Body,
		msg.Status, repliesJSON, msg.CreatedAt, msg.UpdatedAt,
	)
	if err != nil {
		r.logger.WithFields(log.Fields{
			"email": msg.Email,
			"error": err.Error(),
		}).Error("Failed to create contact message")
		return err
	}

	r.logger.WithField("message_id", msg.ID).Info("Contact message created")
	return nil
}

func (r *PostgresMessageRepository) List(ctx context.Context) ([]*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, body, status, replies, created_at, updated_at
		FROM contact_messages
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*models.ContactMessage, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// ListByEmail returns a customer's own messages, replies included.
func (r *PostgresMessageRepository) ListByEmail(ctx context.Context, email string) ([]*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, body, status, replies, created_at, updated_at
		FROM contact_messages
		WHERE email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*models.ContactMessage, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, body, status, replies, created_at, updated_at
		FROM contact_messages
		WHERE id = $1
	`
	return scanMessage(r.db.QueryRowContext(ctx, query, id))
}

// Update changes the message status and/or appends a reply to the thread.
func (r *PostgresMessageRepository) Update(ctx context.Context, id string, status models.MessageStatus, reply *models.MessageReply) (*models.ContactMessage, error) {
	msg, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status != "" {
		msg.Status = status
	}
	if reply != nil {
		msg.Replies = append(msg.Replies, *reply)
	}
	msg.UpdatedAt = time.Now()

	repliesJSON, err := json.Marshal(msg.Replies)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE contact_messages
		SET status = $2, replies = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, msg.Status, repliesJSON, msg.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	r.logger.WithFields(log.Fields{
		"message_id": id,
		"status":     msg.Status,
	}).Info("Contact message updated")

	return msg, nil
}

func scanMessage(row rowScanner) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	var repliesJSON []byte

	err := row.Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body,
		&msg.Status, &repliesJSON, &msg.CreatedAt, &msg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(repliesJSON, &msg.Replies); err != nil {
		return nil, err
	}
	return &msg, nil
}
