package models

import "time"

// MessageStatus is owned by the contact inbox, independent of order status.
type MessageStatus string

const (
	MessageStatusUnread MessageStatus = "unread"
	MessageStatusRead   MessageStatus = "read"
)

func (s MessageStatus) IsValid() bool {
	return s == MessageStatusUnread || s == MessageStatusRead
}

// MessageReply is an admin response appended to a contact message thread.
type MessageReply struct {
	Body      string    `json:"body"`
	From      string    `json:"from"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessage is a customer support message with its reply thread.
type ContactMessage struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	Status    MessageStatus  `json:"status"`
	Replies   []MessageReply `json:"replies"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// UpdateMessageRequest changes a message's status and/or appends a reply.
type UpdateMessageRequest struct {
	Status MessageStatus `json:"status,omitempty"`
	Reply  string        `json:"reply,omitempty"`
}
