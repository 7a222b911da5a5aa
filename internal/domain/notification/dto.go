package notification

import (
	"encoding/json"
	"time"
)

// CreateRequest is the payload for creating a notification directly
type CreateRequest struct {
	UserID    string          `json:"user_id" validate:"required,uuid"`
	BookingID string          `json:"booking_id" validate:"required,uuid"`
	Type      string          `json:"type" validate:"required,notification_type"`
	Title     string          `json:"title" validate:"required,min=1,max=200"`
	Message   string          `json:"message" validate:"required,min=1,max=1000"`
	Email     string          `json:"email" validate:"required,email"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Response is the API shape of a notification
type Response struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	BookingID string          `json:"booking_id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Email     string          `json:"email"`
	Data      json.RawMessage `json:"data,omitempty"`
	Status    string          `json:"status"`
	SentAt    *string         `json:"sent_at,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(n *Notification) *Response {
	resp := &Response{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		BookingID: n.BookingID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Email:     n.Email,
		Data:      n.Data,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}

	if n.SentAt.Valid {
		s := n.SentAt.Time.Format(time.RFC3339)
		resp.SentAt = &s
	}

	return resp
}

// ResponsesFromEntities converts a slice of entities
func ResponsesFromEntities(notifications []*Notification) []*Response {
	out := make([]*Response, len(notifications))
	for i, n := range notifications {
		out[i] = ResponseFromEntity(n)
	}
	return out
}
