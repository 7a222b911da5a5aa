package booking

import (
	"strconv"
	"time"
)

// CreateRequest is the payload for creating a booking
type CreateRequest struct {
	RoomID    string    `json:"room_id" validate:"required,min=1"`
	UserID    string    `json:"user_id" validate:"required,uuid"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Purpose   string    `json:"purpose" validate:"required,min=1,max=200"`
	Status    Status    `json:"status" validate:"omitempty,booking_status"`
	Attendees *int      `json:"attendees" validate:"omitempty,gte=1,lte=1000"`
}

// UpdateRequest is a generic field patch. Status is deliberately absent:
// workflow transitions go through approve/reschedule/cancel only.
type UpdateRequest struct {
	RoomID    *string    `json:"room_id" validate:"omitempty,min=1"`
	UserID    *string    `json:"user_id" validate:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Purpose   *string    `json:"purpose" validate:"omitempty,min=1,max=200"`
	Attendees *int       `json:"attendees" validate:"omitempty,gte=1,lte=1000"`
}

// Empty reports whether no field is present in the patch
func (r *UpdateRequest) Empty() bool {
	return r.RoomID == nil && r.UserID == nil && r.StartTime == nil &&
		r.EndTime == nil && r.Purpose == nil && r.Attendees == nil
}

// ApprovalRequest is the payload for an approval decision
type ApprovalRequest struct {
	Status Status `json:"status" validate:"required,approval_status"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// RescheduleRequest is the payload for rescheduling a booking
type RescheduleRequest struct {
	RoomID    *string    `json:"room_id" validate:"omitempty,min=1"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Purpose   *string    `json:"purpose" validate:"omitempty,min=1,max=200"`
	Attendees *int       `json:"attendees" validate:"omitempty,gte=1,lte=1000"`
	Reason    *string    `json:"reason" validate:"omitempty,max=500"`
}

// Empty reports whether no field is present in the patch
func (r *RescheduleRequest) Empty() bool {
	return r.RoomID == nil && r.StartTime == nil && r.EndTime == nil &&
		r.Purpose == nil && r.Attendees == nil && r.Reason == nil
}

// TouchesSchedule reports whether the patch changes room or time, which
// is what triggers the conflict scan
func (r *RescheduleRequest) TouchesSchedule() bool {
	return r.RoomID != nil || r.StartTime != nil || r.EndTime != nil
}

// Response is the API shape of a booking
type Response struct {
	ID               string  `json:"id"`
	RoomID           string  `json:"room_id"`
	UserID           string  `json:"user_id"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Purpose          string  `json:"purpose"`
	Attendees        *int    `json:"attendees,omitempty"`
	Status           string  `json:"status"`
	ApprovalReason   *string `json:"approval_reason,omitempty"`
	RescheduleReason *string `json:"reschedule_reason,omitempty"`
	RescheduledAt    *string `json:"rescheduled_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(b *Booking) *Response {
	resp := &Response{
		ID:        b.ID.String(),
		RoomID:    b.RoomID,
		UserID:    b.UserID.String(),
		StartTime: b.StartTime.Format(time.RFC3339),
		EndTime:   b.EndTime.Format(time.RFC3339),
		Purpose:   b.Purpose,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}

	if b.Attendees != nil {
		v := *b.Attendees
		resp.Attendees = &v
	}
	if b.ApprovalReason.Valid {
		resp.ApprovalReason = &b.ApprovalReason.String
	}
	if b.RescheduleReason.Valid {
		resp.RescheduleReason = &b.RescheduleReason.String
	}
	if b.RescheduledAt.Valid {
		s := b.RescheduledAt.Time.Format(time.RFC3339)
		resp.RescheduledAt = &s
	}
	if b.UpdatedAt.Valid {
		s := b.UpdatedAt.Time.Format(time.RFC3339)
		resp.UpdatedAt = &s
	}

	return resp
}

// ResponsesFromEntities converts a slice of entities
func ResponsesFromEntities(bookings []*Booking) []*Response {
	out := make([]*Response, len(bookings))
	for i, b := range bookings {
		out[i] = ResponseFromEntity(b)
	}
	return out
}

func formatAttendees(attendees *int) string {
	if attendees == nil {
		return ""
	}
	return strconv.Itoa(*attendees)
}
