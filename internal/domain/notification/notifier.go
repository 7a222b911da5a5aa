package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/talx/rooms-api/internal/domain/booking"
)

// BookingNotifier turns booking workflow transitions into notification
// records. It implements booking.Notifier and never blocks: the record
// is persisted and queued, delivery runs on the service worker.
type BookingNotifier struct {
	svc *Service
}

// NewBookingNotifier creates the booking to notification adapter
func NewBookingNotifier(svc *Service) *BookingNotifier {
	return &BookingNotifier{svc: svc}
}

// BookingDecided records an approval decision notification
func (bn *BookingNotifier) BookingDecided(b *booking.Booking, reason string) {
	statusText := decisionText(b.Status)

	message := fmt.Sprintf("Your booking for room %s starting %s has been %s.",
		b.RoomID, b.StartTime.Format(time.RFC3339), statusText)
	if reason != "" {
		message += " Reason: " + reason
	}

	bn.create(b, &Notification{
		Type:    typeForStatus(b.Status),
		Title:   "Booking " + statusText,
		Message: message,
		Data:    bookingPayload(b, statusText, reason, nil),
	})
}

// BookingRescheduled records a reschedule notification listing the
// fields that changed
func (bn *BookingNotifier) BookingRescheduled(b *booking.Booking, changes map[string]string) {
	reason := ""
	if b.RescheduleReason.Valid {
		reason = b.RescheduleReason.String
	}

	message := fmt.Sprintf("Your booking for room %s has been rescheduled to start %s.",
		b.RoomID, b.StartTime.Format(time.RFC3339))
	if reason != "" {
		message += " Reason: " + reason
	}

	bn.create(b, &Notification{
		Type:    TypeRescheduled,
		Title:   "Booking rescheduled",
		Message: message,
		Data:    bookingPayload(b, "", reason, changes),
	})
}

func (bn *BookingNotifier) create(b *booking.Booking, n *Notification) {
	n.UserID = b.UserID
	n.BookingID = b.ID
	n.Email = recipientEmail(b.UserID.String())

	if _, err := bn.svc.Create(context.Background(), n); err != nil {
		log.Error().
			Err(err).
			Str("booking_id", b.ID.String()).
			Msg("failed to record booking notification")
	}
}

// recipientEmail derives the employee address from the user id.
// TODO: replace with a lookup once a user directory service exists.
func recipientEmail(userID string) string {
	seg := userID
	if i := strings.IndexByte(userID, '-'); i > 0 {
		seg = userID[:i]
	}
	return "employee-" + seg + "@talx.local"
}

func decisionText(status booking.Status) string {
	switch status {
	case booking.StatusApproved:
		return "approved"
	case booking.StatusRejected:
		return "rejected"
	case booking.StatusCancelled:
		return "cancelled"
	default:
		return string(status)
	}
}

func typeForStatus(status booking.Status) Type {
	switch status {
	case booking.StatusApproved:
		return TypeApproved
	case booking.StatusRejected:
		return TypeRejected
	default:
		return TypeCancelled
	}
}

func bookingPayload(b *booking.Booking, statusText, reason string, changes map[string]string) json.RawMessage {
	data := map[string]interface{}{
		"BookingID": b.ID.String(),
		"RoomID":    b.RoomID,
		"StartTime": b.StartTime.Format(time.RFC3339),
		"EndTime":   b.EndTime.Format(time.RFC3339),
		"Purpose":   b.Purpose,
	}
	if b.Attendees != nil {
		data["Attendees"] = *b.Attendees
	}
	if statusText != "" {
		data["StatusText"] = statusText
	}
	if reason != "" {
		data["Reason"] = reason
	}
	if len(changes) > 0 {
		fields := make([]string, 0, len(changes))
		for field := range changes {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		lines := make([]string, 0, len(fields))
		for _, field := range fields {
			lines = append(lines, fmt.Sprintf("%s is now %s", field, changes[field]))
		}
		data["Changes"] = lines
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return raw
}
