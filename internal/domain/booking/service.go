package booking

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event types published on booking transitions
const (
	EventCreated     = "booking.created"
	EventUpdated     = "booking.updated"
	EventApproved    = "booking.approved"
	EventRejected    = "booking.rejected"
	EventCancelled   = "booking.cancelled"
	EventRescheduled = "booking.rescheduled"
)

// Notifier receives booking changes for delivery to the requester.
// Implementations must not block: dispatch happens after the state
// change is committed and its outcome never affects the result.
type Notifier interface {
	BookingDecided(b *Booking, reason string)
	BookingRescheduled(b *Booking, changes map[string]string)
}

// EventPublisher broadcasts booking lifecycle events
type EventPublisher interface {
	Publish(eventType string, b *Response)
}

// Service owns the booking collection and its workflow transitions.
// All mutations run under a single mutex so the conflict check and the
// write it guards are atomic relative to other writers.
type Service struct {
	repo     Repository
	notifier Notifier
	events   EventPublisher
	mu       sync.Mutex
}

// NewService creates booking service. notifier and events may be nil.
func NewService(repo Repository, notifier Notifier, events EventPublisher) *Service {
	return &Service{repo: repo, notifier: notifier, events: events}
}

// Create registers a new booking. No conflict check happens here:
// overlaps are only enforced at reschedule time, matching the original
// workflow where pending requests may pile up on the same slot.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	fields := make(map[string]string)
	if !req.StartTime.After(now) {
		fields["start_time"] = "Start time must be in the future"
	}
	if !req.EndTime.After(req.StartTime) {
		fields["end_time"] = "End time must be after start time"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, newValidationError("user_id", "Must be a valid UUID")
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}

	b := &Booking{
		ID:        uuid.New(),
		RoomID:    req.RoomID,
		UserID:    userID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Purpose:   req.Purpose,
		Status:    status,
		CreatedAt: now,
	}
	if req.Attendees != nil {
		v := *req.Attendees
		b.Attendees = &v
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID.String()).Str("room_id", b.RoomID).Msg("booking created")
	s.publish(EventCreated, b)
	return b, nil
}

// Get returns a booking by id. Cancelled bookings stay retrievable.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// List returns all bookings in creation order
func (s *Service) List(ctx context.Context) ([]*Booking, error) {
	return s.repo.List(ctx)
}

// Update applies a generic field patch without touching the workflow
// state and without a conflict check.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Booking, error) {
	if req.Empty() {
		return nil, newValidationError("body", "At least one field must be provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	start := b.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	end := b.EndTime
	if req.EndTime != nil {
		end = *req.EndTime
	}

	fields := make(map[string]string)
	if req.StartTime != nil && !start.After(now) {
		fields["start_time"] = "Start time must be in the future"
	}
	if !end.After(start) {
		fields["end_time"] = "End time must be after start time"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if req.RoomID != nil {
		b.RoomID = *req.RoomID
	}
	if req.UserID != nil {
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, newValidationError("user_id", "Must be a valid UUID")
		}
		b.UserID = userID
	}
	b.StartTime = start
	b.EndTime = end
	if req.Purpose != nil {
		b.Purpose = *req.Purpose
	}
	if req.Attendees != nil {
		v := *req.Attendees
		b.Attendees = &v
	}
	b.UpdatedAt = sql.NullTime{Time: now, Valid: true}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publish(EventUpdated, b)
	return b, nil
}

// Approve records an approval decision. Any non-cancelled booking may
// move to approved, rejected or cancelled; cancelled is terminal for
// decisions too, not only for reschedules.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, req ApprovalRequest) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.IsCancelled() {
		return nil, ErrCancelled
	}

	b.Status = req.Status
	b.ApprovalReason = sql.NullString{String: req.Reason, Valid: req.Reason != ""}
	b.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("status", string(b.Status)).
		Msg("booking decision recorded")

	if s.notifier != nil {
		s.notifier.BookingDecided(b.Clone(), req.Reason)
	}
	s.publish(eventForStatus(req.Status), b)
	return b, nil
}

// Reschedule moves a booking to a new room, time or purpose. A change
// of room or time runs the conflict scan against approved bookings of
// the effective room, excluding the booking itself; on conflict nothing
// is mutated. A successful reschedule always leaves the booking
// approved.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*Booking, error) {
	if req.Empty() {
		return nil, newValidationError("body", "At least one field must be provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.IsCancelled() {
		return nil, ErrCancelled
	}

	now := time.Now()

	// Effective schedule: patch fields win, the rest comes from the record
	roomID := b.RoomID
	if req.RoomID != nil {
		roomID = *req.RoomID
	}
	start := b.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	end := b.EndTime
	if req.EndTime != nil {
		end = *req.EndTime
	}

	fields := make(map[string]string)
	if req.StartTime != nil && !start.After(now) {
		fields["start_time"] = "Start time must be in the future"
	}
	if !end.After(start) {
		fields["end_time"] = "End time must be after start time"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if req.TouchesSchedule() {
		others, err := s.repo.ListApprovedByRoom(ctx, roomID, b.ID)
		if err != nil {
			return nil, err
		}
		conflicts := 0
		for _, other := range others {
			if other.Overlaps(start, end) {
				conflicts++
			}
		}
		if conflicts > 0 {
			return nil, &ScheduleConflictError{RoomID: roomID, Conflicts: conflicts}
		}
	}

	before := b.Clone()

	b.RoomID = roomID
	b.StartTime = start
	b.EndTime = end
	if req.Purpose != nil {
		b.Purpose = *req.Purpose
	}
	if req.Attendees != nil {
		v := *req.Attendees
		b.Attendees = &v
	}
	if req.Reason != nil {
		b.RescheduleReason = sql.NullString{String: *req.Reason, Valid: *req.Reason != ""}
	}
	b.Status = StatusApproved
	b.RescheduledAt = sql.NullTime{Time: now, Valid: true}
	b.UpdatedAt = sql.NullTime{Time: now, Valid: true}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	changes := diff(before, b)
	log.Info().
		Str("booking_id", b.ID.String()).
		Int("changed_fields", len(changes)).
		Msg("booking rescheduled")

	if s.notifier != nil {
		s.notifier.BookingRescheduled(b.Clone(), changes)
	}
	s.publish(EventRescheduled, b)
	return b, nil
}

// Cancel tombstones a booking. The record is retained with a terminal
// cancelled status instead of being deleted, so it stays retrievable.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.IsCancelled() {
		return nil, ErrCancelled
	}

	b.Status = StatusCancelled
	b.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID.String()).Msg("booking cancelled")
	s.publish(EventCancelled, b)
	return b, nil
}

// diff reports the fields the reschedule actually changed, keyed by
// field name with the new value
func diff(before, after *Booking) map[string]string {
	changes := make(map[string]string)
	if before.RoomID != after.RoomID {
		changes["room_id"] = after.RoomID
	}
	if !before.StartTime.Equal(after.StartTime) {
		changes["start_time"] = after.StartTime.Format(time.RFC3339)
	}
	if !before.EndTime.Equal(after.EndTime) {
		changes["end_time"] = after.EndTime.Format(time.RFC3339)
	}
	if before.Purpose != after.Purpose {
		changes["purpose"] = after.Purpose
	}
	if formatAttendees(before.Attendees) != formatAttendees(after.Attendees) {
		changes["attendees"] = formatAttendees(after.Attendees)
	}
	return changes
}

func eventForStatus(status Status) string {
	switch status {
	case StatusApproved:
		return EventApproved
	case StatusRejected:
		return EventRejected
	case StatusCancelled:
		return EventCancelled
	default:
		return EventUpdated
	}
}

func (s *Service) publish(eventType string, b *Booking) {
	if s.events == nil {
		return
	}
	s.events.Publish(eventType, ResponseFromEntity(b))
}
