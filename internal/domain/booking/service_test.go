package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testUserID = "7f9c24e5-2f3a-4b1d-9e0a-5c6d7e8f9a0b"

type captureNotifier struct {
	decided     []*Booking
	reasons     []string
	rescheduled []*Booking
	changes     []map[string]string
}

func (c *captureNotifier) BookingDecided(b *Booking, reason string) {
	c.decided = append(c.decided, b)
	c.reasons = append(c.reasons, reason)
}

func (c *captureNotifier) BookingRescheduled(b *Booking, changes map[string]string) {
	c.rescheduled = append(c.rescheduled, b)
	c.changes = append(c.changes, changes)
}

type capturePublisher struct {
	events []string
}

func (c *capturePublisher) Publish(eventType string, b *Response) {
	c.events = append(c.events, eventType)
}

// testBase anchors all test schedules two days out so they never
// collide with the "start must be in the future" rule
var testBase = time.Now().Add(48 * time.Hour).Truncate(time.Hour)

func hour(n int) time.Time {
	return testBase.Add(time.Duration(n) * time.Hour)
}

func createReq(roomID string, start, end time.Time) CreateRequest {
	return CreateRequest{
		RoomID:    roomID,
		UserID:    testUserID,
		StartTime: start,
		EndTime:   end,
		Purpose:   "team sync",
	}
}

func mustCreate(t *testing.T, svc *Service, req CreateRequest) *Booking {
	t.Helper()
	b, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return b
}

func mustApprove(t *testing.T, svc *Service, id uuid.UUID) *Booking {
	t.Helper()
	b, err := svc.Approve(context.Background(), id, ApprovalRequest{Status: StatusApproved})
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	return b
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func TestCreateDefaultsToPending(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))

	if b.Status != StatusPending {
		t.Fatalf("expected status pending, got %s", b.Status)
	}
	if b.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if b.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
	if b.UpdatedAt.Valid || b.RescheduledAt.Valid {
		t.Fatal("fresh booking must not carry update timestamps")
	}
}

func TestCreateHonorsExplicitStatus(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	req := createReq("room-1", hour(1), hour(2))
	req.Status = StatusApproved

	b := mustCreate(t, svc, req)
	if b.Status != StatusApproved {
		t.Fatalf("expected status approved, got %s", b.Status)
	}
}

func TestCreateRejectsPastStart(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	_, err := svc.Create(context.Background(), createReq("room-1", time.Now().Add(-time.Hour), hour(2)))

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := validationErr.Fields["start_time"]; !ok {
		t.Fatalf("expected start_time field error, got %v", validationErr.Fields)
	}
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	_, err := svc.Create(context.Background(), createReq("room-1", hour(2), hour(1)))

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := validationErr.Fields["end_time"]; !ok {
		t.Fatalf("expected end_time field error, got %v", validationErr.Fields)
	}
}

func TestCreateAllowsOverlapWithApproved(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	first := mustCreate(t, svc, createReq("room-1", hour(1), hour(3)))
	mustApprove(t, svc, first.ID)

	// Creation never runs the conflict scan, overlapping requests are
	// allowed to pile up and are resolved at reschedule time
	second := mustCreate(t, svc, createReq("room-1", hour(2), hour(4)))
	if second.Status != StatusPending {
		t.Fatalf("expected overlapping create to succeed as pending, got %s", second.Status)
	}
}

func TestGetUnknownReturnsNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAppliesPatchWithoutStatusChange(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))
	mustApprove(t, svc, b.ID)

	updated, err := svc.Update(context.Background(), b.ID, UpdateRequest{
		Purpose:   strPtr("board meeting"),
		Attendees: intPtr(8),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Purpose != "board meeting" {
		t.Fatalf("expected purpose patched, got %q", updated.Purpose)
	}
	if updated.Attendees == nil || *updated.Attendees != 8 {
		t.Fatalf("expected attendees patched, got %v", updated.Attendees)
	}
	if updated.Status != StatusApproved {
		t.Fatalf("update must not touch workflow status, got %s", updated.Status)
	}
	if !updated.UpdatedAt.Valid {
		t.Fatal("expected updated_at to be set")
	}
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))

	_, err := svc.Update(context.Background(), b.ID, UpdateRequest{})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateSkipsConflictScan(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	first := mustCreate(t, svc, createReq("room-1", hour(1), hour(3)))
	mustApprove(t, svc, first.ID)

	second := mustCreate(t, svc, createReq("room-1", hour(5), hour(6)))

	// Moving straight into the approved slot through the generic patch
	// succeeds, only reschedule enforces overlaps
	moved, err := svc.Update(context.Background(), second.ID, UpdateRequest{
		StartTime: timePtr(hour(1)),
		EndTime:   timePtr(hour(3)),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !moved.StartTime.Equal(hour(1)) {
		t.Fatalf("expected start moved, got %v", moved.StartTime)
	}
}

func TestApproveRecordsDecision(t *testing.T) {
	notifier := &captureNotifier{}
	publisher := &capturePublisher{}
	svc := NewService(NewMemoryRepository(), notifier, publisher)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))

	decided, err := svc.Approve(context.Background(), b.ID, ApprovalRequest{
		Status: StatusRejected,
		Reason: "room under maintenance",
	})
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	if decided.Status != StatusRejected {
		t.Fatalf("expected status rejected, got %s", decided.Status)
	}
	if !decided.ApprovalReason.Valid || decided.ApprovalReason.String != "room under maintenance" {
		t.Fatalf("expected approval reason recorded, got %v", decided.ApprovalReason)
	}
	if len(notifier.decided) != 1 || notifier.reasons[0] != "room under maintenance" {
		t.Fatalf("expected one decision notification, got %d", len(notifier.decided))
	}
	if len(publisher.events) != 2 || publisher.events[1] != EventRejected {
		t.Fatalf("expected created+rejected events, got %v", publisher.events)
	}
}

func TestApproveCancelledNotPermitted(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))
	if _, err := svc.Cancel(context.Background(), b.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	_, err := svc.Approve(context.Background(), b.ID, ApprovalRequest{Status: StatusApproved})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestRescheduleForcesApproved(t *testing.T) {
	notifier := &captureNotifier{}
	svc := NewService(NewMemoryRepository(), notifier, nil)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))

	moved, err := svc.Reschedule(context.Background(), b.ID, RescheduleRequest{
		RoomID:    strPtr("room-2"),
		StartTime: timePtr(hour(3)),
		EndTime:   timePtr(hour(4)),
		Reason:    strPtr("projector needed"),
	})
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}

	if moved.Status != StatusApproved {
		t.Fatalf("reschedule must leave booking approved, got %s", moved.Status)
	}
	if moved.RoomID != "room-2" {
		t.Fatalf("expected room moved, got %s", moved.RoomID)
	}
	if !moved.RescheduledAt.Valid {
		t.Fatal("expected rescheduled_at to be set")
	}
	if !moved.RescheduleReason.Valid || moved.RescheduleReason.String != "projector needed" {
		t.Fatalf("expected reschedule reason recorded, got %v", moved.RescheduleReason)
	}

	if len(notifier.rescheduled) != 1 {
		t.Fatalf("expected one reschedule notification, got %d", len(notifier.rescheduled))
	}
	changes := notifier.changes[0]
	for _, field := range []string{"room_id", "start_time", "end_time"} {
		if _, ok := changes[field]; !ok {
			t.Fatalf("expected %s in change set, got %v", field, changes)
		}
	}
	if _, ok := changes["purpose"]; ok {
		t.Fatalf("purpose did not change, change set %v", changes)
	}
}

func TestRescheduleConflictLeavesBookingUnchanged(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	blocker := mustCreate(t, svc, createReq("room-1", hour(1), hour(3)))
	mustApprove(t, svc, blocker.ID)

	target := mustCreate(t, svc, createReq("room-1", hour(5), hour(6)))

	_, err := svc.Reschedule(context.Background(), target.ID, RescheduleRequest{
		StartTime: timePtr(hour(2)),
		EndTime:   timePtr(hour(4)),
	})

	var conflictErr *ScheduleConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ScheduleConflictError, got %v", err)
	}
	if conflictErr.Conflicts != 1 {
		t.Fatalf("expected 1 conflict, got %d", conflictErr.Conflicts)
	}
	if conflictErr.RoomID != "room-1" {
		t.Fatalf("expected conflict in room-1, got %s", conflictErr.RoomID)
	}

	// Nothing may be mutated on a failed reschedule
	after, err := svc.Get(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if after.Status != StatusPending {
		t.Fatalf("failed reschedule must not change status, got %s", after.Status)
	}
	if !after.StartTime.Equal(hour(5)) || !after.EndTime.Equal(hour(6)) {
		t.Fatalf("failed reschedule must not change schedule, got %v-%v", after.StartTime, after.EndTime)
	}
	if after.RescheduledAt.Valid {
		t.Fatal("failed reschedule must not set rescheduled_at")
	}
}

func TestRescheduleCountsEveryConflict(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	for _, window := range [][2]int{{1, 3}, {3, 5}} {
		b := mustCreate(t, svc, createReq("room-1", hour(window[0]), hour(window[1])))
		mustApprove(t, svc, b.ID)
	}

	target := mustCreate(t, svc, createReq("room-1", hour(8), hour(9)))

	_, err := svc.Reschedule(context.Background(), target.ID, RescheduleRequest{
		StartTime: timePtr(hour(2)),
		EndTime:   timePtr(hour(4)),
	})

	var conflictErr *ScheduleConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ScheduleConflictError, got %v", err)
	}
	if conflictErr.Conflicts != 2 {
		t.Fatalf("expected 2 conflicts, got %d", conflictErr.Conflicts)
	}
}

func TestRescheduleIgnoresAdjacentIntervals(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	blocker := mustCreate(t, svc, createReq("room-1", hour(1), hour(3)))
	mustApprove(t, svc, blocker.ID)

	target := mustCreate(t, svc, createReq("room-1", hour(8), hour(9)))

	// Half-open intervals: touching endpoints do not overlap
	if _, err := svc.Reschedule(context.Background(), target.ID, RescheduleRequest{
		StartTime: timePtr(hour(3)),
		EndTime:   timePtr(hour(4)),
	}); err != nil {
		t.Fatalf("adjacent interval must not conflict: %v", err)
	}
}

func TestRescheduleExcludesSelf(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(3)))
	mustApprove(t, svc, b.ID)

	// Shrinking within its own approved window must not conflict with
	// the booking's own previous schedule
	moved, err := svc.Reschedule(context.Background(), b.ID, RescheduleRequest{
		StartTime: timePtr(hour(1)),
		EndTime:   timePtr(hour(2)),
	})
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if !moved.EndTime.Equal(hour(2)) {
		t.Fatalf("expected end moved, got %v", moved.EndTime)
	}
}

func TestReschedulePurposeOnlySkipsConflictScan(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	// Two approved bookings occupying the same slot: possible because
	// neither create nor approve checks for overlaps
	first := mustCreate(t, svc, createReq("room-1", hour(1), hour(3)))
	mustApprove(t, svc, first.ID)
	second := mustCreate(t, svc, createReq("room-1", hour(1), hour(3)))
	mustApprove(t, svc, second.ID)

	// A patch that leaves room and time alone skips the scan even
	// though the current schedule overlaps another approved booking
	moved, err := svc.Reschedule(context.Background(), second.ID, RescheduleRequest{
		Purpose: strPtr("quarterly review"),
	})
	if err != nil {
		t.Fatalf("purpose-only reschedule must skip the conflict scan: %v", err)
	}
	if moved.Purpose != "quarterly review" {
		t.Fatalf("expected purpose patched, got %q", moved.Purpose)
	}
}

func TestRescheduleCancelledNotPermitted(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))
	if _, err := svc.Cancel(context.Background(), b.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	_, err := svc.Reschedule(context.Background(), b.ID, RescheduleRequest{
		StartTime: timePtr(hour(3)),
		EndTime:   timePtr(hour(4)),
	})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}

	// The cancelled record stays untouched
	after, err := svc.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if after.Status != StatusCancelled || !after.StartTime.Equal(hour(1)) {
		t.Fatalf("cancelled booking was mutated: %s %v", after.Status, after.StartTime)
	}
}

func TestRescheduleRejectsEmptyPatch(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))

	_, err := svc.Reschedule(context.Background(), b.ID, RescheduleRequest{})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCancelTombstonesBooking(t *testing.T) {
	publisher := &capturePublisher{}
	svc := NewService(NewMemoryRepository(), nil, publisher)

	b := mustCreate(t, svc, createReq("room-1", hour(1), hour(2)))

	cancelled, err := svc.Cancel(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected status cancelled, got %s", cancelled.Status)
	}

	// Tombstone: the record stays retrievable and listed
	got, err := svc.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("cancelled booking must stay retrievable: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Fatalf("expected status cancelled, got %s", got.Status)
	}

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("cancelled booking must stay listed, got %d records", len(all))
	}

	// Second cancel is not permitted
	if _, err := svc.Cancel(context.Background(), b.ID); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled on double cancel, got %v", err)
	}

	if publisher.events[len(publisher.events)-1] != EventCancelled {
		t.Fatalf("expected cancelled event, got %v", publisher.events)
	}
}

func TestRescheduleScenarioTwoBookings(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	// First booking takes the morning slot and gets approved
	first := mustCreate(t, svc, createReq("room-1", hour(1), hour(3)))
	mustApprove(t, svc, first.ID)

	// Second request for the same room later in the day
	second := mustCreate(t, svc, createReq("room-1", hour(6), hour(7)))

	// Moving the second into the approved morning slot reports exactly
	// the one conflicting booking
	_, err := svc.Reschedule(context.Background(), second.ID, RescheduleRequest{
		StartTime: timePtr(hour(1)),
		EndTime:   timePtr(hour(2)),
	})
	var conflictErr *ScheduleConflictError
	if !errors.As(err, &conflictErr) || conflictErr.Conflicts != 1 {
		t.Fatalf("expected single conflict, got %v", err)
	}

	// Moving it to a free afternoon slot succeeds and approves it
	moved, err := svc.Reschedule(context.Background(), second.ID, RescheduleRequest{
		StartTime: timePtr(hour(3)),
		EndTime:   timePtr(hour(4)),
	})
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if moved.Status != StatusApproved {
		t.Fatalf("expected approved after reschedule, got %s", moved.Status)
	}
}

func TestConcurrentCreates(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(context.Background(), createReq("room-1", hour(1), hour(2))); err != nil {
				t.Errorf("Create failed: %v", err)
			}
		}()
	}
	wg.Wait()

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 20 {
		t.Fatalf("expected 20 bookings, got %d", len(all))
	}
}
