package notification

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/talx/rooms-api/internal/pkg/email"
)

const (
	queueSize       = 128
	dispatchTimeout = 15 * time.Second
)

// Service persists notification records and delivers them by email in
// the background. Delivery never blocks the caller and a failed send
// only marks the record, it is never retried automatically.
type Service struct {
	repo   Repository
	sender email.Sender
	queue  chan uuid.UUID
	wg     sync.WaitGroup
	once   sync.Once
}

// NewService creates notification service and starts its delivery worker
func NewService(repo Repository, sender email.Sender) *Service {
	s := &Service{
		repo:   repo,
		sender: sender,
		queue:  make(chan uuid.UUID, queueSize),
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

// Create persists a pending notification and queues it for delivery
func (s *Service) Create(ctx context.Context, n *Notification) (*Notification, error) {
	n.ID = uuid.New()
	n.Status = DeliveryPending
	n.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.enqueue(n.ID)
	return n, nil
}

// Get returns a notification by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}

// List returns all notifications in creation order
func (s *Service) List(ctx context.Context) ([]*Notification, error) {
	return s.repo.List(ctx)
}

// Delete removes a notification record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Notification, error) {
	return s.repo.Delete(ctx, id)
}

// Resend puts an existing notification back on the delivery queue
func (s *Service) Resend(ctx context.Context, id uuid.UUID) (*Notification, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDelivery(ctx, id, DeliveryPending, time.Time{}); err != nil {
		return nil, err
	}
	n.Status = DeliveryPending

	s.enqueue(id)
	return n, nil
}

// Close stops the delivery worker after draining queued notifications
func (s *Service) Close() {
	s.once.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

func (s *Service) enqueue(id uuid.UUID) {
	select {
	case s.queue <- id:
	default:
		log.Warn().
			Str("notification_id", id.String()).
			Msg("notification queue full, record left pending")
	}
}

func (s *Service) worker() {
	defer s.wg.Done()

	for id := range s.queue {
		s.dispatch(id)
	}
}

func (s *Service) dispatch(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	n, err := s.repo.GetByID(ctx, id)
	if err != nil || n == nil {
		log.Error().Err(err).Str("notification_id", id.String()).Msg("notification lookup failed before delivery")
		return
	}

	sendErr := s.sender.SendTemplate(ctx, n.Email, "", n.Title, templateFor(n.Type), payloadFor(n))

	status := DeliverySent
	if sendErr != nil {
		status = DeliveryFailed
		log.Error().
			Err(sendErr).
			Str("notification_id", id.String()).
			Str("email", n.Email).
			Msg("notification delivery failed")
	}

	if err := s.repo.UpdateDelivery(ctx, id, status, time.Now().UTC()); err != nil {
		log.Error().Err(err).Str("notification_id", id.String()).Msg("failed to record delivery outcome")
	}
}

func templateFor(t Type) string {
	if t == TypeRescheduled {
		return "booking_rescheduled"
	}
	return "booking_decision"
}

// payloadFor builds the template data. The stored payload wins over the
// defaults so records created without one still render cleanly.
func payloadFor(n *Notification) map[string]interface{} {
	data := map[string]interface{}{
		"BookingID":  n.BookingID.String(),
		"RoomID":     "",
		"StartTime":  "",
		"EndTime":    "",
		"Purpose":    n.Message,
		"StatusText": "",
		"Reason":     "",
	}

	if len(n.Data) > 0 {
		if err := json.Unmarshal(n.Data, &data); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("notification payload is not valid JSON")
		}
	}

	return data
}
