package notification

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines notification data access. GetByID returns
// (nil, nil) when the notification does not exist.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	List(ctx context.Context) ([]*Notification, error)
	Delete(ctx context.Context, id uuid.UUID) (*Notification, error)
	UpdateDelivery(ctx context.Context, id uuid.UUID, status DeliveryStatus, sentAt time.Time) error
}

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Notification
	order []uuid.UUID
}

// NewMemoryRepository creates an in-memory notification repository
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Notification)}
}

func (m *memoryRepository) Create(ctx context.Context, n *Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID[n.ID] = n.Clone()
	m.order = append(m.order, n.ID)
	return nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return n.Clone(), nil
}

func (m *memoryRepository) List(ctx context.Context) ([]*Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Notification, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id].Clone())
	}
	return out, nil
}

func (m *memoryRepository) Delete(ctx context.Context, id uuid.UUID) (*Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return n, nil
}

func (m *memoryRepository) UpdateDelivery(ctx context.Context, id uuid.UUID, status DeliveryStatus, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	n.Status = status
	if status == DeliverySent {
		n.SentAt = sql.NullTime{Time: sentAt, Valid: true}
	}
	return nil
}
