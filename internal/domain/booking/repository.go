package booking

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository defines booking data access. GetByID returns (nil, nil)
// when the booking does not exist.
type Repository interface {
	Insert(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
	ListApprovedByRoom(ctx context.Context, roomID string, exclude uuid.UUID) ([]*Booking, error)
	Update(ctx context.Context, b *Booking) error
}

// memoryRepository keeps bookings in process, which mirrors how the
// system originally ran. Insertion order is preserved for listings.
type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Booking
	order []uuid.UUID
}

// NewMemoryRepository creates an in-memory booking repository
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Booking)}
}

func (r *memoryRepository) Insert(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[b.ID] = b.Clone()
	r.order = append(r.order, b.ID)
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return b.Clone(), nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Booking, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *memoryRepository) ListApprovedByRoom(ctx context.Context, roomID string, exclude uuid.UUID) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Booking
	for _, id := range r.order {
		b := r.byID[id]
		if b.ID == exclude || b.RoomID != roomID || b.Status != StatusApproved {
			continue
		}
		out = append(out, b.Clone())
	}
	return out, nil
}

func (r *memoryRepository) Update(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[b.ID]; !ok {
		return ErrNotFound
	}
	r.byID[b.ID] = b.Clone()
	return nil
}
