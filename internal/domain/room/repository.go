package room

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository defines room data access. GetByID returns (nil, nil) when
// the room does not exist.
type Repository interface {
	Insert(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id uuid.UUID) (*Room, error)
}

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Room
	order []uuid.UUID
}

// NewMemoryRepository creates an in-memory room repository
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Room)}
}

func (m *memoryRepository) Insert(ctx context.Context, r *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID[r.ID] = r.Clone()
	m.order = append(m.order, r.ID)
	return nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return r.Clone(), nil
}

func (m *memoryRepository) List(ctx context.Context) ([]*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Room, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id].Clone())
	}
	return out, nil
}

func (m *memoryRepository) Update(ctx context.Context, r *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[r.ID]; !ok {
		return ErrNotFound
	}
	m.byID[r.ID] = r.Clone()
	return nil
}

func (m *memoryRepository) Delete(ctx context.Context, id uuid.UUID) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.byID[id]
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
	return r, nil
}
