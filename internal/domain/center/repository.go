package center

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository defines center data access. GetByID returns (nil, nil)
// when the center does not exist.
type Repository interface {
	Insert(ctx context.Context, c *Center) error
	GetByID(ctx context.Context, id uuid.UUID) (*Center, error)
	List(ctx context.Context) ([]*Center, error)
	Update(ctx context.Context, c *Center) error
	Delete(ctx context.Context, id uuid.UUID) (*Center, error)
}

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Center
	order []uuid.UUID
}

// NewMemoryRepository creates an in-memory center repository
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Center)}
}

func (m *memoryRepository) Insert(ctx context.Context, c *Center) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID[c.ID] = c.Clone()
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Center, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (m *memoryRepository) List(ctx context.Context) ([]*Center, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Center, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id].Clone())
	}
	return out, nil
}

func (m *memoryRepository) Update(ctx context.Context, c *Center) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[c.ID]; !ok {
		return ErrNotFound
	}
	m.byID[c.ID] = c.Clone()
	return nil
}

func (m *memoryRepository) Delete(ctx context.Context, id uuid.UUID) (*Center, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.byID[id]
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
	return c, nil
}
