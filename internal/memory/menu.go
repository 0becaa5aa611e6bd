package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
)

// MenuStore keeps the catalog in a map keyed by id.
type MenuStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.MenuItem
}

var _ domain.MenuRepository = (*MenuStore)(nil)

func NewMenuStore() *MenuStore {
	return &MenuStore{items: make(map[int64]domain.MenuItem)}
}

// List returns items ordered by category, then name.
func (s *MenuStore) List(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MenuItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MenuStore) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, domain.NotFound("memory.menu.get", "menu item", strconv.FormatInt(id, 10))
	}
	return &item, nil
}

func (s *MenuStore) GetMany(ctx context.Context, ids []int64) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MenuItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *MenuStore) Create(ctx context.Context, params domain.MenuItemParams) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(params.Name, 0) {
		return nil, domain.Conflict("memory.menu.create", "menu item name already exists")
	}
	s.nextID++
	item := applyParams(domain.MenuItem{ID: s.nextID}, params)
	s.items[item.ID] = item
	return &item, nil
}

func (s *MenuStore) Update(ctx context.Context, id int64, params domain.MenuItemParams) (*domain.MenuItem, error) {
	const op = "memory.menu.update"

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[id]
	if !ok {
		return nil, domain.NotFound(op, "menu item", strconv.FormatInt(id, 10))
	}
	if s.nameTaken(params.Name, id) {
		return nil, domain.Conflict(op, "menu item name already exists")
	}
	item := applyParams(existing, params)
	s.items[id] = item
	return &item, nil
}

func (s *MenuStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return domain.NotFound("memory.menu.delete", "menu item", strconv.FormatInt(id, 10))
	}
	delete(s.items, id)
	return nil
}

func (s *MenuStore) nameTaken(name string, except int64) bool {
	for id, item := range s.items {
		if id != except && item.Name == name {
			return true
		}
	}
	return false
}

func applyParams(item domain.MenuItem, p domain.MenuItemParams) domain.MenuItem {
	item.Name = p.Name
	item.Price = p.Price
	item.Category = p.Category
	item.Slab = p.Slab
	item.HSNCode = p.HSNCode
	item.FoodType = p.FoodType
	item.UpdatedAt = time.Now()
	return item
}
