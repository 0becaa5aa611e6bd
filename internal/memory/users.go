package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
)

type UserStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]domain.User
}

var _ domain.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, domain.NotFound("memory.user.get", "user", username)
	}
	return &u, nil
}

func (s *UserStore) Create(ctx context.Context, params domain.NewUserParams) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[params.Username]; ok {
		return nil, domain.Conflict("memory.user.create", "username already exists")
	}
	s.nextID++
	u := domain.User{
		ID:           s.nextID,
		Username:     params.Username,
		FullName:     params.FullName,
		Role:         params.Role,
		PasswordHash: params.PasswordHash,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	s.users[u.Username] = u
	return &u, nil
}

func (s *UserStore) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, u := range s.users {
		if u.Role == role && u.Active {
			n++
		}
	}
	return n, nil
}
