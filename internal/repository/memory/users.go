package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/repository"
)

// UserStore is the in-memory canonical collection of users, keyed by username.
// Writes take the exclusive lock; reads share it.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserStore builds an empty store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

// Add inserts the user, failing with ErrDuplicateKey if the username is taken.
func (s *UserStore) Add(user domain.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("%w: username must be non-blank", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return fmt.Errorf("%w: user %q", repository.ErrDuplicateKey, user.Username)
	}
	s.users[user.Username] = user
	return nil
}

// Remove deletes the user and reports whether it was present.
func (s *UserStore) Remove(user domain.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; !exists {
		return false
	}
	delete(s.users, user.Username)
	return true
}

// FindByID resolves the primary key, which for users is the username.
func (s *UserStore) FindByID(id string) (domain.User, bool) {
	return s.FindByUsername(id)
}

// FindByUsername resolves a user by username.
func (s *UserStore) FindByUsername(username string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	return user, ok
}

// FindByEmail linear-scans for an exact email match.
func (s *UserStore) FindByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, true
		}
	}
	return domain.User{}, false
}

// FindAll returns a copy of the stored users in unspecified order.
func (s *UserStore) FindAll() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	return out
}

// FindByFilter returns users matching the predicate. A nil predicate yields
// an empty result by policy; pass an identity filter to match everything.
func (s *UserStore) FindByFilter(filter domain.UserFilter) []domain.User {
	if filter == nil {
		return []domain.User{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0)
	for _, user := range s.users {
		if filter(user) {
			out = append(out, user)
		}
	}
	return out
}

// FindAllWith filters, then stable-sorts the filtered result.
func (s *UserStore) FindAllWith(filter domain.UserFilter, sorter domain.UserSorter) []domain.User {
	filtered := s.FindByFilter(filter)
	sortStable(filtered, sorter)
	return filtered
}

// Exists reports whether the username is present.
func (s *UserStore) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[username]
	return ok
}

// Update rebinds the stored user's full name and email. The username key is
// immutable.
func (s *UserStore) Update(username, newFullName, newEmail string) error {
	if strings.TrimSpace(newFullName) == "" {
		return fmt.Errorf("%w: full name must be non-blank", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(newEmail) == "" {
		return fmt.Errorf("%w: email must be non-blank", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return fmt.Errorf("%w: user %q", repository.ErrNotFound, username)
	}
	user.FullName = newFullName
	user.Email = newEmail
	s.users[username] = user
	return nil
}

// Count reports the number of stored users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}

// Clear empties the store.
func (s *UserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]domain.User)
}
