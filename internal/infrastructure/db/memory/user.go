package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"user-profile-api/internal/domain/user"
)

// UserRepository keeps user records in process memory and enforces the same
// unique-email constraint as the Postgres schema.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[user.UUID]*user.User
	byEmail map[string]user.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[user.UUID]*user.User),
		byEmail: make(map[string]user.UUID),
	}
}

func clone(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Address = cloneString(u.Address)
	c.PhoneNumber = cloneString(u.PhoneNumber)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func (r *UserRepository) FetchUserByID(_ context.Context, id user.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.users[id]), nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *UserRepository) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[req.Email]; ok {
		return nil, user.ErrEmailAlreadyExists
	}

	u := clone(&req)
	u.UUID = uuid.New()
	u.BirthDate = user.Date(u.BirthDate)
	r.users[u.UUID] = u
	r.byEmail[u.Email] = u.UUID

	return clone(u), nil
}

func (r *UserRepository) UpdateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.users[req.UUID]
	if !ok {
		return nil, nil
	}
	if owner, taken := r.byEmail[req.Email]; taken && owner != req.UUID {
		return nil, user.ErrEmailAlreadyExists
	}

	u := clone(&req)
	u.BirthDate = user.Date(u.BirthDate)
	delete(r.byEmail, old.Email)
	r.users[u.UUID] = u
	r.byEmail[u.Email] = u.UUID

	return clone(u), nil
}

func (r *UserRepository) FetchUsersByBirthDate(_ context.Context, from, to time.Time) (user.Users, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from, to = user.Date(from), user.Date(to)
	us := user.Users{}
	for _, u := range r.users {
		if u.BirthDate.Before(from) || u.BirthDate.After(to) {
			continue
		}
		us = append(us, clone(u))
	}

	sort.Slice(us, func(i, j int) bool {
		if us[i].BirthDate.Equal(us[j].BirthDate) {
			return us[i].UUID.String() < us[j].UUID.String()
		}
		return us[i].BirthDate.Before(us[j].BirthDate)
	})

	return us, nil
}

func (r *UserRepository) DeleteUser(_ context.Context, id user.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	delete(r.users, id)
	delete(r.byEmail, u.Email)

	return clone(u), nil
}

// Len reports the number of stored records.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users)
}
