package main

import (
	"sort"
	"sync"
)

// memStorage mirrors the postgres implementation's semantics closely enough
// for handler tests: getters return (nil, nil) on a miss, mutations on a
// missing row return errNotFound, duplicate emails return errDuplicateEmail,
// and records are stored by value so callers never alias live state.
type memStorage struct {
	mu    sync.Mutex
	users map[string]user
	todos map[string]todo
}

func newMemStorage() *memStorage {
	return &memStorage{
		users: make(map[string]user),
		todos: make(map[string]todo),
	}
}

func (s *memStorage) createUser(u *user) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return errDuplicateEmail
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *memStorage) getUserByEmail(email string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memStorage) getUserByID(id string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *memStorage) updateUser(u *user) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return errNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return errDuplicateEmail
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *memStorage) createTodo(t *todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos[t.ID] = *t
	return nil
}

func (s *memStorage) getTodoByID(id string) (*todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *memStorage) getTodosByOwner(ownerID string, limit, skip int) ([]todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := []todo{}
	for _, t := range s.todos {
		if t.OwnerID == ownerID {
			owned = append(owned, t)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.Before(owned[j].CreatedAt)
		}
		return owned[i].ID < owned[j].ID
	})
	if skip >= len(owned) {
		return []todo{}, nil
	}
	owned = owned[skip:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (s *memStorage) updateTodo(t *todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[t.ID]; !ok {
		return errNotFound
	}
	s.todos[t.ID] = *t
	return nil
}

func (s *memStorage) deleteTodo(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[id]; !ok {
		return errNotFound
	}
	delete(s.todos, id)
	return nil
}
