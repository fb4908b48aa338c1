package main

import (
	"time"

	"github.com/google/uuid"
)

type user struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	IsActive     bool      `json:"is_active"`
}

type todo struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// Priority levels for a todo.
const (
	priorityLow    = 1
	priorityMedium = 2
	priorityHigh   = 3
)

func newID() string {
	return uuid.NewString()
}

// updateUserInput carries a partial user update. Pointer fields distinguish
// "not supplied" from a zero value, so absent fields are left untouched.
type updateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"is_active"`
}

func (u *user) applyUpdate(input updateUserInput) {
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.IsActive != nil {
		u.IsActive = *input.IsActive
	}
}

// updateTodoInput carries a partial todo update, same presence rules as
// updateUserInput.
type updateTodoInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	IsCompleted *bool      `json:"is_completed"`
	Priority    *int       `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func (t *todo) applyUpdate(input updateTodoInput, now time.Time) {
	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.IsCompleted != nil {
		t.IsCompleted = *input.IsCompleted
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	t.UpdatedAt = now
}
