package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

func (app *application) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Priority    *int       `json:"priority"`
		DueDate     *time.Time `json:"due_date"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	priority := priorityLow
	if input.Priority != nil {
		priority = *input.Priority
	}
	v := newValidator()
	v.checkTitle(input.Title)
	v.checkPriority(priority)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	caller := getUserFromRequest(r)
	now := time.Now().UTC()
	t := &todo{
		ID:          newID(),
		OwnerID:     caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Title:       input.Title,
		Description: input.Description,
		IsCompleted: false,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	err = app.storage.createTodo(t)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (app *application) getTodosHandler(w http.ResponseWriter, r *http.Request) {
	skip := 0
	limit := defaultPageLimit
	v := newValidator()

	query := r.URL.Query()
	if s := query.Get("skip"); s != "" {
		n, err := strconv.Atoi(s)
		v.checkCond(err == nil, "skip", "must be an integer")
		if err == nil {
			skip = n
		}
	}
	if s := query.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		v.checkCond(err == nil, "limit", "must be an integer")
		if err == nil {
			limit = n
		}
	}
	v.checkPagination(skip, limit)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	caller := getUserFromRequest(r)
	todos, err := app.storage.getTodosByOwner(caller.ID, limit, skip)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// loadOwnedTodo fetches the todo addressed by the request path and enforces
// ownership against the authenticated caller. A missing todo is a 404; a
// todo owned by someone else is a 403. Returns nil after writing the error
// response.
func (app *application) loadOwnedTodo(w http.ResponseWriter, r *http.Request) *todo {
	t, err := app.storage.getTodoByID(r.PathValue("id"))
	if err != nil {
		writeServerError(w, err)
		return nil
	}
	if t == nil {
		writeError(w, errNotFound, http.StatusNotFound)
		return nil
	}
	caller := getUserFromRequest(r)
	if t.OwnerID != caller.ID {
		writeError(w, errForbidden, http.StatusForbidden)
		return nil
	}
	return t
}

func (app *application) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	t := app.loadOwnedTodo(w, r)
	if t == nil {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (app *application) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	t := app.loadOwnedTodo(w, r)
	if t == nil {
		return
	}

	var input updateTodoInput
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	if input.Title != nil {
		v.checkTitle(*input.Title)
	}
	if input.Priority != nil {
		v.checkPriority(*input.Priority)
	}
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	t.applyUpdate(input, time.Now().UTC())
	err = app.storage.updateTodo(t)
	if err != nil {
		if errors.Is(err, errNotFound) {
			writeError(w, errNotFound, http.StatusNotFound)
			return
		}
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (app *application) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	t := app.loadOwnedTodo(w, r)
	if t == nil {
		return
	}
	err := app.storage.deleteTodo(t.ID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			writeError(w, errNotFound, http.StatusNotFound)
			return
		}
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "todo deleted successfully",
	})
}

func (app *application) completeTodoHandler(w http.ResponseWriter, r *http.Request) {
	t := app.loadOwnedTodo(w, r)
	if t == nil {
		return
	}

	var input struct {
		IsCompleted *bool `json:"is_completed"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkCond(input.IsCompleted != nil, "is_completed", "must be provided")
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}

	// This sets the flag to the supplied value. It never flips the current
	// one, so completing an already-completed todo is a no-op that still
	// bumps updated_at.
	t.IsCompleted = *input.IsCompleted
	t.UpdatedAt = time.Now().UTC()
	err = app.storage.updateTodo(t)
	if err != nil {
		if errors.Is(err, errNotFound) {
			writeError(w, errNotFound, http.StatusNotFound)
			return
		}
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
